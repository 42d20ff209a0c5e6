package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/conorfennell/kotoba/internal/srs"
)

var (
	ErrUnknownKind = errors.New("unknown item kind")
	ErrInvalidItem = errors.New("invalid item")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Kind tags which variant of Content an item carries.
type Kind string

const (
	KindGrammar  Kind = "grammar"
	KindVocab    Kind = "vocab"
	KindSentence Kind = "sentence"
)

// Kinds lists every kind in deck order.
var Kinds = []Kind{KindGrammar, KindVocab, KindSentence}

// ParseKind maps a name to a Kind. "vocabulary" and "sentences" are accepted
// as aliases.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "grammar":
		return KindGrammar, nil
	case "vocab", "vocabulary":
		return KindVocab, nil
	case "sentence", "sentences":
		return KindSentence, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Content is the kind-specific payload of an item. It is implemented only by
// Grammar, Vocabulary and Sentence.
type Content interface {
	Kind() Kind
	front() string
	back() string
	searchable() []string
}

// Item is a single learnable unit.
type Item struct {
	ID      string
	Lesson  string `validate:"max=200"`
	Created time.Time
	// SRS is nil for items that were stored without a schedule.
	SRS     *srs.Fields
	Content Content `validate:"-"`
}

// NewItem assigns an ID and creation time to content and schedules it with
// the given initial state.
func NewItem(content Content, lesson string, initial srs.Fields, now time.Time) Item {
	s := initial
	return Item{
		ID:      uuid.NewString(),
		Lesson:  lesson,
		Created: now.UTC().Truncate(time.Second),
		SRS:     &s,
		Content: content,
	}
}

// Kind returns the kind of the item's content.
func (it Item) Kind() Kind {
	if it.Content == nil {
		return ""
	}
	return it.Content.Kind()
}

// Front is the prompt side of the flashcard.
func (it Item) Front() string { return it.Content.front() }

// Back is the answer side of the flashcard.
func (it Item) Back() string { return it.Content.back() }

// Validate checks the content's required fields and, when present, the
// schedule.
func (it Item) Validate() error {
	if it.Content == nil {
		return fmt.Errorf("%w: missing content", ErrInvalidItem)
	}
	if err := validate.Struct(it); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	if err := validate.Struct(it.Content); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	if it.SRS != nil {
		if err := it.SRS.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidItem, err)
		}
	}
	return nil
}
