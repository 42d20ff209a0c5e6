// Package session assembles review decks and walks through them one card at
// a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/srs"
)

var (
	ErrDone        = errors.New("session is finished")
	ErrUnknownDeck = errors.New("unknown deck mode")
)

// Deck selects which items enter a session.
type Deck string

const (
	DeckDue Deck = "due"
	DeckAll Deck = "all"
)

// ParseDeck maps "due" or "all" to a Deck.
func ParseDeck(s string) (Deck, error) {
	switch Deck(s) {
	case DeckDue, DeckAll:
		return Deck(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDeck, s)
}

// Collections holds every stored item, grouped by kind in source order.
type Collections struct {
	Grammar   []domain.Item
	Vocab     []domain.Item
	Sentences []domain.Item
}

// Ordered concatenates the three kinds in deck order.
func (c Collections) Ordered() []domain.Item {
	out := make([]domain.Item, 0, len(c.Grammar)+len(c.Vocab)+len(c.Sentences))
	out = append(out, c.Grammar...)
	out = append(out, c.Vocab...)
	return append(out, c.Sentences...)
}

// Filter narrows a deck. An empty Lesson keeps every lesson.
type Filter struct {
	Deck   Deck
	Lesson string
}

// Build returns the cards for a session: grammar first, then vocabulary, then
// sentences, each in source order. The due deck keeps only scheduled items
// that are due today.
func Build(c Collections, f Filter, sched *srs.Scheduler) []domain.Item {
	var cards []domain.Item
	for _, it := range c.Ordered() {
		if f.Deck != DeckAll && (it.SRS == nil || !sched.IsDue(it.SRS.NextReviewAt)) {
			continue
		}
		if f.Lesson != "" && it.Lesson != f.Lesson {
			continue
		}
		cards = append(cards, it)
	}
	return cards
}

// Due returns every item due today, across all lessons.
func Due(c Collections, sched *srs.Scheduler) []domain.Item {
	return Build(c, Filter{Deck: DeckDue}, sched)
}

// Lessons returns the distinct non-empty lesson names, sorted.
func Lessons(c Collections) []string {
	seen := make(map[string]bool)
	var lessons []string
	for _, it := range c.Ordered() {
		if it.Lesson != "" && !seen[it.Lesson] {
			seen[it.Lesson] = true
			lessons = append(lessons, it.Lesson)
		}
	}
	sort.Strings(lessons)
	return lessons
}

// Updater persists a new schedule for one item.
type Updater interface {
	UpdateSRS(ctx context.Context, kind domain.Kind, id string, fields srs.Fields) error
}

// Session is a single pass over a deck. Each card is rated exactly once.
type Session struct {
	cards []domain.Item
	index int
	store Updater
	sched *srs.Scheduler
	tally map[srs.Rating]int
}

// New starts a session over cards.
func New(cards []domain.Item, store Updater, sched *srs.Scheduler) *Session {
	return &Session{
		cards: cards,
		store: store,
		sched: sched,
		tally: make(map[srs.Rating]int),
	}
}

// Current returns the card being shown, or false once the session is done.
func (s *Session) Current() (domain.Item, bool) {
	if s.Done() {
		return domain.Item{}, false
	}
	return s.cards[s.index], true
}

// Done reports whether every card has been rated.
func (s *Session) Done() bool {
	return s.index >= len(s.cards)
}

// Position returns the 1-based number of the current card and the deck size.
func (s *Session) Position() (int, int) {
	return s.index + 1, len(s.cards)
}

// Tally returns how many times each rating was given so far.
func (s *Session) Tally() map[srs.Rating]int {
	out := make(map[srs.Rating]int, len(s.tally))
	for r, n := range s.tally {
		out[r] = n
	}
	return out
}

// Rate schedules the current card, persists the result and moves on. If the
// store fails the session stays on the same card so the rating can be retried.
func (s *Session) Rate(ctx context.Context, rating srs.Rating) (srs.Fields, error) {
	card, ok := s.Current()
	if !ok {
		return srs.Fields{}, ErrDone
	}
	if !rating.IsValid() {
		return srs.Fields{}, fmt.Errorf("%w: %d", srs.ErrInvalidRating, int(rating))
	}

	next := s.sched.Next(card.SRS, rating)
	if err := s.store.UpdateSRS(ctx, card.Kind(), card.ID, next); err != nil {
		return srs.Fields{}, fmt.Errorf("failed to save review of %s %s: %w", card.Kind(), card.ID, err)
	}

	slog.Info("card reviewed",
		"kind", card.Kind(),
		"id", card.ID,
		"rating", rating,
		"interval", next.Interval,
		"next_review_at", next.NextReviewAt,
	)

	s.cards[s.index].SRS = &next
	s.tally[rating]++
	s.index++
	return next, nil
}
