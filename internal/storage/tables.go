package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/srs"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// table maps one item kind to its SQL table. columns lists the
// kind-specific columns; id, lesson, created_at and the srs columns are
// shared by every table.
type table struct {
	name    string
	columns []string
	values  func(domain.Content) ([]any, error)
	// fields returns scan destinations for columns and a function that
	// builds the content once they are filled.
	fields func() ([]any, func() (domain.Content, error))
}

var tables = map[domain.Kind]table{
	domain.KindGrammar: {
		name:    "grammar",
		columns: []string{"title", "explanation", "example_sentence", "example_translation"},
		values: func(c domain.Content) ([]any, error) {
			g, ok := c.(domain.Grammar)
			if !ok {
				return nil, contentMismatch(domain.KindGrammar, c)
			}
			return []any{g.Title, g.Explanation, g.ExampleSentence, g.ExampleTranslation}, nil
		},
		fields: func() ([]any, func() (domain.Content, error)) {
			var g domain.Grammar
			return []any{&g.Title, &g.Explanation, &g.ExampleSentence, &g.ExampleTranslation},
				func() (domain.Content, error) { return g, nil }
		},
	},
	domain.KindVocab: {
		name:    "vocab",
		columns: []string{"word", "reading", "meaning", "example_sentence", "conjugation_summary", "conjugation"},
		values: func(c domain.Content) ([]any, error) {
			v, ok := c.(domain.Vocabulary)
			if !ok {
				return nil, contentMismatch(domain.KindVocab, c)
			}
			var conj any
			if v.Conjugation != nil {
				b, err := json.Marshal(v.Conjugation)
				if err != nil {
					return nil, fmt.Errorf("failed to encode conjugation for %q: %w", v.Word, err)
				}
				conj = string(b)
			}
			return []any{v.Word, v.Reading, v.Meaning, v.ExampleSentence, v.ConjugationSummary, conj}, nil
		},
		fields: func() ([]any, func() (domain.Content, error)) {
			var v domain.Vocabulary
			var conj sql.NullString
			return []any{&v.Word, &v.Reading, &v.Meaning, &v.ExampleSentence, &v.ConjugationSummary, &conj},
				func() (domain.Content, error) {
					if conj.Valid && conj.String != "" {
						v.Conjugation = &domain.VerbConjugation{}
						if err := json.Unmarshal([]byte(conj.String), v.Conjugation); err != nil {
							return nil, fmt.Errorf("failed to decode conjugation for %q: %w", v.Word, err)
						}
					}
					return v, nil
				}
		},
	},
	domain.KindSentence: {
		name:    "sentences",
		columns: []string{"japanese_text", "translation", "linked_grammar"},
		values: func(c domain.Content) ([]any, error) {
			s, ok := c.(domain.Sentence)
			if !ok {
				return nil, contentMismatch(domain.KindSentence, c)
			}
			return []any{s.JapaneseText, s.Translation, s.LinkedGrammar}, nil
		},
		fields: func() ([]any, func() (domain.Content, error)) {
			var s domain.Sentence
			return []any{&s.JapaneseText, &s.Translation, &s.LinkedGrammar},
				func() (domain.Content, error) { return s, nil }
		},
	},
}

func tableFor(kind domain.Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return t, nil
}

func contentMismatch(kind domain.Kind, c domain.Content) error {
	return fmt.Errorf("%w: %T is not %s content", domain.ErrInvalidItem, c, kind)
}

func (t table) selectQuery() string {
	cols := append([]string{"id"}, t.columns...)
	cols = append(cols, "lesson", "created_at", "next_review_at", "interval_days", "ease_factor")
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), t.name)
}

func (t table) scan(row rowScanner) (domain.Item, error) {
	var (
		item     domain.Item
		created  string
		next     sql.NullString
		interval sql.NullInt64
		ease     sql.NullFloat64
	)
	contentDest, build := t.fields()

	dest := append([]any{&item.ID}, contentDest...)
	dest = append(dest, &item.Lesson, &created, &next, &interval, &ease)
	if err := row.Scan(dest...); err != nil {
		return domain.Item{}, err
	}

	content, err := build()
	if err != nil {
		return domain.Item{}, err
	}
	item.Content = content

	item.Created, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return domain.Item{}, fmt.Errorf("failed to parse created_at %q: %w", created, err)
	}

	if next.Valid {
		item.SRS = &srs.Fields{
			NextReviewAt: next.String,
			Interval:     int(interval.Int64),
			EaseFactor:   srs.DefaultEaseFactor,
		}
		if ease.Valid {
			item.SRS.EaseFactor = ease.Float64
		}
	}
	return item, nil
}
