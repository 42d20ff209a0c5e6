package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/session"
	"github.com/conorfennell/kotoba/internal/srs"
)

// duePreview is how many due items the due command prints before summarising.
const duePreview = 20

func newFlagSet(name string, errOut io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(errOut)
	return fs
}

func (a *app) add(ctx context.Context, args []string, errOut io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: add needs a kind: grammar, vocab or sentence", errUsage)
	}
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return err
	}

	fs := newFlagSet("add "+string(kind), errOut)
	lesson := fs.String("lesson", "", "Lesson tag")

	var content func() domain.Content
	switch kind {
	case domain.KindGrammar:
		var g domain.Grammar
		fs.StringVar(&g.Title, "title", "", "Grammar point (required)")
		fs.StringVar(&g.Explanation, "explanation", "", "Explanation")
		fs.StringVar(&g.ExampleSentence, "example", "", "Example sentence")
		fs.StringVar(&g.ExampleTranslation, "translation", "", "Translation of the example")
		content = func() domain.Content { return g }
	case domain.KindVocab:
		var v domain.Vocabulary
		var c domain.VerbConjugation
		fs.StringVar(&v.Word, "word", "", "Word (required)")
		fs.StringVar(&v.Reading, "reading", "", "Reading")
		fs.StringVar(&v.Meaning, "meaning", "", "Meaning")
		fs.StringVar(&v.ExampleSentence, "example", "", "Example sentence")
		fs.StringVar(&v.ConjugationSummary, "conjugation-summary", "", "Short conjugation note")
		fs.StringVar(&c.Present, "present", "", "Present form")
		fs.StringVar(&c.Negative, "negative", "", "Negative form")
		fs.StringVar(&c.Past, "past", "", "Past form")
		fs.StringVar(&c.PastNegative, "past-negative", "", "Past negative form")
		fs.StringVar(&c.TeForm, "te-form", "", "Te-form")
		fs.StringVar(&c.TaiForm, "tai-form", "", "Tai-form")
		content = func() domain.Content {
			if len(c.Forms()) > 0 {
				v.Conjugation = &c
			}
			return v
		}
	case domain.KindSentence:
		var s domain.Sentence
		fs.StringVar(&s.JapaneseText, "text", "", "Sentence (required)")
		fs.StringVar(&s.Translation, "translation", "", "Translation")
		fs.StringVar(&s.LinkedGrammar, "grammar", "", "Grammar point the sentence illustrates")
		content = func() domain.Content { return s }
	}

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	item := domain.NewItem(content(), *lesson, a.sched.Default(), time.Now())
	if err := a.db.Create(ctx, item); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s %s (due %s)\n", item.Kind(), item.ID, item.SRS.NextReviewAt)
	return nil
}

func (a *app) list(ctx context.Context, args []string, errOut io.Writer) error {
	fs := newFlagSet("list", errOut)
	kindName := fs.String("kind", "", "Only this kind: grammar, vocab or sentence")
	lesson := fs.String("lesson", "", "Only this lesson")
	search := fs.String("search", "", "Case-insensitive text search")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := a.db.ListAll(ctx)
	if err != nil {
		return err
	}
	items := c.Ordered()
	if *kindName != "" {
		kind, err := domain.ParseKind(*kindName)
		if err != nil {
			return err
		}
		items = filter(items, func(it domain.Item) bool { return it.Kind() == kind })
	}
	if *lesson != "" {
		items = filter(items, func(it domain.Item) bool { return it.Lesson == *lesson })
	}
	items = filter(items, func(it domain.Item) bool { return it.Matches(*search) })

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items match.")
		return nil
	}
	return a.printItems(items)
}

func (a *app) due(ctx context.Context) error {
	c, err := a.db.ListAll(ctx)
	if err != nil {
		return err
	}
	due := session.Due(c, a.sched)
	fmt.Fprintf(a.out, "You have %d %s due today.\n", len(due), plural(len(due), "item"))
	if len(due) == 0 {
		return nil
	}

	if err := a.printItems(due[:min(len(due), duePreview)]); err != nil {
		return err
	}
	if len(due) > duePreview {
		fmt.Fprintf(a.out, "... and %d more. Start a session to review.\n", len(due)-duePreview)
	}
	return nil
}

func (a *app) lessons(ctx context.Context) error {
	c, err := a.db.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, l := range session.Lessons(c) {
		fmt.Fprintln(a.out, l)
	}
	return nil
}

func (a *app) rate(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: rate <kind> <id> <again|good|easy>", errUsage)
	}
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return err
	}
	rating, err := srs.ParseRating(args[2])
	if err != nil {
		return err
	}
	item, err := a.db.Get(ctx, kind, args[1])
	if err != nil {
		return err
	}

	s := session.New([]domain.Item{item}, a.db, a.sched)
	next, err := s.Rate(ctx, rating)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Next review %s (interval %d %s)\n", next.NextReviewAt, next.Interval, plural(next.Interval, "day"))
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: delete <kind> <id>", errUsage)
	}
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return err
	}
	if err := a.db.Delete(ctx, kind, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s %s\n", kind, args[1])
	return nil
}

func (a *app) printItems(items []domain.Item) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tID\tLESSON\tNEXT REVIEW\tFRONT")
	for _, it := range items {
		next := "-"
		if it.SRS != nil {
			next = it.SRS.NextReviewAt
		}
		front := strings.ReplaceAll(it.Front(), "\n", " ")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", it.Kind(), it.ID, it.Lesson, next, front)
	}
	return tw.Flush()
}

func filter(items []domain.Item, keep func(domain.Item) bool) []domain.Item {
	var out []domain.Item
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
