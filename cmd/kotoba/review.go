package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/conorfennell/kotoba/internal/session"
	"github.com/conorfennell/kotoba/internal/srs"
)

func (a *app) review(ctx context.Context, args []string, errOut io.Writer) error {
	fs := newFlagSet("review", errOut)
	deckName := fs.String("deck", a.cfg.Deck, "Deck: due or all")
	lesson := fs.String("lesson", "", "Only this lesson")
	if err := fs.Parse(args); err != nil {
		return err
	}
	deck, err := session.ParseDeck(*deckName)
	if err != nil {
		return err
	}

	c, err := a.db.ListAll(ctx)
	if err != nil {
		return err
	}
	cards := session.Build(c, session.Filter{Deck: deck, Lesson: *lesson}, a.sched)
	if len(cards) == 0 {
		fmt.Fprintln(a.out, "No cards. Add items or come back when you have items due.")
		return nil
	}
	fmt.Fprintf(a.out, "%d %s in deck.\n", len(cards), plural(len(cards), "card"))

	s := session.New(cards, a.db, a.sched)
	in := bufio.NewScanner(a.in)

	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		card, _ := s.Current()
		pos, total := s.Position()
		fmt.Fprintf(a.out, "\nCard %d of %d [%s]\n%s\n", pos, total, card.Kind(), card.Front())
		fmt.Fprint(a.out, "Press Enter to flip, q to stop. ")
		line, ok := readLine(in)
		if !ok || line == "q" {
			break
		}
		fmt.Fprintf(a.out, "\n%s\n", card.Back())

		stop, err := a.promptRating(ctx, s, in)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}

	a.printTally(s)
	return nil
}

// promptRating asks until a valid rating is saved. It reports stop when the
// input ends or the user quits.
func (a *app) promptRating(ctx context.Context, s *session.Session, in *bufio.Scanner) (bool, error) {
	for {
		fmt.Fprint(a.out, "Rate: (a)gain (g)ood (e)asy, q to stop: ")
		line, ok := readLine(in)
		if !ok || line == "q" {
			return true, nil
		}
		rating, err := srs.ParseRating(line)
		if err != nil {
			fmt.Fprintf(a.out, "%q is not a rating.\n", line)
			continue
		}
		next, err := s.Rate(ctx, rating)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(a.out, "Next review %s.\n", next.NextReviewAt)
		return false, nil
	}
}

func (a *app) printTally(s *session.Session) {
	tally := s.Tally()
	reviewed := tally[srs.Again] + tally[srs.Good] + tally[srs.Easy]
	if s.Done() {
		fmt.Fprintln(a.out, "\nNo more cards in this session.")
	}
	fmt.Fprintf(a.out, "Reviewed %d: again %d, good %d, easy %d.\n",
		reviewed, tally[srs.Again], tally[srs.Good], tally[srs.Easy])
}

func readLine(in *bufio.Scanner) (string, bool) {
	if !in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(in.Text())), true
}
