// Package srs schedules flashcard reviews.
//
// The schedule is a simple step ladder: Again resets an item to "due today",
// Good pushes it out by one more day than last time and Easy by two more.
// Dates are calendar dates in YYYY-MM-DD form, which sort correctly as strings.
package srs

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the format of Fields.NextReviewAt.
const DateLayout = "2006-01-02"

// DefaultEaseFactor is assigned to every new item. It is stored and carried
// through each review but no rule reads it.
const DefaultEaseFactor = 2.5

const (
	goodStep = 1
	easyStep = 2
	minStep  = 1
)

// ErrInvalidFields is returned by Fields.Validate.
var ErrInvalidFields = errors.New("srs: invalid fields")

// Fields is the scheduling state embedded in every learnable item.
type Fields struct {
	NextReviewAt string  `json:"nextReviewAt"`
	Interval     int     `json:"interval"`
	EaseFactor   float64 `json:"easeFactor"`
}

// Validate checks the invariants a stored record must satisfy.
func (f Fields) Validate() error {
	if _, err := time.Parse(DateLayout, f.NextReviewAt); err != nil {
		return fmt.Errorf("%w: next review date %q", ErrInvalidFields, f.NextReviewAt)
	}
	if f.Interval < 0 {
		return fmt.Errorf("%w: negative interval %d", ErrInvalidFields, f.Interval)
	}
	if f.EaseFactor <= 0 {
		return fmt.Errorf("%w: ease factor %v", ErrInvalidFields, f.EaseFactor)
	}
	return nil
}

// Scheduler computes review transitions relative to the current date.
type Scheduler struct {
	// Now returns the current instant. Defaults to time.Now.
	Now func() time.Time
	// Location decides which calendar day "now" falls on. Defaults to UTC.
	Location *time.Location
}

// NewScheduler returns a Scheduler on the wall clock that counts days in loc.
func NewScheduler(loc *time.Location) *Scheduler {
	return &Scheduler{Now: time.Now, Location: loc}
}

// today returns the current calendar date as midnight UTC, so that AddDate
// never crosses a DST transition.
func (s *Scheduler) today() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	t := now().In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current date as YYYY-MM-DD.
func (s *Scheduler) Today() string {
	return s.today().Format(DateLayout)
}

// Default is the state of an item that has never been reviewed: due today.
func (s *Scheduler) Default() Fields {
	return defaultFields(s.today())
}

func defaultFields(today time.Time) Fields {
	return Fields{
		NextReviewAt: today.Format(DateLayout),
		Interval:     0,
		EaseFactor:   DefaultEaseFactor,
	}
}

// Next returns the scheduling state after rating an item. A nil current is
// treated as Default(). The ease factor is copied through unchanged.
func (s *Scheduler) Next(current *Fields, rating Rating) Fields {
	today := s.today()
	prev := defaultFields(today)
	if current != nil {
		prev = *current
	}

	var interval int
	switch rating {
	case Again:
		return Fields{
			NextReviewAt: today.Format(DateLayout),
			Interval:     0,
			EaseFactor:   prev.EaseFactor,
		}
	case Good:
		interval = max(minStep, prev.Interval+goodStep)
	default:
		interval = max(minStep, prev.Interval+easyStep)
	}

	return Fields{
		NextReviewAt: addDays(today, interval),
		Interval:     interval,
		EaseFactor:   prev.EaseFactor,
	}
}

// IsDue reports whether an item scheduled for nextReviewAt should be reviewed
// today, i.e. the date is today or earlier.
func (s *Scheduler) IsDue(nextReviewAt string) bool {
	return nextReviewAt <= s.Today()
}

func addDays(date time.Time, days int) string {
	return date.AddDate(0, 0, days).Format(DateLayout)
}
