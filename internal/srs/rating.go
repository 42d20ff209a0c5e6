package srs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRating is returned when text does not name one of the three ratings.
var ErrInvalidRating = errors.New("srs: invalid rating")

// Rating is the learner's self-assessment after revealing a card.
type Rating int

const (
	Again Rating = iota + 1 // Forgotten; the card is due again today.
	Good                    // Recalled; the interval grows by one day.
	Easy                    // Recalled effortlessly; the interval grows by two days.
)

var ratingNames = [...]string{Again: "again", Good: "good", Easy: "easy"}

// String returns "again", "good" or "easy", or "Rating(n)" for anything else.
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// IsValid reports whether r is one of Again, Good or Easy.
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

// ParseRating accepts the rating names case-insensitively, plus the
// single-letter shortcuts a, g and e.
func ParseRating(s string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "again", "a":
		return Again, nil
	case "good", "g":
		return Good, nil
	case "easy", "e":
		return Easy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
