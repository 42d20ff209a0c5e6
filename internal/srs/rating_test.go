package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRating(t *testing.T) {
	testCases := []struct {
		in      string
		want    Rating
		wantErr bool
	}{
		{"again", Again, false},
		{"Good", Good, false},
		{" EASY ", Easy, false},
		{"a", Again, false},
		{"g", Good, false},
		{"e", Easy, false},
		{"hard", 0, true},
		{"", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRating(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRating)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRatingString(t *testing.T) {
	assert.Equal(t, "again", Again.String())
	assert.Equal(t, "good", Good.String())
	assert.Equal(t, "easy", Easy.String())
	assert.Equal(t, "Rating(0)", Rating(0).String())
	assert.False(t, Rating(4).IsValid())
}

func TestRatingText(t *testing.T) {
	text, err := Easy.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "easy", string(text))

	_, err = Rating(9).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidRating)

	var r Rating
	require.NoError(t, r.UnmarshalText([]byte("good")))
	assert.Equal(t, Good, r)
	assert.ErrorIs(t, r.UnmarshalText([]byte("meh")), ErrInvalidRating)
}
