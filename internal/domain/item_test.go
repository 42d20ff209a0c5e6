package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/kotoba/internal/srs"
)

func TestParseKind(t *testing.T) {
	testCases := []struct {
		in   string
		want Kind
	}{
		{"grammar", KindGrammar},
		{"vocab", KindVocab},
		{"vocabulary", KindVocab},
		{"sentence", KindSentence},
		{"sentences", KindSentence},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseKind(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseKind("kanji")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestNewItem(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 30, 15, 500, time.FixedZone("JST", 9*3600))
	initial := srs.Fields{NextReviewAt: "2024-01-10", Interval: 0, EaseFactor: srs.DefaultEaseFactor}

	item := NewItem(Vocabulary{Word: "食べる", Meaning: "to eat"}, "L1", initial, now)

	_, err := uuid.Parse(item.ID)
	assert.NoError(t, err, "ID should be a UUID")
	assert.Equal(t, KindVocab, item.Kind())
	assert.Equal(t, "L1", item.Lesson)
	assert.Equal(t, time.UTC, item.Created.Location())
	assert.Equal(t, 0, item.Created.Nanosecond())
	require.NotNil(t, item.SRS)
	assert.Equal(t, initial, *item.SRS)

	other := NewItem(Vocabulary{Word: "飲む"}, "L1", initial, now)
	assert.NotEqual(t, item.ID, other.ID)

	item.SRS.Interval = 5
	assert.Equal(t, 0, initial.Interval, "NewItem must copy the initial state")
}

func TestItemValidate(t *testing.T) {
	good := srs.Fields{NextReviewAt: "2024-01-10", EaseFactor: 2.5}

	testCases := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"grammar", Item{Content: Grammar{Title: "〜てもいい"}, SRS: &good}, false},
		{"grammar without title", Item{Content: Grammar{Explanation: "x"}}, true},
		{"vocab without word", Item{Content: Vocabulary{Meaning: "x"}}, true},
		{"sentence", Item{Content: Sentence{JapaneseText: "猫が好きです。"}}, false},
		{"sentence without text", Item{Content: Sentence{Translation: "I like cats."}}, true},
		{"no content", Item{}, true},
		{"bad schedule", Item{Content: Grammar{Title: "は"}, SRS: &srs.Fields{NextReviewAt: "soon", EaseFactor: 2.5}}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidItem)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	grammar := Item{Content: Grammar{Title: "Te-form", Explanation: "Connects CLAUSES"}}
	vocab := Item{Content: Vocabulary{Word: "猫", Reading: "ねこ", Meaning: "Cat"}}
	sentence := Item{Content: Sentence{JapaneseText: "猫がいます。", Translation: "There is a cat."}}

	assert.True(t, grammar.Matches(""))
	assert.True(t, grammar.Matches("  clauses "))
	assert.False(t, grammar.Matches("cat"))
	assert.True(t, vocab.Matches("ねこ"))
	assert.True(t, vocab.Matches("CAT"))
	assert.True(t, sentence.Matches("猫"))
	assert.True(t, sentence.Matches("there is"))
	assert.False(t, Item{}.Matches("x"))
}

func TestFaces(t *testing.T) {
	g := Item{Content: Grammar{Title: "〜たい", Explanation: "want to", ExampleSentence: "行きたい", ExampleTranslation: "I want to go"}}
	assert.Equal(t, "〜たい", g.Front())
	assert.Equal(t, "〜たい\nwant to\n行きたい / I want to go", g.Back())

	v := Item{Content: Vocabulary{
		Word:        "書く",
		Reading:     "かく",
		Conjugation: &VerbConjugation{Past: "書いた", TeForm: " 書いて "},
	}}
	assert.Equal(t, "書く", v.Front())
	assert.Equal(t, "書く\nReading: かく\n-\nVerb conjugation:\n  Past: 書いた\n  Te-form: 書いて", v.Back())

	s := Item{Content: Sentence{JapaneseText: "おはよう"}}
	assert.Equal(t, "おはよう", s.Back())
}

func TestConjugationForms(t *testing.T) {
	assert.Empty(t, VerbConjugation{}.Forms())

	forms := VerbConjugation{Present: "行く", TaiForm: "行きたい"}.Forms()
	assert.Equal(t, [][2]string{{"Present", "行く"}, {"Tai-form", "行きたい"}}, forms)
}
