package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/srs"
)

var (
	created = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	fresh   = srs.Fields{NextReviewAt: "2024-01-10", Interval: 0, EaseFactor: srs.DefaultEaseFactor}
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "kotoba.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	items := []domain.Item{
		domain.NewItem(domain.Grammar{
			Title:              "〜てください",
			Explanation:        "polite request",
			ExampleSentence:    "見てください",
			ExampleTranslation: "please look",
		}, "L3", fresh, created),
		domain.NewItem(domain.Vocabulary{
			Word:               "行く",
			Reading:            "いく",
			Meaning:            "to go",
			ConjugationSummary: "godan, irregular te-form",
			Conjugation:        &domain.VerbConjugation{TeForm: "行って", Past: "行った"},
		}, "L3", fresh, created),
		domain.NewItem(domain.Sentence{
			JapaneseText:  "学校に行きます。",
			Translation:   "I go to school.",
			LinkedGrammar: "に",
		}, "", fresh, created),
	}

	for _, item := range items {
		require.NoError(t, db.Create(ctx, item))
	}

	for _, want := range items {
		t.Run(string(want.Kind()), func(t *testing.T) {
			got, err := db.Get(ctx, want.Kind(), want.ID)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestGetNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Get(context.Background(), domain.KindGrammar, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.Get(context.Background(), domain.Kind("kanji"), "x")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestCreateRejectsInvalid(t *testing.T) {
	db := openTestDB(t)
	err := db.Create(context.Background(), domain.NewItem(domain.Grammar{}, "", fresh, created))
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
}

func TestCreateWithoutSchedule(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	item := domain.NewItem(domain.Sentence{JapaneseText: "はい"}, "", fresh, created)
	item.SRS = nil
	require.NoError(t, db.Create(ctx, item))

	got, err := db.Get(ctx, domain.KindSentence, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SRS)
}

func TestCreateBulkIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	batch := []domain.Item{
		domain.NewItem(domain.Vocabulary{Word: "一"}, "L1", fresh, created),
		domain.NewItem(domain.Vocabulary{Word: ""}, "L1", fresh, created),
	}
	assert.ErrorIs(t, db.CreateBulk(ctx, batch), domain.ErrInvalidItem)

	vocab, err := db.List(ctx, domain.KindVocab)
	require.NoError(t, err)
	assert.Empty(t, vocab)

	batch[1].Content = domain.Vocabulary{Word: "二"}
	require.NoError(t, db.CreateBulk(ctx, batch))

	vocab, err = db.List(ctx, domain.KindVocab)
	require.NoError(t, err)
	require.Len(t, vocab, 2)
	assert.Equal(t, batch[0].ID, vocab[0].ID)
	assert.Equal(t, batch[1].ID, vocab[1].ID)
}

func TestListAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	var want []string
	for _, w := range []string{"c", "a", "b"} {
		item := domain.NewItem(domain.Grammar{Title: w}, "", fresh, created)
		require.NoError(t, db.Create(ctx, item))
		want = append(want, item.ID)
	}
	require.NoError(t, db.Create(ctx, domain.NewItem(domain.Sentence{JapaneseText: "s"}, "", fresh, created)))

	c, err := db.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, c.Grammar, 3)
	assert.Empty(t, c.Vocab)
	assert.Len(t, c.Sentences, 1)
	for i, it := range c.Grammar {
		assert.Equal(t, want[i], it.ID)
	}
}

func TestUpdateSRS(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	item := domain.NewItem(domain.Vocabulary{Word: "水"}, "", fresh, created)
	require.NoError(t, db.Create(ctx, item))

	next := srs.Fields{NextReviewAt: "2024-01-14", Interval: 4, EaseFactor: 2.5}
	require.NoError(t, db.UpdateSRS(ctx, domain.KindVocab, item.ID, next))

	got, err := db.Get(ctx, domain.KindVocab, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SRS)
	assert.Equal(t, next, *got.SRS)
	assert.Equal(t, item.Content, got.Content)

	assert.ErrorIs(t, db.UpdateSRS(ctx, domain.KindVocab, "missing", next), ErrNotFound)
	assert.ErrorIs(t, db.UpdateSRS(ctx, domain.KindVocab, item.ID, srs.Fields{NextReviewAt: "x", EaseFactor: 2.5}), srs.ErrInvalidFields)
}

func TestUpdateKeepsSchedule(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	item := domain.NewItem(domain.Grammar{Title: "から"}, "L1", fresh, created)
	require.NoError(t, db.Create(ctx, item))
	later := srs.Fields{NextReviewAt: "2024-02-01", Interval: 7, EaseFactor: 2.5}
	require.NoError(t, db.UpdateSRS(ctx, domain.KindGrammar, item.ID, later))

	item.Lesson = "L2"
	item.Content = domain.Grammar{Title: "から", Explanation: "because"}
	require.NoError(t, db.Update(ctx, item))

	got, err := db.Get(ctx, domain.KindGrammar, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "L2", got.Lesson)
	assert.Equal(t, "because", got.Content.(domain.Grammar).Explanation)
	assert.Equal(t, later, *got.SRS)

	item.ID = "missing"
	assert.ErrorIs(t, db.Update(ctx, item), ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	item := domain.NewItem(domain.Sentence{JapaneseText: "さようなら"}, "", fresh, created)
	require.NoError(t, db.Create(ctx, item))
	require.NoError(t, db.Delete(ctx, domain.KindSentence, item.ID))

	_, err := db.Get(ctx, domain.KindSentence, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.Delete(ctx, domain.KindSentence, item.ID), ErrNotFound)
}

func TestContentKindMismatch(t *testing.T) {
	_, err := tables[domain.KindVocab].values(domain.Grammar{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
}
