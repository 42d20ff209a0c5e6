package storage

const schema = `
-- Each learnable kind has its own table. The three srs columns are NULL for
-- items that have never been scheduled.
CREATE TABLE IF NOT EXISTS grammar (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    explanation TEXT NOT NULL DEFAULT '',
    example_sentence TEXT NOT NULL DEFAULT '',
    example_translation TEXT NOT NULL DEFAULT '',
    lesson TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    next_review_at TEXT,
    interval_days INTEGER,
    ease_factor REAL
);

CREATE TABLE IF NOT EXISTS vocab (
    id TEXT PRIMARY KEY,
    word TEXT NOT NULL,
    reading TEXT NOT NULL DEFAULT '',
    meaning TEXT NOT NULL DEFAULT '',
    example_sentence TEXT NOT NULL DEFAULT '',
    conjugation_summary TEXT NOT NULL DEFAULT '',
    conjugation TEXT, -- JSON object, see domain.VerbConjugation
    lesson TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    next_review_at TEXT,
    interval_days INTEGER,
    ease_factor REAL
);

CREATE TABLE IF NOT EXISTS sentences (
    id TEXT PRIMARY KEY,
    japanese_text TEXT NOT NULL,
    translation TEXT NOT NULL DEFAULT '',
    linked_grammar TEXT NOT NULL DEFAULT '',
    lesson TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    next_review_at TEXT,
    interval_days INTEGER,
    ease_factor REAL
);

CREATE INDEX IF NOT EXISTS idx_grammar_next_review ON grammar(next_review_at);
CREATE INDEX IF NOT EXISTS idx_vocab_next_review ON vocab(next_review_at);
CREATE INDEX IF NOT EXISTS idx_sentences_next_review ON sentences(next_review_at);
`
