package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/conorfennell/kotoba/internal/domain"
	"github.com/conorfennell/kotoba/internal/session"
	"github.com/conorfennell/kotoba/internal/srs"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// ErrNotFound is returned when no item has the requested kind and ID.
var ErrNotFound = errors.New("item not found")

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Create validates and inserts a new item.
func (db *DB) Create(ctx context.Context, item domain.Item) error {
	if err := insert(ctx, db.conn, item); err != nil {
		return err
	}
	slog.Debug("item created", "kind", item.Kind(), "id", item.ID)
	return nil
}

// CreateBulk inserts all items in one transaction. Nothing is stored if any
// item is invalid.
func (db *DB) CreateBulk(ctx context.Context, items []domain.Item) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if err := insert(ctx, tx, item); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %d items: %w", len(items), err)
	}
	slog.Debug("items created", "count", len(items))
	return nil
}

func insert(ctx context.Context, x execer, item domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	t, err := tableFor(item.Kind())
	if err != nil {
		return err
	}
	content, err := t.values(item.Content)
	if err != nil {
		return err
	}

	cols := append([]string{"id"}, t.columns...)
	cols = append(cols, "lesson", "created_at", "next_review_at", "interval_days", "ease_factor")
	args := append([]any{item.ID}, content...)
	args = append(args, item.Lesson, item.Created.UTC().Format(time.RFC3339))
	args = append(args, srsArgs(item.SRS)...)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(cols, ", "), placeholders(len(cols)))
	if _, err := x.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert %s %s: %w", item.Kind(), item.ID, err)
	}
	return nil
}

// Get retrieves one item by kind and ID.
func (db *DB) Get(ctx context.Context, kind domain.Kind, id string) (domain.Item, error) {
	t, err := tableFor(kind)
	if err != nil {
		return domain.Item{}, err
	}
	row := db.conn.QueryRowContext(ctx, t.selectQuery()+" WHERE id = ?", id)
	item, err := t.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Item{}, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
		}
		return domain.Item{}, fmt.Errorf("failed to find %s %s: %w", kind, id, err)
	}
	return item, nil
}

// List retrieves all items of one kind in the order they were added.
func (db *DB) List(ctx context.Context, kind domain.Kind) ([]domain.Item, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := db.conn.QueryContext(ctx, t.selectQuery()+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.name, err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.name, err)
	}
	return items, nil
}

// ListAll retrieves every item grouped by kind.
func (db *DB) ListAll(ctx context.Context) (session.Collections, error) {
	var c session.Collections
	var err error
	if c.Grammar, err = db.List(ctx, domain.KindGrammar); err != nil {
		return c, err
	}
	if c.Vocab, err = db.List(ctx, domain.KindVocab); err != nil {
		return c, err
	}
	if c.Sentences, err = db.List(ctx, domain.KindSentence); err != nil {
		return c, err
	}
	return c, nil
}

// Update replaces an item's content and lesson. Its schedule is left alone.
func (db *DB) Update(ctx context.Context, item domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	t, err := tableFor(item.Kind())
	if err != nil {
		return err
	}
	content, err := t.values(item.Content)
	if err != nil {
		return err
	}

	sets := make([]string, 0, len(t.columns)+1)
	for _, c := range t.columns {
		sets = append(sets, c+" = ?")
	}
	sets = append(sets, "lesson = ?")
	args := append(content, item.Lesson, item.ID)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(sets, ", "))
	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", item.Kind(), item.ID, err)
	}
	return expectOne(res, item.Kind(), item.ID)
}

// UpdateSRS replaces the schedule of one item.
func (db *DB) UpdateSRS(ctx context.Context, kind domain.Kind, id string, fields srs.Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("UPDATE %s SET next_review_at = ?, interval_days = ?, ease_factor = ? WHERE id = ?", t.name)
	res, err := db.conn.ExecContext(ctx, query, fields.NextReviewAt, fields.Interval, fields.EaseFactor, id)
	if err != nil {
		return fmt.Errorf("failed to update schedule for %s %s: %w", kind, id, err)
	}
	if err := expectOne(res, kind, id); err != nil {
		return err
	}
	slog.Debug("schedule updated", "kind", kind, "id", id, "next_review_at", fields.NextReviewAt)
	return nil
}

// Delete removes an item.
func (db *DB) Delete(ctx context.Context, kind domain.Kind, id string) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	res, err := db.conn.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.name), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	return expectOne(res, kind, id)
}

func expectOne(res sql.Result, kind domain.Kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s %s: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func srsArgs(f *srs.Fields) []any {
	if f == nil {
		return []any{nil, nil, nil}
	}
	return []any{f.NextReviewAt, f.Interval, f.EaseFactor}
}
