// Package history journals successful navigations in SQLite.
package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/browserctl/internal/logging"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// timeLayout keeps fractional seconds fixed-width so the TEXT column sorts
// chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one recorded navigation.
type Entry struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	WindowID  string    `json:"window_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal appends navigation records and lists them newest first. It is an
// observability aid only: callers must never let a journal failure change
// the outcome of a navigation.
type Journal struct {
	db     *sql.DB
	logger logging.Logger
}

// NewJournal returns a Journal and runs migrations from schema.sql.
func NewJournal(db *sql.DB, logger logging.Logger) (*Journal, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Journal{db: db, logger: logger}, nil
}

// Open opens (or creates) the SQLite journal at path.
func Open(path string, logger logging.Logger) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}
	j, err := NewJournal(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// Record stores one navigation.
func (j *Journal) Record(ctx context.Context, url, windowID string) error {
	id := uuid.New().String()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO navigations (id, url, window_id, created_at) VALUES (?, ?, ?, ?)`,
		id, url, windowID, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording navigation: %w", err)
	}
	j.logger.Debug("recorded navigation", logging.Field{Key: "id", Value: id}, logging.Field{Key: "url", Value: url})
	return nil
}

// List returns up to limit entries, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, url, window_id, created_at FROM navigations ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing navigations: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.URL, &e.WindowID, &created); err != nil {
			return nil, fmt.Errorf("scanning navigation row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating navigation rows: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
