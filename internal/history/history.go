// Package history persists shell command history in SQLite: every line
// dispatched by the interactive shell is recorded with its outcome, and
// the shell reads it back for recall and prefix search.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/stanza-tools/stanza/internal/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	input TEXT NOT NULL,
	succeeded INTEGER NOT NULL,
	result INTEGER NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	executed_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_executed_at ON entries(executed_at);
CREATE INDEX IF NOT EXISTS idx_entries_input ON entries(input);
`

// Entry is one dispatched command line and its outcome.
type Entry struct {
	ID         string
	Input      string
	Succeeded  bool
	Result     int
	Error      string
	ExecutedAt time.Time
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	store, err := NewWithDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("history: database ready at %s", path)
	return store, nil
}

// NewWithDB wraps an existing connection, applying the schema. Used by
// tests with in-memory databases.
func NewWithDB(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one dispatched line and returns its generated id.
func (s *Store) Append(e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ExecutedAt.IsZero() {
		e.ExecutedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO entries (id, input, succeeded, result, error, executed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Input, e.Succeeded, e.Result, e.Error, e.ExecutedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert history entry: %w", err)
	}
	return e.ID, nil
}

// Recent returns the latest n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, input, succeeded, result, error, executed_at FROM entries ORDER BY executed_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent history: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanEntries(rows)
}

// SearchPrefix returns up to n distinct inputs starting with prefix,
// most recently used first. Used for history-based completion.
func (s *Store) SearchPrefix(prefix string, n int) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT input, MAX(executed_at) AS last_used FROM entries
		 WHERE input LIKE ? || '%'
		 GROUP BY input ORDER BY last_used DESC LIMIT ?`, prefix, n)
	if err != nil {
		return nil, fmt.Errorf("search history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var inputs []string
	for rows.Next() {
		var input, lastUsed string
		if err := rows.Scan(&input, &lastUsed); err != nil {
			return nil, fmt.Errorf("scan history input: %w", err)
		}
		inputs = append(inputs, input)
	}
	return inputs, rows.Err()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var executedAt string
		if err := rows.Scan(&e.ID, &e.Input, &e.Succeeded, &e.Result, &e.Error, &executedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, executedAt)
		if err != nil {
			return nil, fmt.Errorf("parse history timestamp: %w", err)
		}
		e.ExecutedAt = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
