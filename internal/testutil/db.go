package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/stanza-tools/stanza/internal/history"
)

// NewTestHistory creates a history store over an in-memory SQLite
// database, closed automatically when the test finishes.
func NewTestHistory(t *testing.T) *history.Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")

	store, err := history.NewWithDB(db)
	require.NoError(t, err, "failed to apply history schema")

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
