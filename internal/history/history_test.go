package history_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stanza-tools/stanza/internal/history"
	"github.com/stanza-tools/stanza/internal/testutil"
)

func TestAppendAndRecent(t *testing.T) {
	store := testutil.NewTestHistory(t)

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	for i, input := range []string{"echo one", "calc add 1 2", "echo two"} {
		_, err := store.Append(history.Entry{
			Input:      input,
			Succeeded:  true,
			Result:     1,
			ExecutedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "echo two", entries[0].Input)
	require.Equal(t, "calc add 1 2", entries[1].Input)
}

func TestAppendGeneratesID(t *testing.T) {
	store := testutil.NewTestHistory(t)

	id, err := store.Append(history.Entry{Input: "echo hi", Succeeded: true, Result: 1})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	other, err := store.Append(history.Entry{Input: "echo hi", Succeeded: true, Result: 1})
	require.NoError(t, err)
	require.NotEqual(t, id, other)
}

func TestAppendRecordsFailure(t *testing.T) {
	store := testutil.NewTestHistory(t)

	_, err := store.Append(history.Entry{
		Input:     "calc add nope 2",
		Succeeded: false,
		Error:     "Expected integer at position 9: calc add <--[HERE]",
	})
	require.NoError(t, err)

	entries, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.False(t, entries[0].Succeeded)
	require.Contains(t, entries[0].Error, "Expected integer")
}

func TestSearchPrefix(t *testing.T) {
	store := testutil.NewTestHistory(t)

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	inputs := []string{"echo one", "echo two", "calc add 1 2", "echo one"}
	for i, input := range inputs {
		_, err := store.Append(history.Entry{
			Input:      input,
			Succeeded:  true,
			Result:     1,
			ExecutedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	got, err := store.SearchPrefix("echo", 10)
	require.NoError(t, err)
	require.Equal(t, []string{"echo one", "echo two"}, got, "distinct inputs, most recent first")

	got, err = store.SearchPrefix("calc", 10)
	require.NoError(t, err)
	require.Equal(t, []string{"calc add 1 2"}, got)

	got, err = store.SearchPrefix("nope", 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "history.db")
	store, err := history.Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.Append(history.Entry{Input: "echo hi", Succeeded: true, Result: 1})
	require.NoError(t, err)
}
