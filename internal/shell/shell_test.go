package shell

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stanza-tools/stanza/internal/testutil"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	env := &Env{User: "you", Users: []string{"alice", "bob"}}
	return newModel(BuildTree(), env, testutil.NewTestHistory(t))
}

func TestRunAppendsOutputAndResult(t *testing.T) {
	m := newTestModel(t)

	m.run("calc add 2 3")
	require.Contains(t, m.lines, "= 5")
	require.Contains(t, m.lines[len(m.lines)-1], "ok (5)")

	entries, err := m.store.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "calc add 2 3", entries[0].Input)
	require.True(t, entries[0].Succeeded)
	require.Equal(t, 5, entries[0].Result)
}

func TestRunRecordsFailure(t *testing.T) {
	m := newTestModel(t)

	m.run("pick 150")
	require.Contains(t, m.lines[len(m.lines)-1], "Integer must not be more than 100")

	entries, err := m.store.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.False(t, entries[0].Succeeded)
}

func TestTabCompletionAppliesFirstCandidate(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("as ")
	m.refreshSuggestions()
	require.False(t, m.suggestions.IsEmpty())

	m.applyCompletion()
	require.Equal(t, "as alice", m.input.Value())
}

func TestRefreshSuggestionsEmptyInput(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("   ")
	m.refreshSuggestions()
	require.True(t, m.suggestions.IsEmpty())
}

func TestHistoryRecall(t *testing.T) {
	m := newTestModel(t)

	m.run("echo one")
	m.run("echo two")

	m.input.SetValue("ech")
	m.recallOlder()
	require.Equal(t, "echo two", m.input.Value())
	m.recallOlder()
	require.Equal(t, "echo one", m.input.Value())
	m.recallNewer()
	require.Equal(t, "echo two", m.input.Value())
	m.recallNewer()
	require.Equal(t, "ech", m.input.Value(), "leaving recall restores the typed input")
}
