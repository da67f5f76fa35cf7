package shell

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stanza-tools/stanza/internal/cmderr"
)

func testEnv(out *bytes.Buffer) *Env {
	return &Env{
		User:  "you",
		Users: []string{"alice", "bob", "carol"},
		Out:   out,
	}
}

func TestEchoPrintsText(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()

	result, err := d.ExecuteString("echo hello out there", testEnv(&out))
	require.NoError(t, err)
	require.Equal(t, 1, result)
	require.Equal(t, "hello out there\n", out.String())
}

func TestCalcReturnsComputedValue(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()

	result, err := d.ExecuteString("calc add 2 3", testEnv(&out))
	require.NoError(t, err)
	require.Equal(t, 5, result)
	require.Equal(t, "= 5\n", out.String())

	out.Reset()
	result, err = d.ExecuteString("calc mul 4 -2", testEnv(&out))
	require.NoError(t, err)
	require.Equal(t, -8, result)
}

func TestPickEnforcesRange(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()

	_, err := d.ExecuteString("pick 150", testEnv(&out))
	var cerr *cmderr.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, cmderr.KindIntegerTooHigh, cerr.Kind)
}

func TestSayQuotedPhrase(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()

	result, err := d.ExecuteString(`say "hi there"`, testEnv(&out))
	require.NoError(t, err)
	require.Equal(t, 1, result)
	require.Equal(t, "you says: hi there\n", out.String())
}

func TestAsRebasesUser(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()

	result, err := d.ExecuteString(`as alice say "good morning"`, testEnv(&out))
	require.NoError(t, err)
	require.Equal(t, 1, result)
	require.Equal(t, "alice says: good morning\n", out.String())
}

func TestAllForksOverUsers(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()

	result, err := d.ExecuteString("all say hello", testEnv(&out))
	require.NoError(t, err)
	require.Equal(t, 3, result, "fork result counts successful branches")
	require.Equal(t, "alice says: hello\nbob says: hello\ncarol says: hello\n", out.String())
}

func TestRepeatRedirectChain(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()

	result, err := d.ExecuteString("repeat repeat echo hi", testEnv(&out))
	require.NoError(t, err)
	require.Equal(t, 1, result)
	require.Equal(t, "hi\n", out.String())
}

func TestShutdownRequiresAdmin(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()

	_, err := d.ExecuteString("shutdown", testEnv(&out))
	var cerr *cmderr.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, cmderr.KindUnknownCommand, cerr.Kind)

	env := testEnv(&out)
	env.Admin = true
	result, err := d.ExecuteString("shutdown", env)
	require.NoError(t, err)
	require.Equal(t, 1, result)
	require.Equal(t, "shutting down\n", out.String())
}

func TestAsSuggestsUsers(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()
	env := testEnv(&out)

	parse := d.ParseString("as ", env)
	sugg, err := d.CompletionSuggestions(context.Background(), parse)
	require.NoError(t, err)

	texts := make([]string, 0, len(sugg.Values))
	for _, s := range sugg.Values {
		texts = append(texts, s.Text)
	}
	require.Equal(t, []string{"alice", "bob", "carol"}, texts)
	require.Equal(t, 3, sugg.Range.Start)
}

func TestAsSuggestsFiltersByPrefix(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()

	parse := d.ParseString("as AL", testEnv(&out))
	sugg, err := d.CompletionSuggestions(context.Background(), parse)
	require.NoError(t, err)
	require.Len(t, sugg.Values, 1)
	require.Equal(t, "alice", sugg.Values[0].Text)
}

func TestHelpListsCommands(t *testing.T) {
	var out bytes.Buffer
	d := BuildTree()

	result, err := d.ExecuteString("help", testEnv(&out))
	require.NoError(t, err)
	require.Positive(t, result)
	require.Contains(t, out.String(), "echo <text>")
	require.Contains(t, out.String(), "calc (add|sub|mul)")
	require.NotContains(t, out.String(), "shutdown", "restricted commands hidden from non-admins")
}
