package dispatchers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stanza-tools/stanza/internal/cmderr"
)

func TestExecuteCommandResult(t *testing.T) {
	d := New()
	d.Register(Literal("foo").Then(
		Argument("amount", IntegerBetween(0, 100)).Executes(func(c *CommandContext) (int, error) {
			return c.Int("amount")
		}),
	))

	result, err := d.ExecuteString("foo 50", "src")
	require.NoError(t, err)
	require.Equal(t, 50, result)
}

func TestExecuteRangeError(t *testing.T) {
	d := New()
	d.Register(Literal("foo").Then(
		Argument("amount", IntegerBetween(0, 100)).Executes(func(c *CommandContext) (int, error) {
			return c.Int("amount")
		}),
	))

	_, err := d.ExecuteString("foo 150", "src")
	require.Error(t, err)
	serr := &cmderr.Error{}
	require.ErrorAs(t, err, &serr)
	require.Equal(t, cmderr.KindIntegerTooHigh, serr.Kind)
	require.Equal(t, 7, serr.Cursor)
}

func TestExecuteUnknownCommand(t *testing.T) {
	d := New()
	d.Register(Literal("foo").Executes(one))

	_, err := d.ExecuteString("bar", "src")
	serr := &cmderr.Error{}
	require.ErrorAs(t, err, &serr)
	require.Equal(t, cmderr.KindUnknownCommand, serr.Kind)
	require.Equal(t, 0, serr.Cursor)
}

func TestExecuteEmptyInput(t *testing.T) {
	d := New()
	d.Register(Literal("foo").Executes(one))

	_, err := d.ExecuteString("", "src")
	serr := &cmderr.Error{}
	require.ErrorAs(t, err, &serr)
	require.Equal(t, cmderr.KindUnknownCommand, serr.Kind)
}

func TestExecuteTrailingInput(t *testing.T) {
	d := New()
	d.Register(Literal("foo").Executes(one))

	_, err := d.ExecuteString("foo extra", "src")
	serr := &cmderr.Error{}
	require.ErrorAs(t, err, &serr)
	require.Equal(t, cmderr.KindUnknownArgument, serr.Kind)
	require.Equal(t, 4, serr.Cursor)
}

func TestExecuteSubcommandWithoutPayloadFails(t *testing.T) {
	d := New()
	d.Register(Literal("config").Then(Literal("get").Executes(one)))

	_, err := d.ExecuteString("config", "src")
	serr := &cmderr.Error{}
	require.ErrorAs(t, err, &serr)
	require.Equal(t, cmderr.KindUnknownCommand, serr.Kind)
}

func TestExecuteCommandErrorPropagates(t *testing.T) {
	boom := errors.New("payload failed")
	d := New()
	d.Register(Literal("fail").Executes(func(c *CommandContext) (int, error) {
		return 0, boom
	}))

	_, err := d.ExecuteString("fail", "src")
	require.ErrorIs(t, err, boom)
}

func TestExecuteSimpleRedirectChain(t *testing.T) {
	d := New()
	calls := 0
	d.Register(Literal("foo").Executes(func(c *CommandContext) (int, error) {
		calls++
		return 7, nil
	}).Redirect(d.RootNode()))

	result, err := d.ExecuteString("foo foo foo", "src")
	require.NoError(t, err)
	require.Equal(t, 7, result, "non-fork redirect returns the command's own result")
	require.Equal(t, 1, calls, "only the deepest context executes")
}

func TestExecuteRedirectModifierSwapsSource(t *testing.T) {
	d := New()
	var got any
	d.Register(Literal("run").Executes(func(c *CommandContext) (int, error) {
		got = c.Source
		return 1, nil
	}))
	d.Register(Literal("as").RedirectModified(d.RootNode(), func(c *CommandContext) (any, error) {
		return "impersonated", nil
	}))

	result, err := d.ExecuteString("as run", "caller")
	require.NoError(t, err)
	require.Equal(t, 1, result)
	require.Equal(t, "impersonated", got)
}

func TestExecuteForkCountsSuccesses(t *testing.T) {
	d := New()
	d.Register(Literal("run").Executes(func(c *CommandContext) (int, error) {
		if c.Source == "bad" {
			return 0, errors.New("branch failure")
		}
		return 99, nil
	}))
	d.Register(Literal("spread").Fork(d.RootNode(), func(c *CommandContext) ([]any, error) {
		return []any{"a", "bad", "b"}, nil
	}))

	var notified int
	var failures int
	d.SetResultConsumer(func(c *CommandContext, success bool, result int) {
		notified++
		if !success {
			failures++
			require.Equal(t, 0, result)
		}
	})

	result, err := d.ExecuteString("spread run", "src")
	require.NoError(t, err, "branch failures never reach the caller of a fork")
	require.Equal(t, 2, result, "fork returns the count of successful branches")
	require.Equal(t, 3, notified, "one callback per branch")
	require.Equal(t, 1, failures)
}

func TestExecuteForkModifierErrorIsSwallowed(t *testing.T) {
	d := New()
	d.Register(Literal("run").Executes(one))
	d.Register(Literal("split").Fork(d.RootNode(), func(c *CommandContext) ([]any, error) {
		return nil, errors.New("no sources")
	}))

	result, err := d.ExecuteString("split run", "src")
	require.NoError(t, err)
	require.Equal(t, 0, result)
}

func TestExecuteNonForkModifierErrorPropagates(t *testing.T) {
	boom := errors.New("cannot derive source")
	d := New()
	d.Register(Literal("run").Executes(one))
	d.Register(Literal("as").RedirectModified(d.RootNode(), func(c *CommandContext) (any, error) {
		return nil, boom
	}))

	_, err := d.ExecuteString("as run", "src")
	require.ErrorIs(t, err, boom)
}

func TestExecuteForkedSourcesReceiveOwnContext(t *testing.T) {
	d := New()
	var sources []any
	d.Register(Literal("who").Executes(func(c *CommandContext) (int, error) {
		sources = append(sources, c.Source)
		return 1, nil
	}))
	d.Register(Literal("all").Fork(d.RootNode(), func(c *CommandContext) ([]any, error) {
		return []any{"p1", "p2"}, nil
	}))

	result, err := d.ExecuteString("all who", "src")
	require.NoError(t, err)
	require.Equal(t, 2, result)
	require.Equal(t, []any{"p1", "p2"}, sources)
}

func TestResultConsumerDefaultIsSilent(t *testing.T) {
	d := New()
	d.Register(Literal("foo").Executes(one))

	result, err := d.ExecuteString("foo", "src")
	require.NoError(t, err)
	require.Equal(t, 1, result)
}
