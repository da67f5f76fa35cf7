package shell

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/stanza-tools/stanza/internal/dispatchers"
	"github.com/stanza-tools/stanza/internal/suggest"
)

// Env is the source value built-in commands execute against. Forked and
// redirected subtrees receive derived copies with a different User.
type Env struct {
	User  string
	Users []string
	Admin bool
	Out   io.Writer
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format+"\n", args...)
}

func src(c *dispatchers.CommandContext) *Env {
	if e, ok := c.Source.(*Env); ok {
		return e
	}
	return &Env{Out: io.Discard}
}

// BuildTree registers the shell's built-in command set and returns the
// dispatcher. The set exercises every node feature: literals, typed
// arguments, requirements, redirects, forks and custom suggestions.
func BuildTree() *dispatchers.Dispatcher {
	d := dispatchers.New()
	root := d.RootNode()

	d.Register(dispatchers.Literal("echo").Then(
		dispatchers.Argument("text", dispatchers.Greedy()).
			Executes(func(c *dispatchers.CommandContext) (int, error) {
				text, err := c.Str("text")
				if err != nil {
					return 0, err
				}
				src(c).printf("%s", text)
				return 1, nil
			})))

	d.Register(dispatchers.Literal("say").Then(
		dispatchers.Argument("message", dispatchers.Phrase()).
			Executes(func(c *dispatchers.CommandContext) (int, error) {
				message, err := c.Str("message")
				if err != nil {
					return 0, err
				}
				e := src(c)
				e.printf("%s says: %s", e.User, message)
				return 1, nil
			})))

	d.Register(dispatchers.Literal("calc").Then(
		binaryOp("add", func(a, b int) int { return a + b }),
		binaryOp("sub", func(a, b int) int { return a - b }),
		binaryOp("mul", func(a, b int) int { return a * b }),
	))

	d.Register(dispatchers.Literal("pick").Then(
		dispatchers.Argument("n", dispatchers.IntegerBetween(1, 100)).
			Executes(func(c *dispatchers.CommandContext) (int, error) {
				n, err := c.Int("n")
				if err != nil {
					return 0, err
				}
				src(c).printf("picked %d", n)
				return n, nil
			})))

	d.Register(dispatchers.Literal("toggle").Then(
		dispatchers.Argument("enabled", dispatchers.Bool()).
			Executes(func(c *dispatchers.CommandContext) (int, error) {
				enabled, err := c.Bool("enabled")
				if err != nil {
					return 0, err
				}
				if enabled {
					src(c).printf("enabled")
				} else {
					src(c).printf("disabled")
				}
				return 1, nil
			})))

	d.Register(dispatchers.Literal("as").Then(
		dispatchers.Argument("user", dispatchers.Word()).
			Suggests(func(_ context.Context, c *dispatchers.CommandContext, b *suggest.Builder) (suggest.Suggestions, error) {
				for _, u := range src(c).Users {
					if strings.HasPrefix(strings.ToLower(u), b.RemainingLower()) {
						b.Suggest(u)
					}
				}
				return b.Build(), nil
			}).
			RedirectModified(root, func(c *dispatchers.CommandContext) (any, error) {
				user, err := c.Str("user")
				if err != nil {
					return nil, err
				}
				derived := *src(c)
				derived.User = user
				return &derived, nil
			})))

	d.Register(dispatchers.Literal("all").
		Fork(root, func(c *dispatchers.CommandContext) ([]any, error) {
			e := src(c)
			sources := make([]any, 0, len(e.Users))
			for _, u := range e.Users {
				derived := *e
				derived.User = u
				sources = append(sources, &derived)
			}
			return sources, nil
		}))

	d.Register(dispatchers.Literal("repeat").Redirect(root))

	d.Register(dispatchers.Literal("shutdown").
		Requires(func(source any) bool {
			e, ok := source.(*Env)
			return ok && e.Admin
		}).
		Executes(func(c *dispatchers.CommandContext) (int, error) {
			src(c).printf("shutting down")
			return 1, nil
		}))

	d.Register(dispatchers.Literal("help").
		Executes(func(c *dispatchers.CommandContext) (int, error) {
			usages := d.SmartUsage(d.RootNode(), c.Source)
			lines := make([]string, 0, len(usages))
			for _, u := range usages {
				lines = append(lines, u)
			}
			sort.Strings(lines)
			e := src(c)
			for _, line := range lines {
				e.printf("%s", line)
			}
			return len(lines), nil
		}))

	return d
}

func binaryOp(name string, op func(a, b int) int) *dispatchers.Node {
	return dispatchers.Literal(name).Then(
		dispatchers.Argument("a", dispatchers.Integer()).Then(
			dispatchers.Argument("b", dispatchers.Integer()).
				Executes(func(c *dispatchers.CommandContext) (int, error) {
					a, err := c.Int("a")
					if err != nil {
						return 0, err
					}
					b, err := c.Int("b")
					if err != nil {
						return 0, err
					}
					result := op(a, b)
					src(c).printf("= %d", result)
					return result, nil
				})))
}
