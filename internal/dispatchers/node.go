// Package dispatchers implements the command-tree parsing and dispatch
// engine: a tree of literal and typed-argument nodes, a backtracking
// parser producing inspectable results, an executor with fork/redirect
// support, and usage, completion and ambiguity reporting over the tree.
package dispatchers

import (
	"context"
	"sort"
	"strings"

	"github.com/stanza-tools/stanza/internal/cmderr"
	"github.com/stanza-tools/stanza/internal/reader"
	"github.com/stanza-tools/stanza/internal/suggest"
)

// Separator is the single character that separates tokens.
const Separator = ' '

// Command is the unit of executable behavior attached to a node. Its
// numeric result is caller-defined, commonly 1 for success.
type Command func(c *CommandContext) (int, error)

// Requirement gates a node: parsing prunes children whose requirement
// rejects the current source, and restricted usage listings hide them.
type Requirement func(source any) bool

// RedirectModifier derives the sources a redirected or forked subtree
// executes against. A fork runs the subtree once per returned source.
type RedirectModifier func(c *CommandContext) ([]any, error)

// SingleRedirectModifier is the one-source form used by plain redirects.
type SingleRedirectModifier func(c *CommandContext) (any, error)

// SuggestionProvider overrides an argument node's own type suggestions.
type SuggestionProvider func(ctx context.Context, c *CommandContext, b *suggest.Builder) (suggest.Suggestions, error)

// NodeKind tags the three node variants.
type NodeKind int

const (
	KindRoot NodeKind = iota
	KindLiteral
	KindArgument
)

// Node is one vertex of the command tree. Literal nodes match their name
// as an exact token; argument nodes match whatever their ArgumentType
// consumes and record the parsed value under their name. Children are
// keyed by name within each kind, so a literal and an argument may share
// a name without colliding.
type Node struct {
	kind        NodeKind
	name        string
	argType     ArgumentType
	suggestions SuggestionProvider

	literals  map[string]*Node
	arguments map[string]*Node

	command     Command
	requirement Requirement
	redirect    *Node
	modifier    RedirectModifier
	forks       bool
}

func newNode(kind NodeKind, name string) *Node {
	return &Node{
		kind:      kind,
		name:      name,
		literals:  make(map[string]*Node),
		arguments: make(map[string]*Node),
	}
}

func (n *Node) Kind() NodeKind             { return n.kind }
func (n *Node) Name() string               { return n.name }
func (n *Node) Type() ArgumentType         { return n.argType }
func (n *Node) Command() Command           { return n.command }
func (n *Node) RedirectNode() *Node        { return n.redirect }
func (n *Node) Modifier() RedirectModifier { return n.modifier }
func (n *Node) IsFork() bool               { return n.forks }

// CanUse reports whether the source passes the node's requirement, if any.
func (n *Node) CanUse(source any) bool {
	return n.requirement == nil || n.requirement(source)
}

// Child returns the named child, preferring a literal over an argument
// when both exist under the name.
func (n *Node) Child(name string) *Node {
	if c, ok := n.literals[name]; ok {
		return c
	}
	return n.arguments[name]
}

// Children returns all children in deterministic order: literals before
// arguments, lexically within each kind.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.literals)+len(n.arguments))
	for _, m := range []map[string]*Node{n.literals, n.arguments} {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, m[name])
		}
	}
	return out
}

// AddChild merges a node into the children. An existing child of the
// same kind and name absorbs the incoming subtree: grandchildren are
// merged recursively and an incoming command payload replaces the old
// one. Returns the node now present in the tree, which is the existing
// child when a merge happened.
func (n *Node) AddChild(child *Node) *Node {
	if child.kind == KindRoot {
		panic("dispatchers: cannot add a root node as a child")
	}
	if n.kind == KindRoot && child.kind != KindLiteral {
		panic("dispatchers: root may only hold literal children")
	}

	target := n.literals
	if child.kind == KindArgument {
		target = n.arguments
	}
	if existing, ok := target[child.name]; ok {
		if child.command != nil {
			existing.command = child.command
		}
		for _, gc := range child.Children() {
			existing.AddChild(gc)
		}
		return existing
	}
	target[child.name] = child
	return child
}

// RelevantNodes returns the children worth attempting at the reader's
// position. When literal children exist, the next token is scanned once:
// an exact literal match short-circuits to just that child, anything
// else falls through to the argument children, whose grammars are opaque
// and must each be attempted.
func (n *Node) RelevantNodes(rd *reader.Reader) []*Node {
	if len(n.literals) > 0 {
		cursor := rd.Cursor()
		end := cursor
		input := rd.Input()
		for end < len(input) && input[end] != Separator {
			end++
		}
		if lit, ok := n.literals[input[cursor:end]]; ok {
			return []*Node{lit}
		}
	}
	names := make([]string, 0, len(n.arguments))
	for name := range n.arguments {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Node, len(names))
	for i, name := range names {
		out[i] = n.arguments[name]
	}
	return out
}

// UsageText renders the node for usage listings.
func (n *Node) UsageText() string {
	switch n.kind {
	case KindLiteral:
		return n.name
	case KindArgument:
		return "<" + n.name + ">"
	default:
		return ""
	}
}

// Examples returns canonical inputs the node would accept, used only for
// ambiguity scanning.
func (n *Node) Examples() []string {
	switch n.kind {
	case KindLiteral:
		return []string{n.name}
	case KindArgument:
		return n.argType.Examples()
	default:
		return nil
	}
}

// matchLiteral consumes the literal token if it matches at the cursor
// and stops at a separator or end of input, returning the end offset.
// Returns -1 without advancing on a mismatch.
func (n *Node) matchLiteral(rd *reader.Reader) int {
	start := rd.Cursor()
	if rd.CanRead(len(n.name)) && rd.Input()[start:start+len(n.name)] == n.name {
		end := start + len(n.name)
		rd.SetCursor(end)
		if !rd.CanReadOne() || rd.Peek() == Separator {
			return end
		}
		rd.SetCursor(start)
	}
	return -1
}

// parseInto consumes this node's portion of the input and records the
// match (and parsed value, for arguments) on the builder.
func (n *Node) parseInto(rd *reader.Reader, b *ContextBuilder) error {
	switch n.kind {
	case KindLiteral:
		start := rd.Cursor()
		end := n.matchLiteral(rd)
		if end < 0 {
			return cmderr.LiteralIncorrect(rd.Input(), start, n.name)
		}
		b.WithNode(n, suggest.Between(start, end))
		return nil
	case KindArgument:
		start := rd.Cursor()
		value, err := n.argType.Parse(rd)
		if err != nil {
			return err
		}
		parsed := ParsedArgument{Range: suggest.Between(start, rd.Cursor()), Value: value}
		b.WithArgument(n.name, parsed)
		b.WithNode(n, parsed.Range)
		return nil
	default:
		return nil
	}
}

// IsValidInput reports whether the node alone would accept the input as
// a complete token. Used by ambiguity scanning, never by the parser.
func (n *Node) IsValidInput(input string) bool {
	switch n.kind {
	case KindLiteral:
		return n.matchLiteral(reader.New(input)) > -1
	case KindArgument:
		rd := reader.New(input)
		if _, err := n.argType.Parse(rd); err != nil {
			return false
		}
		return !rd.CanReadOne() || rd.Peek() == Separator
	default:
		return false
	}
}

// ListSuggestions asks the node for completions of the builder's partial
// token. Argument nodes defer to their provider override when set,
// otherwise to their type.
func (n *Node) ListSuggestions(ctx context.Context, c *CommandContext, b *suggest.Builder) (suggest.Suggestions, error) {
	switch n.kind {
	case KindLiteral:
		if strings.HasPrefix(strings.ToLower(n.name), b.RemainingLower()) {
			b.Suggest(n.name)
		}
		return b.Build(), nil
	case KindArgument:
		if n.suggestions != nil {
			return n.suggestions(ctx, c, b)
		}
		return n.argType.ListSuggestions(ctx, c, b)
	default:
		return suggest.Empty(), nil
	}
}
