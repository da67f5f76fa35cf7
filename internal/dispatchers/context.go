package dispatchers

import (
	"errors"
	"fmt"

	"github.com/stanza-tools/stanza/internal/suggest"
)

// ParsedArgument is one argument value with the input span it consumed.
type ParsedArgument struct {
	Range suggest.Range
	Value any
}

// ParsedNode is one matched node with the input span it consumed.
type ParsedNode struct {
	Node  *Node
	Range suggest.Range
}

// CommandContext is the frozen result of one parse path: the matched
// nodes in order, the parsed argument values, the command payload
// reached, and the fork/redirect wiring toward any child context. It is
// read-only once built.
type CommandContext struct {
	Source    any
	Input     string
	Arguments map[string]ParsedArgument
	Cmd       Command
	RootNode  *Node
	Nodes     []ParsedNode
	Range     suggest.Range
	Child     *CommandContext
	Modifier  RedirectModifier
	Forks     bool
}

// CopyFor returns the context rebased onto a different source, sharing
// everything else. Returns the receiver when the source is unchanged.
func (c *CommandContext) CopyFor(source any) *CommandContext {
	if c.Source == source {
		return c
	}
	copied := *c
	copied.Source = source
	return &copied
}

// LastChild follows the redirect chain to the deepest context.
func (c *CommandContext) LastChild() *CommandContext {
	result := c
	for result.Child != nil {
		result = result.Child
	}
	return result
}

// HasNodes reports whether any node matched on this level.
func (c *CommandContext) HasNodes() bool { return len(c.Nodes) > 0 }

// Argument returns the raw parsed argument by name.
func (c *CommandContext) Argument(name string) (ParsedArgument, bool) {
	a, ok := c.Arguments[name]
	return a, ok
}

func argumentAs[T any](c *CommandContext, name string) (T, error) {
	var zero T
	a, ok := c.Arguments[name]
	if !ok {
		return zero, fmt.Errorf("no argument %q in command context", name)
	}
	v, ok := a.Value.(T)
	if !ok {
		return zero, fmt.Errorf("argument %q is %T, not %T", name, a.Value, zero)
	}
	return v, nil
}

// Int returns a parsed integer argument by name.
func (c *CommandContext) Int(name string) (int, error) { return argumentAs[int](c, name) }

// Float64 returns a parsed float argument by name.
func (c *CommandContext) Float64(name string) (float64, error) { return argumentAs[float64](c, name) }

// Bool returns a parsed bool argument by name.
func (c *CommandContext) Bool(name string) (bool, error) { return argumentAs[bool](c, name) }

// Str returns a parsed string argument by name.
func (c *CommandContext) Str(name string) (string, error) { return argumentAs[string](c, name) }

// ContextBuilder accumulates one parse attempt. The parser copies it
// when backtracking across siblings and chains a child builder at every
// redirect boundary; Build freezes the whole chain.
type ContextBuilder struct {
	arguments  map[string]ParsedArgument
	rootNode   *Node
	nodes      []ParsedNode
	dispatcher *Dispatcher
	source     any
	command    Command
	child      *ContextBuilder
	rng        suggest.Range
	modifier   RedirectModifier
	forks      bool
}

func NewContextBuilder(d *Dispatcher, source any, rootNode *Node, start int) *ContextBuilder {
	return &ContextBuilder{
		arguments:  make(map[string]ParsedArgument),
		rootNode:   rootNode,
		dispatcher: d,
		source:     source,
		rng:        suggest.At(start),
	}
}

func (b *ContextBuilder) Source() any           { return b.source }
func (b *ContextBuilder) RootNode() *Node       { return b.rootNode }
func (b *ContextBuilder) Range() suggest.Range  { return b.rng }
func (b *ContextBuilder) Nodes() []ParsedNode   { return b.nodes }
func (b *ContextBuilder) Child() *ContextBuilder { return b.child }

func (b *ContextBuilder) WithSource(source any) *ContextBuilder {
	b.source = source
	return b
}

func (b *ContextBuilder) WithArgument(name string, arg ParsedArgument) *ContextBuilder {
	b.arguments[name] = arg
	return b
}

func (b *ContextBuilder) WithCommand(cmd Command) *ContextBuilder {
	b.command = cmd
	return b
}

// WithNode records a matched node, extends the consumed range and picks
// up the node's fork/redirect wiring.
func (b *ContextBuilder) WithNode(node *Node, r suggest.Range) *ContextBuilder {
	b.nodes = append(b.nodes, ParsedNode{Node: node, Range: r})
	b.rng = suggest.Encompassing(b.rng, r)
	b.modifier = node.Modifier()
	b.forks = node.IsFork()
	return b
}

// WithChild attaches the builder for the subtree past a redirect.
func (b *ContextBuilder) WithChild(child *ContextBuilder) *ContextBuilder {
	b.child = child
	return b
}

// Copy clones the builder for a sibling attempt. Node and argument
// records are copied; the child link is shared, matching how attempts
// diverge only below the copy point.
func (b *ContextBuilder) Copy() *ContextBuilder {
	copied := &ContextBuilder{
		arguments:  make(map[string]ParsedArgument, len(b.arguments)),
		rootNode:   b.rootNode,
		nodes:      append([]ParsedNode(nil), b.nodes...),
		dispatcher: b.dispatcher,
		source:     b.source,
		command:    b.command,
		child:      b.child,
		rng:        b.rng,
		modifier:   b.modifier,
		forks:      b.forks,
	}
	for k, v := range b.arguments {
		copied.arguments[k] = v
	}
	return copied
}

// LastChild follows the redirect chain to the deepest builder.
func (b *ContextBuilder) LastChild() *ContextBuilder {
	result := b
	for result.child != nil {
		result = result.child
	}
	return result
}

// Build freezes the builder chain into immutable contexts against the
// given input.
func (b *ContextBuilder) Build(input string) *CommandContext {
	var child *CommandContext
	if b.child != nil {
		child = b.child.Build(input)
	}
	args := make(map[string]ParsedArgument, len(b.arguments))
	for k, v := range b.arguments {
		args[k] = v
	}
	return &CommandContext{
		Source:    b.source,
		Input:     input,
		Arguments: args,
		Cmd:       b.command,
		RootNode:  b.rootNode,
		Nodes:     append([]ParsedNode(nil), b.nodes...),
		Range:     b.rng,
		Child:     child,
		Modifier:  b.modifier,
		Forks:     b.forks,
	}
}

// SuggestionContext is where completion should be computed: the deepest
// node fully matched before the cursor, and the offset the replacement
// should start at.
type SuggestionContext struct {
	Parent *Node
	Start  int
}

var errNodeBeforeCursor = errors.New("dispatchers: can't find node before cursor")

// FindSuggestionContext locates the node whose children should be asked
// for suggestions at the given cursor position.
func (b *ContextBuilder) FindSuggestionContext(cursor int) (SuggestionContext, error) {
	if b.rng.Start > cursor {
		return SuggestionContext{}, errNodeBeforeCursor
	}
	if b.rng.End < cursor {
		if b.child != nil {
			return b.child.FindSuggestionContext(cursor)
		}
		if len(b.nodes) > 0 {
			last := b.nodes[len(b.nodes)-1]
			return SuggestionContext{Parent: last.Node, Start: last.Range.End + 1}, nil
		}
		return SuggestionContext{Parent: b.rootNode, Start: b.rng.Start}, nil
	}
	prev := b.rootNode
	for _, node := range b.nodes {
		if node.Range.Start <= cursor && cursor <= node.Range.End {
			return SuggestionContext{Parent: prev, Start: node.Range.Start}, nil
		}
		prev = node.Node
	}
	if prev == nil {
		return SuggestionContext{}, errNodeBeforeCursor
	}
	return SuggestionContext{Parent: prev, Start: b.rng.Start}, nil
}
