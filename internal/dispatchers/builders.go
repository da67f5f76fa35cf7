package dispatchers

// Node construction is fluent on the nodes themselves: Literal and
// Argument create a node, Then/Executes/Requires/Redirect/Fork attach
// behavior and return the node for chaining.

// Root creates an empty root node. Most callers want New, which wraps
// one in a Dispatcher.
func Root() *Node {
	return newNode(KindRoot, "")
}

// Literal creates a node matching the given exact token.
func Literal(name string) *Node {
	return newNode(KindLiteral, name)
}

// Argument creates a node matching via the given type, recording the
// parsed value under name.
func Argument(name string, t ArgumentType) *Node {
	n := newNode(KindArgument, name)
	n.argType = t
	return n
}

// Then adds children, merging per AddChild semantics.
func (n *Node) Then(children ...*Node) *Node {
	if n.redirect != nil {
		panic("dispatchers: cannot add children to a redirected node")
	}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// Executes attaches the command payload.
func (n *Node) Executes(cmd Command) *Node {
	n.command = cmd
	return n
}

// Requires attaches the access requirement.
func (n *Node) Requires(req Requirement) *Node {
	n.requirement = req
	return n
}

// Redirect makes parsing continue at target instead of this node's own
// children, keeping the current source.
func (n *Node) Redirect(target *Node) *Node {
	return n.Forward(target, nil, false)
}

// RedirectModified is Redirect with a single derived source.
func (n *Node) RedirectModified(target *Node, m SingleRedirectModifier) *Node {
	if m == nil {
		return n.Forward(target, nil, false)
	}
	return n.Forward(target, func(c *CommandContext) ([]any, error) {
		source, err := m(c)
		if err != nil {
			return nil, err
		}
		return []any{source}, nil
	}, false)
}

// Fork makes execution branch: the modifier derives any number of
// sources and the target subtree runs once per source.
func (n *Node) Fork(target *Node, m RedirectModifier) *Node {
	return n.Forward(target, m, true)
}

// Forward is the general redirect form behind Redirect and Fork.
func (n *Node) Forward(target *Node, m RedirectModifier, forks bool) *Node {
	if len(n.literals) > 0 || len(n.arguments) > 0 {
		panic("dispatchers: cannot redirect a node with children")
	}
	n.redirect = target
	n.modifier = m
	n.forks = forks
	return n
}

// Suggests overrides the argument type's own suggestions.
func (n *Node) Suggests(p SuggestionProvider) *Node {
	if n.kind != KindArgument {
		panic("dispatchers: suggestion providers attach to argument nodes")
	}
	n.suggestions = p
	return n
}
