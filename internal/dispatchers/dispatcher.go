package dispatchers

// ResultConsumer is notified once per completed execution branch: the
// branch's context, whether it succeeded, and its numeric result (0 on
// failure). It must not fail observably.
type ResultConsumer func(c *CommandContext, success bool, result int)

// Dispatcher owns one command tree for its lifetime and is the facade
// over registration, parsing, execution, usage, completion and ambiguity
// scanning. Registration is not safe against concurrent reads; finish
// registering before parsing or executing concurrently.
type Dispatcher struct {
	root     *Node
	consumer ResultConsumer
}

// New creates a dispatcher with an empty root.
func New() *Dispatcher {
	return &Dispatcher{root: Root()}
}

// NewWithRoot creates a dispatcher over an existing tree.
func NewWithRoot(root *Node) *Dispatcher {
	return &Dispatcher{root: root}
}

// RootNode returns the tree root.
func (d *Dispatcher) RootNode() *Node { return d.root }

// Register merges a literal command into the tree and returns the node
// now in place, which is the pre-existing child when the literal was
// already registered.
func (d *Dispatcher) Register(node *Node) *Node {
	return d.root.AddChild(node)
}

// SetResultConsumer replaces the per-branch completion callback. Nil
// (the default) means no notifications.
func (d *Dispatcher) SetResultConsumer(consumer ResultConsumer) {
	d.consumer = consumer
}

func (d *Dispatcher) notify(c *CommandContext, success bool, result int) {
	if d.consumer != nil {
		d.consumer(c, success, result)
	}
}

// Path serializes a node's position as the node names from the root,
// following the first structural path found. Redirects are not edges
// for this purpose.
func (d *Dispatcher) Path(target *Node) []string {
	var found []string
	var walk func(node *Node, path []string) bool
	walk = func(node *Node, path []string) bool {
		if node == target {
			found = append([]string(nil), path...)
			return true
		}
		for _, child := range node.Children() {
			if walk(child, append(path, child.Name())) {
				return true
			}
		}
		return false
	}
	walk(d.root, nil)
	return found
}

// FindNode resolves a path produced by Path back to its node, or nil if
// the tree no longer contains it.
func (d *Dispatcher) FindNode(path []string) *Node {
	node := d.root
	for _, name := range path {
		node = node.Child(name)
		if node == nil {
			return nil
		}
	}
	return node
}
