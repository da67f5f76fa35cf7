package dispatchers

import "sort"

// AmbiguityFunc receives one report per ordered pair of sibling nodes
// whose grammars overlap: an example input accepted by child is also
// valid input for sibling.
type AmbiguityFunc func(parent, child, sibling *Node, examples []string)

// FindAmbiguities scans the whole tree. The scan is advisory and
// example-driven: it can both under- and over-report, and it never
// blocks registration or execution.
func (d *Dispatcher) FindAmbiguities(fn AmbiguityFunc) {
	d.root.FindAmbiguities(fn)
}

// FindAmbiguities scans the subtree under n, reporting collisions
// between each ordered pair of distinct siblings.
func (n *Node) FindAmbiguities(fn AmbiguityFunc) {
	children := n.Children()
	for _, child := range children {
		for _, sibling := range children {
			if child == sibling {
				continue
			}
			var matches []string
			for _, input := range child.Examples() {
				if sibling.IsValidInput(input) {
					matches = append(matches, input)
				}
			}
			if len(matches) > 0 {
				sort.Strings(matches)
				fn(n, child, sibling, matches)
			}
		}
		child.FindAmbiguities(fn)
	}
}
