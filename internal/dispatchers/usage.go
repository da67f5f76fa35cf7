package dispatchers

import "strings"

const (
	usageOptionalOpen  = "["
	usageOptionalClose = "]"
	usageRequiredOpen  = "("
	usageRequiredClose = ")"
	usageOr            = "|"
	usageRedirect      = "->"
)

// AllUsage renders one line per reachable command under node, in child
// order. When restricted, children the source cannot use are hidden.
func (d *Dispatcher) AllUsage(node *Node, source any, restricted bool) []string {
	var result []string
	d.allUsage(node, source, &result, "", restricted)
	return result
}

func (d *Dispatcher) allUsage(node *Node, source any, result *[]string, prefix string, restricted bool) {
	if restricted && !node.CanUse(source) {
		return
	}
	if node.Command() != nil {
		*result = append(*result, prefix)
	}
	if target := node.RedirectNode(); target != nil {
		redirect := usageRedirect + " " + target.UsageText()
		if target == d.root {
			redirect = "..."
		}
		if prefix == "" {
			*result = append(*result, node.UsageText()+string(Separator)+redirect)
		} else {
			*result = append(*result, prefix+string(Separator)+redirect)
		}
		return
	}
	for _, child := range node.Children() {
		childPrefix := child.UsageText()
		if prefix != "" {
			childPrefix = prefix + string(Separator) + child.UsageText()
		}
		d.allUsage(child, source, result, childPrefix, restricted)
	}
}

// SmartUsage renders a compressed usage string per immediate child of
// node: subtrees collapse to "[optional]" when the parent already
// executes, and to "(a|b)" when several alternatives continue.
func (d *Dispatcher) SmartUsage(node *Node, source any) map[*Node]string {
	result := make(map[*Node]string)
	optional := node.Command() != nil
	for _, child := range node.Children() {
		if usage := d.smartUsage(child, source, optional, false); usage != "" {
			result[child] = usage
		}
	}
	return result
}

func (d *Dispatcher) smartUsage(node *Node, source any, optional, deep bool) string {
	if !node.CanUse(source) {
		return ""
	}

	self := node.UsageText()
	if optional {
		self = usageOptionalOpen + self + usageOptionalClose
	}
	childOptional := node.Command() != nil
	opener, closer := usageRequiredOpen, usageRequiredClose
	if childOptional {
		opener, closer = usageOptionalOpen, usageOptionalClose
	}

	if deep {
		return self
	}

	if target := node.RedirectNode(); target != nil {
		redirect := usageRedirect + " " + target.UsageText()
		if target == d.root {
			redirect = "..."
		}
		return self + string(Separator) + redirect
	}

	var children []*Node
	for _, child := range node.Children() {
		if child.CanUse(source) {
			children = append(children, child)
		}
	}

	switch {
	case len(children) == 1:
		if usage := d.smartUsage(children[0], source, childOptional, childOptional); usage != "" {
			return self + string(Separator) + usage
		}
	case len(children) > 1:
		seen := make(map[string]bool)
		var childUsage []string
		for _, child := range children {
			usage := d.smartUsage(child, source, childOptional, true)
			if usage != "" && !seen[usage] {
				seen[usage] = true
				childUsage = append(childUsage, usage)
			}
		}
		if len(childUsage) == 1 {
			usage := childUsage[0]
			if childOptional {
				usage = usageOptionalOpen + usage + usageOptionalClose
			}
			return self + string(Separator) + usage
		}
		if len(childUsage) > 1 {
			var b strings.Builder
			b.WriteString(opener)
			for i, child := range children {
				if i > 0 {
					b.WriteString(usageOr)
				}
				b.WriteString(child.UsageText())
			}
			b.WriteString(closer)
			return self + string(Separator) + b.String()
		}
	}

	return self
}
