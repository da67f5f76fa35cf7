package dispatchers

import "github.com/stanza-tools/stanza/internal/cmderr"

// ExecuteString parses and executes in one step.
func (d *Dispatcher) ExecuteString(input string, source any) (int, error) {
	return d.Execute(d.ParseString(input, source))
}

// Execute walks the parsed context chain and runs what it finds. A fork
// returns the count of branches that succeeded; a plain command or
// non-fork redirect returns the command's own result. Per-branch
// outcomes are reported to the result consumer; only a non-forked
// failure is returned as an error.
func (d *Dispatcher) Execute(parse ParseResults) (int, error) {
	if parse.Reader.CanReadOne() {
		switch {
		case len(parse.Errors) == 1:
			for _, err := range parse.Errors {
				return 0, err
			}
		case parse.Context.Range().IsEmpty():
			return 0, cmderr.UnknownCommand(parse.Reader.Input(), parse.Reader.Cursor())
		}
		return 0, cmderr.UnknownArgument(parse.Reader.Input(), parse.Reader.Cursor())
	}

	result := 0
	successfulForks := 0
	forked := false
	foundCommand := false
	input := parse.Reader.Input()
	original := parse.Context.Build(input)
	contexts := []*CommandContext{original}
	var next []*CommandContext

	for contexts != nil {
		for _, ctx := range contexts {
			child := ctx.Child
			if child != nil {
				forked = forked || ctx.Forks
				if !child.HasNodes() {
					continue
				}
				foundCommand = true
				modifier := ctx.Modifier
				if modifier == nil {
					next = append(next, child.CopyFor(ctx.Source))
					continue
				}
				sources, err := modifier(ctx)
				if err != nil {
					d.notify(ctx, false, 0)
					if !forked {
						return 0, err
					}
					continue
				}
				for _, source := range sources {
					next = append(next, child.CopyFor(source))
				}
			} else if ctx.Cmd != nil {
				foundCommand = true
				value, err := ctx.Cmd(ctx)
				if err != nil {
					d.notify(ctx, false, 0)
					if !forked {
						return 0, err
					}
					continue
				}
				result += value
				d.notify(ctx, true, value)
				successfulForks++
			}
		}
		contexts = next
		next = nil
	}

	if !foundCommand {
		d.notify(original, false, 0)
		return 0, cmderr.UnknownCommand(parse.Reader.Input(), parse.Reader.Cursor())
	}
	if forked {
		return successfulForks, nil
	}
	return result, nil
}
