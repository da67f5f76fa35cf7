package dispatchers

import (
	"sort"

	"github.com/stanza-tools/stanza/internal/cmderr"
	"github.com/stanza-tools/stanza/internal/reader"
)

// ParseResults is the always-produced outcome of a parse: the deepest
// context built (complete or best-partial), the reader left at the
// furthest consumed position, and every sibling attempt that failed,
// keyed by the node tried. A fully successful parse has no errors and
// nothing left to read.
type ParseResults struct {
	Context *ContextBuilder
	Reader  *reader.Reader
	Errors  map[*Node]*cmderr.Error
}

// ParseString parses the input for the given source. Failure is data
// inside the result, never a returned error.
func (d *Dispatcher) ParseString(input string, source any) ParseResults {
	return d.Parse(reader.New(input), source)
}

// Parse parses from the reader's current position for the given source.
func (d *Dispatcher) Parse(rd *reader.Reader, source any) ParseResults {
	ctx := NewContextBuilder(d, source, d.root, rd.Cursor())
	return d.parseNodes(d.root, rd, ctx)
}

func (d *Dispatcher) parseNodes(node *Node, originalReader *reader.Reader, ctxSoFar *ContextBuilder) ParseResults {
	source := ctxSoFar.Source()
	var errs map[*Node]*cmderr.Error
	var potentials []ParseResults
	cursor := originalReader.Cursor()

	for _, child := range node.RelevantNodes(originalReader) {
		if !child.CanUse(source) {
			continue
		}
		ctx := ctxSoFar.Copy()
		rd := *originalReader

		err := child.parseInto(&rd, ctx)
		if err == nil && rd.CanReadOne() && rd.Peek() != Separator {
			err = cmderr.ExpectedSeparator(rd.Input(), rd.Cursor())
		}
		if err != nil {
			if errs == nil {
				errs = make(map[*Node]*cmderr.Error)
			}
			if serr, ok := err.(*cmderr.Error); ok {
				errs[child] = serr
			} else {
				errs[child] = &cmderr.Error{Message: err.Error(), Input: rd.Input(), Cursor: cursor}
			}
			continue
		}

		ctx.WithCommand(child.Command())
		lookahead := 2
		if child.RedirectNode() != nil {
			lookahead = 1
		}
		if rd.CanRead(lookahead) {
			rd.Skip() // consume the separator
			if target := child.RedirectNode(); target != nil {
				childCtx := NewContextBuilder(d, source, target, rd.Cursor())
				parse := d.parseNodes(target, &rd, childCtx)
				ctx.WithChild(parse.Context)
				return ParseResults{Context: ctx, Reader: parse.Reader, Errors: parse.Errors}
			}
			potentials = append(potentials, d.parseNodes(child, &rd, ctx))
		} else {
			potentials = append(potentials, ParseResults{Context: ctx, Reader: &rd})
		}
	}

	if len(potentials) > 0 {
		if len(potentials) > 1 {
			// Prefer attempts that consumed everything, then attempts
			// that failed nowhere below.
			sort.SliceStable(potentials, func(i, j int) bool {
				a, b := potentials[i], potentials[j]
				aDone, bDone := !a.Reader.CanReadOne(), !b.Reader.CanReadOne()
				if aDone != bDone {
					return aDone
				}
				aClean, bClean := len(a.Errors) == 0, len(b.Errors) == 0
				if aClean != bClean {
					return aClean
				}
				return false
			})
		}
		return potentials[0]
	}

	return ParseResults{Context: ctxSoFar, Reader: originalReader, Errors: errs}
}
