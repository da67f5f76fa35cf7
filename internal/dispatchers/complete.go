package dispatchers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/stanza-tools/stanza/internal/suggest"
)

// CompletionSuggestions completes at the end of the parsed input.
func (d *Dispatcher) CompletionSuggestions(ctx context.Context, parse ParseResults) (suggest.Suggestions, error) {
	return d.CompletionSuggestionsAt(ctx, parse, parse.Reader.TotalLen())
}

// CompletionSuggestionsAt asks every node still reachable at the cursor
// for suggestions against the unconsumed remainder. Each node's provider
// runs in its own goroutine, so a slow provider delays only the final
// merge, never its peers; cancellation flows through ctx.
func (d *Dispatcher) CompletionSuggestionsAt(ctx context.Context, parse ParseResults, cursor int) (suggest.Suggestions, error) {
	sctx, err := parse.Context.FindSuggestionContext(cursor)
	if err != nil {
		return suggest.Empty(), err
	}

	parent := sctx.Parent
	start := min(sctx.Start, cursor)
	fullInput := parse.Reader.Input()
	truncated := fullInput[:cursor]
	built := parse.Context.Build(truncated)

	children := parent.Children()
	results := make([]suggest.Suggestions, len(children))
	g, gctx := errgroup.WithContext(ctx)
	for i, node := range children {
		g.Go(func() error {
			s, err := node.ListSuggestions(gctx, built, suggest.NewBuilder(truncated, start))
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return suggest.Empty(), err
	}
	return suggest.Merge(fullInput, results), nil
}
