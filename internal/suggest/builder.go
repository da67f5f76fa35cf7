package suggest

import "strings"

// Builder accumulates suggestions against a fixed input and start offset.
// Start is where the token being completed begins; every suggestion
// produced replaces input[Start:].
type Builder struct {
	Input  string
	Start  int
	result []Suggestion
}

func NewBuilder(input string, start int) *Builder {
	return &Builder{Input: input, Start: start}
}

// Remaining returns the partial token being completed.
func (b *Builder) Remaining() string { return b.Input[b.Start:] }

// RemainingLower returns the partial token lowercased, for
// case-insensitive prefix matching.
func (b *Builder) RemainingLower() string { return strings.ToLower(b.Remaining()) }

// Suggest adds a candidate. Text identical to what is already typed is
// dropped since applying it would be a no-op.
func (b *Builder) Suggest(text string) *Builder {
	return b.SuggestWithTooltip(text, "")
}

func (b *Builder) SuggestWithTooltip(text, tooltip string) *Builder {
	if text == b.Remaining() {
		return b
	}
	b.result = append(b.result, Suggestion{
		Range:   Between(b.Start, len(b.Input)),
		Text:    text,
		Tooltip: tooltip,
	})
	return b
}

// Build merges everything suggested so far.
func (b *Builder) Build() Suggestions {
	return Create(b.Input, b.result)
}

// Restart returns a fresh builder over the same input and offset.
func (b *Builder) Restart() *Builder {
	return NewBuilder(b.Input, b.Start)
}

// CreateOffset returns a fresh builder over the same input at a new
// start offset.
func (b *Builder) CreateOffset(start int) *Builder {
	return NewBuilder(b.Input, start)
}
