// Package suggest holds the completion-suggestion model: individual
// suggestions tagged with the range of input they replace, and merged,
// deduplicated collections of them.
package suggest

import (
	"sort"
	"strings"
)

// Range is a half-open-free span of absolute offsets in the input;
// Start and End are both inclusive-exclusive in the usual slice sense.
type Range struct {
	Start int
	End   int
}

func At(pos int) Range              { return Range{Start: pos, End: pos} }
func Between(start, end int) Range  { return Range{Start: start, End: end} }
func Encompassing(a, b Range) Range { return Range{Start: min(a.Start, b.Start), End: max(a.End, b.End)} }

func (r Range) IsEmpty() bool { return r.Start == r.End }
func (r Range) Len() int      { return r.End - r.Start }

// Get returns the slice of input covered by the range.
func (r Range) Get(input string) string { return input[r.Start:r.End] }

// Suggestion is one completion candidate: the text that should replace
// the given range of the input.
type Suggestion struct {
	Range   Range
	Text    string
	Tooltip string
}

// Apply splices the suggestion into the input it was generated against.
func (s Suggestion) Apply(input string) string {
	if s.Range.Start == 0 && s.Range.End == len(input) {
		return s.Text
	}
	var b strings.Builder
	b.WriteString(input[:s.Range.Start])
	b.WriteString(s.Text)
	b.WriteString(input[s.Range.End:])
	return b.String()
}

// Expand widens the suggestion to cover a larger range, pulling the
// surrounding input text into the suggestion text so the replacement
// stays equivalent.
func (s Suggestion) Expand(input string, r Range) Suggestion {
	if r == s.Range {
		return s
	}
	var b strings.Builder
	if r.Start < s.Range.Start {
		b.WriteString(input[r.Start:s.Range.Start])
	}
	b.WriteString(s.Text)
	if r.End > s.Range.End {
		b.WriteString(input[s.Range.End:r.End])
	}
	return Suggestion{Range: r, Text: b.String(), Tooltip: s.Tooltip}
}

// Suggestions is a merged collection of candidates sharing one
// replacement range.
type Suggestions struct {
	Range  Range
	Values []Suggestion
}

func (s Suggestions) IsEmpty() bool { return len(s.Values) == 0 }

// Empty is the no-candidates collection.
func Empty() Suggestions { return Suggestions{Range: At(0)} }

// Create merges raw suggestions (possibly with differing ranges) into a
// single collection: every entry is expanded to the widest range seen,
// duplicates are dropped and the result is sorted case-insensitively.
func Create(input string, raw []Suggestion) Suggestions {
	if len(raw) == 0 {
		return Empty()
	}
	r := raw[0].Range
	for _, s := range raw[1:] {
		r = Encompassing(r, s.Range)
	}
	seen := make(map[string]bool, len(raw))
	values := make([]Suggestion, 0, len(raw))
	for _, s := range raw {
		expanded := s.Expand(input, r)
		if seen[expanded.Text] {
			continue
		}
		seen[expanded.Text] = true
		values = append(values, expanded)
	}
	sort.Slice(values, func(i, j int) bool {
		return strings.ToLower(values[i].Text) < strings.ToLower(values[j].Text)
	})
	return Suggestions{Range: r, Values: values}
}

// Merge flattens several collections produced against the same input.
func Merge(input string, all []Suggestions) Suggestions {
	switch len(all) {
	case 0:
		return Empty()
	case 1:
		return all[0]
	}
	var raw []Suggestion
	for _, s := range all {
		raw = append(raw, s.Values...)
	}
	return Create(input, raw)
}
