package dispatchers

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/stanza-tools/stanza/internal/cmderr"
	"github.com/stanza-tools/stanza/internal/reader"
	"github.com/stanza-tools/stanza/internal/suggest"
)

// ArgumentType converts reader state into a typed value, contributes
// completions, and exposes example inputs for ambiguity scanning. The
// built-in types are comparable value structs, so two configurations are
// equal exactly when their parameters are.
type ArgumentType interface {
	// Parse consumes a prefix of the remaining input and returns the
	// typed value. Malformed tokens fail with the cursor at the token
	// start; well-formed but out-of-range values fail with the cursor
	// at the token end. The reader is left at the token start on
	// failure either way.
	Parse(rd *reader.Reader) (any, error)
	ListSuggestions(ctx context.Context, c *CommandContext, b *suggest.Builder) (suggest.Suggestions, error)
	Examples() []string
	String() string
}

// BoolType matches "true" or "false".
type BoolType struct{}

func Bool() BoolType { return BoolType{} }

func (BoolType) Parse(rd *reader.Reader) (any, error) {
	return rd.ReadBool()
}

func (BoolType) ListSuggestions(_ context.Context, _ *CommandContext, b *suggest.Builder) (suggest.Suggestions, error) {
	partial := b.RemainingLower()
	if strings.HasPrefix("true", partial) {
		b.Suggest("true")
	}
	if strings.HasPrefix("false", partial) {
		b.Suggest("false")
	}
	return b.Build(), nil
}

func (BoolType) Examples() []string { return []string{"true", "false"} }
func (BoolType) String() string     { return "bool()" }

// IntType matches an integer within an inclusive [Min, Max] range.
type IntType struct {
	Min int
	Max int
}

func Integer() IntType {
	return IntType{Min: math.MinInt32, Max: math.MaxInt32}
}

func IntegerMin(min int) IntType {
	return IntType{Min: min, Max: math.MaxInt32}
}

func IntegerBetween(min, max int) IntType {
	return IntType{Min: min, Max: max}
}

func (t IntType) Parse(rd *reader.Reader) (any, error) {
	start := rd.Cursor()
	value, err := rd.ReadInt()
	if err != nil {
		return nil, err
	}
	if value < t.Min {
		end := rd.Cursor()
		rd.SetCursor(start)
		return nil, cmderr.IntegerTooLow(rd.Input(), end, value, t.Min)
	}
	if value > t.Max {
		end := rd.Cursor()
		rd.SetCursor(start)
		return nil, cmderr.IntegerTooHigh(rd.Input(), end, value, t.Max)
	}
	return value, nil
}

func (IntType) ListSuggestions(_ context.Context, _ *CommandContext, b *suggest.Builder) (suggest.Suggestions, error) {
	return suggest.Empty(), nil
}

func (IntType) Examples() []string { return []string{"0", "123", "-123"} }

func (t IntType) String() string {
	switch {
	case t.Min == math.MinInt32 && t.Max == math.MaxInt32:
		return "integer()"
	case t.Max == math.MaxInt32:
		return fmt.Sprintf("integer(%d)", t.Min)
	default:
		return fmt.Sprintf("integer(%d, %d)", t.Min, t.Max)
	}
}

// FloatType matches a float64 within an inclusive [Min, Max] range.
type FloatType struct {
	Min float64
	Max float64
}

func Float() FloatType {
	return FloatType{Min: -math.MaxFloat64, Max: math.MaxFloat64}
}

func FloatMin(min float64) FloatType {
	return FloatType{Min: min, Max: math.MaxFloat64}
}

func FloatBetween(min, max float64) FloatType {
	return FloatType{Min: min, Max: max}
}

func (t FloatType) Parse(rd *reader.Reader) (any, error) {
	start := rd.Cursor()
	value, err := rd.ReadFloat()
	if err != nil {
		return nil, err
	}
	if value < t.Min {
		end := rd.Cursor()
		rd.SetCursor(start)
		return nil, cmderr.FloatTooLow(rd.Input(), end, value, t.Min)
	}
	if value > t.Max {
		end := rd.Cursor()
		rd.SetCursor(start)
		return nil, cmderr.FloatTooHigh(rd.Input(), end, value, t.Max)
	}
	return value, nil
}

func (FloatType) ListSuggestions(_ context.Context, _ *CommandContext, b *suggest.Builder) (suggest.Suggestions, error) {
	return suggest.Empty(), nil
}

func (FloatType) Examples() []string {
	return []string{"0", "1.2", ".5", "-1", "-.5", "-1234.56"}
}

func (t FloatType) String() string {
	switch {
	case t.Min == -math.MaxFloat64 && t.Max == math.MaxFloat64:
		return "float()"
	case t.Max == math.MaxFloat64:
		return fmt.Sprintf("float(%v)", t.Min)
	default:
		return fmt.Sprintf("float(%v, %v)", t.Min, t.Max)
	}
}

// StringKind selects how much input a StringType consumes.
type StringKind int

const (
	// SingleWord consumes one unquoted token.
	SingleWord StringKind = iota
	// QuotablePhrase consumes one token, or a quoted string with
	// escapes when the token starts with a quote.
	QuotablePhrase
	// GreedyPhrase consumes everything left, verbatim.
	GreedyPhrase
)

// StringType matches string arguments of the configured kind.
type StringType struct {
	Kind StringKind
}

func Word() StringType   { return StringType{Kind: SingleWord} }
func Phrase() StringType { return StringType{Kind: QuotablePhrase} }
func Greedy() StringType { return StringType{Kind: GreedyPhrase} }

func (t StringType) Parse(rd *reader.Reader) (any, error) {
	switch t.Kind {
	case GreedyPhrase:
		text := rd.Remaining()
		rd.SetCursor(rd.TotalLen())
		return text, nil
	case SingleWord:
		return rd.ReadUnquotedString(), nil
	default:
		return rd.ReadString()
	}
}

func (StringType) ListSuggestions(_ context.Context, _ *CommandContext, _ *suggest.Builder) (suggest.Suggestions, error) {
	return suggest.Empty(), nil
}

func (t StringType) Examples() []string {
	switch t.Kind {
	case GreedyPhrase:
		return []string{"word", "words with spaces", "\"and symbols\""}
	case SingleWord:
		return []string{"word", "words_with_underscores"}
	default:
		return []string{"\"quoted phrase\"", "word", "\"\""}
	}
}

func (t StringType) String() string {
	switch t.Kind {
	case GreedyPhrase:
		return "greedy()"
	case SingleWord:
		return "word()"
	default:
		return "phrase()"
	}
}

// EscapeIfRequired quotes a value so PhraseType would read it back
// verbatim.
func EscapeIfRequired(input string) string {
	for i := 0; i < len(input); i++ {
		if !reader.IsAllowedInUnquotedString(input[i]) {
			return escape(input)
		}
	}
	return input
}

func escape(input string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}
