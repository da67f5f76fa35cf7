package cmderr

import (
	"strconv"
	"strings"
)

// Kind identifies the semantic type of a syntax error. Two errors are of
// the same type when their Kinds are equal, regardless of message text.
type Kind int

const (
	KindUnknown Kind = iota

	// Reader-level errors. Cursor points at the start of the offending token.
	KindExpectedInt
	KindInvalidInt
	KindExpectedFloat
	KindInvalidFloat
	KindExpectedBool
	KindInvalidBool
	KindExpectedStartOfQuote
	KindExpectedEndOfQuote
	KindInvalidEscape
	KindExpectedSymbol

	// Range errors. Cursor points at the end of the well-formed token.
	KindIntegerTooLow
	KindIntegerTooHigh
	KindFloatTooLow
	KindFloatTooHigh

	// Tree-level errors.
	KindLiteralIncorrect

	// Dispatch-level errors.
	KindUnknownCommand
	KindUnknownArgument
	KindExpectedSeparator
)

// contextChars is how many characters of input are echoed before the
// error position when rendering.
const contextChars = 10

// Error is a syntax error tagged with an absolute cursor position in the
// original input, so callers can render a caret under the offending
// character.
type Error struct {
	Kind    Kind
	Message string
	Input   string
	Cursor  int
}

func (e *Error) Error() string {
	msg := e.Message
	if ctx := e.Context(); ctx != "" {
		msg += " at position " + strconv.Itoa(e.Cursor) + ": " + ctx
	}
	return msg
}

// Context renders the input up to the cursor, truncated to the last few
// characters, with a marker at the failure point. Empty when the error
// carries no input.
func (e *Error) Context() string {
	if e.Input == "" || e.Cursor < 0 {
		return ""
	}
	var b strings.Builder
	cursor := e.Cursor
	if cursor > len(e.Input) {
		cursor = len(e.Input)
	}
	if cursor > contextChars {
		b.WriteString("...")
	}
	start := cursor - contextChars
	if start < 0 {
		start = 0
	}
	b.WriteString(e.Input[start:cursor])
	b.WriteString("<--[HERE]")
	return b.String()
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
