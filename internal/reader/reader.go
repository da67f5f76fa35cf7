// Package reader implements the cursor scanner the dispatch engine parses
// with: typed atomic reads over a single input string. A failed read
// leaves the cursor at the failure point and returns a cursor-tagged
// *cmderr.Error.
package reader

import (
	"strconv"
	"strings"

	"github.com/stanza-tools/stanza/internal/cmderr"
)

const (
	escapeChar      = '\\'
	doubleQuoteChar = '"'
	singleQuoteChar = '\''
)

// Reader is a cursor over an immutable input string. The zero value is a
// reader over the empty string; use New for anything else. Copying a
// Reader by value yields an independent cursor over the same input, which
// is how the parser backtracks across sibling nodes.
type Reader struct {
	input  string
	cursor int
}

func New(input string) *Reader {
	return &Reader{input: input}
}

// Input returns the full input string, independent of cursor position.
func (r *Reader) Input() string { return r.input }

// Cursor returns the absolute offset of the next unread character.
func (r *Reader) Cursor() int { return r.cursor }

// SetCursor rewinds or advances the cursor to an absolute offset.
func (r *Reader) SetCursor(cursor int) { r.cursor = cursor }

// Remaining returns the unread tail of the input.
func (r *Reader) Remaining() string { return r.input[r.cursor:] }

// ReadSoFar returns the consumed head of the input.
func (r *Reader) ReadSoFar() string { return r.input[:r.cursor] }

// RemainingLen returns how many characters are left to read.
func (r *Reader) RemainingLen() int { return len(r.input) - r.cursor }

// TotalLen returns the length of the whole input.
func (r *Reader) TotalLen() int { return len(r.input) }

// CanRead reports whether at least n more characters are available.
func (r *Reader) CanRead(n int) bool { return r.cursor+n <= len(r.input) }

// CanReadOne reports whether any character is available.
func (r *Reader) CanReadOne() bool { return r.CanRead(1) }

// Peek returns the next character without consuming it.
func (r *Reader) Peek() byte { return r.input[r.cursor] }

// PeekAt returns the character at the given offset past the cursor.
func (r *Reader) PeekAt(offset int) byte { return r.input[r.cursor+offset] }

// Read consumes and returns the next character.
func (r *Reader) Read() byte {
	c := r.input[r.cursor]
	r.cursor++
	return c
}

// Skip consumes the next character.
func (r *Reader) Skip() { r.cursor++ }

// SkipWhitespace consumes any run of whitespace characters.
func (r *Reader) SkipWhitespace() {
	for r.CanReadOne() && isWhitespace(r.Peek()) {
		r.Skip()
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isAllowedNumber(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-'
}

// IsAllowedInUnquotedString reports whether c may appear in an unquoted
// string token.
func IsAllowedInUnquotedString(c byte) bool {
	return c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '_' || c == '-' || c == '.' || c == '+'
}

// IsQuote reports whether c opens or closes a quoted string.
func IsQuote(c byte) bool {
	return c == doubleQuoteChar || c == singleQuoteChar
}

// ReadInt consumes an integer token. On failure the cursor is restored to
// the token start and the error is tagged there.
func (r *Reader) ReadInt() (int, error) {
	start := r.cursor
	for r.CanReadOne() && isAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.input[start:r.cursor]
	if number == "" {
		return 0, cmderr.ExpectedInt(r.input, r.cursor)
	}
	value, err := strconv.Atoi(number)
	if err != nil {
		r.cursor = start
		return 0, cmderr.InvalidInt(r.input, start, number)
	}
	return value, nil
}

// ReadFloat consumes a float token. On failure the cursor is restored to
// the token start and the error is tagged there.
func (r *Reader) ReadFloat() (float64, error) {
	start := r.cursor
	for r.CanReadOne() && isAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.input[start:r.cursor]
	if number == "" {
		return 0, cmderr.ExpectedFloat(r.input, r.cursor)
	}
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		r.cursor = start
		return 0, cmderr.InvalidFloat(r.input, start, number)
	}
	return value, nil
}

// ReadUnquotedString consumes a run of unquoted-string characters. The
// result may be empty.
func (r *Reader) ReadUnquotedString() string {
	start := r.cursor
	for r.CanReadOne() && IsAllowedInUnquotedString(r.Peek()) {
		r.Skip()
	}
	return r.input[start:r.cursor]
}

// ReadQuotedString consumes a quoted string including both quotes,
// returning its unescaped contents.
func (r *Reader) ReadQuotedString() (string, error) {
	if !r.CanReadOne() {
		return "", nil
	}
	next := r.Peek()
	if !IsQuote(next) {
		return "", cmderr.ExpectedStartOfQuote(r.input, r.cursor)
	}
	r.Skip()
	return r.ReadStringUntil(next)
}

// ReadStringUntil consumes characters up to an unescaped terminator,
// which is itself consumed. Backslash escapes the terminator and itself.
func (r *Reader) ReadStringUntil(terminator byte) (string, error) {
	var b strings.Builder
	escaped := false
	for r.CanReadOne() {
		c := r.Read()
		if escaped {
			if c == terminator || c == escapeChar {
				b.WriteByte(c)
				escaped = false
			} else {
				r.SetCursor(r.cursor - 1)
				return "", cmderr.InvalidEscape(r.input, r.cursor, string(c))
			}
		} else if c == escapeChar {
			escaped = true
		} else if c == terminator {
			return b.String(), nil
		} else {
			b.WriteByte(c)
		}
	}
	return "", cmderr.ExpectedEndOfQuote(r.input, r.cursor)
}

// ReadString consumes either a quoted or an unquoted string token,
// depending on the next character.
func (r *Reader) ReadString() (string, error) {
	if !r.CanReadOne() {
		return "", nil
	}
	next := r.Peek()
	if IsQuote(next) {
		r.Skip()
		return r.ReadStringUntil(next)
	}
	return r.ReadUnquotedString(), nil
}

// ReadBool consumes a "true" or "false" token.
func (r *Reader) ReadBool() (bool, error) {
	start := r.cursor
	value, err := r.ReadString()
	if err != nil {
		return false, err
	}
	if value == "" {
		return false, cmderr.ExpectedBool(r.input, start)
	}
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		r.cursor = start
		return false, cmderr.InvalidBool(r.input, start, value)
	}
}

// Expect consumes the given character or fails without advancing.
func (r *Reader) Expect(c byte) error {
	if !r.CanReadOne() || r.Peek() != c {
		return cmderr.ExpectedSymbol(r.input, r.cursor, string(c))
	}
	r.Skip()
	return nil
}
