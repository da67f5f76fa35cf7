package cmderr

import "fmt"

// Reader-level constructors. All take the original input and the cursor
// position at the start of the offending token.

func ExpectedInt(input string, cursor int) *Error {
	return &Error{Kind: KindExpectedInt, Message: "Expected integer", Input: input, Cursor: cursor}
}

func InvalidInt(input string, cursor int, value string) *Error {
	return &Error{Kind: KindInvalidInt, Message: fmt.Sprintf("Invalid integer '%s'", value), Input: input, Cursor: cursor}
}

func ExpectedFloat(input string, cursor int) *Error {
	return &Error{Kind: KindExpectedFloat, Message: "Expected float", Input: input, Cursor: cursor}
}

func InvalidFloat(input string, cursor int, value string) *Error {
	return &Error{Kind: KindInvalidFloat, Message: fmt.Sprintf("Invalid float '%s'", value), Input: input, Cursor: cursor}
}

func ExpectedBool(input string, cursor int) *Error {
	return &Error{Kind: KindExpectedBool, Message: "Expected bool", Input: input, Cursor: cursor}
}

func InvalidBool(input string, cursor int, value string) *Error {
	return &Error{Kind: KindInvalidBool, Message: fmt.Sprintf("Invalid bool, expected true or false but found '%s'", value), Input: input, Cursor: cursor}
}

func ExpectedStartOfQuote(input string, cursor int) *Error {
	return &Error{Kind: KindExpectedStartOfQuote, Message: "Expected quote to start a string", Input: input, Cursor: cursor}
}

func ExpectedEndOfQuote(input string, cursor int) *Error {
	return &Error{Kind: KindExpectedEndOfQuote, Message: "Unclosed quoted string", Input: input, Cursor: cursor}
}

func InvalidEscape(input string, cursor int, char string) *Error {
	return &Error{Kind: KindInvalidEscape, Message: fmt.Sprintf("Invalid escape sequence '%s' in quoted string", char), Input: input, Cursor: cursor}
}

func ExpectedSymbol(input string, cursor int, symbol string) *Error {
	return &Error{Kind: KindExpectedSymbol, Message: fmt.Sprintf("Expected '%s'", symbol), Input: input, Cursor: cursor}
}
