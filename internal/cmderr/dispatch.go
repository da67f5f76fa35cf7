package cmderr

import "fmt"

// Dispatch-level constructors.

// LiteralIncorrect is returned when input does not match a literal node's
// token. The cursor points at the start of the mismatched token.
func LiteralIncorrect(input string, cursor int, expected string) *Error {
	return &Error{Kind: KindLiteralIncorrect, Message: fmt.Sprintf("Expected literal %s", expected), Input: input, Cursor: cursor}
}

// UnknownCommand is returned when no registered command matches the input.
func UnknownCommand(input string, cursor int) *Error {
	return &Error{Kind: KindUnknownCommand, Message: "Unknown command", Input: input, Cursor: cursor}
}

// UnknownArgument is returned when a command matched but trailing input
// could not be parsed as any of its arguments.
func UnknownArgument(input string, cursor int) *Error {
	return &Error{Kind: KindUnknownArgument, Message: "Incorrect argument for command", Input: input, Cursor: cursor}
}

// ExpectedSeparator is returned when a token parsed but was not followed
// by whitespace or end of input.
func ExpectedSeparator(input string, cursor int) *Error {
	return &Error{Kind: KindExpectedSeparator, Message: "Expected whitespace to end one argument, but found trailing data", Input: input, Cursor: cursor}
}
