package cmderr

import "fmt"

// Range constructors. The value was well-formed but outside the configured
// bound, so the cursor points at the end of the token.

func IntegerTooLow(input string, cursor int, found, min int) *Error {
	return &Error{Kind: KindIntegerTooLow, Message: fmt.Sprintf("Integer must not be less than %d, found %d", min, found), Input: input, Cursor: cursor}
}

func IntegerTooHigh(input string, cursor int, found, max int) *Error {
	return &Error{Kind: KindIntegerTooHigh, Message: fmt.Sprintf("Integer must not be more than %d, found %d", max, found), Input: input, Cursor: cursor}
}

func FloatTooLow(input string, cursor int, found, min float64) *Error {
	return &Error{Kind: KindFloatTooLow, Message: fmt.Sprintf("Float must not be less than %v, found %v", min, found), Input: input, Cursor: cursor}
}

func FloatTooHigh(input string, cursor int, found, max float64) *Error {
	return &Error{Kind: KindFloatTooHigh, Message: fmt.Sprintf("Float must not be more than %v, found %v", max, found), Input: input, Cursor: cursor}
}
