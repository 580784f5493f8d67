// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package lowjson

import "fmt"

// ErrorKind classifies a syntax error. An ErrorKind is itself an error, so
// that callers may test for a particular kind with errors.Is:
//
//	if errors.Is(err, lowjson.MissingColon) { ... }
type ErrorKind int

// Constants defining the valid ErrorKind values.
const (
	UnterminatedString      ErrorKind = iota + 1 // string with no closing quote
	InvalidLiteralSpelling                       // misspelled true, false, or null
	UnexpectedCharacter                          // character that cannot begin a token
	MissingColon                                 // object key not followed by ":"
	UnexpectedToken                              // token not valid at its position
	UnexpectedEndOfInput                         // input ended inside a value
	NumberConversionFailed                       // number text is not a valid number
	BooleanConversionFailed                      // boolean text is not true or false
	InvalidEscape                                // malformed escape sequence in a string
	UnterminatedComment                          // block comment with no closing "*/"
)

var errorKindStr = [...]string{
	UnterminatedString:      "unterminated string",
	InvalidLiteralSpelling:  "invalid literal spelling",
	UnexpectedCharacter:     "unexpected character",
	MissingColon:            "missing colon",
	UnexpectedToken:         "unexpected token",
	UnexpectedEndOfInput:    "unexpected end of input",
	NumberConversionFailed:  "number conversion failed",
	BooleanConversionFailed: "boolean conversion failed",
	InvalidEscape:           "invalid escape",
	UnterminatedComment:     "unterminated comment",
}

func (k ErrorKind) String() string {
	if k <= 0 || int(k) >= len(errorKindStr) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// SyntaxError is the concrete type of errors reported by the lexer and the
// tree builder for malformed input.
type SyntaxError struct {
	Kind     ErrorKind
	Offset   int     // byte offset in the input where the error was detected
	Token    int     // index of the offending token, or -1 for lexical errors
	Location LineCol // line and column of Offset, if known (Line > 0)
	Message  string
}

// NewSyntaxError constructs a SyntaxError of the given kind. The message is
// formatted from msg and args as by fmt.Sprintf.
func NewSyntaxError(kind ErrorKind, offset, token int, msg string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:    kind,
		Offset:  offset,
		Token:   token,
		Message: fmt.Sprintf(msg, args...),
	}
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	at := fmt.Sprintf("offset %d", e.Offset)
	if e.Location.Line > 0 {
		at = e.Location.String()
	}
	if e.Message == "" {
		return fmt.Sprintf("at %s: %v", at, e.Kind)
	}
	return fmt.Sprintf("at %s: %v: %s", at, e.Kind, e.Message)
}

// Is reports whether target is the ErrorKind of e.
func (e *SyntaxError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}
