// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package lowjson

import (
	"github.com/creachadair/lowjson/internal/escape"

	"go4.org/mem"
)

// Unescape decodes the escape sequences in the payload of a string token
// scanned without escape decoding. Invalid escapes are replaced by the
// Unicode replacement rune. Unescape reports an error for an incomplete
// escape sequence.
//
// Note that without escape decoding, the lexer ends a string at the first
// quotation mark whether or not it is preceded by a backslash.
func Unescape(text []byte) ([]byte, error) {
	return escape.AppendUnquote(nil, mem.B(text))
}
