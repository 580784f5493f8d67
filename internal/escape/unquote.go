// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape decodes the escape sequences of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// ErrIncomplete is reported for an escape sequence truncated by the end of
// the input.
var ErrIncomplete = errors.New("incomplete escape sequence")

// AppendUnquote decodes src, the body of a JSON string without its enclosing
// quotation marks, and appends the result to dst. It returns the extended
// slice.
//
// Escape sequences are replaced with their unescaped equivalents, and a
// UTF-16 surrogate pair written as two \u escapes is combined into one rune.
// Unknown escapes and invalid hex digits are replaced by the Unicode
// replacement rune. AppendUnquote reports an error wrapping ErrIncomplete
// for an escape cut short by the end of src; in that case dst is returned
// unmodified.
func AppendUnquote(dst []byte, src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dst, src), nil
	}

	out := dst
	for {
		out = mem.Append(out, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return dst, ErrIncomplete
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			out = append(out, c)
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			r, n, err := decodeUnicode(src)
			if err != nil {
				return dst, err
			}
			out = utf8.AppendRune(out, r)
			src = src.SliceFrom(n)
		default:
			out = utf8.AppendRune(out, utf8.RuneError)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(out, src), nil
		}
	}
}

// decodeUnicode decodes the hex digits following "\u" at the front of src.
// If they denote the first half of a surrogate pair and the second half
// follows immediately, both are consumed. It returns the rune and the number
// of bytes of src consumed.
func decodeUnicode(src mem.RO) (rune, int, error) {
	if src.Len() < 4 {
		return 0, 0, fmt.Errorf("%w: want 4 hex digits after \\u", ErrIncomplete)
	}
	v, err := parseHex(src.SliceTo(4))
	if err != nil {
		return utf8.RuneError, 4, nil
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, 4, nil
	}

	// Look for a low surrogate: \uXXXX immediately following.
	rest := src.SliceFrom(4)
	if rest.Len() < 6 || rest.At(0) != '\\' || rest.At(1) != 'u' {
		return utf8.RuneError, 4, nil
	}
	w, err := parseHex(rest.Slice(2, 6))
	if err != nil {
		return utf8.RuneError, 4, nil
	}
	if p := utf16.DecodeRune(r, rune(w)); p != utf8.RuneError {
		return p, 10, nil
	}
	return utf8.RuneError, 4, nil
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
