// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"github.com/creachadair/lowjson"

	"go4.org/mem"
)

// MaxDepth is the maximum nesting depth of objects and arrays accepted by
// Parse and ParseValue. A container nested more deeply is reported as an
// error of kind UnexpectedToken.
const MaxDepth = 10000

// Parse builds the value whose tokens begin at the front of tl. Any tokens
// following the first complete value are ignored. An empty token list is an
// error of kind UnexpectedEndOfInput.
//
// Parse does not retain tl or the text of its tokens, so the caller may
// recycle tl as soon as Parse returns.
func Parse(tl *lowjson.TokenList) (Value, error) {
	v, _, err := ParseValue(tl, 0)
	return v, err
}

// ParseValue builds the value whose first token is at offset i of tl, and
// returns the value together with the offset of the first token following it.
// In case of error, ParseValue returns a null value and an error of concrete
// type *lowjson.SyntaxError whose Token field is the offset of the token
// where the error was detected.
//
// Object members and array elements may be separated by commas; a comma is
// optional, and one may follow the last member or element. When an object
// has more than one member with the same key, the last one wins.
func ParseValue(tl *lowjson.TokenList, i int) (Value, int, error) {
	return parseValue(tl, i, 0)
}

// parseValue parses the value at offset i of tl, inside depth containers.
func parseValue(tl *lowjson.TokenList, i, depth int) (Value, int, error) {
	if i >= tl.Len() {
		return Value{}, i, errEnd(tl, i, "want a value")
	}
	tok := &tl.Tokens[i]
	switch tok.Kind {
	case lowjson.ObjectStart, lowjson.ArrayStart:
		if depth >= MaxDepth {
			return Value{}, i, errAt(tl, i, lowjson.UnexpectedToken, "nesting depth exceeds %d", MaxDepth)
		} else if tok.Kind == lowjson.ObjectStart {
			return parseObject(tl, i, depth+1)
		}
		return parseArray(tl, i, depth+1)
	case lowjson.String:
		return String(string(tok.Text)), i + 1, nil
	case lowjson.Number:
		n, err := mem.ParseFloat(mem.B(tok.Text), 64)
		if err != nil {
			return Value{}, i, errAt(tl, i, lowjson.NumberConversionFailed, "invalid number %q", tok.Text)
		}
		return Number(n), i + 1, nil
	case lowjson.Bool:
		if text := mem.B(tok.Text); text.EqualString("true") {
			return Bool(true), i + 1, nil
		} else if text.EqualString("false") {
			return Bool(false), i + 1, nil
		}
		return Value{}, i, errAt(tl, i, lowjson.BooleanConversionFailed, "invalid Boolean %q", tok.Text)
	case lowjson.Null:
		return Null(), i + 1, nil
	default:
		return Value{}, i, errAt(tl, i, lowjson.UnexpectedToken, "got %v, want a value", tok.Kind)
	}
}

// parseObject parses an object whose opening brace is at offset i of tl.
func parseObject(tl *lowjson.TokenList, i, depth int) (Value, int, error) {
	obj := make(map[string]Value)
	i++ // skip "{"
	for {
		if i >= tl.Len() {
			return Value{}, i, errEnd(tl, i, `want string or "}"`)
		}
		tok := &tl.Tokens[i]
		if tok.Kind == lowjson.ObjectEnd {
			return Object(obj), i + 1, nil
		} else if tok.Kind != lowjson.String {
			return Value{}, i, errAt(tl, i, lowjson.UnexpectedToken, `got %v, want string or "}"`, tok.Kind)
		}

		// The key must be followed by a colon and then the member value.
		if i+1 >= tl.Len() {
			return Value{}, i + 1, errEnd(tl, i+1, `want ":" after object key`)
		} else if next := tl.Tokens[i+1].Kind; next != lowjson.Colon {
			return Value{}, i + 1, errAt(tl, i+1, lowjson.MissingColon, `got %v after key %q, want ":"`, next, tok.Text)
		}
		v, next, err := parseValue(tl, i+2, depth)
		if err != nil {
			return Value{}, next, err
		}
		obj[string(tok.Text)] = v
		i = skipComma(tl, next)
	}
}

// parseArray parses an array whose opening bracket is at offset i of tl.
func parseArray(tl *lowjson.TokenList, i, depth int) (Value, int, error) {
	arr := []Value{}
	i++ // skip "["
	for {
		if i >= tl.Len() {
			return Value{}, i, errEnd(tl, i, `want value or "]"`)
		}
		if tl.Tokens[i].Kind == lowjson.ArrayEnd {
			return Array(arr...), i + 1, nil
		}
		v, next, err := parseValue(tl, i, depth)
		if err != nil {
			return Value{}, next, err
		}
		arr = append(arr, v)
		i = skipComma(tl, next)
	}
}

func skipComma(tl *lowjson.TokenList, i int) int {
	if i < tl.Len() && tl.Tokens[i].Kind == lowjson.Comma {
		return i + 1
	}
	return i
}

// errAt reports an error of the given kind at the token at offset i of tl.
func errAt(tl *lowjson.TokenList, i int, kind lowjson.ErrorKind, msg string, args ...any) error {
	return lowjson.NewSyntaxError(kind, tl.Tokens[i].Span.Pos, i, msg, args...)
}

// errEnd reports that tl ran out of tokens at offset i.
func errEnd(tl *lowjson.TokenList, i int, msg string) error {
	return lowjson.NewSyntaxError(lowjson.UnexpectedEndOfInput, tl.End, i, "%s", msg)
}
