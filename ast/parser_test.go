// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/lowjson"
	"github.com/creachadair/lowjson/ast"
	"github.com/creachadair/lowjson/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

type obj = map[string]ast.Value

var (
	null    = ast.Null()
	num     = ast.Number
	str     = ast.String
	arr     = ast.Array
	boolean = ast.Bool
)

func object(m obj) ast.Value { return ast.Object(m) }

const (
	scenarioA = `{"name":"John","age":30,"city":"New York"}`
	scenarioB = `{"items":[{"id":1,"name":"Apple","price":1.2},{"id":2,"name":"Banana","price":0.8}],"total":2}`
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Value
	}{
		{"Null", `null`, null},
		{"True", `true`, boolean(true)},
		{"False", `false`, boolean(false)},
		{"Integer", `-25`, num(-25)},
		{"Float", `6.02e+23`, num(6.02e23)},
		{"String", `"a b c"`, str("a b c")},
		{"EmptyString", `""`, str("")},
		{"EmptyObject", `{}`, object(obj{})},
		{"EmptyArray", `[]`, arr()},

		{"ScenarioA", scenarioA, object(obj{
			"name": str("John"),
			"age":  num(30),
			"city": str("New York"),
		})},
		{"ScenarioB", scenarioB, object(obj{
			"items": arr(
				object(obj{"id": num(1), "name": str("Apple"), "price": num(1.2)}),
				object(obj{"id": num(2), "name": str("Banana"), "price": num(0.8)}),
			),
			"total": num(2),
		})},

		{"Nested", `[[[]], {"a": {"b": [null]}}]`, arr(
			arr(arr()),
			object(obj{"a": object(obj{"b": arr(null)})}),
		)},
		{"Verbatim", `["a\nb"]`, arr(str(`a\nb`))},

		// Commas between members and elements are optional, and a trailing
		// comma is permitted.
		{"NoCommas", `[1 2 3]`, arr(num(1), num(2), num(3))},
		{"TrailingComma", `{"a": 1, "b": [true,],}`, object(obj{
			"a": num(1), "b": arr(boolean(true)),
		})},

		{"DuplicateKey", `{"a": 1, "b": 2, "a": 3}`, object(obj{"a": num(3), "b": num(2)})},
		{"TrailingValues", `{"a": 1} [2]`, object(obj{"a": num(1)})},
	}
	dec := ast.NewDecoder(nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := testutil.MustParse(t, dec, tc.input)
			if diff := cmp.Diff(tc.want, got, testutil.ValueOptions); diff != "" {
				t.Errorf("Parse %#q: (-want, +got)\n%s", tc.input, diff)
			}
		})
	}
}

func TestParseWhitespace(t *testing.T) {
	// Whitespace between tokens does not change the result.
	const spaced = "\t{ \"items\" :\r\n [ { \"id\" : 1 ,\"name\":\"Apple\" , \"price\" : 1.2 } ,\n" +
		"{\"id\":2,\n\t\"name\" :\"Banana\",\"price\":0.8 }\r\n ] , \"total\" :2 }\n\n"

	dec := ast.NewDecoder(nil)
	want := testutil.MustParse(t, dec, scenarioB)
	got := testutil.MustParse(t, dec, spaced)
	if diff := cmp.Diff(want, got, testutil.ValueOptions); diff != "" {
		t.Errorf("Spaced input: (-want, +got)\n%s", diff)
	}
}

func TestParseIdempotent(t *testing.T) {
	dec := ast.NewDecoder(nil)
	for _, input := range []string{scenarioA, scenarioB, `[1, "two", [null, false]]`} {
		first := testutil.MustParse(t, dec, input)
		second := testutil.MustParse(t, dec, input)
		if diff := cmp.Diff(first, second, testutil.ValueOptions); diff != "" {
			t.Errorf("Reparse %#q: (-first, +second)\n%s", input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		kind   lowjson.ErrorKind
		offset int
		token  int
	}{
		// Lexical errors have no token index.
		{`"unterminated`, lowjson.UnterminatedString, 0, -1},
		{`{"a": tru}`, lowjson.InvalidLiteralSpelling, 6, -1},
		{`{"a": 1 @}`, lowjson.UnexpectedCharacter, 8, -1},

		{`{"a" 1}`, lowjson.MissingColon, 5, 2},
		{`{"a" "b"}`, lowjson.MissingColon, 5, 2},
		{`{"a",}`, lowjson.MissingColon, 4, 2},

		{``, lowjson.UnexpectedEndOfInput, 0, 0},
		{" \n\t ", lowjson.UnexpectedEndOfInput, 4, 0},
		{`{`, lowjson.UnexpectedEndOfInput, 1, 1},
		{`{"a"`, lowjson.UnexpectedEndOfInput, 4, 2},
		{`{"a":`, lowjson.UnexpectedEndOfInput, 5, 3},
		{`{"a": 1`, lowjson.UnexpectedEndOfInput, 7, 4},
		{`[1, 2`, lowjson.UnexpectedEndOfInput, 5, 4},
		{`[[]`, lowjson.UnexpectedEndOfInput, 3, 3},

		{`}`, lowjson.UnexpectedToken, 0, 0},
		{`:`, lowjson.UnexpectedToken, 0, 0},
		{`{1: 2}`, lowjson.UnexpectedToken, 1, 1},
		{`{"a":}`, lowjson.UnexpectedToken, 5, 3},
		{`{,}`, lowjson.UnexpectedToken, 1, 1},
		{`[,]`, lowjson.UnexpectedToken, 1, 1},
		{`[1 }`, lowjson.UnexpectedToken, 3, 2},

		{`1-2.3e`, lowjson.NumberConversionFailed, 0, 0},
		{`[0, 1e400]`, lowjson.NumberConversionFailed, 4, 3},
		{`{"x": --5}`, lowjson.NumberConversionFailed, 6, 3},
	}
	// The results do not depend on whether comments are enabled.
	for _, opts := range []*ast.Options{nil, {AllowComments: true}} {
		dec := ast.NewDecoder(opts)
		for _, tc := range tests {
			v, err := dec.ParseDocument(tc.input)
			if err == nil {
				t.Errorf("Parse %#q: got %v, want error", tc.input, v)
				continue
			}
			if !v.IsNull() {
				t.Errorf("Parse %#q: got value %v with error", tc.input, v)
			}
			if !errors.Is(err, tc.kind) {
				t.Errorf("Parse %#q: got error %v, want kind %v", tc.input, err, tc.kind)
			}
			var serr *lowjson.SyntaxError
			if !errors.As(err, &serr) {
				t.Errorf("Parse %#q: error is %T, not *SyntaxError", tc.input, err)
				continue
			}
			if serr.Offset != tc.offset || serr.Token != tc.token {
				t.Errorf("Parse %#q: got offset %d token %d, want offset %d token %d",
					tc.input, serr.Offset, serr.Token, tc.offset, tc.token)
			}
			if want := lowjson.Position(tc.input, tc.offset); serr.Location != want {
				t.Errorf("Parse %#q: location %v, want %v", tc.input, serr.Location, want)
			}
		}
	}
}

func TestParseDepth(t *testing.T) {
	dec := ast.NewDecoder(nil)

	deep := strings.Repeat("[", ast.MaxDepth) + strings.Repeat("]", ast.MaxDepth)
	v := testutil.MustParse(t, dec, deep)
	for range ast.MaxDepth - 1 {
		v = v.Index(0)
	}
	if v.Len() != 0 {
		t.Errorf("Innermost array: got %v, want empty", v)
	}

	tooDeep := `{"a": ` + strings.Repeat("[", ast.MaxDepth) + `]}`
	_, err := dec.ParseDocument(tooDeep)
	var serr *lowjson.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Parse: got %v, want *SyntaxError", err)
	}
	// The object is the first container, so the last bracket is one too many.
	wantOffset := len(`{"a": `) + ast.MaxDepth - 1
	if serr.Kind != lowjson.UnexpectedToken || serr.Offset != wantOffset || serr.Token != ast.MaxDepth+2 {
		t.Errorf("Parse: got %v at offset %d token %d, want %v at offset %d token %d",
			serr.Kind, serr.Offset, serr.Token, lowjson.UnexpectedToken, wantOffset, ast.MaxDepth+2)
	}
	checkAllFree(t, dec)
}

func TestParseErrorText(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`{"a" 1}`, `at 1:5: missing colon: got number after key "a", want ":"`},
		{"[\n  true,\n  }", `at 3:2: unexpected token: got "}", want a value`},
		{`[1,`, `at 1:3: unexpected end of input: want value or "]"`},
		{`[1.2.3]`, `at 1:1: number conversion failed: invalid number "1.2.3"`},
	}
	dec := ast.NewDecoder(nil)
	for _, tc := range tests {
		_, err := dec.ParseDocument(tc.input)
		if err == nil {
			t.Errorf("Parse %#q: got nil, want error", tc.input)
			continue
		}
		if diff := cmp.Diff(tc.want, err.Error()); diff != "" {
			t.Errorf("Parse %#q: error (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestParseValue(t *testing.T) {
	lx := lowjson.NewLexer(lowjson.Pools{})
	tl, err := lx.Lex(`"a" [1, 2] {"b": null} false`)
	if err != nil {
		t.Fatalf("Lex: unexpected error: %v", err)
	}
	defer lx.Recycle(tl)

	// Parse each value in turn, using the offset of the next token.
	var got []ast.Value
	var offsets []int
	for i := 0; i < tl.Len(); {
		v, next, err := ast.ParseValue(tl, i)
		if err != nil {
			t.Fatalf("ParseValue at %d: unexpected error: %v", i, err)
		}
		got = append(got, v)
		offsets = append(offsets, next)
		i = next
	}

	want := []ast.Value{str("a"), arr(num(1), num(2)), object(obj{"b": null}), boolean(false)}
	if diff := cmp.Diff(want, got, testutil.ValueOptions); diff != "" {
		t.Errorf("Values: (-want, +got)\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 6, 11, 12}, offsets); diff != "" {
		t.Errorf("Offsets: (-want, +got)\n%s", diff)
	}
}

func TestParseTokens(t *testing.T) {
	// Token lists not produced by the lexer can contain constants with the
	// wrong spelling.
	tl := &lowjson.TokenList{
		Tokens: []lowjson.Token{
			{Kind: lowjson.ArrayStart, Span: lowjson.Span{Pos: 0, End: 1}},
			{Kind: lowjson.Bool, Text: []byte("yes"), Span: lowjson.Span{Pos: 1, End: 4}},
			{Kind: lowjson.ArrayEnd, Span: lowjson.Span{Pos: 4, End: 5}},
		},
		End: 5,
	}
	_, err := ast.Parse(tl)
	if !errors.Is(err, lowjson.BooleanConversionFailed) {
		t.Fatalf("Parse: got %v, want %v", err, lowjson.BooleanConversionFailed)
	}
	if serr := err.(*lowjson.SyntaxError); serr.Token != 1 || serr.Offset != 1 {
		t.Errorf("Parse: got token %d offset %d, want 1, 1", serr.Token, serr.Offset)
	}

	tl.Tokens[1] = lowjson.Token{Kind: lowjson.Invalid, Span: lowjson.Span{Pos: 1, End: 4}}
	if _, err := ast.Parse(tl); !errors.Is(err, lowjson.UnexpectedToken) {
		t.Errorf("Parse: got %v, want %v", err, lowjson.UnexpectedToken)
	}
}
