// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package lowjson

// Kind is the type of a lexical token in the grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid token
	ObjectStart             // left brace "{"
	ObjectEnd               // right brace "}"
	ArrayStart              // left square bracket "["
	ArrayEnd                // right square bracket "]"
	Comma                   // comma ","
	Colon                   // colon ":"
	String                  // quoted string
	Number                  // number
	Bool                    // constant: true or false
	Null                    // constant: null
)

var kindStr = [...]string{
	Invalid:     "invalid token",
	ObjectStart: `"{"`,
	ObjectEnd:   `"}"`,
	ArrayStart:  `"["`,
	ArrayEnd:    `"]"`,
	Comma:       `","`,
	Colon:       `":"`,
	String:      "string",
	Number:      "number",
	Bool:        "boolean",
	Null:        "null",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// IsLiteral reports whether k is a literal kind, whose tokens carry text.
func (k Kind) IsLiteral() bool { return k >= String && k <= Null }

// A Token is a single lexical token. For literal kinds, Text holds the
// payload: the contents of a string without its quotation marks, the
// undecoded text of a number, or the spelling of a constant. Text is nil for
// punctuation.
//
// The Text of a token produced by a Lexer refers to storage owned by the
// lexer, and is valid only until the TokenList holding it is recycled.
type Token struct {
	Kind Kind
	Text []byte
	Span Span // location of the token in the input
}

// A TokenList is an ordered sequence of tokens in document order, together
// with the length of the input they were scanned from.
type TokenList struct {
	Tokens []Token
	End    int // the end offset of the input, 0-based
}

// Len reports the number of tokens in t.
func (t *TokenList) Len() int { return len(t.Tokens) }

// Reset discards the tokens in t, retaining its storage.
func (t *TokenList) Reset() {
	clear(t.Tokens) // drop references to token text
	t.Tokens = t.Tokens[:0]
	t.End = 0
}

func (t *TokenList) add(kind Kind, text []byte, pos, end int) {
	t.Tokens = append(t.Tokens, Token{Kind: kind, Text: text, Span: Span{Pos: pos, End: end}})
}
