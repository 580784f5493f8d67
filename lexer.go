// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package lowjson

import (
	"bytes"
	"strings"

	"github.com/creachadair/lowjson/internal/escape"
	"github.com/creachadair/lowjson/pool"

	"go4.org/mem"
)

// Pools holds the pools a Lexer borrows from. A nil field is replaced by a
// new, empty pool when the lexer is constructed.
type Pools struct {
	Tokens   *pool.Pool[*TokenList]    // token sequences, one per Lex call
	Buffers  *pool.Pool[*bytes.Buffer] // text buffers, one per literal
	Segments *pool.Pool[*pool.Segment] // storage for token text
}

// NewTokenList constructs an empty token list. It is the default factory for
// the Tokens pool.
func NewTokenList() *TokenList { return &TokenList{Tokens: make([]Token, 0, 64)} }

// NewTextBuffer constructs an empty text buffer. It is the default factory
// for the Buffers pool.
func NewTextBuffer() *bytes.Buffer { return bytes.NewBuffer(make([]byte, 0, 64)) }

// A Lexer converts input text into a sequence of tokens, borrowing its
// working storage from pools.
//
// The text of the tokens produced by Lex is stored in segments borrowed from
// the Segments pool. The segments are held by the lexer until the token list
// is passed to Recycle, so at most one token list from a given lexer should
// be outstanding at a time. A Lexer is not safe for concurrent use.
type Lexer struct {
	pools    Pools
	escapes  bool // decode escape sequences in strings
	comments bool // skip comments

	arena []*pool.Segment // segments holding text of the outstanding tokens
}

// NewLexer constructs a Lexer that borrows from the given pools.
func NewLexer(p Pools) *Lexer {
	if p.Tokens == nil {
		p.Tokens = pool.New(NewTokenList, 0)
	}
	if p.Buffers == nil {
		p.Buffers = pool.New(NewTextBuffer, 0)
	}
	if p.Segments == nil {
		p.Segments = pool.New(func() *pool.Segment { return pool.NewSegment(0) }, 0)
	}
	return &Lexer{pools: p}
}

// DecodeEscapes configures the lexer to decode (true) or copy verbatim
// (false) the contents of string literals. When decoding is enabled, a
// quotation mark preceded by a backslash does not end a string, and escape
// sequences are replaced by the characters they denote. By default strings
// are copied verbatim and end at the first quotation mark.
func (lx *Lexer) DecodeEscapes(ok bool) { lx.escapes = ok }

// AllowComments configures the lexer to accept (true) or reject (false)
// comments. Comments are a non-standard extension.  If enabled, C++ style
// block comments (/* ... */) and line comments (// ...) are skipped like
// whitespace, and produce no tokens. A line comment ends at a newline or at
// the end of the input.
func (lx *Lexer) AllowComments(ok bool) { lx.comments = ok }

// Lex scans text and returns its tokens in document order. In case of error,
// Lex returns nil and an error of concrete type *SyntaxError. On success, the caller must
// pass the token list to Recycle when it is no longer needed.
func (lx *Lexer) Lex(text string) (*TokenList, error) { return lx.lex(mem.S(text)) }

// LexBytes scans text and returns its tokens, as Lex.
func (lx *Lexer) LexBytes(text []byte) (*TokenList, error) { return lx.lex(mem.B(text)) }

// Recycle returns tl and the storage for the text of its tokens to the pools
// of lx. After Recycle, the token text previously produced by lx is invalid.
func (lx *Lexer) Recycle(tl *TokenList) {
	for i, seg := range lx.arena {
		lx.pools.Segments.Release(seg)
		lx.arena[i] = nil
	}
	lx.arena = lx.arena[:0]
	tl.Reset()
	lx.pools.Tokens.Release(tl)
}

func (lx *Lexer) lex(src mem.RO) (*TokenList, error) {
	lx.addSegment()
	tl := lx.pools.Tokens.Get()
	tl.Reset()
	if err := lx.scan(src, tl); err != nil {
		lx.Recycle(tl)
		return nil, err
	}
	return tl, nil
}

// scan appends the tokens of src to tl, stopping at the first error.
func (lx *Lexer) scan(src mem.RO, tl *TokenList) error {
	tl.End = src.Len()
	i := 0
	for i < src.Len() {
		ch := src.At(i)

		// Discard whitespace.
		if isSpace(ch) {
			i++
			continue
		}

		// Handle punctuation.
		if k, ok := selfDelim(ch); ok {
			tl.add(k, nil, i, i+1)
			i++
			continue
		}

		var err error
		switch {
		case ch == '"':
			i, err = lx.scanString(src, i, tl)
		case ch == '/' && lx.comments:
			i, err = lx.scanComment(src, i)
		case ch == 't' || ch == 'f' || ch == 'n':
			i, err = lx.scanName(src, i, tl)
		case isNumStart(ch):
			i = lx.scanNumber(src, i, tl)
		default:
			r, _ := mem.DecodeRune(src.SliceFrom(i))
			err = lx.failf(src, UnexpectedCharacter, i, "unexpected %q", r)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// scanString scans a string literal whose opening quote is at pos, and
// returns the offset following its closing quote.
func (lx *Lexer) scanString(src mem.RO, pos int, tl *TokenList) (int, error) {
	buf := lx.borrowBuffer()
	defer lx.pools.Buffers.Release(buf)

	body := src.SliceFrom(pos + 1)
	var n int
	if lx.escapes {
		n = indexUnescapedQuote(body)
	} else {
		n = mem.IndexByte(body, '"')
	}
	if n < 0 {
		return 0, lx.failf(src, UnterminatedString, pos, "missing closing quotation mark")
	}
	body = body.SliceTo(n)

	if lx.escapes {
		dec, err := escape.AppendUnquote(buf.AvailableBuffer(), body)
		if err != nil {
			return 0, lx.failf(src, InvalidEscape, pos, "%v", err)
		}
		buf.Write(dec)
	} else {
		buf.Write(mem.Append(buf.AvailableBuffer(), body))
	}

	end := pos + n + 2 // both quotation marks
	tl.add(String, lx.intern(buf.Bytes()), pos, end)
	return end, nil
}

// scanNumber scans a number beginning at pos, and returns the offset of the
// first byte following it. The text is not checked here; that is deferred
// to conversion.
func (lx *Lexer) scanNumber(src mem.RO, pos int, tl *TokenList) int {
	buf := lx.borrowBuffer()
	defer lx.pools.Buffers.Release(buf)

	end := pos
	for end < src.Len() && isNumByte(src.At(end)) {
		buf.WriteByte(src.At(end))
		end++
	}
	tl.add(Number, lx.intern(buf.Bytes()), pos, end)
	return end
}

var (
	trueText  = []byte("true")
	falseText = []byte("false")
	nullText  = []byte("null")
)

// scanName scans a constant beginning at pos, and returns the offset of the
// first byte following it. The whole run of lowercase letters starting at pos
// must spell the constant.
func (lx *Lexer) scanName(src mem.RO, pos int, tl *TokenList) (int, error) {
	end := pos + 1
	for end < src.Len() && isNameByte(src.At(end)) {
		end++
	}

	var kind Kind
	var want []byte
	switch src.At(pos) {
	case 't':
		kind, want = Bool, trueText
	case 'f':
		kind, want = Bool, falseText
	default:
		kind, want = Null, nullText
	}
	if got := src.Slice(pos, end); !got.Equal(mem.B(want)) {
		return 0, lx.failf(src, InvalidLiteralSpelling, pos, "got %q, want %q", got.StringCopy(), want)
	}
	tl.add(kind, lx.intern(want), pos, end)
	return end, nil
}

// scanComment skips a comment beginning at pos, and returns the offset of the
// first byte following it.
func (lx *Lexer) scanComment(src mem.RO, pos int) (int, error) {
	if pos+1 >= src.Len() {
		return 0, lx.failf(src, UnexpectedCharacter, pos, "incomplete comment")
	}
	rest := src.SliceFrom(pos + 2)
	switch src.At(pos + 1) {
	case '/': // line comment to LF
		if n := mem.IndexByte(rest, '\n'); n >= 0 {
			return pos + 2 + n + 1, nil
		}
		return src.Len(), nil

	case '*': // block comment
		if n := mem.Index(rest, mem.S("*/")); n >= 0 {
			return pos + 2 + n + 2, nil
		}
		return 0, lx.failf(src, UnterminatedComment, pos, "missing closing */")

	default:
		r, _ := mem.DecodeRune(src.SliceFrom(pos + 1))
		return 0, lx.failf(src, UnexpectedCharacter, pos, "invalid %q in comment", r)
	}
}

func (lx *Lexer) borrowBuffer() *bytes.Buffer {
	buf := lx.pools.Buffers.Get()
	buf.Reset()
	return buf
}

func (lx *Lexer) addSegment() *pool.Segment {
	seg := lx.pools.Segments.Get()
	seg.Reset()
	lx.arena = append(lx.arena, seg)
	return seg
}

// intern stores a copy of text in the arena and returns a slice of the copy.
// Text too large to share a segment gets a copy of its own.
func (lx *Lexer) intern(text []byte) []byte {
	const largeSizeFraction = 4

	if n := len(lx.arena); n > 0 {
		last := lx.arena[n-1]
		if out, ok := last.Append(text); ok {
			return out
		} else if len(text) >= last.Cap()/largeSizeFraction {
			return bytes.Clone(text)
		}
	}

	// No room in the current segment; start a new one.
	if out, ok := lx.addSegment().Append(text); ok {
		return out
	}
	return bytes.Clone(text)
}

func (lx *Lexer) failf(src mem.RO, kind ErrorKind, offset int, msg string, args ...any) error {
	e := NewSyntaxError(kind, offset, -1, msg, args...)
	e.Location = locate(src, offset)
	return e
}

// indexUnescapedQuote returns the offset of the first quotation mark in s not
// preceded by a backslash escape, or -1.
func indexUnescapedQuote(s mem.RO) int {
	for i := 0; i < s.Len(); i++ {
		switch s.At(i) {
		case '\\':
			i++ // skip the escaped byte
		case '"':
			return i
		}
	}
	return -1
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isNumByte(ch byte) bool {
	return isDigit(ch) || ch == '.' || ch == '-' || ch == '+' || ch == 'e' || ch == 'E'
}

var self = [...]Kind{ObjectStart, ObjectEnd, ArrayStart, ArrayEnd, Comma, Colon}

func selfDelim(ch byte) (Kind, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
