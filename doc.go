// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package lowjson implements a low-allocation lexer for JSON text.
//
// # Lexing
//
// The Lexer type converts a complete input into a TokenList, an ordered
// sequence of tokens in document order. A Lexer borrows all its working
// storage from pools (see package pool): one token list per call, one text
// buffer per literal token, and the segments that hold token text.
//
//	lx := lowjson.NewLexer(lowjson.Pools{})
//	tl, err := lx.Lex(input)
//	if err != nil {
//	   log.Fatalf("Lex failed: %v", err)
//	}
//	defer lx.Recycle(tl)
//	for _, tok := range tl.Tokens {
//	   log.Printf("%v %q at %d", tok.Kind, tok.Text, tok.Span.Pos)
//	}
//
// The Text of each literal token refers to storage borrowed by the lexer, and
// remains valid until the token list is passed to Recycle. A caller that
// needs to keep token text beyond that point must copy it.
//
// # Errors
//
// The lexer stops at the first malformed input and reports an error of
// concrete type *SyntaxError, having returned everything it borrowed to its
// pools. The Kind of a SyntaxError is an ErrorKind, which is also an error,
// so callers can check for a particular kind with errors.Is:
//
//	if errors.Is(err, lowjson.UnterminatedString) {
//	   // ...
//	}
//
// To build a tree of values from the tokens, see package ast.
package lowjson
