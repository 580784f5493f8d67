// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/lowjson/ast"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ValueOptions are options for comparing ast.Value trees with cmp.
var ValueOptions = cmp.Options{
	cmp.AllowUnexported(ast.Value{}),
	cmpopts.EquateEmpty(),
}

// MustParse parses text with dec, or fails the test.
func MustParse(t testing.TB, dec *ast.Decoder, text string) ast.Value {
	t.Helper()
	v, err := dec.ParseDocument(text)
	if err != nil {
		t.Fatalf("Parse %#q: unexpected error: %v", text, err)
	}
	return v
}
