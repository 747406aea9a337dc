package printer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecordell/pubif/internal/lexer"
	"github.com/ecordell/pubif/internal/token"
)

func TestPrint(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`#[cfg(feature = "foo")]`, `#[cfg(feature = "foo")]`},
		{`#[cfg(not(feature="foo"))]`, `#[cfg(not(feature = "foo"))]`},
		{"pub struct S { field: i32, pub bar: String }", "pub struct S { field: i32, pub bar: String }"},
		{"pub struct S<T>{a:T}", "pub struct S<T> { a: T }"},
		{"pub(crate) struct S {}", "pub(crate) struct S {}"},
		{"x: std::collections::HashMap<K, V>", "x: std::collections::HashMap<K, V>"},
		{"F: Fn(&'a str) -> Option<Vec<u8>>", "F: Fn(&'a str) -> Option<Vec<u8>>"},
		{"struct S<'a, T: 'a>", "struct S<'a, T: 'a>"},
		{"#![doc = \"x\"]", "#![doc = \"x\"]"},
		{"a: [u8; 4]", "a: [u8; 4]"},
		{"const N: usize = { 4 * 16 }", "const N: usize = { 4 * 16 }"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s, err := lexer.Lex([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, Print(s))
		})
	}
}

func TestPrintSynthesized(t *testing.T) {
	s := token.Stream{
		token.NewPunct('#', token.Alone),
		token.NewGroup(token.Bracket, token.Stream{
			token.NewIdent("cfg"),
			token.NewGroup(token.Parenthesis, token.Stream{token.NewIdent("test")}),
		}),
		token.NewIdent("struct"),
		token.NewIdent("S"),
		token.NewGroup(token.Brace, nil),
	}
	assert.Equal(t, "#[cfg(test)] struct S {}", Print(s))
}

func TestPrintSeparatesOperators(t *testing.T) {
	// Two Alone puncts that would fuse if printed together.
	s := token.Stream{
		token.NewIdent("a"),
		token.NewPunct('>', token.Alone),
		token.NewPunct('>', token.Alone),
		token.NewPunct('=', token.Alone),
		token.NewPunct('/', token.Alone),
		token.NewPunct('/', token.Alone),
	}
	assert.Equal(t, "a> > = / /", Print(s))
}

func TestPrintRoundTrip(t *testing.T) {
	for _, src := range []string{
		"pub struct Buf<T: Copy, const N: usize = { 4 * 16 }> { data: [T; N], pub len: usize, }",
		"pub struct Cb<'a, F: Fn(&'a str) -> Option<Vec<u8>>> { callback: F, name: &'a str }",
		"#[derive(Debug)] #[serde(rename_all = \"camelCase\")] pub(in crate::a) struct X { a: u8 }",
		"struct S { a: Vec<Vec<u8> >, b: *const u8, c: Option<&'static mut [u8]> }",
		"x == y != z <= w && v || !u",
	} {
		t.Run(src, func(t *testing.T) {
			first, err := lexer.Lex([]byte(src))
			require.NoError(t, err)
			printed := Print(first)
			second, err := lexer.Lex([]byte(printed))
			require.NoError(t, err)

			ignoreSpans := cmpopts.IgnoreFields(token.Token{}, "Span")
			if diff := cmp.Diff(first, second, ignoreSpans); diff != "" {
				t.Errorf("relexed tokens differ for %q (-first +second):\n%s", printed, diff)
			}
			assert.Equal(t, printed, Print(second), "printing is stable")
		})
	}
}
