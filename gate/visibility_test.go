package gate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecordell/pubif/internal/printer"
	"github.com/ecordell/pubif/internal/token"
)

func membersOf(t *testing.T, src string) token.Token {
	t.Helper()
	s := lex(t, src)
	require.Len(t, s, 1)
	require.Equal(t, token.Group, s[0].Kind)
	return s[0]
}

func countIdent(s token.Stream, name string) int {
	n := 0
	for _, t := range s {
		if t.IsIdent(name) {
			n++
		}
	}
	return n
}

func TestMakeAllVisible(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "{}", "{}"},
		{"single", "{ a: u8 }", "{ pub a: u8 }"},
		{"mixed", "{ a: u8, pub b: u8, c: u8 }", "{ pub a: u8, pub b: u8, pub c: u8 }"},
		{"scoped", "{ pub(crate) a: u8, b: u8 }", "{ pub(crate) a: u8, pub b: u8 }"},
		{"scoped path", "{ pub(in crate::x) a: u8 }", "{ pub(in crate::x) a: u8 }"},
		{"trailing comma", "{ a: u8, }", "{ pub a: u8, }"},
		{"paths", "{ a: std::vec::Vec<u8> }", "{ pub a: std::vec::Vec<u8> }"},
		{"generic args", "{ a: HashMap<K, V>, b: u8 }", "{ pub a: HashMap<K, V>, pub b: u8 }"},
		{"member attributes", "{ #[serde(rename = \"x\")] a: u8 }", "{ #[serde(rename = \"x\")] pub a: u8 }"},
		{"semicolon separator", "{ a: u8; b: u8 }", "{ pub a: u8; pub b: u8 }"},
		{"raw identifier", "{ r#type: u8 }", "{ pub r#type: u8 }"},
		{"malformed member", "{ a u8, b: u8 }", "{ a u8, pub b: u8 }"},
		{"tuple fields untouched", "(u8, String)", "(u8, String)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeAllVisible(membersOf(t, tt.in))
			assert.Equal(t, printer.Print(token.Stream{membersOf(t, tt.want)}), printer.Print(token.Stream{got}))
		})
	}
}

func TestMakeAllVisibleKeepsDelimiterAndSpan(t *testing.T) {
	g := membersOf(t, "{ a: u8 }")
	got := MakeAllVisible(g)
	assert.Equal(t, token.Brace, got.Delim)
	assert.Equal(t, g.Span, got.Span)
	assert.True(t, got.Stream[0].Span.IsZero(), "inserted keyword is synthesized")
}

func TestMakeAllVisibleIdempotent(t *testing.T) {
	for _, src := range []string{
		"{ pub a: u8, pub b: String }",
		"{ pub(crate) a: u8, pub(super) b: Vec<u8>, pub c: std::string::String }",
		"{ #[doc = \"x\"] pub a: u8, }",
	} {
		t.Run(src, func(t *testing.T) {
			g := membersOf(t, src)
			got := MakeAllVisible(g)
			if diff := cmp.Diff(g, got); diff != "" {
				t.Errorf("already visible members changed (-want +got):\n%s", diff)
			}

			again := MakeAllVisible(got)
			assert.Empty(t, cmp.Diff(got, again))
		})
	}
}

func TestMakeAllVisibleCompleteness(t *testing.T) {
	for _, src := range []string{
		"{ a: u8 }",
		"{ a: u8, b: u8, c: u8 }",
		"{ pub a: u8, b: Option<Box<u8>>, pub(crate) c: u8 }",
		"{ a: [u8; 4], b: fn(x: u8) -> u8, c: std::io::Result<()> }",
		"{ #[allow(unused)] a: u8, /// doc\n b: u8 }",
	} {
		t.Run(src, func(t *testing.T) {
			g := membersOf(t, src)
			members := Members(g)
			got := MakeAllVisible(g)
			assert.Equal(t, len(members), countIdent(got.Stream, "pub"),
				"one visibility keyword per member")
			for _, m := range Members(got) {
				assert.True(t, m.Visible, "member %s should be visible", m.Name)
			}
		})
	}
}

func TestMembers(t *testing.T) {
	got := Members(membersOf(t, "{ a: u8, pub b: std::string::String, pub(crate) c: Vec<u8>, d: fn(x: u8) }"))
	assert.Equal(t, []Member{
		{Name: "a", Visible: false},
		{Name: "b", Visible: true},
		{Name: "c", Visible: true},
		{Name: "d", Visible: false},
	}, got)
}

func TestMembersCustomKeyword(t *testing.T) {
	got := Members(membersOf(t, "{ export a: u8, b: u8 }"), WithVisibilityKeyword("export"))
	assert.Equal(t, []Member{{Name: "a", Visible: true}, {Name: "b", Visible: false}}, got)
}

func TestHiddenNames(t *testing.T) {
	got := HiddenNames(membersOf(t, "{ a: u8, pub b: u8, c: u8 }"))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, token.Span{Start: 2, End: 3}, got[0].Span)
	assert.Equal(t, "c", got[1].Text)
	assert.Equal(t, token.Span{Start: 20, End: 21}, got[1].Span)

	assert.Empty(t, HiddenNames(membersOf(t, "{ pub a: u8, pub(super) b: u8 }")))
}
