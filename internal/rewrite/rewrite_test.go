package rewrite

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecordell/pubif/gate"
	"github.com/ecordell/pubif/internal/config"
	"github.com/ecordell/pubif/internal/diag"
	"github.com/ecordell/pubif/internal/lexer"
)

const nestedModule = `mod inner {
    use pub_if::pub_if;

    /// A struct.
    #[pub_if(feature = "foo")]
    #[derive(Debug)]
    pub struct Struct {
        field: i32,
        pub bar: String,
    }

    impl Struct {}
}
`

func TestFileNestedModule(t *testing.T) {
	res := File("lib.rs", []byte(nestedModule), config.Default())
	require.Empty(t, res.Diagnostics)

	want := `mod inner {
    use pub_if::pub_if;

    /// A struct.
    #[cfg(feature = "foo")]
    #[derive(Debug)]
    pub struct Struct {
        pub field: i32,
        pub bar: String,
    }
    /// A struct.
    #[cfg(not(feature = "foo"))]
    #[derive(Debug)]
    pub struct Struct {
        field: i32,
        pub bar: String,
    }

    impl Struct {}
}
`
	assert.Equal(t, want, string(res.Output))
	assert.True(t, res.Changed([]byte(nestedModule)))

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, "Struct", rec.Name)
	assert.Equal(t, "lib.rs", rec.File)
	assert.Equal(t, `feature = "foo"`, rec.Condition)
	assert.Equal(t, []gate.Member{{Name: "field"}, {Name: "bar", Visible: true}}, rec.Members)
	assert.Equal(t, strings.Index(nestedModule, "/// A struct."), int(rec.Span.Start))
	assert.Equal(t, strings.Index(nestedModule, "    }\n\n    impl")+len("    }"), int(rec.Span.End))
}

func TestFileQualifiedAttributeAndGenerics(t *testing.T) {
	src := "#[pub_if::pub_if(test)] struct S<T, const N: usize = { 2 }> { a: [T; N] }\nfn main() {}\n"
	res := File("lib.rs", []byte(src), config.Default())
	require.Empty(t, res.Diagnostics)
	assert.Equal(t,
		"#[cfg(test)] struct S<T, const N: usize = { 2 }> { pub a: [T; N] }\n"+
			"#[cfg(not(test))] struct S<T, const N: usize = { 2 }> { a: [T; N] }\n"+
			"fn main() {}\n",
		string(res.Output))
}

func TestFileMultipleSites(t *testing.T) {
	src := "#[pub_if(a)]\nstruct A { x: u8 }\n\n#[pub_if(b)]\nstruct B { y: u8 }\n"
	res := File("lib.rs", []byte(src), config.Default())
	require.Empty(t, res.Diagnostics)
	assert.Equal(t,
		"#[cfg(a)]\nstruct A { pub x: u8 }\n#[cfg(not(a))]\nstruct A { x: u8 }\n\n"+
			"#[cfg(b)]\nstruct B { pub y: u8 }\n#[cfg(not(b))]\nstruct B { y: u8 }\n",
		string(res.Output))
	require.Len(t, res.Records, 2)
	assert.Equal(t, "A", res.Records[0].Name)
	assert.Equal(t, "B", res.Records[1].Name)
}

func TestFileKeepsComments(t *testing.T) {
	src := `#[pub_if(test)]
struct S {
    // SAFETY: only read under the lock.
    a: u8, /* padding */
    pub b: u8,
}
`
	res := File("lib.rs", []byte(src), config.Default())
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, `#[cfg(test)]
struct S {
    // SAFETY: only read under the lock.
    pub a: u8, /* padding */
    pub b: u8,
}
#[cfg(not(test))]
struct S {
    // SAFETY: only read under the lock.
    a: u8, /* padding */
    pub b: u8,
}
`, string(res.Output))
}

func TestFileCopiesLeadingAttributes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "docs and derives",
			src:  "/// Docs.\n#[derive(Clone)]\n#[pub_if(x)]\nstruct S { a: u8 }\n",
			want: "/// Docs.\n#[derive(Clone)]\n#[cfg(x)]\nstruct S { pub a: u8 }\n" +
				"/// Docs.\n#[derive(Clone)]\n#[cfg(not(x))]\nstruct S { a: u8 }\n",
		},
		{
			name: "inner attribute stays put",
			src:  "#![allow(dead_code)]\n#[pub_if(x)]\nstruct S { a: u8 }\n",
			want: "#![allow(dead_code)]\n#[cfg(x)]\nstruct S { pub a: u8 }\n#[cfg(not(x))]\nstruct S { a: u8 }\n",
		},
		{
			name: "previous item is not copied",
			src:  "struct A;\n#[pub_if(x)] struct S { a: u8 }\n",
			want: "struct A;\n#[cfg(x)] struct S { pub a: u8 }\n#[cfg(not(x))] struct S { a: u8 }\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := File("lib.rs", []byte(tt.src), config.Default())
			require.Empty(t, res.Diagnostics)
			assert.Equal(t, tt.want, string(res.Output))
		})
	}
}

func TestFileStopsAtOtherItems(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		found string
	}{
		{
			name:  "function",
			src:   "#[pub_if(feature = \"x\")]\nfn helper() -> u8 { 1 }\n\nstruct Other { a: i32 }\n",
			found: "found `fn`",
		},
		{
			name:  "impl block",
			src:   "#[pub_if(test)] impl Foo { fn f(&self) {} }\npub struct Bar { a: u8 }\n",
			found: "found `impl`",
		},
		{
			name:  "macro",
			src:   "#[pub_if(test)] macro_rules! m { () => {} }\nstruct S { a: u8 }\n",
			found: "found `macro_rules`",
		},
		{
			name:  "bare block",
			src:   "#[pub_if(test)] unsafe { }\nstruct S { a: u8 }\n",
			found: "found a block",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := File("lib.rs", []byte(tt.src), config.Default())
			require.Len(t, res.Diagnostics, 1)
			assert.Contains(t, res.Diagnostics[0].Message, "must be followed by a struct declaration")
			assert.Contains(t, res.Diagnostics[0].Message, tt.found)
			assert.Equal(t, 0, int(res.Diagnostics[0].Span.Start))
			assert.Empty(t, res.Records)
			assert.Equal(t, tt.src, string(res.Output))
		})
	}
}

func TestFileLexErrorMessage(t *testing.T) {
	src := []byte("struct S { a: u8 )")
	_, err := lexer.Lex(src)
	var lerr *lexer.Error
	require.True(t, errors.As(err, &lerr))

	res := File("lib.rs", src, config.Default())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, lerr.Msg, res.Diagnostics[0].Message)
	assert.Equal(t, lerr.Span, res.Diagnostics[0].Span)
}

func TestFileWithoutSites(t *testing.T) {
	src := []byte("// nothing here\nstruct Plain { a: u8 }\n")
	res := File("lib.rs", src, config.Default())
	assert.Empty(t, res.Diagnostics)
	assert.Empty(t, res.Records)
	assert.False(t, res.Changed(src))
}

func TestFileCustomAttribute(t *testing.T) {
	cfg := config.Default()
	cfg.Attribute = "expose_if"
	src := "#[pub_if(a)] struct A { x: u8 }\n#[expose_if(b)] struct B { y: u8 }\n"
	res := File("lib.rs", []byte(src), cfg)
	require.Empty(t, res.Diagnostics)
	assert.Equal(t,
		"#[pub_if(a)] struct A { x: u8 }\n#[cfg(b)] struct B { pub y: u8 }\n#[cfg(not(b))] struct B { y: u8 }\n",
		string(res.Output))
}

func TestFileDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		cfg   func(*config.Config)
		msg   string
		start int
	}{
		{
			name:  "enum",
			src:   "#[pub_if(x)] pub enum E { A }",
			msg:   "only supports struct declarations, found enum",
			start: 17,
		},
		{
			name:  "tuple struct",
			src:   "#[pub_if(x)] pub struct T(u8);",
			msg:   "does not support tuple or unit declarations",
			start: 29,
		},
		{
			name:  "no condition",
			src:   "#[pub_if] struct S { a: u8 }",
			msg:   "needs a condition",
			start: 0,
		},
		{
			name:  "empty condition",
			src:   "#[pub_if()] struct S { a: u8 }",
			msg:   "needs a condition",
			start: 0,
		},
		{
			name:  "not followed by a declaration",
			src:   "#[pub_if(x)] fn f() {}",
			msg:   "must be followed by a struct declaration",
			start: 0,
		},
		{
			name:  "strict prefix",
			src:   "#[pub_if(x)] unsafe struct S { a: u8 }",
			cfg:   func(c *config.Config) { c.Strict = true },
			msg:   `unexpected ident "unsafe"`,
			start: 13,
		},
		{
			name:  "lexer error",
			src:   "#[pub_if(x)] struct S { a: u8 ",
			msg:   "unclosed delimiter",
			start: 22,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			res := File("lib.rs", []byte(tt.src), cfg)
			require.Len(t, res.Diagnostics, 1)
			d := res.Diagnostics[0]
			assert.Equal(t, diag.Error, d.Severity)
			assert.Equal(t, "lib.rs", d.File)
			assert.Contains(t, d.Message, tt.msg)
			assert.Equal(t, tt.start, int(d.Span.Start))
			assert.Equal(t, tt.src, string(res.Output), "failed sites are left untouched")
		})
	}
}

func TestFileLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	File("lib.rs", []byte("#[pub_if(x)] struct S { a: u8 }"), config.Default(), WithLogger(logger))
	assert.Contains(t, buf.String(), "expanded declaration")
	assert.Contains(t, buf.String(), "name=S")
}

func TestIndentAt(t *testing.T) {
	src := []byte("a\n    #[x]\nfoo #[y]")
	assert.Equal(t, "    ", indentAt(src, 6))
	assert.Equal(t, "", indentAt(src, 0))
	assert.Equal(t, "", indentAt(src, 16))
}
