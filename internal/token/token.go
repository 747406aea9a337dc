// Package token defines the token trees exchanged between the lexer, the
// declaration transformer and the printer.
package token

import "strings"

// Kind is the category of a token tree.
type Kind uint8

const (
	// Ident is an identifier or keyword.
	Ident Kind = iota
	// Punct is a single punctuation character.
	Punct
	// Literal is a string, character or numeric literal.
	Literal
	// Group is a delimited sequence of tokens.
	Group
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "ident"
	case Punct:
		return "punct"
	case Literal:
		return "literal"
	case Group:
		return "group"
	default:
		return "unknown"
	}
}

// Delimiter is the bracket pair that encloses a group.
type Delimiter uint8

const (
	// None is an invisible delimiter.
	None Delimiter = iota
	// Parenthesis is ( ... ).
	Parenthesis
	// Bracket is [ ... ].
	Bracket
	// Brace is { ... }.
	Brace
)

// Open returns the opening character of the delimiter, or 0 for None.
func (d Delimiter) Open() byte {
	switch d {
	case Parenthesis:
		return '('
	case Bracket:
		return '['
	case Brace:
		return '{'
	default:
		return 0
	}
}

// Close returns the closing character of the delimiter, or 0 for None.
func (d Delimiter) Close() byte {
	switch d {
	case Parenthesis:
		return ')'
	case Bracket:
		return ']'
	case Brace:
		return '}'
	default:
		return 0
	}
}

// Spacing tells whether a punct is glued to the punct that follows it.
type Spacing uint8

const (
	// Alone puncts end an operator.
	Alone Spacing = iota
	// Joint puncts continue into the next punct, as the first ':' of '::'.
	Joint
)

// Span is a half-open byte range in the source. The zero Span marks a
// synthesized token.
type Span struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
}

// IsZero reports whether the span does not point into any source.
func (s Span) IsZero() bool { return s.Start == 0 && s.End == 0 }

// Token is one token tree. Tokens are treated as immutable values: code that
// transforms tokens builds new ones instead of editing existing ones.
type Token struct {
	Kind    Kind      `msgpack:"k"`
	Text    string    `msgpack:"t,omitempty"`
	Spacing Spacing   `msgpack:"sp,omitempty"`
	Delim   Delimiter `msgpack:"d,omitempty"`
	Stream  Stream    `msgpack:"g,omitempty"`
	Span    Span      `msgpack:"span"`
}

// Stream is an ordered sequence of token trees.
type Stream []Token

// NewIdent returns a synthesized identifier.
func NewIdent(name string) Token {
	return Token{Kind: Ident, Text: name}
}

// NewPunct returns a synthesized punct.
func NewPunct(ch byte, spacing Spacing) Token {
	return Token{Kind: Punct, Text: string(ch), Spacing: spacing}
}

// NewLiteral returns a synthesized literal with the given source text.
func NewLiteral(text string) Token {
	return Token{Kind: Literal, Text: text}
}

// NewGroup returns a synthesized group owning a copy of stream.
func NewGroup(delim Delimiter, stream Stream) Token {
	return Token{Kind: Group, Delim: delim, Stream: stream.Clone()}
}

// IsIdent reports whether t is the identifier name.
func (t Token) IsIdent(name string) bool {
	return t.Kind == Ident && t.Text == name
}

// IsPunct reports whether t is the punct ch.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsGroup reports whether t is a group with the given delimiter.
func (t Token) IsGroup(delim Delimiter) bool {
	return t.Kind == Group && t.Delim == delim
}

// String renders t in a debugging form.
func (t Token) String() string {
	switch t.Kind {
	case Group:
		var b strings.Builder
		if o := t.Delim.Open(); o != 0 {
			b.WriteByte(o)
		}
		b.WriteString(t.Stream.String())
		if c := t.Delim.Close(); c != 0 {
			b.WriteByte(c)
		}
		return b.String()
	default:
		return t.Text
	}
}

// Clone returns a shallow copy of s. Nested groups are shared, which is safe
// because nothing edits a stream in place.
func (s Stream) Clone() Stream {
	if s == nil {
		return nil
	}
	out := make(Stream, len(s))
	copy(out, s)
	return out
}

// String renders s with single spaces between top-level tokens.
func (s Stream) String() string {
	parts := make([]string, 0, len(s))
	for _, t := range s {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}
