package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestPredicates(t *testing.T) {
	pub := NewIdent("pub")
	assert.True(t, pub.IsIdent("pub"))
	assert.False(t, pub.IsIdent("struct"))
	assert.False(t, pub.IsPunct('p'))

	colon := NewPunct(':', Alone)
	assert.True(t, colon.IsPunct(':'))
	assert.False(t, colon.IsIdent(":"))

	g := NewGroup(Brace, Stream{pub})
	assert.True(t, g.IsGroup(Brace))
	assert.False(t, g.IsGroup(Parenthesis))
}

func TestNewGroupCopiesStream(t *testing.T) {
	inner := Stream{NewIdent("a"), NewIdent("b")}
	g := NewGroup(Parenthesis, inner)
	inner[0] = NewIdent("z")
	assert.Equal(t, "a", g.Stream[0].Text)
}

func TestString(t *testing.T) {
	s := Stream{
		NewPunct('#', Alone),
		NewGroup(Bracket, Stream{
			NewIdent("cfg"),
			NewGroup(Parenthesis, Stream{NewIdent("test")}),
		}),
	}
	assert.Equal(t, "# [cfg (test)]", s.String())
	assert.Equal(t, "group", Group.String())
}

func TestSpanIsZero(t *testing.T) {
	assert.True(t, Span{}.IsZero())
	assert.False(t, Span{Start: 0, End: 3}.IsZero())
}

func TestMsgpackRoundTrip(t *testing.T) {
	in := Stream{
		{Kind: Ident, Text: "pub", Span: Span{Start: 0, End: 3}},
		NewGroup(Parenthesis, Stream{NewIdent("crate")}),
		NewPunct(':', Joint),
		NewLiteral(`"foo"`),
	}
	raw, err := msgpack.Marshal(in)
	require.NoError(t, err)

	var out Stream
	require.NoError(t, msgpack.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}
