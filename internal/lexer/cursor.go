package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/ecordell/pubif/internal/token"
)

// cursor is a byte position in the source being lexed.
type cursor struct {
	src []byte
	off int
}

func (c *cursor) eof() bool { return c.off >= len(c.src) }

// peek returns the current byte, or 0 at the end of input.
func (c *cursor) peek() byte { return c.peekAt(0) }

// peekAt returns the byte n positions ahead, or 0 past the end of input.
func (c *cursor) peekAt(n int) byte {
	if c.off+n >= len(c.src) {
		return 0
	}
	return c.src[c.off+n]
}

// bump advances by one byte and returns the byte that was read.
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// eat consumes b if it is the current byte.
func (c *cursor) eat(b byte) bool {
	if !c.eof() && c.src[c.off] == b {
		c.off++
		return true
	}
	return false
}

// hasPrefix reports whether the remaining input starts with s.
func (c *cursor) hasPrefix(s string) bool {
	if c.off+len(s) > len(c.src) {
		return false
	}
	return string(c.src[c.off:c.off+len(s)]) == s
}

type mark int

func (c *cursor) mark() mark { return mark(c.off) }

// spanFrom returns the span between m and the current offset.
func (c *cursor) spanFrom(m mark) token.Span {
	return spanOf(int(m), c.off)
}

// text returns the source bytes between m and the current offset.
func (c *cursor) text(m mark) string {
	return string(c.src[int(m):c.off])
}

func spanOf(start, end int) token.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return token.Span{Start: s, End: e}
}
