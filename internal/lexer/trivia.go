package lexer

import (
	"strconv"
	"strings"

	"github.com/ecordell/pubif/internal/token"
)

// skipTrivia consumes whitespace and comments. Doc comments are emitted as
// attribute tokens on the way.
func (l *lexer) skipTrivia() error {
	for !l.cur.eof() {
		c := l.cur.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			l.cur.bump()
		case l.cur.hasPrefix("//"):
			l.lineComment()
		case l.cur.hasPrefix("/*"):
			if err := l.blockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) lineComment() {
	start := l.cur.off
	for !l.cur.eof() && l.cur.peek() != '\n' {
		l.cur.bump()
	}
	text := strings.TrimSuffix(string(l.cur.src[start:l.cur.off]), "\r")
	switch {
	case strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////"):
		l.emitDoc(start, text[3:], false)
	case strings.HasPrefix(text, "//!"):
		l.emitDoc(start, text[3:], true)
	}
}

func (l *lexer) blockComment() error {
	start := l.cur.off
	l.cur.off += 2
	depth := 1
	for depth > 0 {
		switch {
		case l.cur.eof():
			return l.errorf(start, "unterminated block comment")
		case l.cur.hasPrefix("/*"):
			l.cur.off += 2
			depth++
		case l.cur.hasPrefix("*/"):
			l.cur.off += 2
			depth--
		default:
			l.cur.bump()
		}
	}
	text := string(l.cur.src[start:l.cur.off])
	switch {
	case len(text) < 5:
		// "/**/"
	case strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***"):
		l.emitDoc(start, text[3:len(text)-2], false)
	case strings.HasPrefix(text, "/*!"):
		l.emitDoc(start, text[3:len(text)-2], true)
	}
	return nil
}

// emitDoc emits #[doc = "text"], or #![doc = "text"] for inner docs. All
// tokens carry the span of the comment they came from.
func (l *lexer) emitDoc(start int, text string, inner bool) {
	span := spanOf(start, l.cur.off)
	at := func(t token.Token) token.Token {
		t.Span = span
		return t
	}
	l.emit(at(token.NewPunct('#', token.Alone)))
	if inner {
		l.emit(at(token.NewPunct('!', token.Alone)))
	}
	l.emit(at(token.NewGroup(token.Bracket, token.Stream{
		at(token.NewIdent("doc")),
		at(token.NewPunct('=', token.Alone)),
		at(token.NewLiteral(Quote(text))),
	})))
}

// Quote renders s as a string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\u{`)
				b.WriteString(strconv.FormatInt(int64(r), 16))
				b.WriteByte('}')
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
