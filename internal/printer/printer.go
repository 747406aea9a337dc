// Package printer renders token trees as source text.
package printer

import (
	"strings"

	"github.com/ecordell/pubif/internal/token"
)

// Print renders s on a single line. The output lexes back to the same tokens.
func Print(s token.Stream) string {
	var p printer
	p.stream(s)
	return p.buf.String()
}

type elemKind uint8

const (
	elemNone elemKind = iota
	elemWord          // identifier or literal
	elemOp
	elemGroup
)

type elem struct {
	kind  elemKind
	op    string
	delim token.Delimiter
}

type printer struct {
	buf  strings.Builder
	prev elem
}

// Operators that bind to whatever follows them.
var glueAfter = map[string]bool{
	"#": true, "::": true, ".": true, "'": true, "&": true, "<": true, "!": true, "$": true, "?": true,
}

// Operators that bind to whatever precedes them.
var glueBefore = map[string]bool{
	",": true, ";": true, ":": true, "::": true, ".": true, "?": true,
}

// fusing holds the character pairs that would lex as one operator or open a
// comment if two operators were printed back to back.
var fusing = map[string]bool{
	"::": true, "->": true, "=>": true, "==": true, "!=": true, "<=": true, ">=": true,
	"&&": true, "||": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"^=": true, "&=": true, "|=": true, "<<": true, ">>": true, "..": true,
	"//": true, "/*": true, "*/": true,
}

func fuses(a, b string) bool {
	return fusing[a[len(a)-1:]+b[:1]]
}

func (p *printer) stream(s token.Stream) {
	for i := 0; i < len(s); i++ {
		t := s[i]
		switch t.Kind {
		case token.Punct:
			var op strings.Builder
			op.WriteString(t.Text)
			for t.Spacing == token.Joint && i+1 < len(s) && s[i+1].Kind == token.Punct {
				i++
				t = s[i]
				op.WriteString(t.Text)
			}
			next := elem{kind: elemOp, op: op.String()}
			p.space(next)
			p.buf.WriteString(next.op)
			p.prev = next
		case token.Group:
			next := elem{kind: elemGroup, delim: t.Delim}
			p.space(next)
			p.group(t)
			p.prev = next
		default:
			next := elem{kind: elemWord}
			p.space(next)
			p.buf.WriteString(t.Text)
			p.prev = next
		}
	}
}

func (p *printer) group(t token.Token) {
	if t.Delim == token.None {
		p.stream(t.Stream)
		return
	}
	p.buf.WriteByte(t.Delim.Open())
	p.prev = elem{}
	if t.Delim == token.Brace && len(t.Stream) > 0 {
		p.buf.WriteByte(' ')
		p.stream(t.Stream)
		p.buf.WriteByte(' ')
	} else {
		p.stream(t.Stream)
	}
	p.buf.WriteByte(t.Delim.Close())
}

func (p *printer) space(next elem) {
	if needsSpace(p.prev, next) {
		p.buf.WriteByte(' ')
	}
}

func needsSpace(prev, next elem) bool {
	switch {
	case prev.kind == elemNone:
		return false
	case prev.kind == elemOp && next.kind == elemOp:
		if fuses(prev.op, next.op) {
			return true
		}
		switch next.op {
		case ",", ";", "::", ".":
			return false
		}
		return !glueAfter[prev.op]
	case prev.kind == elemOp && glueAfter[prev.op]:
		return false
	}
	switch next.kind {
	case elemOp:
		if glueBefore[next.op] {
			return false
		}
		if next.op == "<" && prev.kind == elemWord {
			return false
		}
		return next.op != ">" && next.op != ">>"
	case elemGroup:
		return next.delim == token.Brace || prev.kind == elemOp
	default:
		return true
	}
}
