// Package lexer turns Rust-flavoured source text into token trees.
//
// The output follows the shape a compiler hands to an attribute macro:
// identifiers, single-character puncts with spacing, literals kept as their
// source text, and delimited groups. Comments are dropped except doc
// comments, which become #[doc = "..."] attributes.
package lexer

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/ecordell/pubif/internal/token"
)

// Error is a lexical error located in the source.
type Error struct {
	Span token.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Start, e.Span.End, e.Msg)
}

// operators are matched longest first.
var operators = []string{
	"<<=", ">>=", "...", "..=",
	"::", "->", "=>", "==", "!=", "<=", ">=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=", "<<", ">>", "..",
}

const singleOps = "+-*/%^!&|=<>@.,;:#$?~"

type frame struct {
	delim  token.Delimiter
	start  int
	stream token.Stream
}

type lexer struct {
	cur   cursor
	stack []frame
}

// Lex tokenizes src into a stream of token trees.
func Lex(src []byte) (token.Stream, error) {
	if uint64(len(src)) > math.MaxUint32 {
		return nil, &Error{Msg: "source too large"}
	}
	l := &lexer{cur: cursor{src: src}, stack: []frame{{delim: token.None}}}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.stack[0].stream, nil
}

func (l *lexer) emit(t token.Token) {
	top := &l.stack[len(l.stack)-1]
	top.stream = append(top.stream, t)
}

func (l *lexer) errorf(start int, format string, args ...any) error {
	end := l.cur.off
	if end <= start {
		end = start + 1
	}
	return &Error{Span: spanOf(start, end), Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) run() error {
	for {
		if err := l.skipTrivia(); err != nil {
			return err
		}
		if l.cur.eof() {
			break
		}
		start := l.cur.off
		c := l.cur.peek()
		var err error
		switch {
		case c == '(' || c == '[' || c == '{':
			l.cur.bump()
			l.stack = append(l.stack, frame{delim: delimOf(c), start: start})
		case c == ')' || c == ']' || c == '}':
			err = l.closeGroup(c)
		case c == '"':
			err = l.scanString(start)
		case c == '\'':
			err = l.scanQuote(start)
		case c >= '0' && c <= '9':
			l.scanNumber(start)
		case isIdentStart(l.cur.src[l.cur.off:]):
			err = l.scanWord(start)
		default:
			err = l.scanOperator(start)
		}
		if err != nil {
			return err
		}
	}
	if len(l.stack) > 1 {
		top := l.stack[len(l.stack)-1]
		return &Error{
			Span: spanOf(top.start, top.start+1),
			Msg:  fmt.Sprintf("unclosed delimiter %q", top.delim.Open()),
		}
	}
	return nil
}

func delimOf(c byte) token.Delimiter {
	switch c {
	case '(', ')':
		return token.Parenthesis
	case '[', ']':
		return token.Bracket
	default:
		return token.Brace
	}
}

func (l *lexer) closeGroup(c byte) error {
	start := l.cur.off
	l.cur.bump()
	if len(l.stack) == 1 {
		return l.errorf(start, "unexpected closing delimiter %q", c)
	}
	top := l.stack[len(l.stack)-1]
	if top.delim.Close() != c {
		return l.errorf(start, "mismatched closing delimiter %q, expected %q", c, top.delim.Close())
	}
	l.stack = l.stack[:len(l.stack)-1]
	l.emit(token.Token{
		Kind:   token.Group,
		Delim:  top.delim,
		Stream: top.stream,
		Span:   spanOf(top.start, l.cur.off),
	})
	return nil
}

func (l *lexer) scanOperator(start int) error {
	op := ""
	for _, candidate := range operators {
		if l.cur.hasPrefix(candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		c := l.cur.peek()
		for i := 0; i < len(singleOps); i++ {
			if singleOps[i] == c {
				op = string(c)
				break
			}
		}
	}
	if op == "" {
		r, _ := utf8.DecodeRune(l.cur.src[l.cur.off:])
		l.cur.bump()
		return l.errorf(start, "unexpected character %q", r)
	}
	for i := 0; i < len(op); i++ {
		spacing := token.Joint
		if i == len(op)-1 {
			spacing = token.Alone
		}
		p := token.NewPunct(op[i], spacing)
		p.Span = spanOf(start+i, start+i+1)
		l.emit(p)
	}
	l.cur.off += len(op)
	return nil
}

// scanWord handles identifiers plus the literal and raw-identifier forms
// introduced by a letter prefix (b'x', b"..", r"..", br#".."#, c"..", r#ident).
func (l *lexer) scanWord(start int) error {
	switch {
	case l.cur.hasPrefix("b'"):
		l.cur.bump()
		return l.scanCharLit(start)
	case l.cur.hasPrefix(`b"`), l.cur.hasPrefix(`c"`):
		l.cur.bump()
		return l.scanString(start)
	case l.cur.hasPrefix(`br"`), l.cur.hasPrefix("br#"), l.cur.hasPrefix(`cr"`), l.cur.hasPrefix("cr#"):
		l.cur.off += 2
		return l.scanRawString(start)
	case l.cur.hasPrefix(`r"`), l.cur.hasPrefix("r##"), l.cur.hasPrefix(`r#"`):
		l.cur.bump()
		return l.scanRawString(start)
	case l.cur.hasPrefix("r#") && isIdentStart(l.cur.src[l.cur.off+2:]):
		l.cur.off += 2
	}
	l.skipIdent()
	t := token.NewIdent(l.cur.text(mark(start)))
	t.Span = spanOf(start, l.cur.off)
	l.emit(t)
	return nil
}

func (l *lexer) skipIdent() {
	for !l.cur.eof() {
		r, size := utf8.DecodeRune(l.cur.src[l.cur.off:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		l.cur.off += size
	}
}

func isIdentStart(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	r, _ := utf8.DecodeRune(b)
	return r == '_' || unicode.IsLetter(r)
}

func (l *lexer) emitLiteral(start int) {
	// Literal suffixes such as 1u8 or "x"suffix belong to the literal.
	if isIdentStart(l.cur.src[l.cur.off:]) {
		l.skipIdent()
	}
	t := token.NewLiteral(l.cur.text(mark(start)))
	t.Span = spanOf(start, l.cur.off)
	l.emit(t)
}

func (l *lexer) scanNumber(start int) {
	hex := l.cur.hasPrefix("0x") || l.cur.hasPrefix("0X")
	l.scanDigits(hex)
	if l.cur.peek() == '.' && isDigit(l.cur.peekAt(1)) {
		l.cur.bump()
		l.scanDigits(hex)
	}
	l.emitLiteral(start)
}

func (l *lexer) scanDigits(hex bool) {
	for !l.cur.eof() {
		c := l.cur.peek()
		switch {
		case isDigit(c) || c == '_':
			l.cur.bump()
		case !hex && (c == 'e' || c == 'E') && (isDigit(l.cur.peekAt(1)) ||
			((l.cur.peekAt(1) == '+' || l.cur.peekAt(1) == '-') && isDigit(l.cur.peekAt(2)))):
			l.cur.off += 2
		case c < utf8.RuneSelf && (unicode.IsLetter(rune(c))):
			l.cur.bump()
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *lexer) scanString(start int) error {
	l.cur.bump() // opening quote
	for {
		if l.cur.eof() {
			return l.errorf(start, "unterminated string literal")
		}
		switch l.cur.bump() {
		case '\\':
			l.cur.bump()
		case '"':
			l.emitLiteral(start)
			return nil
		}
	}
}

func (l *lexer) scanRawString(start int) error {
	hashes := 0
	for l.cur.eat('#') {
		hashes++
	}
	if !l.cur.eat('"') {
		return l.errorf(start, "malformed raw string literal")
	}
	for {
		if l.cur.eof() {
			return l.errorf(start, "unterminated raw string literal")
		}
		if l.cur.bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && l.cur.peek() == '#' {
			l.cur.bump()
			n++
		}
		if n == hashes {
			l.emitLiteral(start)
			return nil
		}
	}
}

// scanQuote distinguishes character literals from lifetimes and labels.
func (l *lexer) scanQuote(start int) error {
	next := l.cur.src[l.cur.off+1:]
	if len(next) > 0 && next[0] != '\\' && isIdentStart(next) {
		_, size := utf8.DecodeRune(next)
		if len(next) <= size || next[size] != '\'' {
			p := token.NewPunct('\'', token.Joint)
			p.Span = spanOf(start, start+1)
			l.emit(p)
			l.cur.bump()
			return nil
		}
	}
	return l.scanCharLit(start)
}

func (l *lexer) scanCharLit(start int) error {
	l.cur.bump() // opening quote
	if l.cur.eof() {
		return l.errorf(start, "unterminated character literal")
	}
	if l.cur.peek() == '\\' {
		l.cur.off += 2
		for !l.cur.eof() && l.cur.peek() != '\'' && l.cur.peek() != '\n' {
			l.cur.bump()
		}
	} else {
		_, size := utf8.DecodeRune(l.cur.src[l.cur.off:])
		l.cur.off += size
	}
	if !l.cur.eat('\'') {
		return l.errorf(start, "unterminated character literal")
	}
	l.emitLiteral(start)
	return nil
}
