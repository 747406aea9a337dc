// Package rewrite expands every annotated record declaration in a source
// file, leaving the rest of the file byte for byte as it was.
package rewrite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ecordell/pubif/gate"
	"github.com/ecordell/pubif/internal/config"
	"github.com/ecordell/pubif/internal/diag"
	"github.com/ecordell/pubif/internal/lexer"
	"github.com/ecordell/pubif/internal/printer"
	"github.com/ecordell/pubif/internal/token"
)

// Record describes one expanded declaration.
type Record struct {
	Name      string
	File      string
	Condition string
	Members   []gate.Member
	Span      token.Span
}

// Result is the outcome of rewriting one file.
type Result struct {
	Output      []byte
	Records     []Record
	Diagnostics []diag.Diagnostic
}

// Changed reports whether the output differs from src.
func (r Result) Changed(src []byte) bool {
	return !bytes.Equal(r.Output, src)
}

// Option configures File.
type Option func(*rewriter)

// WithLogger sets the logger used for progress messages. A nil logger keeps
// the default, which discards them.
func WithLogger(logger *slog.Logger) Option {
	return func(r *rewriter) {
		if logger != nil {
			r.log = logger
		}
	}
}

type edit struct {
	start, end int
	text       string
}

type rewriter struct {
	name  string
	src   []byte
	cfg   config.Config
	opts  []gate.Option
	log   *slog.Logger
	edits []edit
	res   Result
}

// File expands the annotated declarations in src. Declarations that cannot
// be expanded are reported as diagnostics and left untouched.
func File(name string, src []byte, cfg config.Config, opts ...Option) Result {
	r := &rewriter{
		name: name,
		src:  src,
		cfg:  cfg,
		opts: cfg.GateOptions(),
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(r)
	}

	tokens, err := lexer.Lex(src)
	if err != nil {
		var lerr *lexer.Error
		span := token.Span{}
		msg := err.Error()
		if errors.As(err, &lerr) {
			span, msg = lerr.Span, lerr.Msg
		}
		r.report(span, diag.Error, "%s", msg)
		r.res.Output = src
		return r.res
	}

	r.walk(tokens)
	r.res.Output = r.apply()
	r.log.Debug("rewrote file", "file", name, "declarations", len(r.res.Records), "diagnostics", len(r.res.Diagnostics))
	return r.res
}

func (r *rewriter) report(span token.Span, sev diag.Severity, format string, args ...any) {
	r.res.Diagnostics = append(r.res.Diagnostics, diag.Diagnostic{
		File:     r.name,
		Span:     span,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *rewriter) walk(s token.Stream) {
	for i := 0; i < len(s); i++ {
		cond, ok := r.matchAttribute(s, i)
		if !ok {
			if s[i].Kind == token.Group {
				r.walk(s[i].Stream)
			}
			continue
		}
		end, ok := r.itemEnd(s, i)
		if !ok {
			i++
			continue
		}
		r.expand(s, leadingAttributes(s, i), i, end, cond)
		i = end
	}
}

// matchAttribute reports whether s[i:] starts with #[path::attribute(...)]
// and returns the condition tokens.
func (r *rewriter) matchAttribute(s token.Stream, i int) (token.Stream, bool) {
	if i+1 >= len(s) || !s[i].IsPunct('#') || !s[i+1].IsGroup(token.Bracket) {
		return nil, false
	}
	inner := s[i+1].Stream
	j := 0
	if j >= len(inner) || inner[j].Kind != token.Ident {
		return nil, false
	}
	for j+3 < len(inner) &&
		inner[j+1].IsPunct(':') && inner[j+1].Spacing == token.Joint &&
		inner[j+2].IsPunct(':') && inner[j+3].Kind == token.Ident {
		j += 3
	}
	if !inner[j].IsIdent(r.cfg.Attribute) {
		return nil, false
	}
	switch rest := inner[j+1:]; {
	case len(rest) == 0:
		return token.Stream{}, true
	case len(rest) == 1 && rest[0].IsGroup(token.Parenthesis):
		return rest[0].Stream, true
	default:
		return nil, false
	}
}

// leadingAttributes returns the index of the first outer attribute in the
// run of attributes that ends just before s[i]. Doc comments lex as
// attributes, so they are part of the run.
func leadingAttributes(s token.Stream, i int) int {
	for i >= 2 && s[i-2].IsPunct('#') && s[i-2].Spacing == token.Alone && s[i-1].IsGroup(token.Bracket) {
		i -= 2
	}
	return i
}

// otherItems are the keywords that start an item other than a record. The
// annotated item ends before any of them.
var otherItems = map[string]bool{
	"fn": true, "impl": true, "mod": true, "trait": true, "type": true, "const": true,
	"static": true, "use": true, "extern": true, "macro_rules": true,
}

// itemEnd returns the index of the member group that closes the item
// following the attribute at s[i].
func (r *rewriter) itemEnd(s token.Stream, i int) (int, bool) {
	attrSpan := spanBetween(s[i], s[i+1])
	sawKeyword := false
	depth := 0
	for k := i + 2; k < len(s); k++ {
		t := s[k]
		switch {
		case !sawKeyword && t.IsIdent(r.cfg.Keyword):
			sawKeyword = true
		case !sawKeyword && (t.IsIdent("enum") || t.IsIdent("union")):
			r.report(t.Span, diag.Error, "#[%s] only supports %s declarations, found %s", r.cfg.Attribute, r.cfg.Keyword, t.Text)
			return 0, false
		case !sawKeyword && (t.IsGroup(token.Brace) || t.Kind == token.Ident && otherItems[t.Text]):
			r.report(attrSpan, diag.Error, "#[%s] must be followed by a %s declaration, found %s", r.cfg.Attribute, r.cfg.Keyword, describe(t))
			return 0, false
		case t.IsPunct(';') && depth == 0:
			if sawKeyword {
				r.report(t.Span, diag.Error, "#[%s] does not support tuple or unit declarations", r.cfg.Attribute)
			} else {
				r.report(attrSpan, diag.Error, "#[%s] must be followed by a %s declaration", r.cfg.Attribute, r.cfg.Keyword)
			}
			return 0, false
		case sawKeyword && t.IsPunct('<'):
			depth++
		case sawKeyword && t.IsPunct('>') && !(k > 0 && s[k-1].IsPunct('-') && s[k-1].Spacing == token.Joint):
			depth--
		case sawKeyword && depth == 0 && t.IsGroup(token.Brace):
			return k, true
		}
	}
	r.report(attrSpan, diag.Error, "#[%s] must be followed by a %s declaration", r.cfg.Attribute, r.cfg.Keyword)
	return 0, false
}

func describe(t token.Token) string {
	if t.Kind == token.Group {
		return "a block"
	}
	return "`" + t.Text + "`"
}

func spanBetween(first, last token.Token) token.Span {
	return token.Span{Start: first.Span.Start, End: last.Span.End}
}

// expand replaces the site made of the attributes s[first:i], the annotated
// attribute s[i:i+2] and the item ending at s[end]. Both variants are copied
// from the source bytes, so comments and layout survive; only the attribute
// is swapped for a guard and, in the visible variant, the keyword is inserted
// before each hidden member.
func (r *rewriter) expand(s token.Stream, first, i, end int, cond token.Stream) {
	marker, attr := s[i], s[i+1]
	item := s[i+2 : end+1]
	attrSpan := spanBetween(marker, attr)
	if len(cond) == 0 {
		r.report(attrSpan, diag.Error, "#[%s] needs a condition, as in #[%s(feature = \"name\")]", r.cfg.Attribute, r.cfg.Attribute)
		return
	}

	decl, err := gate.Parse(item, r.opts...)
	if err != nil {
		span := attrSpan
		var gerr *gate.Error
		if errors.As(err, &gerr) && !gerr.Span.IsZero() {
			span = gerr.Span
		}
		r.report(span, diag.Error, "%v", err)
		return
	}

	start, stop := int(s[first].Span.Start), int(s[end].Span.End)
	var hidden []int
	for _, name := range gate.HiddenNames(decl.Members, r.opts...) {
		hidden = append(hidden, int(name.Span.Start))
	}
	variant := func(negate bool, inserts []int) string {
		var b strings.Builder
		b.Write(r.src[start:int(marker.Span.Start)])
		b.WriteString(printer.Print(gate.Guard(cond, negate, r.opts...)))
		prev := int(attr.Span.End)
		for _, off := range inserts {
			b.Write(r.src[prev:off])
			b.WriteString(r.cfg.Visibility + " ")
			prev = off
		}
		b.Write(r.src[prev:stop])
		return b.String()
	}
	r.edits = append(r.edits, edit{
		start: start,
		end:   stop,
		text:  variant(false, hidden) + "\n" + indentAt(r.src, start) + variant(true, nil),
	})

	rec := Record{
		Name:      decl.Name.Text,
		File:      r.name,
		Condition: printer.Print(cond),
		Members:   gate.Members(decl.Members, r.opts...),
		Span:      token.Span{Start: s[first].Span.Start, End: s[end].Span.End},
	}
	r.res.Records = append(r.res.Records, rec)
	r.log.Debug("expanded declaration", "file", r.name, "name", rec.Name, "condition", rec.Condition, "members", len(rec.Members))
}

// indentAt returns the whitespace between the start of the line and off, or
// "" when other text precedes off on that line.
func indentAt(src []byte, off int) string {
	lineStart := bytes.LastIndexByte(src[:off], '\n') + 1
	prefix := src[lineStart:off]
	if len(bytes.TrimLeft(prefix, " \t")) != 0 {
		return ""
	}
	return string(prefix)
}

func (r *rewriter) apply() []byte {
	if len(r.edits) == 0 {
		return r.src
	}
	var out bytes.Buffer
	prev := 0
	for _, e := range r.edits {
		out.Write(r.src[prev:e.start])
		out.WriteString(e.text)
		prev = e.end
	}
	out.Write(r.src[prev:])
	return out.Bytes()
}
