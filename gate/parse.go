package gate

import "github.com/ecordell/pubif/internal/token"

// Declaration is a record declaration split into the pieces the generator
// reassembles. Every token is kept exactly as it was parsed.
type Declaration struct {
	// Attributes holds each leading attribute as its marker followed by its
	// group, when one was present.
	Attributes []token.Stream
	// Visibility is empty, the visibility keyword, or the keyword followed by
	// a scope group such as (crate).
	Visibility token.Stream
	Keyword    token.Token
	Name       token.Token
	// Generics is nil when the record has no generic parameters. Otherwise it
	// runs from the opening '<' through the matching '>'.
	Generics token.Stream
	// Members is the group holding the member list.
	Members token.Token
}

type parser struct {
	tokens token.Stream
	pos    int
	last   token.Span
	cfg    settings
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (token.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
		p.last = t.Span
	}
	return t, ok
}

// Parse locates the record declaration in item.
//
// Attributes before the keyword are captured, and a visibility qualifier ends
// the prefix: the token after it is taken as the keyword. Other leading
// tokens are skipped unless WithStrict is set, which also requires the
// keyword right after the qualifier.
func Parse(item token.Stream, opts ...Option) (*Declaration, error) {
	p := &parser{tokens: item, cfg: newSettings(opts)}
	return p.parse()
}

func (p *parser) parse() (*Declaration, error) {
	d := &Declaration{}
	if err := p.parsePrefix(d); err != nil {
		return nil, err
	}

	kw, ok := p.next()
	if !ok {
		return nil, malformed(p.last, "expected %q, found end of input", p.cfg.keyword)
	}
	d.Keyword = kw
	name, ok := p.next()
	if !ok {
		return nil, malformed(p.last, "expected a name after %q", kw.Text)
	}
	d.Name = name

	if t, ok := p.peek(); ok && t.IsPunct('<') {
		generics, err := p.parseGenerics()
		if err != nil {
			return nil, err
		}
		d.Generics = generics
	}

	members, ok := p.next()
	if !ok {
		return nil, malformed(p.last, "expected a member list after %s", name.Text)
	}
	if members.Kind != token.Group {
		return nil, malformed(members.Span, "expected a member list, found %s %q", members.Kind, members.Text)
	}
	d.Members = members
	return d, nil
}

func (p *parser) parsePrefix(d *Declaration) error {
	for {
		t, ok := p.peek()
		if !ok {
			return nil
		}
		switch {
		case t.IsPunct('#'):
			d.Attributes = append(d.Attributes, p.parseAttribute())
		case t.IsIdent(p.cfg.visibility):
			p.next()
			d.Visibility = append(d.Visibility, t)
			if g, ok := p.peek(); ok && g.Kind == token.Group {
				p.next()
				d.Visibility = append(d.Visibility, g)
			}
			return p.expectKeyword()
		case t.IsIdent(p.cfg.keyword):
			return nil
		default:
			if p.cfg.strict {
				return malformed(t.Span, "unexpected %s %q before %q", t.Kind, t.String(), p.cfg.keyword)
			}
			p.next()
		}
	}
}

// expectKeyword checks, in strict mode, that the token after the visibility
// qualifier is the record keyword. Otherwise that token is taken as the
// keyword whatever it is.
func (p *parser) expectKeyword() error {
	t, ok := p.peek()
	if !ok || !p.cfg.strict || t.IsIdent(p.cfg.keyword) {
		return nil
	}
	return malformed(t.Span, "unexpected %s %q before %q", t.Kind, t.String(), p.cfg.keyword)
}

func (p *parser) parseAttribute() token.Stream {
	marker, _ := p.next()
	attr := token.Stream{marker}
	if g, ok := p.peek(); ok && g.Kind == token.Group {
		p.next()
		attr = append(attr, g)
	}
	return attr
}

// parseGenerics copies the generic parameter run. Angle brackets are plain
// puncts, so nesting is tracked by counting them; groups inside the run are
// copied whole.
func (p *parser) parseGenerics() (token.Stream, error) {
	var out token.Stream
	depth := 0
	for {
		t, ok := p.next()
		if !ok {
			return nil, malformed(p.last, "unterminated generic parameter list")
		}
		arrow := len(out) > 0 && out[len(out)-1].IsPunct('-') && out[len(out)-1].Spacing == token.Joint
		out = append(out, t)
		switch {
		case t.IsPunct('<'):
			depth++
		case t.IsPunct('>') && !arrow:
			depth--
			if depth == 0 {
				return out, nil
			}
		}
	}
}
