package gate

import "github.com/ecordell/pubif/internal/token"

// Guard builds the conditional compilation attribute #[cfg(condition)], or
// #[cfg(not(condition))] when negate is set.
func Guard(condition token.Stream, negate bool, opts ...Option) token.Stream {
	cfg := newSettings(opts)

	inner := condition.Clone()
	if negate {
		inner = token.Stream{
			token.NewIdent(cfg.negation),
			token.NewGroup(token.Parenthesis, condition),
		}
	}

	return token.Stream{
		token.NewPunct('#', token.Alone),
		token.NewGroup(token.Bracket, token.Stream{
			token.NewIdent(cfg.guard),
			token.NewGroup(token.Parenthesis, inner),
		}),
	}
}

// Generate reassembles decl behind a guard. With makePublic the guard holds
// condition and every member is made visible; otherwise the guard holds the
// negated condition and the members are copied as declared.
func Generate(decl *Declaration, condition token.Stream, makePublic bool, opts ...Option) token.Stream {
	out := Guard(condition, !makePublic, opts...)
	for _, attr := range decl.Attributes {
		out = append(out, attr...)
	}
	out = append(out, decl.Visibility...)
	out = append(out, decl.Keyword, decl.Name)
	out = append(out, decl.Generics...)
	if makePublic {
		out = append(out, MakeAllVisible(decl.Members, opts...))
	} else {
		out = append(out, decl.Members)
	}
	return out
}
