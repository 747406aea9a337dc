package gate

import "github.com/ecordell/pubif/internal/token"

// MakeAllVisible returns a copy of the member group where every member that
// lacks an explicit visibility keyword gets one. Members that already have
// one, including scoped forms like pub(crate), are left alone.
func MakeAllVisible(members token.Token, opts ...Option) token.Token {
	cfg := newSettings(opts)
	in := members.Stream
	out := make(token.Stream, 0, len(in)+len(in)/3)
	next := 0
	eachMember(in, cfg, func(i int, visible bool) {
		if visible {
			return
		}
		out = append(out, in[next:i]...)
		out = append(out, token.NewIdent(cfg.visibility))
		next = i
	})
	out = append(out, in[next:]...)

	return token.Token{
		Kind:   token.Group,
		Delim:  members.Delim,
		Stream: out,
		Span:   members.Span,
	}
}

// eachMember calls fn with the index of every member name in s and whether
// a visibility keyword precedes it. A keyword counts until the next
// identifier or separator.
func eachMember(s token.Stream, cfg settings, fn func(i int, visible bool)) {
	sawVisibility := false
	for i, t := range s {
		switch {
		case t.IsIdent(cfg.visibility):
			sawVisibility = true
		case t.Kind == token.Ident:
			if i+1 < len(s) && isMemberColon(s[i+1]) {
				fn(i, sawVisibility)
			}
			sawVisibility = false
		case t.IsPunct(',') || t.IsPunct(';'):
			sawVisibility = false
		}
	}
}

// isMemberColon reports whether t is the ':' between a member name and its
// type. The first half of a '::' path separator is Joint and does not count.
func isMemberColon(t token.Token) bool {
	return t.IsPunct(':') && t.Spacing == token.Alone
}

// Member is one named entry of a member list.
type Member struct {
	Name    string
	Visible bool
}

// Members lists the members of a member group in declaration order, using
// the same rules as MakeAllVisible to recognize member names.
func Members(members token.Token, opts ...Option) []Member {
	var out []Member
	eachMember(members.Stream, newSettings(opts), func(i int, visible bool) {
		out = append(out, Member{Name: members.Stream[i].Text, Visible: visible})
	})
	return out
}

// HiddenNames returns the name tokens of the members MakeAllVisible would
// prefix with the visibility keyword, with their original spans.
func HiddenNames(members token.Token, opts ...Option) []token.Token {
	var out []token.Token
	eachMember(members.Stream, newSettings(opts), func(i int, visible bool) {
		if !visible {
			out = append(out, members.Stream[i])
		}
	})
	return out
}
