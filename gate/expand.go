// Package gate expands a record declaration into two conditionally compiled
// copies: one where every member is visible, guarded by a condition, and one
// with the declared visibility, guarded by the negated condition.
//
// Given the condition `feature = "foo"` and the item
//
//	pub struct S { field: i32, pub bar: String }
//
// Expand produces
//
//	#[cfg(feature = "foo")] pub struct S { pub field: i32, pub bar: String }
//	#[cfg(not(feature = "foo"))] pub struct S { field: i32, pub bar: String }
//
// Every call is independent. Nothing is cached between calls.
package gate

import (
	"github.com/ecordell/pubif/internal/token"
)

// Expand parses item and returns both gated variants, the all-visible one
// first.
func Expand(condition, item token.Stream, opts ...Option) (token.Stream, error) {
	if len(condition) == 0 {
		var span token.Span
		if len(item) > 0 {
			span = item[0].Span
		}
		return nil, &Error{Kind: ErrEmptyCondition, Span: span, Msg: "attribute needs a condition"}
	}

	decl, err := Parse(item, opts...)
	if err != nil {
		return nil, err
	}

	out := Generate(decl, condition, true, opts...)
	out = append(out, Generate(decl, condition, false, opts...)...)
	return out, nil
}
