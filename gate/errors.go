package gate

import (
	"errors"
	"fmt"

	"github.com/ecordell/pubif/internal/token"
)

var (
	// ErrMalformedDeclaration is returned when the item is not a record
	// declaration with a name and a member group.
	ErrMalformedDeclaration = errors.New("malformed declaration")

	// ErrEmptyCondition is returned when the attribute carries no condition.
	ErrEmptyCondition = errors.New("empty condition")
)

// Error locates a failure inside the item. It unwraps to one of the
// sentinel errors above.
type Error struct {
	Kind error
	Span token.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func malformed(span token.Span, format string, args ...any) error {
	return &Error{Kind: ErrMalformedDeclaration, Span: span, Msg: fmt.Sprintf(format, args...)}
}
