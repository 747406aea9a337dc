package gate

// Option configures a single Parse, MakeAllVisible, Generate or Expand call.
type Option func(*settings)

type settings struct {
	visibility string
	keyword    string
	guard      string
	negation   string
	strict     bool
}

func newSettings(opts []Option) settings {
	s := settings{
		visibility: DefaultVisibility,
		keyword:    DefaultKeyword,
		guard:      DefaultGuard,
		negation:   DefaultNegation,
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

const (
	DefaultVisibility = "pub"
	DefaultKeyword    = "struct"
	DefaultGuard      = "cfg"
	DefaultNegation   = "not"
)

// WithVisibilityKeyword sets the keyword that marks a declaration or member
// as visible.
func WithVisibilityKeyword(kw string) Option {
	return func(s *settings) { s.visibility = kw }
}

// WithRecordKeyword sets the keyword that introduces a record declaration.
func WithRecordKeyword(kw string) Option {
	return func(s *settings) { s.keyword = kw }
}

// WithGuardName sets the identifier of the synthesized conditional
// compilation attribute.
func WithGuardName(name string) Option {
	return func(s *settings) { s.guard = name }
}

// WithNegation sets the identifier that negates a condition.
func WithNegation(name string) Option {
	return func(s *settings) { s.negation = name }
}

// WithStrict rejects tokens before the record keyword that are neither
// attributes nor a visibility qualifier.
func WithStrict(strict bool) Option {
	return func(s *settings) { s.strict = strict }
}
