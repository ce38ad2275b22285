package tagbind

import (
	"reflect"
	"strings"
)

// CleanFunc is a custom per-argument validation/conversion hook, applied
// after the kind's own cleaner. It receives the cleaned value and returns
// the value to store, or an error surfaced as a validation failure.
type CleanFunc func(value any) (any, error)

// Arg is one declared argument descriptor. Descriptors are immutable after
// construction and safe to share across concurrent binds and resolves.
type Arg struct {
	name          string
	key           string
	kind          Kind
	positional    bool
	required      bool
	def           any
	hasDefault    bool
	nullable      bool
	expected      reflect.Type
	keywordSyntax bool
	clean         CleanFunc
}

// ArgOption configures an argument descriptor at construction time.
type ArgOption func(*Arg)

// Positional marks the argument as positional: it binds by declaration
// order instead of by name.
func Positional() ArgOption {
	return func(a *Arg) { a.positional = true }
}

// Optional marks the argument as not required.
func Optional() ArgOption {
	return func(a *Arg) { a.required = false }
}

// Required marks the argument as required. Arguments other than boolean
// flags and keyword maps are required by default, so this is only needed to
// override those kinds.
func Required() ArgOption {
	return func(a *Arg) { a.required = true }
}

// WithDefault sets the value bound when the argument is absent from an
// invocation, and implies Optional: required and default are mutually
// exclusive. Defaults are validated against the argument kind at definition
// time.
func WithDefault(v any) ArgOption {
	return func(a *Arg) {
		a.def = v
		a.hasDefault = true
		a.required = false
	}
}

// Nullable allows a resolved nil value: a context miss resolves to nil
// instead of failing validation, and bypasses the kind conversion.
func Nullable() ArgOption {
	return func(a *Arg) { a.nullable = true }
}

// Keyword declares single-token "name=value" syntax for a named argument,
// replacing the two-token "name value" pair form.
func Keyword() ArgOption {
	return func(a *Arg) { a.keywordSyntax = true }
}

// WithClean attaches a custom clean hook, run after the kind cleaner.
func WithClean(fn CleanFunc) ArgOption {
	return func(a *Arg) { a.clean = fn }
}

// NewArg declares a generic expression argument: the resolved value passes
// through unchanged.
func NewArg(name string, opts ...ArgOption) *Arg {
	return newArg(name, KindExpression, true, opts)
}

// BasicArg declares an argument whose raw token is kept as a string without
// expression compilation. Useful for "as varname" style arguments where the
// token itself is the value.
func BasicArg(name string, opts ...ArgOption) *Arg {
	return newArg(name, KindBasic, true, opts)
}

// BooleanArg declares a valueless flag. Optional by default, since a
// required flag makes little sense: presence resolves to true, absence
// leaves no entry in the resolved data.
func BooleanArg(name string, opts ...ArgOption) *Arg {
	return newArg(name, KindBoolean, false, opts)
}

// IntegerArg declares an argument converted to an int at resolve time.
// Numeric values and numeric strings convert; anything else fails
// validation.
func IntegerArg(name string, opts ...ArgOption) *Arg {
	return newArg(name, KindInteger, true, opts)
}

// StringArg declares an argument whose resolved value must be a string.
func StringArg(name string, opts ...ArgOption) *Arg {
	return newArg(name, KindString, true, opts)
}

// DateArg declares an argument whose resolved value must be a time.Time.
func DateArg(name string, opts ...ArgOption) *Arg {
	return newArg(name, KindDate, true, opts)
}

// TimeArg declares an argument whose resolved value must be a time.Time.
func TimeArg(name string, opts ...ArgOption) *Arg {
	return newArg(name, KindTime, true, opts)
}

// DateTimeArg declares an argument whose resolved value must be a time.Time.
func DateTimeArg(name string, opts ...ArgOption) *Arg {
	return newArg(name, KindDateTime, true, opts)
}

// InstanceArg declares an argument whose resolved value must be assignable
// to the expected type:
//
//	tagbind.InstanceArg("user", reflect.TypeOf(&User{}))
//
// Interface types are checked with Implements.
func InstanceArg(name string, expected reflect.Type, opts ...ArgOption) *Arg {
	a := newArg(name, KindInstance, true, opts)
	a.expected = expected
	return a
}

// ConstantArg declares a fixed literal marker, e.g. the "to" in
// "range 1 to 10". Always positional and required; the bound token must
// equal the argument name and is never stored in resolved data.
func ConstantArg(name string, opts ...ArgOption) *Arg {
	a := newArg(name, KindConstant, true, opts)
	a.positional = true
	return a
}

// KeywordsArg declares a compact keyword map: after the argument name,
// every trailing "k=v" token is collected into a map[string]any whose
// values resolve like expression arguments. Optional by default.
func KeywordsArg(name string, opts ...ArgOption) *Arg {
	return newArg(name, KindKeywords, false, opts)
}

// newArg builds a descriptor with normalized naming. Trailing underscores
// are stripped once so ported definitions can shadow reserved words
// ("as_" declares the argument "as").
func newArg(name string, kind Kind, required bool, opts []ArgOption) *Arg {
	normalized := strings.TrimRight(name, NameSuffixStrip)
	a := &Arg{
		name:     normalized,
		key:      normalized,
		kind:     kind,
		required: required,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the declared name matched against invocation tokens.
func (a *Arg) Name() string {
	return a.name
}

// Key returns the binding key used in resolved data. It currently always
// equals Name; both are kept addressable so the match name and output key
// stay independent concepts.
func (a *Arg) Key() string {
	return a.key
}

// Kind returns the argument's validation/conversion kind.
func (a *Arg) Kind() Kind {
	return a.kind
}

// IsPositional reports whether the argument binds by position.
func (a *Arg) IsPositional() bool {
	return a.positional
}

// IsRequired reports whether an invocation must bind the argument.
func (a *Arg) IsRequired() bool {
	return a.required
}

// IsNullable reports whether a nil resolved value is acceptable.
func (a *Arg) IsNullable() bool {
	return a.nullable
}

// Default returns the configured default value and whether one is set.
func (a *Arg) Default() (any, bool) {
	return a.def, a.hasDefault
}

// ExpectedType returns the instance type required by KindInstance
// arguments, or nil for other kinds.
func (a *Arg) ExpectedType() reflect.Type {
	return a.expected
}

// HasKeywordSyntax reports whether the argument binds from a single
// "name=value" token.
func (a *Arg) HasKeywordSyntax() bool {
	return a.keywordSyntax
}

// matchForm returns the token shape announced in binding guards and error
// hints: "name=" for keyword-syntax arguments, the bare name otherwise.
func (a *Arg) matchForm() string {
	if a.keywordSyntax {
		return a.name + KeywordAssign
	}
	return a.name
}
