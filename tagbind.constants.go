package tagbind

// Kind selects the validation/conversion strategy of an argument descriptor.
// The set of kinds is closed; custom behavior hooks in through WithClean.
type Kind int

const (
	// KindExpression resolves the token as a context expression and passes
	// the value through unchanged. The default kind.
	KindExpression Kind = iota
	// KindBasic keeps the raw token text without expression compilation.
	KindBasic
	// KindInteger converts the resolved value to an int.
	KindInteger
	// KindString requires the resolved value to be a string.
	KindString
	// KindBoolean is a valueless flag: the bare argument name binds true.
	KindBoolean
	// KindDate requires a time.Time value.
	KindDate
	// KindTime requires a time.Time value.
	KindTime
	// KindDateTime requires a time.Time value.
	KindDateTime
	// KindInstance requires a value assignable to a configured reflect type.
	KindInstance
	// KindConstant is a fixed positional literal marker, consumed at bind
	// time and never stored in resolved data.
	KindConstant
	// KindKeywords collects trailing name=value tokens into a map.
	KindKeywords
)

// Kind name strings, used by String, ParseKind and the declarative loaders.
const (
	KindNameExpression = "expression"
	KindNameBasic      = "basic"
	KindNameInteger    = "integer"
	KindNameString     = "string"
	KindNameBoolean    = "boolean"
	KindNameDate       = "date"
	KindNameTime       = "time"
	KindNameDateTime   = "datetime"
	KindNameInstance   = "instance"
	KindNameConstant   = "constant"
	KindNameKeywords   = "keywords"
	KindNameUnknown    = "unknown"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindExpression:
		return KindNameExpression
	case KindBasic:
		return KindNameBasic
	case KindInteger:
		return KindNameInteger
	case KindString:
		return KindNameString
	case KindBoolean:
		return KindNameBoolean
	case KindDate:
		return KindNameDate
	case KindTime:
		return KindNameTime
	case KindDateTime:
		return KindNameDateTime
	case KindInstance:
		return KindNameInstance
	case KindConstant:
		return KindNameConstant
	case KindKeywords:
		return KindNameKeywords
	default:
		return KindNameUnknown
	}
}

// ParseKind parses a kind name as used in YAML/HCL definitions.
// Returns KindExpression and false for unknown names.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case KindNameExpression:
		return KindExpression, true
	case KindNameBasic:
		return KindBasic, true
	case KindNameInteger:
		return KindInteger, true
	case KindNameString:
		return KindString, true
	case KindNameBoolean:
		return KindBoolean, true
	case KindNameDate:
		return KindDate, true
	case KindNameTime:
		return KindTime, true
	case KindNameDateTime:
		return KindDateTime, true
	case KindNameInstance:
		return KindInstance, true
	case KindNameConstant:
		return KindConstant, true
	case KindNameKeywords:
		return KindKeywords, true
	default:
		return KindExpression, false
	}
}

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Definition errors (tag scope)
	ErrMsgEmptyTagName  = "tag name cannot be empty"
	ErrMsgNilArg        = "argument descriptor cannot be nil"
	ErrMsgTagExists     = "tag already registered"
	ErrMsgNilTag        = "tag cannot be nil"
	ErrMsgNilDefinition = "tag definition cannot be nil"
	ErrMsgNilOutput     = "tag output function cannot be nil"

	// Definition errors (argument scope, phrased as predicates of the
	// argument name: "'limit' <message>")
	ErrMsgEmptyArgName        = "has an empty name"
	ErrMsgDuplicateArgName    = "is declared more than once"
	ErrMsgRequiredAfterOpt    = "is required but declared after an optional positional argument"
	ErrMsgRequiredAndDefault  = "cannot be both required and defaulted"
	ErrMsgInstanceTypeUnset   = "requires an expected instance type"
	ErrMsgKeywordPositional   = "cannot combine keyword syntax with positional"
	ErrMsgKeywordKind         = "cannot use keyword syntax with this kind"
	ErrMsgPositionalKind      = "cannot be positional with this kind"
	ErrMsgConstantModifier    = "cannot be optional, defaulted, nullable or keyword"
	ErrMsgDefaultKindMismatch = "has a default that does not satisfy its kind"
	ErrMsgNilDefault          = "has a nil default but is not nullable"

	// Bind errors (tag scope)
	ErrMsgEmptyInvocation = "invocation cannot be empty"
	ErrMsgInvocationSplit = "invocation could not be tokenized"
	ErrMsgUnknownTag      = "no tag registered under this name"

	// Resolve errors (argument scope predicates)
	ErrMsgNotNullable = "is required and may not be null"
	ErrMsgEvalFailed  = "failed to evaluate"
	ErrMsgCleanFailed = "failed validation"

	// Resolve errors (tag scope)
	ErrMsgCleanDataFailed = "tag data clean hook failed"

	// Loader errors
	ErrMsgLoaderEmptyDocument = "definition document cannot be empty"
	ErrMsgLoaderInvalidYAML   = "definition document is not valid YAML"
	ErrMsgLoaderInvalidHCL    = "definition manifest is not valid HCL"
	ErrMsgLoaderUnknownKind   = "unknown argument kind"
	ErrMsgLoaderInstanceKind  = "instance arguments cannot be declared in documents"
	ErrMsgLoaderBadDefault    = "unsupported default value"
	ErrMsgLoaderNoOutput      = "no output function provided for loaded tag"
	ErrMsgLoaderReadFailed    = "definition file could not be read"

	// Splitter errors
	ErrMsgUnterminatedQuote = "unterminated quoted token"
)

// Error format constants. Bind and resolve failures embed the argument and
// tag names in the message text the way template authors expect to read them.
const (
	ErrFmtArgMessage       = "'%s' %s"
	ErrFmtRequired         = "'%s' argument to '%s' is required"
	ErrFmtRequiredMany     = "'%s' arguments to '%s' are required"
	ErrFmtValueMissing     = "value for '%s' not provided"
	ErrFmtUnknownArg       = "'%s' does not take argument '%s'"
	ErrFmtDuplicateArg     = "'%s' given more than once to '%s'"
	ErrFmtConstant         = "expected constant '%s' instead of '%s'"
	ErrFmtBadToken         = "malformed token '%s'"
	ErrFmtExpectedEquals   = "'%s' expected '%s=...'"
	ErrFmtUnexpectedEquals = "'%s' didn't expect an '=' after '%s'"
	ErrFmtNotInteger       = "value for '%s' must be an integer (got %v)"
	ErrFmtNotString        = "value for '%s' must be a string"
	ErrFmtNotInstance      = "value for '%s' must be a %s instance"
	ErrFmtBadValueType     = "unsupported value type '%s'"
)

// Error code constants for categorization
const (
	ErrCodeDefinition = "TAGBIND_DEFINITION"
	ErrCodeBind       = "TAGBIND_BIND"
	ErrCodeResolve    = "TAGBIND_RESOLVE"
)

// Error kind values stored under MetaKeyErrorKind, one per failure class.
const (
	ErrKindDefinition      = "definition"
	ErrKindMissingArgument = "missing_argument"
	ErrKindUnknownArgument = "unknown_argument"
	ErrKindDuplicateArg    = "duplicate_argument"
	ErrKindUnexpectedToken = "unexpected_token"
	ErrKindValidation      = "validation"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyErrorKind  = "error_kind"
	MetaKeyTag        = "tag"
	MetaKeyArgument   = "argument"
	MetaKeyToken      = "token"
	MetaKeyKind       = "kind"
	MetaKeyValue      = "value"
	MetaKeyExpected   = "expected"
	MetaKeyActual     = "actual"
	MetaKeySuggestion = "suggestion"
	MetaKeySource     = "source"
)

// Log message constants
const (
	LogMsgLibraryCreated   = "tag library created"
	LogMsgTagRegistered    = "tag registered"
	LogMsgTagCollision     = "tag registration collision"
	LogMsgInvocationParsed = "tag invocation parsed"
	LogMsgRenderSilenced   = "render error silenced"
	LogMsgDefinitionLoaded = "tag definition loaded"
)

// Log field names
const (
	LogFieldTag      = "tag"
	LogFieldArgument = "argument"
	LogFieldTokens   = "tokens"
	LogFieldCount    = "count"
	LogFieldError    = "error"
	LogFieldFallback = "fallback"
	LogFieldSource   = "source"
)

// Default configuration values
const (
	// DefaultMaxSuggestions caps the did-you-mean hints on unknown arguments.
	DefaultMaxSuggestions = 3
)

// Token syntax constants
const (
	// KeywordAssign separates name and value in single-token keyword form.
	KeywordAssign = "="
	// NameSuffixStrip is trimmed from the end of declared argument names to
	// produce the token-match name and binding key.
	NameSuffixStrip = "_"
	// ArgListSeparator joins argument names when an error reports several.
	ArgListSeparator = "', '"
)

// Type names surfaced in kind validation messages
const (
	TypeNameBool     = "bool"
	TypeNameTime     = "time.Time"
	TypeNameKeywords = "map[string]any"
)

// Definition sources reported in load logs
const (
	SourceYAML = "yaml"
	SourceHCL  = "hcl"
)
