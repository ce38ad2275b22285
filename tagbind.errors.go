package tagbind

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itsatony/go-cuserr"

	"github.com/jhonyavella90/go-tagbind/internal"
)

// NewDefinitionError creates a definition-time error scoped to a whole tag.
// Definition errors are fatal and are never silenced.
func NewDefinitionError(tag, msg string) error {
	return cuserr.NewValidationError(ErrCodeDefinition, msg).
		WithMetadata(MetaKeyErrorKind, ErrKindDefinition).
		WithMetadata(MetaKeyTag, tag)
}

// NewArgDefinitionError creates a definition-time error scoped to a single
// argument descriptor. The message reads "'<arg>' <msg>".
func NewArgDefinitionError(tag, arg, msg string) error {
	return cuserr.NewValidationError(ErrCodeDefinition, fmt.Sprintf(ErrFmtArgMessage, arg, msg)).
		WithMetadata(MetaKeyErrorKind, ErrKindDefinition).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyArgument, arg)
}

// NewMissingArgumentError reports a required argument with no binding.
func NewMissingArgumentError(tag, arg string) error {
	return cuserr.NewValidationError(ErrCodeBind, fmt.Sprintf(ErrFmtRequired, arg, tag)).
		WithMetadata(MetaKeyErrorKind, ErrKindMissingArgument).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyArgument, arg)
}

// NewMissingArgumentsError reports every required argument left unbound by
// one invocation, joined into a single failure.
func NewMissingArgumentsError(tag string, args []string) error {
	if len(args) == 1 {
		return NewMissingArgumentError(tag, args[0])
	}
	joined := strings.Join(args, ArgListSeparator)
	return cuserr.NewValidationError(ErrCodeBind, fmt.Sprintf(ErrFmtRequiredMany, joined, tag)).
		WithMetadata(MetaKeyErrorKind, ErrKindMissingArgument).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyArgument, joined)
}

// NewMissingValueError reports an argument name with no value token after it.
func NewMissingValueError(tag, arg string) error {
	return cuserr.NewValidationError(ErrCodeBind, fmt.Sprintf(ErrFmtValueMissing, arg)).
		WithMetadata(MetaKeyErrorKind, ErrKindMissingArgument).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyArgument, arg)
}

// NewUnknownArgumentError reports a token naming no declared argument.
// Suggestions, when present, are appended as a did-you-mean hint.
func NewUnknownArgumentError(tag, token string, suggestions []string) error {
	msg := fmt.Sprintf(ErrFmtUnknownArg, tag, token) + internal.FormatSuggestions(suggestions)
	err := cuserr.NewNotFoundError(MetaKeyArgument, msg).
		WithMetadata(MetaKeyErrorKind, ErrKindUnknownArgument).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyToken, token)
	if len(suggestions) > 0 {
		err = err.WithMetadata(MetaKeySuggestion, suggestions[0])
	}
	return err
}

// NewDuplicateArgumentError reports an argument bound twice in one invocation.
func NewDuplicateArgumentError(tag, arg string) error {
	return cuserr.NewValidationError(ErrCodeBind, fmt.Sprintf(ErrFmtDuplicateArg, arg, tag)).
		WithMetadata(MetaKeyErrorKind, ErrKindDuplicateArg).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyArgument, arg)
}

// NewBadTokenError wraps a token the expression compiler rejected.
func NewBadTokenError(tag, token string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeBind, fmt.Sprintf(ErrFmtBadToken, token)).
		WithMetadata(MetaKeyErrorKind, ErrKindUnexpectedToken).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyToken, token)
}

// NewConstantMismatchError reports a constant marker token that does not
// match its declared literal.
func NewConstantMismatchError(tag, want, got string) error {
	return cuserr.NewValidationError(ErrCodeBind, fmt.Sprintf(ErrFmtConstant, want, got)).
		WithMetadata(MetaKeyErrorKind, ErrKindUnexpectedToken).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyExpected, want).
		WithMetadata(MetaKeyActual, got)
}

// NewEqualsExpectedError reports a keyword-syntax argument given in the
// two-token "name value" form.
func NewEqualsExpectedError(tag, arg string) error {
	return cuserr.NewValidationError(ErrCodeBind, fmt.Sprintf(ErrFmtExpectedEquals, tag, arg)).
		WithMetadata(MetaKeyErrorKind, ErrKindUnexpectedToken).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyArgument, arg)
}

// NewEqualsUnexpectedError reports a "name=value" token for an argument
// declared with plain pair syntax.
func NewEqualsUnexpectedError(tag, arg string) error {
	return cuserr.NewValidationError(ErrCodeBind, fmt.Sprintf(ErrFmtUnexpectedEquals, tag, arg)).
		WithMetadata(MetaKeyErrorKind, ErrKindUnexpectedToken).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyArgument, arg)
}

// NewUnknownTagError reports an invocation naming no registered tag.
// Registry glue rather than an engine failure class, so it carries no
// ErrKind metadata.
func NewUnknownTagError(name string, suggestions []string) error {
	msg := fmt.Sprintf(ErrFmtArgMessage, name, ErrMsgUnknownTag) + internal.FormatSuggestions(suggestions)
	return cuserr.NewNotFoundError(MetaKeyTag, msg).
		WithMetadata(MetaKeyTag, name)
}

// NewInvocationError reports a malformed raw invocation handed to a
// library, before any tag is identified.
func NewInvocationError(msg string) error {
	return cuserr.NewValidationError(ErrCodeBind, msg)
}

// NewInvocationSplitError wraps a tokenizer failure on a raw invocation.
func NewInvocationSplitError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeBind, ErrMsgInvocationSplit)
}

// NewLoaderError wraps a document-level failure from a definition loader.
// Loader errors count as definition errors: the declared schema never
// came into being.
func NewLoaderError(source, msg string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeDefinition, msg).
		WithMetadata(MetaKeyErrorKind, ErrKindDefinition).
		WithMetadata(MetaKeySource, source)
}

// NewUnknownKindError reports a document kind name with no known mapping.
func NewUnknownKindError(tag, arg, kindName string) error {
	return cuserr.NewValidationError(ErrCodeDefinition, fmt.Sprintf(ErrFmtArgMessage, arg, ErrMsgLoaderUnknownKind)).
		WithMetadata(MetaKeyErrorKind, ErrKindDefinition).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyArgument, arg).
		WithMetadata(MetaKeyKind, kindName)
}

// NewTypeConversionError reports a document value type with no native Go
// representation.
func NewTypeConversionError(typeName string) error {
	return cuserr.NewValidationError(ErrCodeDefinition, fmt.Sprintf(ErrFmtBadValueType, typeName)).
		WithMetadata(MetaKeyErrorKind, ErrKindDefinition)
}

// NewCleanDataError wraps a failure from a tag-level data clean hook.
func NewCleanDataError(tag string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeResolve, ErrMsgCleanDataFailed).
		WithMetadata(MetaKeyErrorKind, ErrKindValidation).
		WithMetadata(MetaKeyTag, tag)
}

// NewValidationError creates a resolve-time validation error for an argument.
// The message reads "'<arg>' <msg>".
func NewValidationError(arg, msg string) error {
	return cuserr.NewValidationError(ErrCodeResolve, fmt.Sprintf(ErrFmtArgMessage, arg, msg)).
		WithMetadata(MetaKeyErrorKind, ErrKindValidation).
		WithMetadata(MetaKeyArgument, arg)
}

// NewNullValueError reports a context miss on a non-nullable argument.
func NewNullValueError(arg string) error {
	return NewValidationError(arg, ErrMsgNotNullable)
}

// NewIntegerError reports a value that cannot be converted to an integer.
func NewIntegerError(arg string, value any) error {
	return cuserr.NewValidationError(ErrCodeResolve, fmt.Sprintf(ErrFmtNotInteger, arg, value)).
		WithMetadata(MetaKeyErrorKind, ErrKindValidation).
		WithMetadata(MetaKeyArgument, arg).
		WithMetadata(MetaKeyValue, fmt.Sprintf("%v", value))
}

// NewStringTypeError reports a non-string value for a string argument.
func NewStringTypeError(arg string) error {
	return cuserr.NewValidationError(ErrCodeResolve, fmt.Sprintf(ErrFmtNotString, arg)).
		WithMetadata(MetaKeyErrorKind, ErrKindValidation).
		WithMetadata(MetaKeyArgument, arg)
}

// NewInstanceTypeError reports a value that is not an instance of the
// expected type. Used by the temporal kinds and KindInstance alike.
func NewInstanceTypeError(arg, expected string) error {
	return cuserr.NewValidationError(ErrCodeResolve, fmt.Sprintf(ErrFmtNotInstance, arg, expected)).
		WithMetadata(MetaKeyErrorKind, ErrKindValidation).
		WithMetadata(MetaKeyArgument, arg).
		WithMetadata(MetaKeyExpected, expected)
}

// NewEvalError wraps an expression evaluation failure.
func NewEvalError(arg string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeResolve, fmt.Sprintf(ErrFmtArgMessage, arg, ErrMsgEvalFailed)).
		WithMetadata(MetaKeyErrorKind, ErrKindValidation).
		WithMetadata(MetaKeyArgument, arg)
}

// NewCleanError wraps a failure from a per-argument clean hook.
func NewCleanError(arg string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeResolve, fmt.Sprintf(ErrFmtArgMessage, arg, ErrMsgCleanFailed)).
		WithMetadata(MetaKeyErrorKind, ErrKindValidation).
		WithMetadata(MetaKeyArgument, arg)
}

// ErrorKind returns the failure class of an engine error: one of the ErrKind
// constants, or an empty string for foreign errors.
func ErrorKind(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	kind, ok := customErr.GetMetadata(MetaKeyErrorKind)
	if !ok {
		return ""
	}
	return kind
}

// IsDefinitionError reports whether err is a definition-time failure.
func IsDefinitionError(err error) bool {
	return ErrorKind(err) == ErrKindDefinition
}

// IsMissingArgument reports whether err is a missing required argument or a
// missing value token.
func IsMissingArgument(err error) bool {
	return ErrorKind(err) == ErrKindMissingArgument
}

// IsUnknownArgument reports whether err names an undeclared argument.
func IsUnknownArgument(err error) bool {
	return ErrorKind(err) == ErrKindUnknownArgument
}

// IsDuplicateArgument reports whether err is a repeated argument binding.
func IsDuplicateArgument(err error) bool {
	return ErrorKind(err) == ErrKindDuplicateArg
}

// IsUnexpectedToken reports whether err is a constant mismatch or a
// malformed keyword token.
func IsUnexpectedToken(err error) bool {
	return ErrorKind(err) == ErrKindUnexpectedToken
}

// IsValidationError reports whether err is a resolve-time validation failure.
func IsValidationError(err error) bool {
	return ErrorKind(err) == ErrKindValidation
}

// isRenderSilenceable reports whether a render failure may be replaced by a
// tag's fallback output. Bind and validation failures qualify; definition
// errors never do.
func isRenderSilenceable(err error) bool {
	switch ErrorKind(err) {
	case ErrKindMissingArgument, ErrKindUnknownArgument, ErrKindDuplicateArg,
		ErrKindUnexpectedToken, ErrKindValidation:
		return true
	default:
		return false
	}
}
