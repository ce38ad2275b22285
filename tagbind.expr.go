package tagbind

import (
	"github.com/jhonyavella90/go-tagbind/internal"
)

// Expression is an evaluatable handle produced from one invocation token.
// Expressions come from a Compiler at bind time and are evaluated once per
// render; hosts may supply their own Compiler to plug in a richer expression
// language.
type Expression interface {
	// Resolve evaluates the expression against a context. A context miss
	// yields (nil, nil): absence is reported as a nil value, not an error,
	// and is handled by the argument's nullability rule.
	Resolve(ctx *Context) (any, error)
	// Raw returns the original token text.
	Raw() string
}

// Compiler turns raw invocation tokens into expressions at bind time.
type Compiler interface {
	Compile(token string) (Expression, error)
}

// DefaultCompiler returns the built-in compiler: quoted tokens become string
// literals with escapes reduced, integer and float tokens become int64 and
// float64 literals, everything else is a dot-notation context lookup.
func DefaultCompiler() Compiler {
	return defaultCompiler{}
}

type defaultCompiler struct{}

// Compile classifies one token through the internal expression engine.
func (defaultCompiler) Compile(token string) (Expression, error) {
	expr, err := internal.CompileToken(token)
	if err != nil {
		return nil, err
	}
	return exprAdapter{expr: expr}, nil
}

// exprAdapter bridges internal expressions to the public interface.
// *Context satisfies internal.Scope directly.
type exprAdapter struct {
	expr internal.Expr
}

func (a exprAdapter) Resolve(ctx *Context) (any, error) {
	if ctx == nil {
		return a.expr.Eval(nil)
	}
	return a.expr.Eval(ctx)
}

func (a exprAdapter) Raw() string {
	return a.expr.Raw()
}

// rawExpression carries an uncompiled token for KindBasic arguments: the
// raw text is the value.
type rawExpression string

func (r rawExpression) Resolve(*Context) (any, error) {
	return string(r), nil
}

func (r rawExpression) Raw() string {
	return string(r)
}
