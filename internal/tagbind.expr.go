package internal

import (
	"strconv"
	"strings"
)

// Scope is the minimal variable-lookup capability expressions resolve
// against. Paths use dot notation; a false return means the path is absent
// everywhere in the scope chain.
type Scope interface {
	Get(path string) (any, bool)
}

// Expr is a compiled invocation token: a literal value or a variable path.
type Expr interface {
	// Eval resolves the expression against a scope. A variable miss yields
	// (nil, nil): absence is a value-level condition, not an error.
	Eval(scope Scope) (any, error)
	// Raw returns the original token text.
	Raw() string
}

// LiteralExpr is a fixed value parsed from a quoted string or number token.
type LiteralExpr struct {
	raw   string
	value any
}

// NewLiteralExpr creates a literal expression for a known value.
func NewLiteralExpr(raw string, value any) *LiteralExpr {
	return &LiteralExpr{raw: raw, value: value}
}

// Eval returns the literal value; the scope is not consulted.
func (e *LiteralExpr) Eval(Scope) (any, error) {
	return e.value, nil
}

// Raw returns the original token text.
func (e *LiteralExpr) Raw() string {
	return e.raw
}

// Value returns the parsed literal value.
func (e *LiteralExpr) Value() any {
	return e.value
}

// VarExpr is a dot-notation context lookup.
type VarExpr struct {
	path string
}

// Eval looks the path up in the scope chain. Missing paths resolve to nil.
func (e *VarExpr) Eval(scope Scope) (any, error) {
	if scope == nil {
		return nil, nil
	}
	v, ok := scope.Get(e.path)
	if !ok {
		return nil, nil
	}
	return v, nil
}

// Raw returns the variable path.
func (e *VarExpr) Raw() string {
	return e.path
}

// Path returns the dot-notation lookup path.
func (e *VarExpr) Path() string {
	return e.path
}

// CompileToken classifies one raw invocation token. Quoted tokens become
// string literals with quotes stripped and escapes reduced; integer and
// float tokens become int64 / float64 literals; everything else is a
// variable path.
func CompileToken(token string) (Expr, error) {
	if len(token) > 0 && (token[0] == CharDoubleQuote || token[0] == CharSingleQuote) {
		if len(token) < 2 || token[len(token)-1] != token[0] {
			return nil, NewTokenError(ErrMsgUnterminatedQuote, token)
		}
		return NewLiteralExpr(token, unquote(token)), nil
	}
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return NewLiteralExpr(token, n), nil
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return NewLiteralExpr(token, f), nil
	}
	return &VarExpr{path: token}, nil
}

// unquote strips the surrounding quotes and reduces backslash escapes of
// the quote character and of the backslash itself. Other backslashes pass
// through untouched.
func unquote(token string) string {
	quote := token[0]
	body := token[1 : len(token)-1]

	if !strings.ContainsRune(body, CharBackslash) {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch == CharBackslash && i+1 < len(body) {
			next := body[i+1]
			if next == quote || next == CharBackslash {
				sb.WriteByte(next)
				i++
				continue
			}
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}
