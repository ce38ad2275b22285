package tagbind

import (
	"strings"

	"github.com/jhonyavella90/go-tagbind/internal"
)

// binding captures one matched argument: the descriptor plus the payload
// shape the binder produced for it. Exactly one of expr, members, flag or
// isDefault is meaningful, selected by the argument kind and how the
// invocation spelled it.
type binding struct {
	arg        *Arg
	expr       Expression
	members    map[string]Expression
	memberKeys []string
	flag       bool
	isDefault  bool
}

// BoundArgs is the structural result of matching invocation tokens against
// a Definition. It holds compiled expressions but no resolved values, so a
// single BoundArgs can be resolved repeatedly and concurrently against
// different contexts.
type BoundArgs struct {
	def   *Definition
	bound map[string]*binding
}

// Definition returns the schema the tokens were bound against.
func (b *BoundArgs) Definition() *Definition {
	return b.def
}

// Has reports whether the named argument carries a binding, either from
// the invocation or from its declared default.
func (b *BoundArgs) Has(name string) bool {
	return b.bound[name] != nil
}

// bindTokens runs the two-phase bind: positionals in declaration order,
// then named arguments in any order, then required/default accounting.
func bindTokens(d *Definition, compiler Compiler, tokens []string) (*BoundArgs, error) {
	if compiler == nil {
		compiler = DefaultCompiler()
	}
	ba := &BoundArgs{
		def:   d,
		bound: make(map[string]*binding, len(d.args)),
	}

	remaining, err := bindPositional(d, compiler, ba, tokens)
	if err != nil {
		return nil, err
	}
	if err := bindNamed(d, compiler, ba, remaining); err != nil {
		return nil, err
	}

	var missing []string
	for _, a := range d.args {
		if a.kind == KindConstant || ba.bound[a.name] != nil {
			continue
		}
		if a.required {
			missing = append(missing, a.name)
			continue
		}
		if a.hasDefault {
			ba.bound[a.name] = &binding{arg: a, isDefault: true}
		}
	}
	if len(missing) > 0 {
		return nil, NewMissingArgumentsError(d.name, missing)
	}

	return ba, nil
}

// bindPositional consumes leading tokens for the positional descriptors
// and returns the unconsumed tail. An optional positional declines a token
// that a named argument would claim, so "limit 10" binds the named limit
// even when an optional positional is still open.
func bindPositional(d *Definition, compiler Compiler, ba *BoundArgs, tokens []string) ([]string, error) {
	remaining := tokens
	for _, a := range d.positional {
		if len(remaining) == 0 {
			if a.required {
				return nil, NewMissingValueError(d.name, a.name)
			}
			continue
		}
		if !a.required && d.matchesNamed(remaining[0]) {
			continue
		}

		token := remaining[0]
		remaining = remaining[1:]

		if a.kind == KindConstant {
			if token != a.name {
				return nil, NewConstantMismatchError(d.name, a.name, token)
			}
			continue
		}

		expr, err := compileToken(compiler, a, token)
		if err != nil {
			return nil, NewBadTokenError(d.name, token, err)
		}
		ba.bound[a.name] = &binding{arg: a, expr: expr}
	}
	return remaining, nil
}

// bindNamed consumes the remaining tokens as named arguments. Each token
// is either a declared name (followed by a value token, a keyword-member
// run, or nothing for flags) or a "name=value" form for keyword-syntax
// arguments.
func bindNamed(d *Definition, compiler Compiler, ba *BoundArgs, tokens []string) error {
	remaining := tokens
	for len(remaining) > 0 {
		token := remaining[0]
		remaining = remaining[1:]

		if head, tail, hasAssign := strings.Cut(token, KeywordAssign); hasAssign {
			a, ok := d.named[head]
			if !ok {
				return NewUnknownArgumentError(d.name, token, d.suggestNamed(head))
			}
			if !a.keywordSyntax {
				return NewEqualsUnexpectedError(d.name, a.name)
			}
			if ba.bound[a.name] != nil {
				return NewDuplicateArgumentError(d.name, a.name)
			}
			if tail == "" {
				return NewMissingValueError(d.name, a.name)
			}
			expr, err := compileToken(compiler, a, tail)
			if err != nil {
				return NewBadTokenError(d.name, tail, err)
			}
			ba.bound[a.name] = &binding{arg: a, expr: expr}
			continue
		}

		a, ok := d.named[token]
		if !ok {
			return NewUnknownArgumentError(d.name, token, d.suggestNamed(token))
		}
		if ba.bound[a.name] != nil {
			return NewDuplicateArgumentError(d.name, a.name)
		}

		switch {
		case a.kind == KindBoolean:
			ba.bound[a.name] = &binding{arg: a, flag: true}

		case a.kind == KindKeywords:
			b := &binding{arg: a, members: make(map[string]Expression)}
			for len(remaining) > 0 {
				k, v, isMember := strings.Cut(remaining[0], KeywordAssign)
				if !isMember {
					break
				}
				member := remaining[0]
				remaining = remaining[1:]
				if k == "" {
					return NewBadTokenError(d.name, member, internal.NewTokenError(internal.ErrMsgEmptyKeywordName, member))
				}
				if v == "" {
					return NewMissingValueError(d.name, k)
				}
				if _, dup := b.members[k]; dup {
					return NewDuplicateArgumentError(d.name, k)
				}
				expr, err := compiler.Compile(v)
				if err != nil {
					return NewBadTokenError(d.name, v, err)
				}
				b.members[k] = expr
				b.memberKeys = append(b.memberKeys, k)
			}
			ba.bound[a.name] = b

		case a.keywordSyntax:
			return NewEqualsExpectedError(d.name, a.name)

		default:
			if len(remaining) == 0 {
				return NewMissingValueError(d.name, a.name)
			}
			value := remaining[0]
			remaining = remaining[1:]
			expr, err := compileToken(compiler, a, value)
			if err != nil {
				return NewBadTokenError(d.name, value, err)
			}
			ba.bound[a.name] = &binding{arg: a, expr: expr}
		}
	}
	return nil
}

// compileToken turns a captured value token into a bindable expression.
// Basic arguments keep the raw token text; every other kind goes through
// the compiler.
func compileToken(compiler Compiler, a *Arg, token string) (Expression, error) {
	if a.kind == KindBasic {
		return rawExpression(token), nil
	}
	return compiler.Compile(token)
}

// matchesNamed reports whether a token would be claimed by the named
// phase, in the exact shape that phase accepts.
func (d *Definition) matchesNamed(token string) bool {
	for _, a := range d.args {
		if a.positional {
			continue
		}
		if token == a.name {
			return true
		}
		if a.keywordSyntax && strings.HasPrefix(token, a.name+KeywordAssign) {
			return true
		}
	}
	return false
}

// suggestNamed returns near-miss named argument names for unknown-token
// errors.
func (d *Definition) suggestNamed(input string) []string {
	candidates := make([]string, 0, len(d.named))
	for _, a := range d.args {
		if !a.positional {
			candidates = append(candidates, a.name)
		}
	}
	return internal.FindSimilar(input, candidates, DefaultMaxSuggestions)
}
