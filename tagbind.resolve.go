package tagbind

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ResolvedData is the per-render output of resolving a BoundArgs against a
// Context: cleaned argument values keyed by binding key. Every Resolve call
// returns a fresh map, so callers may mutate it freely.
type ResolvedData map[string]any

// Get returns the value bound under name. The second return distinguishes
// an absent entry from a stored nil.
func (r ResolvedData) Get(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// GetDefault returns the value bound under name, or fallback if absent.
func (r ResolvedData) GetDefault(name string, fallback any) any {
	if v, ok := r[name]; ok {
		return v
	}
	return fallback
}

// Has reports whether name carries an entry, even a nil one.
func (r ResolvedData) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Keys returns the bound names in sorted order.
func (r ResolvedData) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString returns the value under name if it is a string.
func (r ResolvedData) GetString(name string) (string, bool) {
	s, ok := r[name].(string)
	return s, ok
}

// GetInt returns the value under name if it is an int.
func (r ResolvedData) GetInt(name string) (int, bool) {
	n, ok := r[name].(int)
	return n, ok
}

// GetBool returns the value under name if it is a bool.
func (r ResolvedData) GetBool(name string) (bool, bool) {
	b, ok := r[name].(bool)
	return b, ok
}

// Resolve evaluates every binding against the context and validates the
// results in declaration order. The context may be nil, in which case all
// variable lookups miss. Resolve never mutates the receiver, so concurrent
// resolves of one BoundArgs are safe.
func (b *BoundArgs) Resolve(ctx *Context) (ResolvedData, error) {
	if ctx == nil {
		ctx = NewContext(nil)
	}
	data := make(ResolvedData, len(b.bound))
	for _, a := range b.def.args {
		bd := b.bound[a.name]
		if bd == nil {
			continue
		}
		value, err := resolveBinding(bd, ctx)
		if err != nil {
			return nil, err
		}
		data[a.key] = value
	}
	return data, nil
}

// resolveBinding produces the final value for one binding. Defaults were
// validated at definition time and bypass the clean pipeline; flags are
// plain true; everything else evaluates, passes the kind cleaner, then the
// custom clean hook.
func resolveBinding(bd *binding, ctx *Context) (any, error) {
	a := bd.arg
	switch {
	case bd.isDefault:
		return a.def, nil

	case bd.flag:
		return true, nil

	case bd.members != nil:
		out := make(map[string]any, len(bd.members))
		for _, k := range bd.memberKeys {
			v, err := bd.members[k].Resolve(ctx)
			if err != nil {
				return nil, NewEvalError(k, err)
			}
			out[k] = v
		}
		return applyClean(a, out)

	default:
		value, err := bd.expr.Resolve(ctx)
		if err != nil {
			return nil, NewEvalError(a.name, err)
		}
		if value == nil {
			if !a.nullable {
				return nil, NewNullValueError(a.name)
			}
			return nil, nil
		}
		cleaned, err := cleanForKind(a, value)
		if err != nil {
			return nil, err
		}
		return applyClean(a, cleaned)
	}
}

// applyClean runs the argument's custom clean hook, if any.
func applyClean(a *Arg, value any) (any, error) {
	if a.clean == nil {
		return value, nil
	}
	cleaned, err := a.clean(value)
	if err != nil {
		return nil, NewCleanError(a.name, err)
	}
	return cleaned, nil
}

// cleanForKind validates and converts a non-nil value according to the
// argument kind. It runs on resolved expression values and, at definition
// time, on declared defaults.
func cleanForKind(a *Arg, value any) (any, error) {
	switch a.kind {
	case KindInteger:
		return cleanInteger(a, value)
	case KindString:
		return cleanString(a, value)
	case KindBoolean:
		return cleanBoolean(a, value)
	case KindDate, KindTime, KindDateTime:
		return cleanTemporal(a, value)
	case KindInstance:
		return cleanInstance(a, value)
	case KindKeywords:
		return cleanKeywords(a, value)
	default:
		return value, nil
	}
}

// cleanInteger converts numeric values and numeric strings to int.
// Fractions truncate toward zero; booleans do not count as numbers.
func cleanInteger(a *Arg, value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float32:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, NewIntegerError(a.name, value)
		}
		return n, nil
	default:
		return nil, NewIntegerError(a.name, value)
	}
}

func cleanString(a *Arg, value any) (any, error) {
	if _, ok := value.(string); !ok {
		return nil, NewStringTypeError(a.name)
	}
	return value, nil
}

func cleanBoolean(a *Arg, value any) (any, error) {
	if _, ok := value.(bool); !ok {
		return nil, NewInstanceTypeError(a.name, TypeNameBool)
	}
	return value, nil
}

func cleanTemporal(a *Arg, value any) (any, error) {
	if _, ok := value.(time.Time); !ok {
		return nil, NewInstanceTypeError(a.name, TypeNameTime)
	}
	return value, nil
}

// cleanInstance checks assignability against the declared expected type,
// using Implements for interface expectations.
func cleanInstance(a *Arg, value any) (any, error) {
	ok := false
	if t := reflect.TypeOf(value); t != nil {
		if a.expected.Kind() == reflect.Interface {
			ok = t.Implements(a.expected)
		} else {
			ok = t.AssignableTo(a.expected)
		}
	}
	if !ok {
		return nil, NewInstanceTypeError(a.name, a.expected.String())
	}
	return value, nil
}

// cleanKeywords only sees declared defaults; bound keyword members resolve
// through their own expressions in resolveBinding.
func cleanKeywords(a *Arg, value any) (any, error) {
	if _, ok := value.(map[string]any); !ok {
		return nil, NewInstanceTypeError(a.name, TypeNameKeywords)
	}
	return value, nil
}
