package tagbind

// Definition is the compiled argument schema of a single tag: its name,
// the ordered positional descriptors, and the named descriptors keyed by
// name. Definitions are validated once at construction and immutable
// afterwards, so a single Definition may serve any number of concurrent
// binds.
type Definition struct {
	name       string
	args       []*Arg
	positional []*Arg
	named      map[string]*Arg
}

// NewDefinition validates a tag's argument declarations and compiles them
// into a bindable schema:
//
//	def, err := tagbind.NewDefinition("range",
//		tagbind.IntegerArg("start", tagbind.Positional()),
//		tagbind.ConstantArg("to"),
//		tagbind.IntegerArg("finish", tagbind.Positional()),
//	)
//
// Declaration order is preserved and drives both positional binding and
// resolution order.
func NewDefinition(tagName string, args ...*Arg) (*Definition, error) {
	if tagName == "" {
		return nil, NewDefinitionError(tagName, ErrMsgEmptyTagName)
	}

	d := &Definition{
		name:  tagName,
		args:  make([]*Arg, 0, len(args)),
		named: make(map[string]*Arg),
	}

	seen := make(map[string]bool, len(args))
	optionalPositional := false
	for _, a := range args {
		if a == nil {
			return nil, NewDefinitionError(tagName, ErrMsgNilArg)
		}
		if err := validateArg(tagName, a); err != nil {
			return nil, err
		}
		if seen[a.name] {
			return nil, NewArgDefinitionError(tagName, a.name, ErrMsgDuplicateArgName)
		}
		seen[a.name] = true

		if a.positional {
			if a.required && optionalPositional {
				return nil, NewArgDefinitionError(tagName, a.name, ErrMsgRequiredAfterOpt)
			}
			if !a.required {
				optionalPositional = true
			}
			d.positional = append(d.positional, a)
		} else {
			d.named[a.name] = a
		}
		d.args = append(d.args, a)
	}

	return d, nil
}

// MustDefinition is like NewDefinition but panics on invalid declarations.
// Intended for package-level tag schemas that are fixed at compile time.
func MustDefinition(tagName string, args ...*Arg) *Definition {
	d, err := NewDefinition(tagName, args...)
	if err != nil {
		panic(err)
	}
	return d
}

// validateArg checks a single descriptor's internal consistency.
func validateArg(tagName string, a *Arg) error {
	if a.name == "" {
		return NewArgDefinitionError(tagName, a.name, ErrMsgEmptyArgName)
	}
	if a.kind == KindConstant && (!a.required || a.hasDefault || a.nullable || a.keywordSyntax) {
		return NewArgDefinitionError(tagName, a.name, ErrMsgConstantModifier)
	}
	if a.positional && (a.kind == KindBoolean || a.kind == KindKeywords) {
		return NewArgDefinitionError(tagName, a.name, ErrMsgPositionalKind)
	}
	if a.keywordSyntax && a.positional {
		return NewArgDefinitionError(tagName, a.name, ErrMsgKeywordPositional)
	}
	if a.keywordSyntax && (a.kind == KindBoolean || a.kind == KindKeywords) {
		return NewArgDefinitionError(tagName, a.name, ErrMsgKeywordKind)
	}
	if a.kind == KindInstance && a.expected == nil {
		return NewArgDefinitionError(tagName, a.name, ErrMsgInstanceTypeUnset)
	}
	if a.required && a.hasDefault {
		return NewArgDefinitionError(tagName, a.name, ErrMsgRequiredAndDefault)
	}
	if a.hasDefault {
		if a.def == nil {
			if !a.nullable {
				return NewArgDefinitionError(tagName, a.name, ErrMsgNilDefault)
			}
		} else if _, err := cleanForKind(a, a.def); err != nil {
			return NewArgDefinitionError(tagName, a.name, ErrMsgDefaultKindMismatch)
		}
	}
	return nil
}

// Extend derives a new definition from the receiver: parent positional
// arguments come first, then the child's, and named arguments from the
// child replace same-named parent declarations. The combined schema is
// revalidated under the new tag name.
func (d *Definition) Extend(tagName string, args ...*Arg) (*Definition, error) {
	overridden := make(map[string]bool, len(args))
	for _, a := range args {
		if a != nil && !a.positional {
			overridden[a.name] = true
		}
	}

	combined := make([]*Arg, 0, len(d.args)+len(args))
	for _, a := range d.positional {
		combined = append(combined, a)
	}
	for _, a := range args {
		if a != nil && a.positional {
			combined = append(combined, a)
		}
	}
	for _, a := range d.args {
		if !a.positional && !overridden[a.name] {
			combined = append(combined, a)
		}
	}
	for _, a := range args {
		if a == nil || !a.positional {
			combined = append(combined, a)
		}
	}

	return NewDefinition(tagName, combined...)
}

// Name returns the tag name the definition was declared under.
func (d *Definition) Name() string {
	return d.name
}

// Args returns all descriptors in declaration order.
func (d *Definition) Args() []*Arg {
	out := make([]*Arg, len(d.args))
	copy(out, d.args)
	return out
}

// Positional returns the positional descriptors in declaration order.
func (d *Definition) Positional() []*Arg {
	out := make([]*Arg, len(d.positional))
	copy(out, d.positional)
	return out
}

// Named returns the named descriptors in declaration order.
func (d *Definition) Named() []*Arg {
	out := make([]*Arg, 0, len(d.named))
	for _, a := range d.args {
		if !a.positional {
			out = append(out, a)
		}
	}
	return out
}

// Arg looks up a descriptor by its declared name, positional or named.
func (d *Definition) Arg(name string) (*Arg, bool) {
	for _, a := range d.args {
		if a.name == name {
			return a, true
		}
	}
	return nil, false
}

// Len returns the number of declared arguments.
func (d *Definition) Len() int {
	return len(d.args)
}

// Bind matches invocation tokens against the schema using the default
// expression compiler. See BindWith.
func (d *Definition) Bind(tokens []string) (*BoundArgs, error) {
	return d.BindWith(DefaultCompiler(), tokens)
}

// BindWith matches invocation tokens against the schema, compiling value
// tokens with the given compiler. Binding is purely structural: it never
// consults a Context, so a successful bind can be resolved many times
// against different contexts.
func (d *Definition) BindWith(compiler Compiler, tokens []string) (*BoundArgs, error) {
	return bindTokens(d, compiler, tokens)
}
