package tagbind

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// argDocument is the YAML shape of one argument declaration. Required is a
// pointer so an absent field keeps the kind's own default requiredness.
type argDocument struct {
	Name       string    `yaml:"name"`
	Kind       string    `yaml:"kind,omitempty"`
	Positional bool      `yaml:"positional,omitempty"`
	Required   *bool     `yaml:"required,omitempty"`
	Default    yaml.Node `yaml:"default,omitempty"`
	Nullable   bool      `yaml:"nullable,omitempty"`
	Keyword    bool      `yaml:"keyword,omitempty"`
}

// definitionDocument is the YAML shape of one tag definition.
type definitionDocument struct {
	Tag  string        `yaml:"tag"`
	Args []argDocument `yaml:"args,omitempty"`
}

// libraryDocument is the YAML shape of a multi-tag document.
type libraryDocument struct {
	Tags []definitionDocument `yaml:"tags"`
}

// argSpec is the loader-neutral argument declaration both document formats
// reduce to before descriptor construction.
type argSpec struct {
	name       string
	kind       string
	positional bool
	required   *bool
	def        any
	hasDefault bool
	nullable   bool
	keyword    bool
}

// DefinitionFromYAML loads a single tag definition from a YAML document:
//
//	tag: range
//	args:
//	  - name: start
//	    kind: integer
//	    positional: true
//	  - name: to
//	    kind: constant
//	  - name: finish
//	    kind: integer
//	    positional: true
//
// The loaded declarations funnel through NewDefinition, so every
// definition-time invariant applies to documents as well.
func DefinitionFromYAML(data []byte) (*Definition, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, NewDefinitionError("", ErrMsgLoaderEmptyDocument)
	}
	var doc definitionDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewLoaderError(SourceYAML, ErrMsgLoaderInvalidYAML, err)
	}
	return definitionFromDocument(doc)
}

// DefinitionFromYAMLFile loads a single tag definition from a YAML file.
func DefinitionFromYAMLFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewLoaderError(SourceYAML, ErrMsgLoaderReadFailed, err)
	}
	return DefinitionFromYAML(data)
}

// DefinitionsFromYAML loads every tag definition from a multi-tag YAML
// document with a top-level "tags" list.
func DefinitionsFromYAML(data []byte) ([]*Definition, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, NewDefinitionError("", ErrMsgLoaderEmptyDocument)
	}
	var doc libraryDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewLoaderError(SourceYAML, ErrMsgLoaderInvalidYAML, err)
	}
	if len(doc.Tags) == 0 {
		return nil, NewDefinitionError("", ErrMsgLoaderEmptyDocument)
	}

	defs := make([]*Definition, 0, len(doc.Tags))
	for _, d := range doc.Tags {
		def, err := definitionFromDocument(d)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LibraryFromYAML loads a multi-tag document and registers each definition
// with the output function listed under its tag name. Documents declare
// structure only; behavior stays in code.
func LibraryFromYAML(data []byte, outputs map[string]OutputFunc, opts ...Option) (*Library, error) {
	defs, err := DefinitionsFromYAML(data)
	if err != nil {
		return nil, err
	}

	lib := NewLibrary(opts...)
	for _, def := range defs {
		output, ok := outputs[def.Name()]
		if !ok {
			return nil, NewDefinitionError(def.Name(), ErrMsgLoaderNoOutput)
		}
		tag, err := NewTag(def, output)
		if err != nil {
			return nil, err
		}
		if err := lib.Register(tag); err != nil {
			return nil, err
		}
		lib.config.logger.Debug(LogMsgDefinitionLoaded,
			zap.String(LogFieldTag, def.Name()),
			zap.String(LogFieldSource, SourceYAML),
		)
	}
	return lib, nil
}

// definitionFromDocument reduces a decoded document to argSpecs and builds
// the definition.
func definitionFromDocument(doc definitionDocument) (*Definition, error) {
	specs := make([]argSpec, 0, len(doc.Args))
	for _, a := range doc.Args {
		spec := argSpec{
			name:       a.Name,
			kind:       a.Kind,
			positional: a.Positional,
			required:   a.Required,
			nullable:   a.Nullable,
			keyword:    a.Keyword,
		}
		if !a.Default.IsZero() {
			var value any
			if err := a.Default.Decode(&value); err != nil {
				return nil, NewLoaderError(SourceYAML, ErrMsgLoaderBadDefault, err)
			}
			spec.def = value
			spec.hasDefault = true
		}
		specs = append(specs, spec)
	}
	return definitionFromSpecs(doc.Tag, specs)
}

// definitionFromSpecs assembles descriptors from loader-neutral specs and
// validates them through NewDefinition.
func definitionFromSpecs(tagName string, specs []argSpec) (*Definition, error) {
	args := make([]*Arg, 0, len(specs))
	for _, spec := range specs {
		a, err := argFromSpec(tagName, spec)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return NewDefinition(tagName, args...)
}

// argFromSpec maps one declaration to a descriptor constructor. Instance
// kinds need a runtime type and cannot be declared in documents.
func argFromSpec(tagName string, spec argSpec) (*Arg, error) {
	kindName := spec.kind
	if kindName == "" {
		kindName = KindNameExpression
	}
	kind, ok := ParseKind(kindName)
	if !ok {
		return nil, NewUnknownKindError(tagName, spec.name, kindName)
	}
	if kind == KindInstance {
		return nil, NewArgDefinitionError(tagName, spec.name, ErrMsgLoaderInstanceKind)
	}

	var opts []ArgOption
	if spec.positional {
		opts = append(opts, Positional())
	}
	if spec.hasDefault {
		opts = append(opts, WithDefault(spec.def))
	}
	if spec.nullable {
		opts = append(opts, Nullable())
	}
	if spec.keyword {
		opts = append(opts, Keyword())
	}
	if spec.required != nil {
		if *spec.required {
			opts = append(opts, Required())
		} else {
			opts = append(opts, Optional())
		}
	}

	switch kind {
	case KindBasic:
		return BasicArg(spec.name, opts...), nil
	case KindInteger:
		return IntegerArg(spec.name, opts...), nil
	case KindString:
		return StringArg(spec.name, opts...), nil
	case KindBoolean:
		return BooleanArg(spec.name, opts...), nil
	case KindDate:
		return DateArg(spec.name, opts...), nil
	case KindTime:
		return TimeArg(spec.name, opts...), nil
	case KindDateTime:
		return DateTimeArg(spec.name, opts...), nil
	case KindConstant:
		return ConstantArg(spec.name, opts...), nil
	case KindKeywords:
		return KeywordsArg(spec.name, opts...), nil
	default:
		return NewArg(spec.name, opts...), nil
	}
}
