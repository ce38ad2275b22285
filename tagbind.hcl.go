package tagbind

import (
	"math"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"go.uber.org/zap"
)

// hclManifest is the top-level manifest shape: any number of tag blocks.
type hclManifest struct {
	Tags []hclTagBlock `hcl:"tag,block"`
}

// hclTagBlock is one labeled tag definition block.
type hclTagBlock struct {
	Name string        `hcl:"name,label"`
	Args []hclArgBlock `hcl:"arg,block"`
}

// hclArgBlock is one labeled argument block. Default stays a cty.Value
// through decode so any HCL expression result can be converted afterwards.
type hclArgBlock struct {
	Name       string    `hcl:"name,label"`
	Kind       string    `hcl:"kind,optional"`
	Positional bool      `hcl:"positional,optional"`
	Required   *bool     `hcl:"required,optional"`
	Default    cty.Value `hcl:"default,optional"`
	Nullable   bool      `hcl:"nullable,optional"`
	Keyword    bool      `hcl:"keyword,optional"`
}

// DefinitionsFromHCL loads tag definitions from an HCL manifest:
//
//	tag "pagination" {
//	  arg "limit" {
//	    kind    = "integer"
//	    default = 100
//	  }
//	  arg "offset" {
//	    kind    = "integer"
//	    default = 0
//	  }
//	}
//
// The filename only labels diagnostics. Loaded declarations funnel through
// NewDefinition, exactly like the YAML loader.
func DefinitionsFromHCL(filename string, src []byte) ([]*Definition, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, NewDefinitionError("", ErrMsgLoaderEmptyDocument)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, NewLoaderError(SourceHCL, ErrMsgLoaderInvalidHCL, diags)
	}

	var manifest hclManifest
	if diags := gohcl.DecodeBody(file.Body, nil, &manifest); diags.HasErrors() {
		return nil, NewLoaderError(SourceHCL, ErrMsgLoaderInvalidHCL, diags)
	}
	if len(manifest.Tags) == 0 {
		return nil, NewDefinitionError("", ErrMsgLoaderEmptyDocument)
	}

	defs := make([]*Definition, 0, len(manifest.Tags))
	for _, block := range manifest.Tags {
		def, err := definitionFromHCLBlock(block)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// DefinitionsFromHCLFile loads tag definitions from an HCL manifest file.
func DefinitionsFromHCLFile(path string) ([]*Definition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, NewLoaderError(SourceHCL, ErrMsgLoaderReadFailed, err)
	}
	return DefinitionsFromHCL(path, src)
}

// LibraryFromHCL loads a manifest and registers each definition with the
// output function listed under its tag name.
func LibraryFromHCL(filename string, src []byte, outputs map[string]OutputFunc, opts ...Option) (*Library, error) {
	defs, err := DefinitionsFromHCL(filename, src)
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
			zap.String(LogFieldSource, SourceHCL),
		)
	}
	return lib, nil
}

// definitionFromHCLBlock reduces one tag block to argSpecs and builds the
// definition.
func definitionFromHCLBlock(block hclTagBlock) (*Definition, error) {
	specs := make([]argSpec, 0, len(block.Args))
	for _, a := range block.Args {
		spec := argSpec{
			name:       a.Name,
			kind:       a.Kind,
			positional: a.Positional,
			required:   a.Required,
			nullable:   a.Nullable,
			keyword:    a.Keyword,
		}
		if a.Default != cty.NilVal {
			value, err := ctyNative(a.Default)
			if err != nil {
				return nil, NewLoaderError(SourceHCL, ErrMsgLoaderBadDefault, err)
			}
			spec.def = value
			spec.hasDefault = true
		}
		specs = append(specs, spec)
	}
	return definitionFromSpecs(block.Name, specs)
}

// ctyNative converts a decoded HCL value to its native Go form. Integral
// numbers load as int so document defaults match code-declared defaults;
// other numbers load as float64.
func ctyNative(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString(), nil

	case t == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int(f), nil
		}
		return f, nil

	case t == cty.Bool:
		return v.True(), nil

	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ctyNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case t.IsObjectType() || t.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := ctyNative(elem)
			if err != nil {
				return nil, err
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, NewTypeConversionError(t.FriendlyName())
	}
}
