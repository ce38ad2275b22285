// Package tagbind provides a declarative argument-definition and resolution
// engine for template-tag style constructs.
//
// A tag declares its arguments once, as an ordered set of descriptors. Tagbind
// then binds the raw token sequence of a tag invocation against those
// descriptors (a purely structural step, done once per parsed template) and
// resolves the bound expressions against a runtime context (done once per
// render).
//
// # Basic Usage
//
// Declare a definition, bind tokens, resolve against a context:
//
//	def := tagbind.MustDefinition("range",
//	    tagbind.NewArg("start", tagbind.Positional()),
//	    tagbind.ConstantArg("to"),
//	    tagbind.NewArg("finish", tagbind.Positional()),
//	)
//
//	bound, err := def.Bind([]string{"5", "to", "10"})
//	// binding is context-free and reusable across renders
//
//	data, err := bound.Resolve(tagbind.NewContext(nil))
//	// data: {"start": int64(5), "finish": int64(10)}; the "to" marker is
//	// consumed at bind time and never stored
//
// # Argument Kinds
//
// Each descriptor carries a kind that selects its validation/conversion
// strategy: NewArg (generic expression), BasicArg (raw token, never compiled),
// IntegerArg, StringArg, BooleanArg (valueless flag), DateArg, TimeArg,
// DateTimeArg, InstanceArg (reflect type check), ConstantArg (fixed literal
// marker) and KeywordsArg (compact name=value map).
//
//	def := tagbind.MustDefinition("retrieve",
//	    tagbind.IntegerArg("limit", tagbind.WithDefault(100)),
//	    tagbind.IntegerArg("offset", tagbind.Optional()),
//	)
//	bound, _ := def.Bind([]string{"offset", "25"})
//	data, _ := bound.Resolve(ctx)
//	// data: {"limit": 100, "offset": 25}
//
// # Tags and Libraries
//
// A Tag couples a definition with an output function; a Library is an explicit
// tag registry with invocation parsing:
//
//	lib := tagbind.NewLibrary()
//	lib.MustRegister(tagbind.MustTag(def,
//	    func(data tagbind.ResolvedData, ctx *tagbind.Context) (string, error) {
//	        return "hello " + data.GetDefault("name", "world").(string), nil
//	    },
//	))
//	out, err := lib.Render(`hello name "Alice"`, ctx)
//
// # Declarative Definitions
//
// Definitions can also be loaded from YAML documents or HCL manifests, which
// pass through the same definition-time validation as the builder API:
//
//	def, err := tagbind.DefinitionFromYAML(doc)
//	defs, err := tagbind.DefinitionsFromHCL("tags.hcl", src)
//
// # Error Handling
//
// Definition-time violations, bind failures and resolve failures are reported
// as distinct error kinds, discriminated with IsDefinitionError,
// IsMissingArgument, IsUnknownArgument, IsDuplicateArgument, IsUnexpectedToken
// and IsValidationError. Tags may opt into silenced rendering, replacing
// resolution and validation failures with a fallback string at the render
// boundary; definition and parse errors always propagate.
package tagbind
