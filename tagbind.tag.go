package tagbind

import "go.uber.org/zap"

// OutputFunc renders a tag's textual output from its resolved data. The
// context is the same one the arguments resolved against, for tags that
// read surrounding state beyond their own arguments.
type OutputFunc func(data ResolvedData, ctx *Context) (string, error)

// CleanDataFunc post-processes the complete resolved data map before
// output. It covers cross-argument validation that no single descriptor
// can express; the returned map is the one handed to output.
type CleanDataFunc func(data ResolvedData) (ResolvedData, error)

// Tag pairs an argument definition with the function that renders it.
// Tags are immutable after construction.
type Tag struct {
	def           *Definition
	output        OutputFunc
	cleanData     CleanDataFunc
	silenceErrors bool
	fallback      string
}

// TagOption configures a Tag at construction time.
type TagOption func(*Tag)

// WithSilencedErrors makes Render swallow resolution and validation
// failures and return the fallback string instead. Parse errors and
// definition errors are never silenced.
func WithSilencedErrors(fallback string) TagOption {
	return func(t *Tag) {
		t.silenceErrors = true
		t.fallback = fallback
	}
}

// WithCleanData attaches a whole-map validation hook, run after every
// argument has resolved and cleaned individually.
func WithCleanData(fn CleanDataFunc) TagOption {
	return func(t *Tag) {
		t.cleanData = fn
	}
}

// NewTag builds a renderable tag from a definition and an output function:
//
//	tag, err := tagbind.NewTag(def, func(data tagbind.ResolvedData, ctx *tagbind.Context) (string, error) {
//		limit, _ := data.GetInt("limit")
//		return fmt.Sprintf("limit=%d", limit), nil
//	})
func NewTag(def *Definition, output OutputFunc, opts ...TagOption) (*Tag, error) {
	if def == nil {
		return nil, NewDefinitionError("", ErrMsgNilDefinition)
	}
	if output == nil {
		return nil, NewDefinitionError(def.name, ErrMsgNilOutput)
	}
	t := &Tag{def: def, output: output}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// MustTag is like NewTag but panics on invalid input. Intended for
// package-level tag construction.
func MustTag(def *Definition, output OutputFunc, opts ...TagOption) *Tag {
	t, err := NewTag(def, output, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the tag name from the underlying definition.
func (t *Tag) Name() string {
	return t.def.name
}

// Definition returns the tag's argument schema.
func (t *Tag) Definition() *Definition {
	return t.def
}

// Parse binds invocation tokens, everything after the tag name, into a
// reusable parsed form using the default compiler. Binding errors always
// surface here, even for tags with silenced render errors.
func (t *Tag) Parse(tokens []string) (*ParsedTag, error) {
	return t.parseWith(DefaultCompiler(), zap.NewNop(), tokens)
}

func (t *Tag) parseWith(compiler Compiler, logger *zap.Logger, tokens []string) (*ParsedTag, error) {
	bound, err := t.def.BindWith(compiler, tokens)
	if err != nil {
		return nil, err
	}
	return &ParsedTag{tag: t, bound: bound, logger: logger}, nil
}

// ParsedTag is one bound invocation of a tag, ready to resolve and render
// against any number of contexts.
type ParsedTag struct {
	tag    *Tag
	bound  *BoundArgs
	logger *zap.Logger
}

// Tag returns the tag this invocation was parsed for.
func (p *ParsedTag) Tag() *Tag {
	return p.tag
}

// Bound returns the structural binding result.
func (p *ParsedTag) Bound() *BoundArgs {
	return p.bound
}

// Resolve evaluates the invocation against the context and runs the tag's
// clean-data hook. Each call produces a fresh data map.
func (p *ParsedTag) Resolve(ctx *Context) (ResolvedData, error) {
	data, err := p.bound.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if p.tag.cleanData != nil {
		cleaned, err := p.tag.cleanData(data)
		if err != nil {
			return nil, NewCleanDataError(p.tag.Name(), err)
		}
		data = cleaned
	}
	return data, nil
}

// Render resolves the invocation and produces the tag's output. When the
// tag silences errors, resolution and validation failures log a warning
// and yield the fallback string; errors from the output function itself
// always propagate.
func (p *ParsedTag) Render(ctx *Context) (string, error) {
	data, err := p.Resolve(ctx)
	if err != nil {
		if p.tag.silenceErrors && isRenderSilenceable(err) {
			p.logger.Warn(LogMsgRenderSilenced,
				zap.String(LogFieldTag, p.tag.Name()),
				zap.String(LogFieldFallback, p.tag.fallback),
				zap.Error(err),
			)
			return p.tag.fallback, nil
		}
		return "", err
	}
	return p.tag.output(data, ctx)
}
