package tagbind

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/jhonyavella90/go-tagbind/internal"
)

// Library is a collection of tags sharing one compiler and logger, looked
// up by name when parsing raw invocations. Registration and lookup are
// safe for concurrent use.
type Library struct {
	mu     sync.RWMutex
	tags   map[string]*Tag
	config *libraryConfig
}

// NewLibrary creates an empty tag library:
//
//	lib := tagbind.NewLibrary(tagbind.WithLogger(logger))
//	lib.MustRegister(rangeTag)
//	out, err := lib.Render("range 1 to 10", ctx)
func NewLibrary(opts ...Option) *Library {
	config := defaultLibraryConfig()
	for _, opt := range opts {
		opt(config)
	}
	config.logger.Debug(LogMsgLibraryCreated)
	return &Library{
		tags:   make(map[string]*Tag),
		config: config,
	}
}

// Register adds a tag under its definition name. A second registration
// under the same name fails and leaves the first in place.
func (l *Library) Register(tag *Tag) error {
	if tag == nil {
		return NewDefinitionError("", ErrMsgNilTag)
	}
	name := tag.Name()

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.tags[name]; exists {
		l.config.logger.Warn(LogMsgTagCollision, zap.String(LogFieldTag, name))
		return NewDefinitionError(name, ErrMsgTagExists)
	}
	l.tags[name] = tag
	l.config.logger.Debug(LogMsgTagRegistered,
		zap.String(LogFieldTag, name),
		zap.Int(LogFieldCount, tag.def.Len()),
	)
	return nil
}

// MustRegister is like Register but panics on failure. Intended for
// package-level library construction.
func (l *Library) MustRegister(tag *Tag) {
	if err := l.Register(tag); err != nil {
		panic(err)
	}
}

// Get returns the tag registered under name.
func (l *Library) Get(name string) (*Tag, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tag, ok := l.tags[name]
	return tag, ok
}

// Has reports whether a tag is registered under name.
func (l *Library) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// List returns the registered tag names in sorted order.
func (l *Library) List() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.tags))
	for name := range l.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tags.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tags)
}

// Parse tokenizes a raw invocation, "name arg1 arg2 ...", looks up the tag
// named by the first token, and binds the rest. The returned ParsedTag is
// reusable across contexts.
func (l *Library) Parse(invocation string) (*ParsedTag, error) {
	tokens, err := internal.SplitTokens(invocation)
	if err != nil {
		return nil, NewInvocationSplitError(err)
	}
	if len(tokens) == 0 {
		return nil, NewInvocationError(ErrMsgEmptyInvocation)
	}

	name := tokens[0]
	tag, ok := l.Get(name)
	if !ok {
		return nil, NewUnknownTagError(name, l.suggestTags(name))
	}

	parsed, err := tag.parseWith(l.config.compiler, l.config.logger, tokens[1:])
	if err != nil {
		return nil, err
	}
	l.config.logger.Debug(LogMsgInvocationParsed,
		zap.String(LogFieldTag, name),
		zap.Int(LogFieldTokens, len(tokens)-1),
	)
	return parsed, nil
}

// Render parses an invocation and renders it against the context in one
// step. Callers that render the same invocation repeatedly should Parse
// once and Render the ParsedTag instead.
func (l *Library) Render(invocation string, ctx *Context) (string, error) {
	parsed, err := l.Parse(invocation)
	if err != nil {
		return "", err
	}
	return parsed.Render(ctx)
}

// suggestTags returns near-miss tag names for unknown-tag errors.
func (l *Library) suggestTags(name string) []string {
	return internal.FindSimilar(name, l.List(), DefaultMaxSuggestions)
}
