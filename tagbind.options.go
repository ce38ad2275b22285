package tagbind

import "go.uber.org/zap"

// libraryConfig holds the tunable collaborators of a Library.
type libraryConfig struct {
	logger   *zap.Logger
	compiler Compiler
}

// defaultLibraryConfig returns the baseline configuration: a no-op logger
// and the default expression compiler.
func defaultLibraryConfig() *libraryConfig {
	return &libraryConfig{
		logger:   zap.NewNop(),
		compiler: DefaultCompiler(),
	}
}

// Option customizes a Library at construction time.
type Option func(*libraryConfig)

// WithLogger sets the logger used for registration events and silenced
// render errors. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *libraryConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCompiler sets the expression compiler applied to invocation value
// tokens. A nil compiler is ignored.
func WithCompiler(compiler Compiler) Option {
	return func(c *libraryConfig) {
		if compiler != nil {
			c.compiler = compiler
		}
	}
}
