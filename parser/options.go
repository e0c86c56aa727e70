package parser

import (
	"github.com/erraggy/oasprofile/oaserrors"
)

const (
	// DefaultMaxRefDepth is the default maximum length of a $ref chain.
	DefaultMaxRefDepth = 64

	// MaxFileSize is the maximum size (in bytes) of a document or referenced file.
	MaxFileSize = 10 * 1024 * 1024 // 10MB

	// MaxCachedDocuments is the maximum number of external documents loaded for one root.
	MaxCachedDocuments = 100
)

// parseConfig holds the settings for one parse.
type parseConfig struct {
	sourcePath      string
	resolveRefs     bool
	resolveExternal bool
	maxRefDepth     int
	sourceMap       bool
	logger          Logger
}

// Option configures Parse and ParseFile.
type Option func(*parseConfig) error

func applyOptions(opts []Option) (*parseConfig, error) {
	cfg := &parseConfig{
		resolveRefs:     true,
		resolveExternal: true,
		maxRefDepth:     DefaultMaxRefDepth,
		sourceMap:       true,
		logger:          NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithSourcePath names the input for error messages and sets the directory
// that relative file references resolve against. ParseFile sets it itself.
func WithSourcePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourcePath = path
		return nil
	}
}

// WithResolveRefs enables or disables $ref resolution entirely (default true).
func WithResolveRefs(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.resolveRefs = enabled
		return nil
	}
}

// WithResolveExternal enables or disables resolution of file references (default true).
// Local references are still resolved when disabled.
func WithResolveExternal(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.resolveExternal = enabled
		return nil
	}
}

// WithMaxRefDepth sets the maximum length of a $ref chain (default 64).
func WithMaxRefDepth(n int) Option {
	return func(cfg *parseConfig) error {
		if n < 1 {
			return &oaserrors.ConfigError{
				Option:  "max-ref-depth",
				Value:   n,
				Message: "must be at least 1",
			}
		}
		cfg.maxRefDepth = n
		return nil
	}
}

// WithSourceMap enables or disables source position tracking (default true).
func WithSourceMap(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceMap = enabled
		return nil
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}
