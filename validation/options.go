package validation

import (
	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/parser"
)

// DefaultMaxDepth bounds how deep a walk descends before it reports
// engine.depth-exceeded.
const DefaultMaxDepth = 512

// runConfig holds per-walk settings.
type runConfig struct {
	sourceMap *document.SourceMap
	logger    parser.Logger
	maxDepth  int
}

// Option configures a single Validate call.
type Option func(*runConfig)

func applyOptions(opts []Option) runConfig {
	cfg := runConfig{
		logger:   parser.NopLogger{},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSourceMap attaches line and column information to findings.
func WithSourceMap(sm *document.SourceMap) Option {
	return func(cfg *runConfig) {
		cfg.sourceMap = sm
	}
}

// WithLogger sets the logger for engine diagnostics. A nil logger is ignored.
func WithLogger(l parser.Logger) Option {
	return func(cfg *runConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithMaxDepth sets the maximum walk depth. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(cfg *runConfig) {
		if n > 0 {
			cfg.maxDepth = n
		}
	}
}
