package pipeline

import (
	"runtime"

	"github.com/erraggy/oasprofile/internal/metrics"
	"github.com/erraggy/oasprofile/oaserrors"
	"github.com/erraggy/oasprofile/parser"
	"github.com/erraggy/oasprofile/profile"
	"github.com/erraggy/oasprofile/validation"
)

type config struct {
	registry        *profile.Registry
	logger          parser.Logger
	metrics         *metrics.Collector
	resolveExternal bool
	maxRefDepth     int
	strictness      validation.Strictness
	concurrency     int
}

// Option configures a Pipeline.
type Option func(*config) error

func defaultConfig() *config {
	return &config{
		registry:        profile.DefaultRegistry(),
		logger:          parser.NopLogger{},
		resolveExternal: true,
		maxRefDepth:     parser.DefaultMaxRefDepth,
		strictness:      validation.Strict,
		concurrency:     runtime.NumCPU(),
	}
}

// WithRegistry sets the profiles documents are matched against.
func WithRegistry(r *profile.Registry) Option {
	return func(cfg *config) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "registry", Message: "must not be nil"}
		}
		cfg.registry = r
		return nil
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l parser.Logger) Option {
	return func(cfg *config) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// WithMetrics records per-document metrics on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(cfg *config) error {
		cfg.metrics = c
		return nil
	}
}

// WithResolveExternal enables or disables file references (default true).
func WithResolveExternal(enabled bool) Option {
	return func(cfg *config) error {
		cfg.resolveExternal = enabled
		return nil
	}
}

// WithMaxRefDepth sets the maximum $ref chain length (default 64).
func WithMaxRefDepth(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "max-ref-depth", Value: n, Message: "must be at least 1"}
		}
		cfg.maxRefDepth = n
		return nil
	}
}

// WithStrictness sets how profile violations are graded (default Strict).
func WithStrictness(s validation.Strictness) Option {
	return func(cfg *config) error {
		cfg.strictness = s
		return nil
	}
}

// WithConcurrency bounds how many files ValidateFiles processes at once
// (default runtime.NumCPU()).
func WithConcurrency(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "concurrency", Value: n, Message: "must be at least 1"}
		}
		cfg.concurrency = n
		return nil
	}
}
