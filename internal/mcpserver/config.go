package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasprofile/parser"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Validation defaults.
	Lenient        bool
	NoExternalRefs bool
	MaxRefDepth    int

	// Result paging.
	ResultLimit int
	MaxLimit    int

	// Inline content limit in bytes.
	MaxInlineSize int64

	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASPROFILE_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Lenient:            envBool("OASPROFILE_LENIENT", false),
		NoExternalRefs:     envBool("OASPROFILE_NO_EXTERNAL_REFS", false),
		MaxRefDepth:        envInt("OASPROFILE_MAX_REF_DEPTH", parser.DefaultMaxRefDepth),
		ResultLimit:        envInt("OASPROFILE_RESULT_LIMIT", 100),
		MaxLimit:           envInt("OASPROFILE_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("OASPROFILE_MAX_INLINE_SIZE", parser.MaxFileSize)),
		CacheEnabled:       envBool("OASPROFILE_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASPROFILE_CACHE_MAX_SIZE", 10),
		CacheTTL:           envDuration("OASPROFILE_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASPROFILE_CACHE_SWEEP_INTERVAL", 60*time.Second),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
