package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearEnv clears all OASPROFILE_* env vars to isolate tests from the ambient environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASPROFILE_LENIENT", "OASPROFILE_NO_EXTERNAL_REFS", "OASPROFILE_MAX_REF_DEPTH",
		"OASPROFILE_RESULT_LIMIT", "OASPROFILE_MAX_LIMIT", "OASPROFILE_MAX_INLINE_SIZE",
		"OASPROFILE_CACHE_ENABLED", "OASPROFILE_CACHE_MAX_SIZE",
		"OASPROFILE_CACHE_TTL", "OASPROFILE_CACHE_SWEEP_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	c := loadConfig()

	assert.False(t, c.Lenient)
	assert.False(t, c.NoExternalRefs)
	assert.Equal(t, 64, c.MaxRefDepth)
	assert.Equal(t, 100, c.ResultLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OASPROFILE_LENIENT", "true")
	t.Setenv("OASPROFILE_NO_EXTERNAL_REFS", "1")
	t.Setenv("OASPROFILE_MAX_REF_DEPTH", "8")
	t.Setenv("OASPROFILE_RESULT_LIMIT", "20")
	t.Setenv("OASPROFILE_CACHE_ENABLED", "false")
	t.Setenv("OASPROFILE_CACHE_TTL", "30s")

	c := loadConfig()

	assert.True(t, c.Lenient)
	assert.True(t, c.NoExternalRefs)
	assert.Equal(t, 8, c.MaxRefDepth)
	assert.Equal(t, 20, c.ResultLimit)
	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 30*time.Second, c.CacheTTL)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OASPROFILE_LENIENT", "maybe")
	t.Setenv("OASPROFILE_MAX_REF_DEPTH", "-5")
	t.Setenv("OASPROFILE_RESULT_LIMIT", "banana")
	t.Setenv("OASPROFILE_CACHE_TTL", "not-a-duration")

	c := loadConfig()

	assert.False(t, c.Lenient)
	assert.Equal(t, 64, c.MaxRefDepth)
	assert.Equal(t, 100, c.ResultLimit)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
}
