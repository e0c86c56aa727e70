package mcpserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/erraggy/oasprofile/internal/testutil"
	"github.com/erraggy/oasprofile/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultSettings = parseSettings{resolveExternal: true, maxRefDepth: 64}

const inlineDoc = `openapi: 3.1.0
info:
  title: Inline
  version: "1.0"
paths: {}
`

func petstorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(testutil.Extract(t, testutil.Archive(t, "petstore")), "api.yaml")
}

func TestSpecInput_ResolveFile(t *testing.T) {
	specCache.reset()
	result, err := specInput{File: petstorePath(t)}.resolve(defaultSettings)
	require.NoError(t, err)
	assert.Equal(t, "3.1.0", result.Document.GetString("openapi"))
	assert.Equal(t, 1, result.ExternalDocuments)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	specCache.reset()
	result, err := specInput{Content: inlineDoc}.resolve(defaultSettings)
	require.NoError(t, err)
	assert.Empty(t, result.BaseURI)
	info, ok := result.Document.GetObject("info")
	require.True(t, ok)
	assert.Equal(t, "Inline", info.GetString("title"))
}

func TestSpecInput_ContentSkipsFileRefs(t *testing.T) {
	specCache.reset()
	content := inlineDoc + `components:
  schemas:
    Pet:
      $ref: pets.yaml#/Pet
`
	result, err := specInput{Content: content}.resolve(defaultSettings)
	require.NoError(t, err)
	assert.Zero(t, result.ExternalDocuments)
}

func TestSpecInput_ResolveSourceCount(t *testing.T) {
	_, err := specInput{}.resolve(defaultSettings)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")

	_, err = specInput{File: "foo.yaml", Content: "bar"}.resolve(defaultSettings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	specCache.reset()
	_, err := specInput{File: "/nonexistent/path.yaml"}.resolve(defaultSettings)
	assert.Error(t, err)
}

func TestSpecCache_HitOnSameFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: petstorePath(t)}

	result1, err := input.resolve(defaultSettings)
	require.NoError(t, err)
	assert.Equal(t, 1, specCache.size())

	result2, err := input.resolve(defaultSettings)
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")

	result3, err := input.resolve(parseSettings{resolveExternal: false, maxRefDepth: 64})
	require.NoError(t, err)
	assert.NotSame(t, result1, result3, "different settings must not share an entry")
	assert.Equal(t, 2, specCache.size())
}

func TestSpecCache_MissOnModifiedFile(t *testing.T) {
	specCache.reset()

	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(inlineDoc), 0o644))

	input := specInput{File: path}
	result1, err := input.resolve(defaultSettings)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.1.1\ninfo: {title: V2, version: '2'}\n"), 0o644))
	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve(defaultSettings)
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Equal(t, "3.1.1", result2.Document.GetString("openapi"))
}

func TestSpecCache_LRUEviction(t *testing.T) {
	specCache.reset()

	var firstKey string
	for i := range 11 {
		content := `openapi: 3.1.0
info:
  title: "Spec ` + string(rune('A'+i)) + `"
  version: "1.0"
`
		input := specInput{Content: content}
		if i == 0 {
			firstKey = makeCacheKey(input, parseSettings{maxRefDepth: 64})
		}
		_, err := input.resolve(defaultSettings)
		require.NoError(t, err)
	}

	assert.Equal(t, 10, specCache.size())
	assert.Nil(t, specCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestSpecCache_Sweep(t *testing.T) {
	specCache.reset()
	specCache.putWithTTL("expired", nil, -time.Second)
	specCache.putWithTTL("fresh", nil, time.Hour)

	specCache.sweep()
	assert.Equal(t, 1, specCache.size())
}
