package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestArchive(t *testing.T) {
	ar := Archive(t, "scenarios")
	require.NotEmpty(t, ar.Files)
	assert.Contains(t, string(File(t, ar, "missing-version.yaml")), "openapi: 3.1.0")
}

func TestExtract(t *testing.T) {
	ar := Archive(t, "petstore")
	dir := Extract(t, ar)
	for _, f := range ar.Files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name))
		require.NoError(t, err)
		assert.Equal(t, f.Data, data)
	}
}

func TestWriteTempYAML(t *testing.T) {
	path := WriteTempYAML(t, MinimalDocument())
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "3.1.0", got["openapi"])
}

func TestWriteTempJSON(t *testing.T) {
	path := WriteTempJSON(t, MinimalDocument())
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	info, ok := got["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Test API", info["title"])
}
