package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/internal/testutil"
	"github.com/erraggy/oasprofile/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at evaluates a JSON Pointer against a parsed document.
func at(t *testing.T, doc *document.Object, ptr string) any {
	t.Helper()
	v, err := lookup(doc, ptr)
	require.NoError(t, err, "pointer %s", ptr)
	return v
}

func TestParseFile_Petstore(t *testing.T) {
	dir := testutil.Extract(t, testutil.Archive(t, "petstore"))

	result, err := ParseFile(filepath.Join(dir, "api.yaml"))
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, result.Format)
	assert.True(t, strings.HasPrefix(result.BaseURI, "file://"))
	assert.True(t, strings.HasSuffix(result.BaseURI, "/api.yaml"))
	assert.Equal(t, 1, result.ExternalDocuments)
	assert.Greater(t, result.RefsResolved, 4)

	param, ok := at(t, result.Document, "/paths/~1pets/get/parameters/0").(*document.Object)
	require.True(t, ok)
	assert.Equal(t, "limit", param.GetString("name"))
	assert.False(t, param.Has("$ref"))

	pet, ok := at(t, result.Document, "/paths/~1pets/post/requestBody/content/application~1json/schema").(*document.Object)
	require.True(t, ok)
	assert.Equal(t, "object", pet.GetString("type"))
	assert.Equal(t, "pet", pet.GetString("x-model"))

	keys := result.Document.Keys()
	assert.Equal(t, "openapi", keys[0], "key order is preserved")
}

func TestParseFile_SourceMap(t *testing.T) {
	dir := testutil.Extract(t, testutil.Archive(t, "petstore"))

	result, err := ParseFile(filepath.Join(dir, "api.yaml"))
	require.NoError(t, err)
	require.NotNil(t, result.SourceMap)

	loc := result.SourceMap.GetKey("/openapi")
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 1, loc.Column)

	info := result.SourceMap.GetKey("/info")
	assert.Equal(t, 3, info.Line)

	t.Run("disabled", func(t *testing.T) {
		result, err := ParseFile(filepath.Join(dir, "api.yaml"), WithSourceMap(false))
		require.NoError(t, err)
		assert.Nil(t, result.SourceMap)
	})
}

func TestParseFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "file not found")
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ParseFile(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		dir := testutil.Extract(t, testutil.Archive(t, "scenarios"))
		_, err := ParseFile(filepath.Join(dir, "malformed.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrParse)

		var pe *oaserrors.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, filepath.Join(dir, "malformed.json"), pe.Path)
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  Format
		wantErr string
	}{
		{name: "yaml", input: "openapi: 3.1.0\ninfo: {title: t, version: '1'}\n", format: FormatYAML},
		{name: "json", input: `{"openapi": "3.1.0", "info": {"title": "t", "version": "1"}}`, format: FormatJSON},
		{name: "empty", input: "  \n", wantErr: "empty document"},
		{name: "scalar root", input: "just a string", wantErr: "document root must be an object"},
		{name: "sequence root", input: "- a\n- b\n", wantErr: "document root must be an object"},
		{name: "invalid", input: "a: [1, 2", wantErr: "invalid YAML or JSON"},
		{name: "complex key", input: "? [a, b]\n: c\n", wantErr: "mapping keys must be scalars"},
		{name: "duplicate key", input: "openapi: 3.1.0\ninfo: {}\nopenapi: 3.0.0\n", wantErr: `mapping key "openapi" already defined at line 1`},
		{name: "anchor contains itself", input: "openapi: 3.1.0\nx-loop: &loop [*loop]\n", wantErr: "contains itself"},
		{name: "merge scalar", input: "openapi: 3.1.0\nx-a: &a 1\ninfo:\n  <<: *a\n", wantErr: "map merge requires"},
		{name: "merge nested sequence", input: "openapi: 3.1.0\ninfo:\n  <<: [[{a: 1}]]\n", wantErr: "map merge requires"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, oaserrors.ErrParse)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, result.Format)
			assert.Equal(t, "3.1.0", result.Document.GetString("openapi"))
			assert.Empty(t, result.BaseURI)
		})
	}
}

func TestParse_Aliases(t *testing.T) {
	input := []byte(`openapi: 3.1.0
components:
  schemas:
    A: &name
      type: string
      enum: [a, b]
    B: *name
`)
	result, err := Parse(input)
	require.NoError(t, err)

	a := at(t, result.Document, "/components/schemas/A").(*document.Object)
	b := at(t, result.Document, "/components/schemas/B").(*document.Object)
	assert.Equal(t, a.Keys(), b.Keys())
	assert.Equal(t, []any{"a", "b"}, at(t, result.Document, "/components/schemas/B/enum"))
	assert.NotSame(t, a, b, "aliases decode to independent copies")

	b.Set("type", "integer")
	assert.Equal(t, "string", a.GetString("type"))
}

func TestParse_MergeKeys(t *testing.T) {
	input := []byte(`x-common: &common
  title: Shared
  version: "1"
x-extra: &extra
  title: Extra
  summary: from extra
openapi: 3.1.0
info:
  <<: [*common, *extra]
  description: local
  version: "2"
x-quoted:
  "<<": literal
`)
	result, err := Parse(input)
	require.NoError(t, err)

	info := at(t, result.Document, "/info").(*document.Object)
	assert.Equal(t, []string{"description", "version", "title", "summary"}, info.Keys())
	assert.False(t, info.Has("<<"))
	assert.Equal(t, "2", info.GetString("version"), "explicit keys win over merged ones")
	assert.Equal(t, "Shared", info.GetString("title"), "earlier merge sources win")
	assert.Equal(t, "from extra", info.GetString("summary"))

	assert.Equal(t, 2, result.SourceMap.GetKey("/info/title").Line)
	assert.Equal(t, 6, result.SourceMap.Get("/info/summary").Line)

	quoted := at(t, result.Document, "/x-quoted").(*document.Object)
	assert.Equal(t, "literal", quoted.GetString("<<"))
}

func TestParse_MergeSingleMapping(t *testing.T) {
	input := []byte(`openapi: 3.1.0
x-defaults:
  info: &info
    title: t
    version: "1"
info:
  version: "2"
  <<: *info
`)
	result, err := Parse(input)
	require.NoError(t, err)

	info := at(t, result.Document, "/info").(*document.Object)
	assert.Equal(t, []string{"version", "title"}, info.Keys())
	assert.Equal(t, "2", info.GetString("version"))
}

func TestParse_ExcessiveAliasing(t *testing.T) {
	var b strings.Builder
	b.WriteString("openapi: 3.1.0\n")
	b.WriteString(`x-a: &a ["lol","lol","lol","lol","lol","lol","lol","lol","lol","lol"]` + "\n")
	prev := "a"
	for _, level := range []string{"b", "c", "d", "e", "f", "g", "h", "i"} {
		refs := strings.TrimSuffix(strings.Repeat("*"+prev+",", 10), ",")
		b.WriteString("x-" + level + ": &" + level + " [" + refs + "]\n")
		prev = level
	}
	require.Less(t, b.Len(), 1024)

	start := time.Now()
	_, err := Parse([]byte(b.String()))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrParse)
	assert.Contains(t, err.Error(), "excessive aliasing")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestParse_ModerateAliasing(t *testing.T) {
	var b strings.Builder
	b.WriteString("openapi: 3.1.0\nx-shared: &s {type: string, minLength: 1}\nx-uses:\n")
	for i := 0; i < 50; i++ {
		b.WriteString("  - *s\n")
	}
	result, err := Parse([]byte(b.String()))
	require.NoError(t, err)
	assert.Len(t, at(t, result.Document, "/x-uses"), 50)
}

func TestParse_Options(t *testing.T) {
	input := []byte(`
openapi: 3.1.0
components:
  schemas:
    A:
      $ref: '#/components/schemas/B'
    B:
      type: string
`)

	t.Run("resolve disabled", func(t *testing.T) {
		result, err := Parse(input, WithResolveRefs(false))
		require.NoError(t, err)
		a := at(t, result.Document, "/components/schemas/A").(*document.Object)
		assert.Equal(t, "#/components/schemas/B", a.GetString("$ref"))
		assert.Zero(t, result.RefsResolved)
	})

	t.Run("invalid depth", func(t *testing.T) {
		_, err := Parse(input, WithMaxRefDepth(0))
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := Parse(input, WithLogger(nil))
		require.NoError(t, err)
	})
}
