package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/internal/testutil"
	"github.com/erraggy/oasprofile/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refsFixture(t *testing.T, name string) string {
	t.Helper()
	dir := testutil.Extract(t, testutil.Archive(t, "refs"))
	return filepath.Join(dir, name)
}

func TestResolver_Chain(t *testing.T) {
	path := refsFixture(t, "chain.yaml")

	t.Run("within depth", func(t *testing.T) {
		result, err := ParseFile(path, WithMaxRefDepth(3))
		require.NoError(t, err)
		a := at(t, result.Document, "/components/schemas/A").(*document.Object)
		assert.Equal(t, "string", a.GetString("type"))
		assert.False(t, a.Has("$ref"))
	})

	t.Run("too deep", func(t *testing.T) {
		_, err := ParseFile(path, WithMaxRefDepth(2))
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrReference)
		assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)

		var rl *oaserrors.ResourceLimitError
		require.ErrorAs(t, err, &rl)
		assert.Equal(t, "ref_depth", rl.ResourceType)
		assert.Equal(t, int64(2), rl.Limit)
	})
}

func TestResolver_Circular(t *testing.T) {
	_, err := ParseFile(refsFixture(t, "circular.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrCircularReference)

	var re *oaserrors.ReferenceError
	require.ErrorAs(t, err, &re)
	assert.True(t, re.IsCircular)
	assert.Equal(t, []string{
		"#/components/schemas/B",
		"#/components/schemas/A",
		"#/components/schemas/B",
	}, re.Chain)
}

func TestResolver_SelfReference(t *testing.T) {
	input := []byte(`
openapi: 3.1.0
components:
  schemas:
    Node:
      type: object
      properties:
        next:
          $ref: '#/components/schemas/Node'
`)
	_, err := Parse(input)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrCircularReference)
}

func TestResolver_Failures(t *testing.T) {
	tests := []struct {
		file    string
		target  error
		message string
	}{
		{file: "missing.yaml", target: oaserrors.ErrReference, message: "target not found"},
		{file: "traversal.yaml", target: oaserrors.ErrPathTraversal, message: "path traversal"},
		{file: "external-missing.yaml", target: os.ErrNotExist, message: "cannot load target document"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := ParseFile(refsFixture(t, tt.file))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, oaserrors.ErrReference)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestResolver_ExternalDisabled(t *testing.T) {
	for _, name := range []string{"traversal.yaml", "external-missing.yaml"} {
		t.Run(name, func(t *testing.T) {
			result, err := ParseFile(refsFixture(t, name), WithResolveExternal(false))
			require.NoError(t, err)
			a := at(t, result.Document, "/components/schemas/A").(*document.Object)
			assert.True(t, a.Has("$ref"), "file reference is left in place")
			assert.Zero(t, result.ExternalDocuments)
		})
	}
}

func TestResolver_Siblings(t *testing.T) {
	input := []byte(`
openapi: 3.1.0
components:
  schemas:
    Base:
      type: string
      description: base
    Named:
      $ref: '#/components/schemas/Base'
      description: overridden
`)
	result, err := Parse(input)
	require.NoError(t, err)

	named := at(t, result.Document, "/components/schemas/Named").(*document.Object)
	assert.Equal(t, "string", named.GetString("type"))
	assert.Equal(t, "overridden", named.GetString("description"))

	base := at(t, result.Document, "/components/schemas/Base").(*document.Object)
	assert.Equal(t, "base", base.GetString("description"), "target is copied, not aliased")
}

func TestResolver_NonObjectTarget(t *testing.T) {
	input := []byte(`
openapi: 3.1.0
info:
  title: t
components:
  schemas:
    A:
      $ref: '#/info/title'
`)
	_, err := Parse(input)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrReference)
	assert.Contains(t, err.Error(), "not an object")
}

func TestResolver_RemoteRejected(t *testing.T) {
	input := []byte(`
openapi: 3.1.0
components:
  schemas:
    A:
      $ref: 'https://example.com/schemas.yaml#/A'
`)
	_, err := Parse(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote references are not supported")
}

func TestResolver_EscapedPointer(t *testing.T) {
	input := []byte(`
openapi: 3.1.0
paths:
  /a/b:
    get:
      responses:
        "200":
          description: ok
components:
  responses:
    Copy:
      $ref: '#/paths/~1a~1b/get/responses/200'
`)
	result, err := Parse(input)
	require.NoError(t, err)
	copied := at(t, result.Document, "/components/responses/Copy").(*document.Object)
	assert.Equal(t, "ok", copied.GetString("description"))
}

func TestLookup(t *testing.T) {
	doc := document.ObjectFrom(map[string]any{
		"a": map[string]any{"b c": []any{"x", "y"}},
	})

	v, err := lookup(doc, "")
	require.NoError(t, err)
	assert.Same(t, doc, v)

	v, err = lookup(doc, "/a/b%20c/1")
	require.NoError(t, err)
	assert.Equal(t, "y", v)

	_, err = lookup(doc, "anchor")
	assert.Error(t, err)

	_, err = lookup(doc, "/missing")
	assert.Error(t, err)
}
