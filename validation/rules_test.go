package validation

import (
	"testing"

	"github.com/erraggy/oasprofile/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		key     string
		want    bool
	}{
		{"listed", []string{"type", "x-"}, "type", true},
		{"extension with wildcard", []string{"type", "x-"}, "x-vendor", true},
		{"extension without wildcard", []string{"type"}, "x-vendor", false},
		{"unknown", []string{"type", "x-"}, "frobnicate", false},
		{"literal wildcard key matched by prefix", []string{"x-"}, "x-", true},
		{"literal wildcard key without wildcard entry", []string{"type"}, "x-", false},
		{"empty list", nil, "type", false},
		{"prefix is case sensitive", []string{"x-"}, "X-vendor", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyAllowed(tt.allowed, tt.key))
		})
	}
}

func TestKindCode(t *testing.T) {
	assert.Equal(t, "openapidocument", KindCode(document.KindDocument))
	assert.Equal(t, "schema", KindCode(document.KindSchema))
	assert.Equal(t, "externaldocumentation", KindCode(document.KindExternalDocs))
	// cached path
	assert.Equal(t, "schema", KindCode(document.KindSchema))
}

func TestUnknownKeyRule(t *testing.T) {
	o := document.NewObject(0)
	o.Set("type", "string")
	o.Set("frobnicate", true)
	o.Set("x-vendor", 1)
	o.Set("a/b", 1)
	node := document.NewNode(document.KindSchema, o)

	ctx := NewContext(testProfile(), Strict, "").WithKind(document.KindSchema)
	got := UnknownKeyRule{}.Validate("/components/schemas/Pet", node, ctx)
	require.Len(t, got, 2)

	assert.Equal(t, "/components/schemas/Pet/frobnicate", got[0].Pointer)
	assert.Equal(t, "schema.unknown-key", got[0].Code)
	assert.Equal(t, SeverityError, got[0].Severity)
	assert.Empty(t, got[0].SourceVersion)
	assert.Equal(t, "/components/schemas/Pet/a~1b", got[1].Pointer)

	lenient := NewContext(testProfile(), Lenient, "")
	got = UnknownKeyRule{}.Validate("", node, lenient)
	require.Len(t, got, 2)
	assert.Equal(t, SeverityWarning, got[0].Severity)
}

func TestUnknownKeyRule_UnknownKindAllowsOnlyExtensions(t *testing.T) {
	node := document.NewNode(document.KindTag, obj(map[string]any{"name": "pets", "x-order": 1}))
	got := UnknownKeyRule{}.Validate("/tags/0", node, NewContext(testProfile(), Strict, ""))
	require.Len(t, got, 1)
	assert.Equal(t, "/tags/0/name", got[0].Pointer)
	assert.Equal(t, "tag.unknown-key", got[0].Code)
}

func TestUnknownKeyRule_NormalizesKeys(t *testing.T) {
	p := testProfile()
	p.lowerKeys = true
	node := document.NewNode(document.KindSchema, obj(map[string]any{"Type": "string"}))
	assert.Empty(t, UnknownKeyRule{}.Validate("", node, NewContext(p, Strict, "")))
}

func TestMissingRequiredRule(t *testing.T) {
	node := document.NewNode(document.KindInfo, obj(map[string]any{"title": "t"}))

	for _, s := range []Strictness{Strict, Lenient} {
		got := MissingRequiredRule{}.Validate("/info", node, NewContext(testProfile(), s, ""))
		require.Len(t, got, 1, s.String())
		assert.Equal(t, "/info", got[0].Pointer)
		assert.Equal(t, "info.missing-required", got[0].Code)
		assert.Equal(t, SeverityError, got[0].Severity, "missing required is an error under %s", s)
		assert.Contains(t, got[0].Message, `"version"`)
	}
}

func TestMissingRequiredRule_DeclaredOrder(t *testing.T) {
	node := document.NewNode(document.KindDocument, document.NewObject(0))
	got := MissingRequiredRule{}.Validate("", node, NewContext(testProfile(), Strict, ""))
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Message, `"openapi"`)
	assert.Contains(t, got[1].Message, `"info"`)
}

func TestDefaultRules_NoProfile(t *testing.T) {
	node := document.NewNode(document.KindSchema, obj(map[string]any{"frobnicate": 1}))
	ctx := NewContext(nil, Strict, "")
	for _, r := range DefaultRules() {
		assert.Nil(t, r.Validate("", node, ctx))
	}
}
