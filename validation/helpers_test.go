package validation

import (
	"slices"
	"strings"

	"github.com/erraggy/oasprofile/document"
)

// tableProfile is a minimal SpecProfile backed by literal tables.
type tableProfile struct {
	allowed   map[document.Kind][]string
	required  map[document.Kind][]string
	extras    []NodeValidator
	lowerKeys bool
}

func (p tableProfile) MajorMinor() string   { return "0.1" }
func (p tableProfile) Features() FeatureSet { return NewFeatureSet(false, false, false, nil) }

func (p tableProfile) AllowedKeysFor(kind document.Kind) []string {
	if keys, ok := p.allowed[kind]; ok {
		return slices.Clone(keys)
	}
	return []string{ExtensionWildcard}
}

func (p tableProfile) RequiredKeysFor(kind document.Kind) []string {
	return slices.Clone(p.required[kind])
}

func (p tableProfile) NormalizeKey(_ document.Kind, key string) string {
	if p.lowerKeys {
		return strings.ToLower(key)
	}
	return key
}

func (p tableProfile) ExtraValidators() []NodeValidator { return p.extras }

func testProfile() tableProfile {
	return tableProfile{
		allowed: map[document.Kind][]string{
			document.KindDocument: {"openapi", "info", "paths", "components", "x-"},
			document.KindInfo:     {"title", "version", "x-"},
			document.KindSchema:   {"type", "properties", "items", "x-"},
			document.KindPathItem: {"get", "x-"},
			document.KindOperation: {
				"responses", "operationId",
			},
			document.KindResponse: {"description"},
		},
		required: map[document.Kind][]string{
			document.KindDocument: {"openapi", "info"},
			document.KindInfo:     {"title", "version"},
			document.KindResponse: {"description"},
		},
	}
}

func obj(m map[string]any) *document.Object {
	return document.ObjectFrom(m)
}
