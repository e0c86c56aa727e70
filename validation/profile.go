package validation

import (
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/oasprofile/document"
)

// ExtensionWildcard is the allowed-key entry that permits every key with
// the "x-" prefix.
const ExtensionWildcard = "x-"

// SpecProfile declares the structure one specification version permits.
//
// Implementations are immutable after construction and safe for concurrent use.
type SpecProfile interface {
	// MajorMinor returns the version the profile implements, e.g. "3.1".
	MajorMinor() string
	// Features describes static capabilities.
	Features() FeatureSet
	// AllowedKeysFor returns the permitted keys for a node kind. Unknown kinds
	// yield at least ExtensionWildcard.
	AllowedKeysFor(kind document.Kind) []string
	// RequiredKeysFor returns the keys a node of the given kind must carry.
	// Unknown kinds yield nil.
	RequiredKeysFor(kind document.Kind) []string
	// NormalizeKey maps a key before it is compared against the tables.
	NormalizeKey(kind document.Kind, key string) string
	// ExtraValidators returns rules layered on the structural defaults, in run order.
	ExtraValidators() []NodeValidator
}

// KeyAllowed reports whether key is permitted by an allowed-key list:
// it is listed verbatim, or the list contains ExtensionWildcard and key
// starts with "x-".
func KeyAllowed(allowed []string, key string) bool {
	wildcard := false
	for _, a := range allowed {
		if a == ExtensionWildcard {
			wildcard = true
			continue
		}
		if a == key {
			return true
		}
	}
	return wildcard && strings.HasPrefix(key, ExtensionWildcard)
}

// FeatureSet is an immutable description of what a profile supports.
type FeatureSet struct {
	jsonSchema202012  bool
	webhooks          bool
	mediaTypeExamples bool
	extra             map[string]any
}

// NewFeatureSet returns a feature set. extra is copied.
func NewFeatureSet(jsonSchema202012, webhooks, mediaTypeExamples bool, extra map[string]any) FeatureSet {
	return FeatureSet{
		jsonSchema202012:  jsonSchema202012,
		webhooks:          webhooks,
		mediaTypeExamples: mediaTypeExamples,
		extra:             maps.Clone(extra),
	}
}

// JSONSchema202012 reports whether schemas use the JSON Schema 2020-12 dialect.
func (f FeatureSet) JSONSchema202012() bool { return f.jsonSchema202012 }

// Webhooks reports whether the top-level webhooks field is supported.
func (f FeatureSet) Webhooks() bool { return f.webhooks }

// MediaTypeExamples reports whether examples are allowed at the media type level.
func (f FeatureSet) MediaTypeExamples() bool { return f.mediaTypeExamples }

// Flag returns an extra flag, false when absent or not a boolean.
func (f FeatureSet) Flag(name string) bool {
	b, _ := f.extra[name].(bool)
	return b
}

// Value returns an extra value.
func (f FeatureSet) Value(name string) (any, bool) {
	v, ok := f.extra[name]
	return v, ok
}

// ExtraNames returns the names of the extra flags, sorted.
func (f FeatureSet) ExtraNames() []string {
	return slices.Sorted(maps.Keys(f.extra))
}
