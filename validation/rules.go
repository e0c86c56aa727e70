package validation

import (
	"fmt"
	"sync"

	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/internal/pathutil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Reserved engine codes.
const (
	CodeCycleDetected = "engine.cycle-detected"
	CodeDepthExceeded = "engine.depth-exceeded"
)

// kindCodes caches lowercased kind names. cases.Caser is stateful, so a
// fresh one is made per miss.
var kindCodes sync.Map

// KindCode returns the lowercased kind name used as a finding code prefix.
func KindCode(k document.Kind) string {
	if v, ok := kindCodes.Load(k); ok {
		return v.(string)
	}
	code := cases.Lower(language.Und).String(string(k))
	kindCodes.Store(k, code)
	return code
}

// DefaultRules returns the structural rules every profile runs first.
func DefaultRules() []NodeValidator {
	return []NodeValidator{UnknownKeyRule{}, MissingRequiredRule{}}
}

// UnknownKeyRule reports keys the profile does not permit for the node kind.
// Severity follows strictness.
type UnknownKeyRule struct{}

// Validate implements NodeValidator.
func (UnknownKeyRule) Validate(path string, node Node, ctx Context) []ValidationError {
	profile := ctx.Profile()
	if profile == nil {
		return nil
	}
	kind := node.Kind()
	allowed := profile.AllowedKeysFor(kind)

	var out []ValidationError
	for _, key := range node.Keys() {
		if KeyAllowed(allowed, profile.NormalizeKey(kind, key)) {
			continue
		}
		out = append(out, ValidationError{
			Pointer:  pathutil.Append(path, key),
			Code:     KindCode(kind) + ".unknown-key",
			Message:  fmt.Sprintf("unknown key %q in %s", key, kind),
			Severity: ctx.SeverityFor(),
		})
	}
	return out
}

// MissingRequiredRule reports required keys absent from the node.
// A missing required key is always an error.
type MissingRequiredRule struct{}

// Validate implements NodeValidator.
func (MissingRequiredRule) Validate(path string, node Node, ctx Context) []ValidationError {
	profile := ctx.Profile()
	if profile == nil {
		return nil
	}
	kind := node.Kind()
	required := profile.RequiredKeysFor(kind)
	if len(required) == 0 {
		return nil
	}

	present := make(map[string]struct{}, len(node.Keys()))
	for _, key := range node.Keys() {
		present[profile.NormalizeKey(kind, key)] = struct{}{}
	}

	var out []ValidationError
	for _, key := range required {
		if _, ok := present[key]; ok {
			continue
		}
		out = append(out, ValidationError{
			Pointer:  path,
			Code:     KindCode(kind) + ".missing-required",
			Message:  fmt.Sprintf("missing required key %q in %s", key, kind),
			Severity: SeverityError,
		})
	}
	return out
}
