package profile

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/oaserrors"
	"github.com/erraggy/oasprofile/profile/oas31"
	"github.com/erraggy/oasprofile/validation"
	"golang.org/x/mod/semver"
)

// Registry maps major.minor versions to profiles. It is immutable once built.
type Registry struct {
	profiles       map[string]validation.SpecProfile
	versions       []string
	defaultVersion string
}

// NewRegistry returns a registry of profiles whose default is defaultVersion.
// Later profiles replace earlier ones with the same version.
func NewRegistry(defaultVersion string, profiles ...validation.SpecProfile) (*Registry, error) {
	r := &Registry{
		profiles:       make(map[string]validation.SpecProfile, len(profiles)),
		defaultVersion: defaultVersion,
	}
	for _, p := range profiles {
		if p == nil {
			continue
		}
		v := p.MajorMinor()
		if _, dup := r.profiles[v]; !dup {
			r.versions = append(r.versions, v)
		}
		r.profiles[v] = p
	}
	if _, ok := r.profiles[defaultVersion]; !ok {
		return nil, &oaserrors.ConfigError{
			Option:  "default profile",
			Value:   defaultVersion,
			Message: "no profile registered for the default version",
		}
	}
	slices.Sort(r.versions)
	return r, nil
}

// DefaultRegistry returns a registry holding the OpenAPI 3.1 profile as default.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(oas31.Version, oas31.New())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the profile registered for a major.minor version.
func (r *Registry) Lookup(majorMinor string) (validation.SpecProfile, bool) {
	p, ok := r.profiles[majorMinor]
	return p, ok
}

// Default returns the default profile.
func (r *Registry) Default() validation.SpecProfile {
	return r.profiles[r.defaultVersion]
}

// Versions returns the registered versions, sorted.
func (r *Registry) Versions() []string {
	return slices.Clone(r.versions)
}

// Detect selects the profile for doc.
//
// The "openapi" field is normalized to major.minor ("3.1.0" and "3.1.1-rc1"
// both select "3.1"). A document with no "openapi" field gets the default
// profile unless it declares "swagger", which no profile serves.
func Detect(doc *document.Object, r *Registry) (validation.SpecProfile, error) {
	if r == nil {
		r = DefaultRegistry()
	}
	raw, ok := doc.Get("openapi")
	if !ok {
		if sw, isSwagger := doc.Get("swagger"); isSwagger {
			return nil, &oaserrors.VersionError{
				Declared: fmt.Sprint(sw),
				Known:    r.Versions(),
				Message:  "Swagger 2.0 documents have no profile",
			}
		}
		return r.Default(), nil
	}

	declared, err := versionString(raw)
	if err != nil {
		return nil, &oaserrors.VersionError{Known: r.Versions(), Message: err.Error()}
	}
	mm, err := MajorMinor(declared)
	if err != nil {
		return nil, &oaserrors.VersionError{Declared: declared, Known: r.Versions(), Message: err.Error()}
	}
	p, ok := r.Lookup(mm)
	if !ok {
		return nil, &oaserrors.VersionError{Declared: declared, Known: r.Versions()}
	}
	return p, nil
}

// MajorMinor normalizes a version string such as "3.1.0" to "3.1".
func MajorMinor(version string) (string, error) {
	v := strings.TrimSpace(version)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("profile: %q is not a valid version", version)
	}
	return strings.TrimPrefix(semver.MajorMinor(v), "v"), nil
}

// versionString accepts the forms YAML produces for an unquoted version.
func versionString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return "", fmt.Errorf("openapi field must be a string, got %T", raw)
	}
}
