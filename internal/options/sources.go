// Package options provides shared checks on tool and command inputs.
package options

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasprofile/oaserrors"
)

// Source is one way an input document can be supplied.
type Source struct {
	// Name is the option name shown to the caller (e.g., "file").
	Name string
	// Set reports whether the caller supplied it.
	Set bool
}

// SingleSource ensures exactly one input source is set and returns its name.
func SingleSource(option string, sources ...Source) (string, error) {
	var set []string
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return set[0], nil
	case 0:
		return "", &oaserrors.ConfigError{
			Option:  option,
			Message: fmt.Sprintf("exactly one of %s must be provided", strings.Join(names, " or ")),
		}
	default:
		return "", &oaserrors.ConfigError{
			Option:  option,
			Value:   set,
			Message: fmt.Sprintf("exactly one of %s must be provided (got %d)", strings.Join(names, " or "), len(set)),
		}
	}
}
