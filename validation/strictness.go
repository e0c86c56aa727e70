package validation

import (
	"fmt"
	"strings"
)

// Strictness selects how rules grade findings that are a matter of policy.
type Strictness int

const (
	// Strict reports policy findings as errors. It is the zero value.
	Strict Strictness = iota
	// Lenient downgrades policy findings to warnings.
	Lenient
)

// String returns "strict" or "lenient".
func (s Strictness) String() string {
	switch s {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Strictness(%d)", int(s))
	}
}

// ParseStrictness parses "strict" or "lenient", ignoring case.
func ParseStrictness(s string) (Strictness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("validation: unknown strictness %q", s)
	}
}

// Severity returns the severity a policy finding carries under s.
func (s Strictness) Severity() Severity {
	if s == Lenient {
		return SeverityWarning
	}
	return SeverityError
}
