// Package severity provides the severity levels attached to validation findings.
//
// The levels are ordered from least to most severe:
//
//	SeverityInfo < SeverityWarning < SeverityError
//
// Only SeverityError fails a validation report. Comparisons such as
// s >= SeverityWarning are meaningful and used to check that lenient
// validation never raises the severity of a finding.
package severity

import "fmt"

// Severity indicates how serious a validation finding is.
type Severity int

const (
	// SeverityInfo indicates an informational, non-actionable finding.
	SeverityInfo Severity = iota

	// SeverityWarning indicates a finding that should be addressed but does
	// not make the document invalid.
	SeverityWarning

	// SeverityError indicates a conformance violation that makes the document invalid.
	SeverityError
)

// String returns the display name of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON and YAML reports
// carry the display name instead of the numeric level.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Info", "info":
		*s = SeverityInfo
	case "Warning", "warning":
		*s = SeverityWarning
	case "Error", "error":
		*s = SeverityError
	default:
		return fmt.Errorf("severity: unknown level %q", text)
	}
	return nil
}
