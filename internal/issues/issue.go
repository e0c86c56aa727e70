// Package issues provides the finding record produced by profile validation.
package issues

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasprofile/internal/severity"
)

// Issue represents a single conformance finding discovered while walking a document.
// Issues are built by value and never modified after they are added to a report.
type Issue struct {
	// Pointer is the JSON Pointer to the offending location (e.g., "/paths/~1pets/get")
	Pointer string `json:"pointer"`
	// Code is a stable, dotted, machine-readable identifier (e.g., "schema.nullable.deprecated-31")
	Code string `json:"code"`
	// Message is a human-readable description of the finding
	Message string `json:"message"`
	// Severity indicates the severity level of the finding
	Severity severity.Severity `json:"severity"`
	// SourceVersion is the spec version the emitting rule is scoped to (empty when version-agnostic)
	SourceVersion string `json:"sourceVersion,omitempty"`
	// Hint is an optional remediation suggestion
	Hint string `json:"hint,omitempty"`
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int `json:"line,omitempty"`
	// Column is the 1-based column number in the source file (0 if unknown)
	Column int `json:"column,omitempty"`
	// File is the source file path (empty when unknown)
	File string `json:"file,omitempty"`
}

// String renders the issue on a single line:
//
//	<Severity> [<sourceVersion>] <pointer> <code>: <message> | hint: <hint>
//
// The source version and hint segments are omitted when empty.
func (i Issue) String() string {
	var b strings.Builder
	b.WriteString(i.Severity.String())
	if i.SourceVersion != "" {
		b.WriteString(" [")
		b.WriteString(i.SourceVersion)
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(i.Pointer)
	b.WriteByte(' ')
	b.WriteString(i.Code)
	b.WriteString(": ")
	b.WriteString(i.Message)
	if i.Hint != "" {
		b.WriteString(" | hint: ")
		b.WriteString(i.Hint)
	}
	return b.String()
}

// Location returns the source location in IDE-friendly format.
// Returns "file:line:column" if file is set, "line:column" if only line is set,
// or the JSON Pointer if location is unknown.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.Pointer
	}
	if i.File != "" {
		return fmt.Sprintf("%s:%d:%d", i.File, i.Line, i.Column)
	}
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// IsError reports whether the issue fails a report.
func (i Issue) IsError() bool {
	return i.Severity == severity.SeverityError
}
