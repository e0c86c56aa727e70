package validation

import (
	"slices"
	"strings"
)

// Report collects findings in discovery order.
//
// A report is appended to while a single walk runs and is read-only after
// Validate returns.
type Report struct {
	findings []ValidationError
	errors   int
	warnings int
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add appends findings.
func (r *Report) Add(findings ...ValidationError) {
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			r.errors++
		case SeverityWarning:
			r.warnings++
		}
		r.findings = append(r.findings, f)
	}
}

// All returns a copy of the findings in discovery order.
func (r *Report) All() []ValidationError {
	return slices.Clone(r.findings)
}

// IsOk reports whether no finding has SeverityError.
func (r *Report) IsOk() bool {
	return r.errors == 0
}

// Len returns the number of findings.
func (r *Report) Len() int {
	return len(r.findings)
}

// ErrorCount returns the number of SeverityError findings.
func (r *Report) ErrorCount() int {
	return r.errors
}

// WarningCount returns the number of SeverityWarning findings.
func (r *Report) WarningCount() int {
	return r.warnings
}

// Sorted returns the findings ordered by pointer. Findings sharing a pointer
// keep their discovery order, so the result is canonical for a given input
// no matter how it was collected.
func (r *Report) Sorted() []ValidationError {
	out := slices.Clone(r.findings)
	slices.SortStableFunc(out, func(a, b ValidationError) int {
		return strings.Compare(a.Pointer, b.Pointer)
	})
	return out
}

// Codes returns the finding codes in discovery order.
func (r *Report) Codes() []string {
	codes := make([]string, len(r.findings))
	for i, f := range r.findings {
		codes[i] = f.Code
	}
	return codes
}
