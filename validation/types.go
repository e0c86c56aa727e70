package validation

import (
	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/internal/issues"
	"github.com/erraggy/oasprofile/internal/severity"
)

// Severity indicates how serious a finding is.
type Severity = severity.Severity

// Severity levels, least severe first.
const (
	SeverityInfo    = severity.SeverityInfo
	SeverityWarning = severity.SeverityWarning
	SeverityError   = severity.SeverityError
)

// ValidationError is one finding.
type ValidationError = issues.Issue

// Node is a typed document node as seen by rules.
type Node = document.Element

// NodeValidator is one self-contained check run against every node.
//
// Validate must be deterministic and free of side effects. It inspects
// node.Kind() and returns nil for kinds it does not target.
type NodeValidator interface {
	Validate(path string, node Node, ctx Context) []ValidationError
}

// NodeValidatorFunc adapts a function to NodeValidator.
type NodeValidatorFunc func(path string, node Node, ctx Context) []ValidationError

// Validate calls f.
func (f NodeValidatorFunc) Validate(path string, node Node, ctx Context) []ValidationError {
	return f(path, node, ctx)
}
