// Package oaserrors provides structured error types for oasprofile.
//
// Import path: github.com/erraggy/oasprofile/oaserrors
//
// Findings produced by validation are data and are never returned as errors.
// The types in this package describe faults: conditions that prevent a
// document from being validated at all. They support [errors.Is] and
// [errors.As] so callers can tell the categories apart.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures and structural issues
//   - [ReferenceError]: $ref resolution failures, circular references, path traversal
//   - [ResourceLimitError]: Resource exhaustion (ref depth, nesting depth)
//   - [VersionError]: The document declares a version no registered profile implements
//   - [ConfigError]: Invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrPathTraversal]: Matches [ReferenceError] with IsPathTraversal=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrUnsupportedVersion]: Matches any [VersionError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	result, err := parser.ParseFile("api.yaml")
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // Handle decode failure
//	}
//
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("Failed to resolve ref: %s\n", refErr.Ref)
//	}
//
// A resolver that gives up because the configured maximum depth was reached
// returns a [ReferenceError] whose Cause is a [ResourceLimitError], so both
// ErrReference and ErrResourceLimit match:
//
//	if errors.Is(err, oaserrors.ErrResourceLimit) {
//	    // Raise --max-ref-depth or flatten the document
//	}
package oaserrors
