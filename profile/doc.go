// Package profile selects the validation profile for a decoded document.
//
// A [Registry] holds profiles keyed by major.minor version with one
// designated default. [Detect] reads the document's "openapi" field,
// normalizes it to major.minor and looks it up; a document without the
// field is validated against the default profile.
package profile
