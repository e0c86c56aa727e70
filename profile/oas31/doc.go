// Package oas31 provides the validation profile for OpenAPI 3.1 documents.
//
// The profile declares the allowed and required keys of every OpenAPI 3.1
// object, the JSON Schema 2020-12 keyword set for Schema objects, and two
// extra rules:
//
//   - [NullableKeywordRule] flags the "nullable" keyword, which 3.1 dropped
//     in favor of a "null" member in "type".
//   - [DialectRule] checks that "jsonSchemaDialect" and "$schema" are absolute URIs.
//
// Use [New] to obtain the profile and validation.ForProfile to build a
// validator for it.
package oas31
