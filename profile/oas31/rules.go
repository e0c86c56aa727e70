package oas31

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/validation"
)

// Finding codes emitted by the 3.1 rules.
const (
	CodeNullableDeprecated = "schema.nullable.deprecated-31"
	CodeDocumentDialect    = "openapi.jsonSchemaDialect.invalid"
	CodeSchemaDialect      = "schema.dialect.invalid"
)

// Canonical dialect URIs suggested in hints.
const (
	DialectBase           = "https://spec.openapis.org/oas/3.1/dialect/base"
	JSONSchemaDraft202012 = "https://json-schema.org/draft/2020-12/schema"
)

// NullableKeywordRule flags Schema objects that use "nullable".
type NullableKeywordRule struct{}

// Validate implements validation.NodeValidator.
func (NullableKeywordRule) Validate(path string, node validation.Node, ctx validation.Context) []validation.ValidationError {
	if node.Kind() != document.KindSchema {
		return nil
	}
	if _, ok := node.Lookup("nullable"); !ok {
		return nil
	}
	typ, _ := node.Lookup("type")
	return []validation.ValidationError{{
		Pointer:       path,
		Code:          CodeNullableDeprecated,
		Message:       `"nullable" is not a keyword in OpenAPI 3.1; use a "null" type instead`,
		Severity:      ctx.SeverityFor(),
		SourceVersion: Version,
		Hint:          nullableHint(typ),
	}}
}

// nullableHint suggests the type value with "null" added, or "" when no
// simple rewrite applies.
func nullableHint(typ any) string {
	switch t := typ.(type) {
	case string:
		if t == "" {
			return ""
		}
		return `remove "nullable" and set ` + typeList([]string{t, "null"})
	case []any:
		seen := make(map[string]bool, len(t)+1)
		types := make([]string, 0, len(t)+1)
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return ""
			}
			if !seen[s] {
				seen[s] = true
				types = append(types, s)
			}
		}
		if seen["null"] {
			return ""
		}
		return `remove "nullable" and set ` + typeList(append(types, "null"))
	}
	return ""
}

func typeList(types []string) string {
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = strconv.Quote(t)
	}
	return "type: [" + strings.Join(quoted, ", ") + "]"
}

// DialectRule checks that the document's "jsonSchemaDialect" and every
// Schema's "$schema" are absolute URIs.
type DialectRule struct{}

// Validate implements validation.NodeValidator.
func (DialectRule) Validate(path string, node validation.Node, ctx validation.Context) []validation.ValidationError {
	switch node.Kind() {
	case document.KindDocument:
		v, ok := node.Lookup("jsonSchemaDialect")
		if !ok || v == nil || v == "" {
			return nil
		}
		if s, isString := v.(string); isString && IsAbsoluteURI(s) {
			return nil
		}
		return []validation.ValidationError{{
			Pointer:       path,
			Code:          CodeDocumentDialect,
			Message:       `"jsonSchemaDialect" must be an absolute URI`,
			Severity:      ctx.SeverityFor(),
			SourceVersion: Version,
			Hint:          "e.g. " + DialectBase,
		}}
	case document.KindSchema:
		v, ok := node.Lookup("$schema")
		if !ok || v == nil {
			return nil
		}
		if s, isString := v.(string); isString && IsAbsoluteURI(s) {
			return nil
		}
		return []validation.ValidationError{{
			Pointer:       path,
			Code:          CodeSchemaDialect,
			Message:       `"$schema" must be an absolute URI`,
			Severity:      ctx.SeverityFor(),
			SourceVersion: Version,
			Hint:          "e.g. " + JSONSchemaDraft202012,
		}}
	}
	return nil
}

// IsAbsoluteURI reports whether s parses as a URI with both a scheme and a host.
func IsAbsoluteURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
