// Package parser decodes OpenAPI documents and resolves their references.
//
// JSON and YAML input are both accepted (YAML is a superset of JSON). The
// result is a generic, insertion-ordered tree of [document.Object] values
// together with a [document.SourceMap] that records where every value came
// from.
//
// # Reference Resolution
//
// By default every $ref is replaced by a deep copy of its target, so the
// tree handed to validation is acyclic and self-contained. Local references
// ("#/components/schemas/Pet") and relative file references
// ("schemas.yaml#/Pet") are supported; file references may not escape the
// directory of the root document. A reference chain that loops back on
// itself, that is longer than the maximum depth (64 by default), or that
// points at a missing target fails with an [oaserrors.ReferenceError].
//
// With [WithResolveExternal](false) file references are left in place and
// show up as Reference nodes in the typed tree.
//
// # Usage
//
//	result, err := parser.ParseFile("api.yaml", parser.WithMaxRefDepth(32))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.BaseURI, result.RefsResolved)
package parser
