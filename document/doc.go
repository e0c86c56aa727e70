// Package document provides the in-memory model of a decoded OpenAPI document.
//
// Decoding produces a generic tree of [*Object] (an insertion-ordered map),
// []any, and scalar values. [Build] turns that tree into a typed node tree:
// every OpenAPI object the 3.1 specification names becomes a [*Node] tagged
// with a [Kind], and each node lists its structural children as [Edge]
// values carrying the relative JSON Pointer segments from parent to child.
//
// Map-shaped containers such as paths, responses, components.schemas and
// content are not nodes themselves: an edge from an Operation to one of its
// responses carries the two segments "responses" and "200".
//
// The tree is read-only once built. Validation walks it through the [Element]
// interface, which test code can implement directly.
package document
