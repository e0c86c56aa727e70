package validation

import (
	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/internal/pathutil"
)

// Context carries per-node state through a walk.
//
// Context is a value: Child, Index and WithKind return modified copies and
// never change the receiver, so sibling branches cannot observe each other.
type Context struct {
	pointer    string
	strictness Strictness
	kind       document.Kind
	baseURI    string
	profile    SpecProfile
}

// NewContext returns a root context.
func NewContext(profile SpecProfile, strictness Strictness, baseURI string) Context {
	return Context{
		pointer:    pathutil.Root,
		strictness: strictness,
		baseURI:    baseURI,
		profile:    profile,
	}
}

// Pointer returns the JSON Pointer of the current node.
func (c Context) Pointer() string { return c.pointer }

// Strictness returns the active strictness.
func (c Context) Strictness() Strictness { return c.strictness }

// NodeKind returns the kind of the current node.
func (c Context) NodeKind() document.Kind { return c.kind }

// BaseURI identifies the document for diagnostics.
func (c Context) BaseURI() string { return c.baseURI }

// Profile returns the profile the document is validated against.
func (c Context) Profile() SpecProfile { return c.profile }

// SeverityFor returns the severity of a policy finding under the active strictness.
func (c Context) SeverityFor() Severity { return c.strictness.Severity() }

// Child returns a context whose pointer is extended by the unescaped segments.
func (c Context) Child(segments ...string) Context {
	c.pointer = pathutil.Append(c.pointer, segments...)
	return c
}

// Index returns a context whose pointer is extended by an array index.
func (c Context) Index(i int) Context {
	c.pointer = pathutil.AppendIndex(c.pointer, i)
	return c
}

// WithKind returns a context for a node of kind k.
func (c Context) WithKind(k document.Kind) Context {
	c.kind = k
	return c
}
