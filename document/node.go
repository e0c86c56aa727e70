package document

import "strings"

// Element is a typed node that validation can walk.
//
// Walkers detect cycles in programmatically built trees by element
// identity, so implementations are usually pointer types.
type Element interface {
	// Kind returns the node's type tag.
	Kind() Kind
	// Keys returns the node's own field names in document order.
	Keys() []string
	// Lookup returns the raw value of a field.
	Lookup(key string) (any, bool)
	// Children returns the structural children in document order.
	Children() []Edge
}

// Edge links a node to one structural child.
type Edge struct {
	// Segments are the unescaped JSON Pointer tokens from parent to child.
	Segments []string
	// Target is the child node.
	Target Element
}

// Node is the Element produced by Build.
type Node struct {
	kind     Kind
	obj      *Object
	keys     []string
	children []Edge
}

var _ Element = (*Node)(nil)

// NewNode wraps obj as a node of the given kind with no children.
// All keys of obj are treated as fields.
func NewNode(kind Kind, obj *Object) *Node {
	if obj == nil {
		obj = NewObject(0)
	}
	return &Node{kind: kind, obj: obj, keys: obj.Keys()}
}

// Kind returns the node's type tag.
func (n *Node) Kind() Kind { return n.kind }

// Keys returns the node's field names in document order.
func (n *Node) Keys() []string { return n.keys }

// Lookup returns the raw value of a field.
func (n *Node) Lookup(key string) (any, bool) { return n.obj.Get(key) }

// Children returns the structural children in document order.
func (n *Node) Children() []Edge { return n.children }

// Object returns the decoded object backing the node.
func (n *Node) Object() *Object { return n.obj }

// AppendChild adds a child reached through segments.
func (n *Node) AppendChild(child Element, segments ...string) {
	n.children = append(n.children, Edge{Segments: segments, Target: child})
}

// Count returns the number of nodes in the subtree rooted at n.
// Children that are not *Node are counted as one node each.
func (n *Node) Count() int {
	total := 1
	for _, e := range n.children {
		if c, ok := e.Target.(*Node); ok {
			total += c.Count()
			continue
		}
		total++
	}
	return total
}

// fieldKeys returns the keys of obj that are fields of a node of kind k.
// A Callback maps runtime expressions to path items, so only its
// extensions are fields.
func fieldKeys(k Kind, obj *Object) []string {
	if k != KindCallback {
		return obj.Keys()
	}
	var keys []string
	for _, key := range obj.Keys() {
		if strings.HasPrefix(key, "x-") {
			keys = append(keys, key)
		}
	}
	return keys
}
