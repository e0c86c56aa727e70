package validation

import (
	"fmt"
	"reflect"
	"slices"
)

// CompositeValidator runs an ordered rule list over every node of a tree.
// It holds no per-walk state and may be shared between goroutines.
type CompositeValidator struct {
	rules []NodeValidator
}

// NewCompositeValidator returns a validator that runs rules in the given order.
func NewCompositeValidator(rules ...NodeValidator) *CompositeValidator {
	return &CompositeValidator{rules: slices.Clone(rules)}
}

// ForProfile returns a validator running DefaultRules followed by the
// profile's extra validators.
func ForProfile(p SpecProfile) *CompositeValidator {
	rules := DefaultRules()
	if p != nil {
		rules = append(rules, p.ExtraValidators()...)
	}
	return &CompositeValidator{rules: rules}
}

// Rules returns a copy of the rule list.
func (v *CompositeValidator) Rules() []NodeValidator {
	return slices.Clone(v.rules)
}

// Validate walks root depth first in pre-order and returns every finding.
//
// For each node the rules run in order, then children are visited in
// document order. A node met again while it is still on the descent stack
// yields one engine.cycle-detected finding and is not walked again. Nodes
// deeper than the configured maximum yield engine.depth-exceeded.
func (v *CompositeValidator) Validate(root Node, profile SpecProfile, strictness Strictness, baseURI string, opts ...Option) *Report {
	w := walk{
		cfg:     applyOptions(opts),
		rules:   v.rules,
		report:  NewReport(),
		onStack: make(map[any]struct{}),
	}
	if root == nil {
		return w.report
	}
	w.cfg.logger.Debug("validating document", "baseURI", baseURI, "profile", majorMinor(profile), "strictness", strictness.String())
	w.visit(root, NewContext(profile, strictness, baseURI), 0)
	w.cfg.logger.Debug("validation complete",
		"baseURI", baseURI,
		"nodes", w.nodes,
		"findings", w.report.Len(),
		"errors", w.report.ErrorCount(),
		"warnings", w.report.WarningCount(),
	)
	return w.report
}

type walk struct {
	cfg     runConfig
	rules   []NodeValidator
	report  *Report
	onStack map[any]struct{}
	nodes   int
}

// nodeID identifies a node of a reference type by address.
type nodeID struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// identity returns the key a node is tracked under on the descent stack.
// Nodes that are neither reference types nor comparable values have no
// identity; the depth limit still bounds them.
func identity(n Node) (any, bool) {
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return nodeID{typ: v.Type(), ptr: v.Pointer()}, true
	case reflect.Slice:
		return nodeID{typ: v.Type(), ptr: v.Pointer(), len: v.Len()}, true
	}
	if v.Comparable() {
		return n, true
	}
	return nil, false
}

func (w *walk) visit(n Node, ctx Context, depth int) {
	if depth > w.cfg.maxDepth {
		w.cfg.logger.Warn("maximum walk depth exceeded", "pointer", ctx.Pointer(), "limit", w.cfg.maxDepth)
		w.add(ValidationError{
			Pointer:  ctx.Pointer(),
			Code:     CodeDepthExceeded,
			Message:  fmt.Sprintf("document nesting exceeds %d levels; subtree not validated", w.cfg.maxDepth),
			Severity: SeverityError,
		})
		return
	}
	id, tracked := identity(n)
	if _, ok := w.onStack[id]; tracked && ok {
		w.cfg.logger.Warn("cycle detected in document tree", "pointer", ctx.Pointer())
		w.add(ValidationError{
			Pointer:  ctx.Pointer(),
			Code:     CodeCycleDetected,
			Message:  fmt.Sprintf("%s node is its own ancestor; branch not validated", n.Kind()),
			Severity: SeverityError,
		})
		return
	}
	if tracked {
		w.onStack[id] = struct{}{}
		defer delete(w.onStack, id)
	}
	w.nodes++

	ctx = ctx.WithKind(n.Kind())
	path := ctx.Pointer()
	for _, rule := range w.rules {
		w.add(rule.Validate(path, n, ctx)...)
	}
	for _, edge := range n.Children() {
		if edge.Target == nil {
			continue
		}
		w.visit(edge.Target, ctx.Child(edge.Segments...), depth+1)
	}
}

func (w *walk) add(findings ...ValidationError) {
	if w.cfg.sourceMap != nil {
		for i := range findings {
			if findings[i].Line != 0 {
				continue
			}
			loc := w.cfg.sourceMap.Locate(findings[i].Pointer)
			if loc.IsKnown() {
				findings[i].Line = loc.Line
				findings[i].Column = loc.Column
				findings[i].File = loc.File
			}
		}
	}
	w.report.Add(findings...)
}

func majorMinor(p SpecProfile) string {
	if p == nil {
		return ""
	}
	return p.MajorMinor()
}
