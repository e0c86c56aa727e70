// Package validation implements the profile-driven validation engine.
//
// A [SpecProfile] declares, for every node kind of one specification version,
// the keys a node may carry and the keys it must carry, plus a list of extra
// [NodeValidator] rules. A [CompositeValidator] walks a typed document tree
// depth first and runs an ordered rule list against every node, collecting
// findings into a [Report].
//
// Findings are data. Nothing in this package returns an error for a
// non-conforming document; a report with no [SeverityError] finding is ok.
//
// # Quick Start
//
//	profile := oas31.New()
//	v := validation.ForProfile(profile)
//	report := v.Validate(document.Build(root), profile, validation.Strict, "file:///api.yaml")
//	for _, f := range report.All() {
//	    fmt.Println(f)
//	}
//
// # Writing Rules
//
// A rule switches on the node kind and returns nil for kinds it does not target:
//
//	rule := validation.NodeValidatorFunc(func(path string, n validation.Node, ctx validation.Context) []validation.ValidationError {
//	    if n.Kind() != document.KindOperation {
//	        return nil
//	    }
//	    if _, ok := n.Lookup("operationId"); ok {
//	        return nil
//	    }
//	    return []validation.ValidationError{{
//	        Pointer:  path,
//	        Code:     "operation.operationId.missing",
//	        Message:  "operation has no operationId",
//	        Severity: ctx.SeverityFor(),
//	    }}
//	})
//
// Rules must be pure: the same arguments always yield the same findings.
package validation
