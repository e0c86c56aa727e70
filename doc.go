// Package oasprofile checks OpenAPI 3.1 documents against a declarative
// version profile.
//
// A profile lists, for every kind of object in an OpenAPI document, which
// keys it may carry and which it must carry, plus a bundle of feature flags
// and extra semantic rules. Validation walks the document once and reports
// every violation as a finding with a JSON Pointer, a stable code, a
// severity and an optional remediation hint. It does not evaluate JSON
// Schema against instance data.
//
// # Packages
//
//   - parser: decode JSON or YAML, record source positions, resolve $ref
//   - document: the decoded value model and the typed node tree
//   - validation: the profile contract, the walk and the default rules
//   - profile: the profile registry and version detection
//   - profile/oas31: the OpenAPI 3.1 profile and its rules
//   - pipeline: parse, detect and validate files, alone or in batches
//   - oaserrors: typed errors for parse, reference, version and limit faults
//
// # Quick Start
//
//	p, err := pipeline.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	res := p.ValidateFile(ctx, "openapi.yaml")
//	if res.Err != nil {
//		log.Fatal(res.Err)
//	}
//	for _, f := range res.Report.All() {
//		fmt.Println(f)
//	}
//
// # Strictness
//
// Under [validation.Strict] (the default) profile violations are errors.
// Under [validation.Lenient] they are warnings, except missing required
// keys, which are always errors.
//
// # Command Line
//
// The oasprofile command validates files from the shell:
//
//	oasprofile [--lenient] [--no-external-refs] [--max-ref-depth=N] [--report=txt|json|yaml] <file>...
//
// and "oasprofile mcp" serves the same validation over the Model Context
// Protocol.
package oasprofile
