package mcpserver

import (
	"context"

	"github.com/erraggy/oasprofile/pipeline"
	"github.com/erraggy/oasprofile/validation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Spec           specInput `json:"spec"                       jsonschema:"The OpenAPI document to validate"`
	Lenient        *bool     `json:"lenient,omitempty"          jsonschema:"Report profile violations as warnings instead of errors"`
	NoExternalRefs *bool     `json:"no_external_refs,omitempty" jsonschema:"Leave references to other files unresolved"`
	MaxRefDepth    int       `json:"max_ref_depth,omitempty"    jsonschema:"Maximum $ref chain length (default 64)"`
	Offset         int       `json:"offset,omitempty"           jsonschema:"Skip the first N findings (for pagination)"`
	Limit          int       `json:"limit,omitempty"            jsonschema:"Maximum number of findings to return (default 100)"`
}

type validateFinding struct {
	Pointer       string `json:"pointer"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Severity      string `json:"severity"`
	SourceVersion string `json:"source_version,omitempty"`
	Hint          string `json:"hint,omitempty"`
	Line          int    `json:"line,omitempty"`
	Column        int    `json:"column,omitempty"`
}

type validateOutput struct {
	Valid        bool              `json:"valid"`
	Version      string            `json:"version"`
	Strictness   string            `json:"strictness"`
	ErrorCount   int               `json:"error_count"`
	WarningCount int               `json:"warning_count"`
	Total        int               `json:"total"`
	Returned     int               `json:"returned"`
	Findings     []validateFinding `json:"findings,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted.
	lenient := cfg.Lenient
	if input.Lenient != nil {
		lenient = *input.Lenient
	}
	noExternal := cfg.NoExternalRefs
	if input.NoExternalRefs != nil {
		noExternal = *input.NoExternalRefs
	}
	maxDepth := cfg.MaxRefDepth
	if input.MaxRefDepth > 0 {
		maxDepth = input.MaxRefDepth
	}
	strictness := validation.Strict
	if lenient {
		strictness = validation.Lenient
	}

	parsed, err := input.Spec.resolve(parseSettings{resolveExternal: !noExternal, maxRefDepth: maxDepth})
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	p, err := pipeline.New(pipeline.WithStrictness(strictness))
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	prof, err := p.DetectProfile(parsed.Document)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	report, err := p.Validate(parsed, prof)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:        report.IsOk(),
		Version:      prof.MajorMinor(),
		Strictness:   strictness.String(),
		ErrorCount:   report.ErrorCount(),
		WarningCount: report.WarningCount(),
		Total:        report.Len(),
	}

	page := paginate(report.All(), input.Offset, input.Limit)
	output.Findings = makeSlice[validateFinding](len(page))
	for _, f := range page {
		output.Findings = append(output.Findings, validateFinding{
			Pointer:       f.Pointer,
			Code:          f.Code,
			Message:       f.Message,
			Severity:      f.Severity.String(),
			SourceVersion: f.SourceVersion,
			Hint:          f.Hint,
			Line:          f.Line,
			Column:        f.Column,
		})
	}
	output.Returned = len(output.Findings)

	return nil, output, nil
}
