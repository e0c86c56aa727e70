package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/erraggy/oasprofile/pipeline"
	"github.com/erraggy/oasprofile/validation"
	"go.yaml.in/yaml/v4"
)

// reportFinding is one finding in a structured report. Absent source
// versions and hints are written as null.
type reportFinding struct {
	Pointer       string  `json:"pointer"       yaml:"pointer"`
	Code          string  `json:"code"          yaml:"code"`
	Message       string  `json:"message"       yaml:"message"`
	Severity      string  `json:"severity"      yaml:"severity"`
	SourceVersion *string `json:"sourceVersion" yaml:"sourceVersion"`
	Hint          *string `json:"hint"          yaml:"hint"`
	Line          int     `json:"line,omitempty" yaml:"line,omitempty"`
	Column        int     `json:"column,omitempty" yaml:"column,omitempty"`
}

// fileReport is the structured report for one file.
type fileReport struct {
	File   string          `json:"file"   yaml:"file"`
	OK     bool            `json:"ok"     yaml:"ok"`
	Errors []reportFinding `json:"errors" yaml:"errors"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newFileReport(file string, report *validation.Report) fileReport {
	findings := report.All()
	out := fileReport{
		File:   file,
		OK:     report.IsOk(),
		Errors: make([]reportFinding, 0, len(findings)),
	}
	for _, f := range findings {
		out.Errors = append(out.Errors, reportFinding{
			Pointer:       f.Pointer,
			Code:          f.Code,
			Message:       f.Message,
			Severity:      f.Severity.String(),
			SourceVersion: nullable(f.SourceVersion),
			Hint:          nullable(f.Hint),
			Line:          f.Line,
			Column:        f.Column,
		})
	}
	return out
}

// textReport renders "[ok] <file>" or "[fail] <file>" followed by one
// indented line per finding.
func textReport(file string, report *validation.Report) string {
	if report.IsOk() {
		return "[ok] " + file
	}
	var b strings.Builder
	b.WriteString("[fail] ")
	b.WriteString(file)
	for _, f := range report.All() {
		b.WriteString("\n  - ")
		b.WriteString(f.String())
	}
	return b.String()
}

// renderer writes per-file results in one report format.
type renderer struct {
	format string
	stdout io.Writer
	stderr io.Writer
}

// write renders one result. Faults go to stderr in every format.
func (r *renderer) write(res pipeline.FileResult) error {
	if res.Err != nil {
		Writef(r.stderr, "[fail] %s: %v\n", res.Path, res.Err)
		return nil
	}
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.stdout)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(newFileReport(res.Path, res.Report)); err != nil {
			return fmt.Errorf("writing json report: %w", err)
		}
	case FormatYAML:
		data, err := yaml.Marshal(newFileReport(res.Path, res.Report))
		if err != nil {
			return fmt.Errorf("writing yaml report: %w", err)
		}
		Writef(r.stdout, "---\n%s", data)
	default:
		Writef(r.stdout, "%s\n", textReport(res.Path, res.Report))
	}
	return nil
}
