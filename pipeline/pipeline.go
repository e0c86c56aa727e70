package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erraggy/oasprofile/document"
	"github.com/erraggy/oasprofile/internal/metrics"
	"github.com/erraggy/oasprofile/parser"
	"github.com/erraggy/oasprofile/profile"
	"github.com/erraggy/oasprofile/validation"
	"golang.org/x/sync/errgroup"
)

// Pipeline validates OpenAPI documents on disk against the profile their
// declared version selects.
type Pipeline struct {
	cfg *config
}

// FileResult is the outcome for one input file.
type FileResult struct {
	// Path is the input path as given.
	Path string
	// Profile is the profile the document was validated against. Nil on fault.
	Profile validation.SpecProfile
	// Report holds the findings. Nil on fault.
	Report *validation.Report
	// Err is the fault that stopped this file, if any.
	Err error
	// Duration covers parsing and validation.
	Duration time.Duration
}

// OK reports whether the file was validated and produced no errors.
func (r FileResult) OK() bool {
	return r.Err == nil && r.Report != nil && r.Report.IsOk()
}

// New creates a pipeline.
func New(opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &Pipeline{cfg: cfg}, nil
}

// Strictness returns the configured strictness.
func (p *Pipeline) Strictness() validation.Strictness {
	return p.cfg.strictness
}

// ParseFile reads, decodes and resolves the document at path.
func (p *Pipeline) ParseFile(path string) (*parser.Result, error) {
	return parser.ParseFile(path,
		parser.WithResolveExternal(p.cfg.resolveExternal),
		parser.WithMaxRefDepth(p.cfg.maxRefDepth),
		parser.WithLogger(p.cfg.logger),
	)
}

// DetectProfile picks the profile for a decoded document.
func (p *Pipeline) DetectProfile(doc *document.Object) (validation.SpecProfile, error) {
	return profile.Detect(doc, p.cfg.registry)
}

// Validate builds the typed tree for a parsed document and checks it
// against prof.
func (p *Pipeline) Validate(result *parser.Result, prof validation.SpecProfile) (*validation.Report, error) {
	if result == nil || result.Document == nil {
		return nil, errors.New("pipeline: no document to validate")
	}
	if prof == nil {
		return nil, errors.New("pipeline: no profile to validate against")
	}
	root := document.Build(result.Document)
	return validation.ForProfile(prof).Validate(root, prof, p.cfg.strictness, result.BaseURI,
		validation.WithSourceMap(result.SourceMap),
		validation.WithLogger(p.cfg.logger),
	), nil
}

// ValidateFile parses, detects and validates one file. Faults are returned
// on the result, never as a panic.
func (p *Pipeline) ValidateFile(ctx context.Context, path string) (res FileResult) {
	res.Path = path
	start := time.Now()
	log := p.cfg.logger.With("file", path)

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("pipeline: internal error validating %s: %v", path, r)
			res.Report = nil
		}
		res.Duration = time.Since(start)
		p.record(res, log)
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	log.Debug("validating file")
	parsed, err := p.ParseFile(path)
	p.cfg.metrics.ObservePhase(metrics.PhaseParse, time.Since(start))
	if err != nil {
		res.Err = err
		return res
	}
	p.cfg.metrics.RecordRefs(parsed.RefsResolved)

	prof, err := p.DetectProfile(parsed.Document)
	if err != nil {
		res.Err = err
		return res
	}
	res.Profile = prof
	log.Debug("detected profile", "version", prof.MajorMinor())

	validateStart := time.Now()
	report, err := p.Validate(parsed, prof)
	p.cfg.metrics.ObservePhase(metrics.PhaseValidate, time.Since(validateStart))
	if err != nil {
		res.Err = err
		return res
	}
	res.Report = report
	return res
}

// ValidateFiles validates every path, up to the configured concurrency at a
// time. Results are in input order. Files not yet started when ctx is
// cancelled carry ctx's error.
func (p *Pipeline) ValidateFiles(ctx context.Context, paths []string) []FileResult {
	results := make([]FileResult, len(paths))
	g := new(errgroup.Group)
	g.SetLimit(p.cfg.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = p.ValidateFile(ctx, path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Pipeline) record(res FileResult, log parser.Logger) {
	switch {
	case res.Err != nil:
		p.cfg.metrics.RecordDocument(metrics.ResultFault)
		log.Warn("file fault", "error", res.Err)
		return
	case res.Report.IsOk():
		p.cfg.metrics.RecordDocument(metrics.ResultOK)
	default:
		p.cfg.metrics.RecordDocument(metrics.ResultFail)
	}
	for _, f := range res.Report.All() {
		p.cfg.metrics.RecordFinding(f.Code, f.Severity.String())
	}
	log.Debug("validated file",
		"findings", res.Report.Len(),
		"errors", res.Report.ErrorCount(),
		"duration", res.Duration,
	)
}
