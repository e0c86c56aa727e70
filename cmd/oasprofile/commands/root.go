package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/erraggy/oasprofile"
	"github.com/erraggy/oasprofile/internal/metrics"
	"github.com/erraggy/oasprofile/internal/pathutil"
	"github.com/erraggy/oasprofile/parser"
	"github.com/erraggy/oasprofile/pipeline"
	"github.com/erraggy/oasprofile/validation"
	"github.com/spf13/cobra"
)

// ValidateFlags contains flags for the root validate command.
type ValidateFlags struct {
	Lenient        bool
	NoExternalRefs bool
	MaxRefDepth    int
	Report         string
	Verbose        bool
	Watch          bool
	MetricsFile    string
	Jobs           int
}

const rootLong = `Validate OpenAPI 3.1 documents against the profile their openapi version
selects: allowed and required keys per object, deprecated keywords, and
schema dialect URIs.

Output Formats:
  txt (default)  [ok] <file> or [fail] <file> with one line per finding
  json           one JSON object per file per line
  yaml           one YAML document per file

Exit Codes:
  0    every file validated without errors
  1    a file failed validation or could not be read
  2    no input files or invalid flags`

// NewRootCommand builds the command tree. The root command validates the
// files named as arguments.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &ValidateFlags{}

	root := &cobra.Command{
		Use:     "oasprofile [flags] <file>...",
		Short:   "Validate OpenAPI 3.1 documents against a version profile",
		Long:    rootLong,
		Version: oasprofile.Version(),
		Args:    cobra.ArbitraryArgs,
		Example: `  oasprofile openapi.yaml
  oasprofile --lenient --report=json api/*.yaml
  oasprofile --no-external-refs --max-ref-depth=16 openapi.json
  oasprofile --watch openapi.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return &exitError{code: ExitUsage}
			}
			code, err := runValidate(cmd.Context(), flags, args, stdout, stderr)
			if err != nil {
				return &exitError{code: ExitUsage, err: err}
			}
			if code != ExitOK {
				return &exitError{code: code}
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	f := root.Flags()
	f.BoolVar(&flags.Lenient, "lenient", false, "report profile violations as warnings instead of errors")
	f.BoolVar(&flags.NoExternalRefs, "no-external-refs", false, "do not resolve $ref into other files (only local #/...)")
	f.IntVar(&flags.MaxRefDepth, "max-ref-depth", parser.DefaultMaxRefDepth, "maximum $ref chain length")
	f.StringVar(&flags.Report, "report", FormatText, "output format: txt, json, or yaml")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "log diagnostics to stderr")
	f.BoolVarP(&flags.Watch, "watch", "w", false, "re-validate when an input file changes")
	f.StringVar(&flags.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file after each run")
	f.IntVarP(&flags.Jobs, "jobs", "j", runtime.NumCPU(), "number of files validated concurrently")

	root.AddCommand(newMCPCommand(), newVersionCommand(stdout))
	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(dropUnknownFlags(root, args))
	err := root.ExecuteContext(ctx)
	var ee *exitError
	if err != nil && (!errors.As(err, &ee) || ee.err != nil) {
		Writef(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// dropUnknownFlags removes flags the root command does not define, so an
// unknown flag cannot consume the file argument after it.
func dropUnknownFlags(cmd *cobra.Command, args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		if len(a) < 2 || a[0] != '-' || knownFlag(cmd, a) {
			out = append(out, a)
		}
	}
	return out
}

func knownFlag(cmd *cobra.Command, arg string) bool {
	if strings.HasPrefix(arg, "--") {
		name, _, _ := strings.Cut(arg[2:], "=")
		return name == "help" || name == "version" || cmd.Flags().Lookup(name) != nil
	}
	short := arg[1:2]
	return short == "h" || cmd.Flags().ShorthandLookup(short) != nil
}

func newLogger(w io.Writer, verbose bool) parser.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// runValidate validates files once, or repeatedly in watch mode, and
// returns the exit code of the last run.
func runValidate(ctx context.Context, flags *ValidateFlags, files []string, stdout, stderr io.Writer) (int, error) {
	log := newLogger(stderr, flags.Verbose)

	strictness := validation.Strict
	if flags.Lenient {
		strictness = validation.Lenient
	}
	var collector *metrics.Collector
	metricsPath := ""
	if flags.MetricsFile != "" {
		var err error
		if metricsPath, err = pathutil.SanitizeOutputPath(flags.MetricsFile); err != nil {
			return ExitUsage, fmt.Errorf("invalid --metrics-file: %w", err)
		}
		collector = metrics.New(nil)
	}

	p, err := pipeline.New(
		pipeline.WithLogger(log),
		pipeline.WithMetrics(collector),
		pipeline.WithStrictness(strictness),
		pipeline.WithResolveExternal(!flags.NoExternalRefs),
		pipeline.WithMaxRefDepth(flags.MaxRefDepth),
		pipeline.WithConcurrency(flags.Jobs),
	)
	if err != nil {
		return ExitUsage, err
	}

	r := &renderer{format: NormalizeFormat(flags.Report), stdout: stdout, stderr: stderr}
	run := func() (int, error) {
		code := ExitOK
		for _, res := range p.ValidateFiles(ctx, files) {
			if err := r.write(res); err != nil {
				return ExitFailed, err
			}
			if !res.OK() {
				code = ExitFailed
			}
		}
		if collector != nil {
			if err := collector.WriteTextfile(metricsPath); err != nil {
				log.Error("writing metrics file", "path", metricsPath, "error", err)
			}
		}
		return code, nil
	}

	code, err := run()
	if err != nil || !flags.Watch {
		return code, err
	}

	var runErr error
	err = watchFiles(ctx, files, DefaultDebounce, log, func() {
		code, runErr = run()
		if runErr != nil {
			log.Error("re-validation failed", "error", runErr)
		}
	})
	if err != nil {
		return ExitUsage, err
	}
	return code, nil
}
