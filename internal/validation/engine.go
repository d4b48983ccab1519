// Package validation is the BRFSS submission rule engine: it normalizes
// column names, detects whether a table holds raw survey responses or
// aggregated prevalence statistics, runs the matching validator and folds
// every finding into a ValidationResult.
//
// Findings are data, never Go errors. The only failure signal a caller
// sees is the terminal status on the result.
package validation

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/brfss/internal/codebook"
)

// Defaults for Options.
const (
	DefaultParallelThreshold = 2000
	DefaultMaxYear           = 2026
)

// Options tune an Engine.
type Options struct {
	// Workers bounds concurrent row checks. Zero means GOMAXPROCS.
	Workers int
	// ParallelThreshold is the row count at which rows are checked in
	// parallel. Smaller tables are checked on the calling goroutine.
	ParallelThreshold int
	// MaxYear is the latest survey year accepted without a finding.
	MaxYear int
	// Logger receives per-phase debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// Engine validates tables against a codebook. It holds no per-run state and
// is safe for concurrent use.
type Engine struct {
	cb   *codebook.Codebook
	opts Options
}

// NewEngine returns an engine over cb with defaults filled into opts.
func NewEngine(cb *codebook.Codebook, opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.ParallelThreshold <= 0 {
		opts.ParallelThreshold = DefaultParallelThreshold
	}
	if opts.MaxYear <= 0 {
		opts.MaxYear = DefaultMaxYear
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{cb: cb, opts: opts}
}

// Codebook returns the reference data the engine validates against.
func (e *Engine) Codebook() *codebook.Codebook { return e.cb }

// tableValidator is implemented by the raw and aggregated validators.
type tableValidator interface {
	// prepare runs file-level checks; false skips the per-row pass.
	prepare(t *Table, res *ValidationResult) bool
	// checkRow must only read the row and the codebook.
	checkRow(r Row) findings
}

// Validate runs the full pipeline over t and records everything in res.
// res must not have reached a terminal status. The detected format is
// returned for logging.
func (e *Engine) Validate(t *Table, res *ValidationResult) Format {
	start := time.Now()
	log := e.opts.Logger.With("submission_id", res.SubmissionID)

	res.RowCount = t.Len()
	res.Status = StatusProcessing

	if t.Len() == 0 {
		res.Fail("file", "File is empty. Please upload a file with data rows.")
		return FormatUnknown
	}

	t, renamed := NormalizeColumns(e.cb, t)
	if renamed > 0 {
		res.AddInfo(fmt.Sprintf("Mapped %d column names to standard format", renamed))
	}
	res.AddInfo(fmt.Sprintf("File contains %d rows and %d columns", t.Len(), len(t.Columns())))

	format := DetectFormat(e.cb, t.Columns())
	log.Debug("format detected", "format", format, "renamed", renamed)

	var v tableValidator
	switch format {
	case FormatRaw:
		v = newRawValidator(e.cb)
	case FormatAggregated:
		v = newAggregatedValidator(e.cb, e.opts.MaxYear)
	default:
		res.AddWarning(0, "format", "Could not determine data format, attempting aggregated data validation")
		v = newAggregatedValidator(e.cb, e.opts.MaxYear)
	}

	checked := v.prepare(t, res)
	if checked {
		for _, f := range e.checkRows(t, v) {
			res.merge(f)
		}
	}
	log.Debug("rows checked", "rows", t.Len(), "findings", len(res.Errors), "duration_ms", time.Since(start).Milliseconds())

	if checked {
		res.ValidRows = countValidRows(t.Len(), res.Errors)
	}
	res.DataSummary = Summarize(e.cb, t, format)
	res.Finalize()
	return format
}

// checkRows evaluates every row and returns the findings indexed by row so
// they can be merged in file order regardless of scheduling.
func (e *Engine) checkRows(t *Table, v tableValidator) []findings {
	out := make([]findings, t.Len())
	if t.Len() < e.opts.ParallelThreshold || e.opts.Workers == 1 {
		for i := range out {
			out[i] = v.checkRow(t.Row(i))
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	chunk := (t.Len() + e.opts.Workers - 1) / e.opts.Workers
	for lo := 0; lo < t.Len(); lo += chunk {
		hi := min(lo+chunk, t.Len())
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				out[i] = v.checkRow(t.Row(i))
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	return out
}

// countValidRows counts rows with no finding attributed to their line.
func countValidRows(rows int, errs []Finding) int {
	bad := make(map[int]bool)
	for _, f := range errs {
		if f.Row >= 2 && f.Row < rows+2 {
			bad[f.Row] = true
		}
	}
	return rows - len(bad)
}
