package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/brfss/internal/codebook"
	"github.com/JonMunkholm/brfss/internal/logging"
	"github.com/JonMunkholm/brfss/internal/validation"
	"github.com/google/uuid"
)

// MinExpectedRows is the row count below which a submission gets a
// "only N rows" finding. Validation still runs.
const MinExpectedRows = 5

// DefaultMaxFileSize is used when ServiceOptions.MaxFileSize is not set.
const DefaultMaxFileSize int64 = 16 * 1024 * 1024

// ServiceOptions configure a Service. Zero values select defaults.
type ServiceOptions struct {
	MaxFileSize   int64
	MaxConcurrent int
	MaxWait       time.Duration
}

// Service runs submissions through the engine and keeps their reports.
type Service struct {
	store       Store
	engine      *validation.Engine
	limiter     *UploadLimiter
	maxFileSize int64
}

// NewService wires a store and an engine together.
func NewService(store Store, engine *validation.Engine, opts ServiceOptions) *Service {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	return &Service{
		store:       store,
		engine:      engine,
		limiter:     NewUploadLimiter(opts.MaxConcurrent, opts.MaxWait),
		maxFileSize: opts.MaxFileSize,
	}
}

// Codebook returns the reference data submissions are checked against.
func (s *Service) Codebook() *codebook.Codebook { return s.engine.Codebook() }

// MaxFileSize returns the upload size limit in bytes.
func (s *Service) MaxFileSize() int64 { return s.maxFileSize }

// NewSubmissionID returns an 8-character id.
func NewSubmissionID() string {
	return uuid.NewString()[:8]
}

// CheckFile parses r and validates it into res. Parse failures become a
// file-level finding and a failed status. The returned error is reserved
// for problems with the upload itself, such as ErrFileTooLarge or a read
// failure; res is then incomplete and should be discarded.
func CheckFile(engine *validation.Engine, res *validation.ValidationResult, kind FileKind, r io.Reader, limit int64) (validation.Format, error) {
	table, err := ParseTable(kind, WrapForParsing(r, limit))
	switch {
	case errors.Is(err, ErrEmptyTable):
		res.Fail("file", "File is empty. Please upload a file with data rows.")
		return validation.FormatUnknown, nil
	case errors.Is(err, ErrInvalidCSV), errors.Is(err, ErrInvalidJSON):
		res.Fail("file", "Failed to parse file: "+err.Error())
		return validation.FormatUnknown, nil
	case err != nil:
		return validation.FormatUnknown, err
	}

	if n := table.Len(); n > 0 && n < MinExpectedRows {
		res.AddWarning(0, "file", fmt.Sprintf("File contains only %d rows. BRFSS submissions typically contain more data.", n))
	}
	return engine.Validate(table, res), nil
}

// Submit validates one uploaded file and stores the report. Rejected
// filenames, a busy limiter and upload failures return an error and store
// nothing; everything else, including unparseable content, produces a
// stored report.
func (s *Service) Submit(ctx context.Context, filename string, r io.Reader) (*validation.ValidationResult, error) {
	if filename == "" {
		return nil, ErrNoFileSelected
	}
	kind, err := DetectFileKind(filename)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	start := time.Now()
	res := validation.NewResult(NewSubmissionID(), filename)
	log := logging.WithFields(ctx, "submission_id", res.SubmissionID, "filename", filename)
	if ip := ClientIPFromContext(ctx); ip != "" {
		log = log.With("client_ip", ip)
	}

	format, err := CheckFile(s.engine, res, kind, r, s.maxFileSize)
	if err != nil {
		log.Warn("submission rejected", "error", err)
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := s.store.Save(ctx, res); err != nil {
		return nil, err
	}

	log.Info("submission validated",
		"format", string(format),
		"status", string(res.Status),
		"rows", res.RowCount,
		"errors", res.ErrorCount(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// Get returns one report. Unknown ids return an error wrapping ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*validation.ValidationResult, error) {
	return s.store.Get(ctx, id)
}

// List returns all reports, newest first.
func (s *Service) List(ctx context.Context) ([]*validation.ValidationResult, error) {
	return s.store.List(ctx)
}

// Clear removes every stored report.
func (s *Service) Clear(ctx context.Context) (int, error) {
	n, err := s.store.Clear(ctx)
	if err != nil {
		return 0, err
	}
	logging.WithFields(ctx, "client_ip", ClientIPFromContext(ctx)).Warn("submissions cleared", "removed", n)
	return n, nil
}

// Prune removes reports older than maxAge.
func (s *Service) Prune(ctx context.Context, maxAge time.Duration) (int, error) {
	return s.store.DeleteBefore(ctx, time.Now().Add(-maxAge))
}

// Summary computes the dashboard numbers over every stored report.
func (s *Service) Summary(ctx context.Context) (DashboardSummary, error) {
	reports, err := s.store.List(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	return BuildSummary(reports), nil
}

// StateStatus returns the latest report outcome per jurisdiction.
func (s *Service) StateStatus(ctx context.Context) (map[string]StateStatus, error) {
	reports, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildStateStatus(s.Codebook(), reports), nil
}

// Ping checks the report store.
func (s *Service) Ping(ctx context.Context) error { return s.store.Ping(ctx) }

// UploadLimiterStatus reports submission slot usage.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus { return s.limiter.Status() }

// WaitForUploads blocks until in-flight submissions finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error { return s.limiter.WaitForDrain(ctx) }
