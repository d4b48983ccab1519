package validation

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the wire format of ValidationResult.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Status is the lifecycle state of a submission.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusPassed     Status = "passed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusPassed || s == StatusFailed
}

// ValidationResult is the report for one submission.
type ValidationResult struct {
	SubmissionID string
	Filename     string
	Timestamp    time.Time
	Status       Status
	Errors       []Finding
	Warnings     []Finding // reserved; violations are always recorded as errors
	Info         []string
	RowCount     int
	ValidRows    int
	DataSummary  DataSummary
}

// NewResult starts a pending result stamped with the current time.
func NewResult(submissionID, filename string) *ValidationResult {
	return &ValidationResult{
		SubmissionID: submissionID,
		Filename:     filename,
		Timestamp:    time.Now().Truncate(time.Second),
		Status:       StatusPending,
		Errors:       []Finding{},
		Warnings:     []Finding{},
		Info:         []string{},
	}
}

// AddError records an error-severity finding.
func (r *ValidationResult) AddError(row int, field, message string) {
	r.Errors = append(r.Errors, Finding{Row: row, Field: field, Message: message, Severity: SeverityError})
}

// AddWarning records a soft finding. Soft findings still fail the
// submission, so they land in the error list.
func (r *ValidationResult) AddWarning(row int, field, message string) {
	r.AddError(row, field, message)
}

// AddInfo appends an informational note.
func (r *ValidationResult) AddInfo(message string) {
	r.Info = append(r.Info, message)
}

func (r *ValidationResult) merge(f findings) {
	r.Errors = append(r.Errors, f...)
}

// Fail short-circuits the run with a single file-level finding.
func (r *ValidationResult) Fail(field, message string) {
	r.AddError(0, field, message)
	r.Status = StatusFailed
}

// ErrorCount returns the number of error findings.
func (r *ValidationResult) ErrorCount() int { return len(r.Errors) }

// Finalize derives the terminal status and appends the closing note.
func (r *ValidationResult) Finalize() {
	if len(r.Errors) == 0 {
		r.Status = StatusPassed
		r.AddInfo("All validation checks passed!")
		return
	}
	r.Status = StatusFailed
	r.AddInfo(fmt.Sprintf("Validation failed: %d error(s)", len(r.Errors)))
}

// resultJSON is the stable wire shape of a ValidationResult.
type resultJSON struct {
	SubmissionID string      `json:"submission_id"`
	Filename     string      `json:"filename"`
	Timestamp    string      `json:"timestamp"`
	Status       Status      `json:"status"`
	Errors       []Finding   `json:"errors"`
	Warnings     []Finding   `json:"warnings"`
	Info         []string    `json:"info"`
	RowCount     int         `json:"row_count"`
	ValidRows    int         `json:"valid_rows"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	DataSummary  DataSummary `json:"data_summary"`
}

func (r ValidationResult) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		SubmissionID: r.SubmissionID,
		Filename:     r.Filename,
		Timestamp:    r.Timestamp.Format(TimestampLayout),
		Status:       r.Status,
		Errors:       nonNil(r.Errors),
		Warnings:     nonNil(r.Warnings),
		Info:         r.Info,
		RowCount:     r.RowCount,
		ValidRows:    r.ValidRows,
		ErrorCount:   len(r.Errors),
		WarningCount: len(r.Warnings),
		DataSummary:  r.DataSummary,
	}
	if out.Info == nil {
		out.Info = []string{}
	}
	return json.Marshal(out)
}

func (r *ValidationResult) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	ts, err := time.ParseInLocation(TimestampLayout, in.Timestamp, time.Local)
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	*r = ValidationResult{
		SubmissionID: in.SubmissionID,
		Filename:     in.Filename,
		Timestamp:    ts,
		Status:       in.Status,
		Errors:       nonNil(in.Errors),
		Warnings:     nonNil(in.Warnings),
		Info:         in.Info,
		RowCount:     in.RowCount,
		ValidRows:    in.ValidRows,
		DataSummary:  in.DataSummary,
	}
	if r.Info == nil {
		r.Info = []string{}
	}
	return nil
}

func nonNil(f []Finding) []Finding {
	if f == nil {
		return []Finding{}
	}
	return f
}
