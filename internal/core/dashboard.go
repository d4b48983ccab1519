package core

// dashboard.go derives the roll-ups served by /api/summary and
// /api/state-status from stored reports.

import (
	"math"
	"sort"
	"strings"

	"github.com/JonMunkholm/brfss/internal/codebook"
	"github.com/JonMunkholm/brfss/internal/validation"
)

// RecentLimit caps the submissions listed in a DashboardSummary.
const RecentLimit = 20

// DashboardSummary holds the headline numbers across all submissions.
type DashboardSummary struct {
	TotalSubmissions int                  `json:"total_submissions"`
	Passed           int                  `json:"passed"`
	Failed           int                  `json:"failed"`
	TotalErrors      int                  `json:"total_errors"`
	PassRate         float64              `json:"pass_rate"`
	ErrorTypes       map[string]int       `json:"error_types"`
	Recent           []SubmissionOverview `json:"recent"`
}

// SubmissionOverview is the list form of a report, without findings.
type SubmissionOverview struct {
	SubmissionID string            `json:"submission_id"`
	Filename     string            `json:"filename"`
	Timestamp    string            `json:"timestamp"`
	Status       validation.Status `json:"status"`
	ErrorCount   int               `json:"error_count"`
	RowCount     int               `json:"row_count"`
	ValidRows    int               `json:"valid_rows"`
}

// Overview summarizes one report for listings.
func Overview(res *validation.ValidationResult) SubmissionOverview {
	return SubmissionOverview{
		SubmissionID: res.SubmissionID,
		Filename:     res.Filename,
		Timestamp:    res.Timestamp.Format(validation.TimestampLayout),
		Status:       res.Status,
		ErrorCount:   res.ErrorCount(),
		RowCount:     res.RowCount,
		ValidRows:    res.ValidRows,
	}
}

// BuildSummary computes the dashboard numbers. Pass rate is a percentage
// rounded to one decimal, zero when there are no submissions. ErrorTypes
// counts findings by field.
func BuildSummary(reports []*validation.ValidationResult) DashboardSummary {
	sum := DashboardSummary{
		TotalSubmissions: len(reports),
		ErrorTypes:       make(map[string]int),
		Recent:           []SubmissionOverview{},
	}
	for _, res := range reports {
		switch res.Status {
		case validation.StatusPassed:
			sum.Passed++
		case validation.StatusFailed:
			sum.Failed++
		}
		sum.TotalErrors += res.ErrorCount()
		for _, f := range res.Errors {
			sum.ErrorTypes[f.Field]++
		}
	}
	if sum.TotalSubmissions > 0 {
		rate := float64(sum.Passed) / float64(sum.TotalSubmissions) * 100
		sum.PassRate = math.Round(rate*10) / 10
	}

	recent := newestFirst(reports)
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	for _, res := range recent {
		sum.Recent = append(sum.Recent, Overview(res))
	}
	return sum
}

// StateStatus is the latest outcome for one jurisdiction.
type StateStatus struct {
	Status       validation.Status `json:"status"`
	Errors       int               `json:"errors"`
	Rows         int               `json:"rows"`
	Valid        int               `json:"valid"`
	SubmissionID string            `json:"submission_id"`
	Filename     string            `json:"filename"`
	Timestamp    string            `json:"timestamp"`
}

// BuildStateStatus maps jurisdiction abbreviations to the most recent
// submission attributed to them. Reports that cannot be attributed are
// skipped.
func BuildStateStatus(cb *codebook.Codebook, reports []*validation.ValidationResult) map[string]StateStatus {
	out := make(map[string]StateStatus)
	ordered := newestFirst(reports)
	for i := len(ordered) - 1; i >= 0; i-- {
		res := ordered[i]
		abbr, ok := AttributeState(cb, res)
		if !ok {
			continue
		}
		out[abbr] = StateStatus{
			Status:       res.Status,
			Errors:       res.ErrorCount(),
			Rows:         res.RowCount,
			Valid:        res.ValidRows,
			SubmissionID: res.SubmissionID,
			Filename:     res.Filename,
			Timestamp:    res.Timestamp.Format(validation.TimestampLayout),
		}
	}
	return out
}

// AttributeState works out which jurisdiction a report belongs to. The
// first state named in a raw data summary wins; otherwise a filename such
// as "GA_submission_2023.csv" supplies the abbreviation.
func AttributeState(cb *codebook.Codebook, res *validation.ValidationResult) (string, bool) {
	if names := res.DataSummary.StateNames; len(names) > 0 {
		if abbr, ok := cb.AbbreviationFor(names[0]); ok {
			return abbr, true
		}
	}
	if strings.Contains(res.Filename, "_submission") {
		prefix := strings.ToUpper(strings.SplitN(res.Filename, "_", 2)[0])
		if _, ok := cb.Jurisdiction(prefix); ok {
			return prefix, true
		}
	}
	return "", false
}

// newestFirst returns a copy of reports sorted by timestamp, newest first.
// Equal timestamps keep their input order.
func newestFirst(reports []*validation.ValidationResult) []*validation.ValidationResult {
	out := make([]*validation.ValidationResult, len(reports))
	copy(out, reports)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
