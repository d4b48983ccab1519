package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationResult_WarningsRouteToErrors(t *testing.T) {
	res := NewResult("abc", "f.csv")
	res.AddWarning(3, "year", "Future year 2030 - verify this is correct.")

	require.Len(t, res.Errors, 1)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, SeverityError, res.Errors[0].Severity)
}

func TestValidationResult_Finalize(t *testing.T) {
	res := NewResult("abc", "f.csv")
	res.Finalize()
	assert.Equal(t, StatusPassed, res.Status)
	assert.Equal(t, []string{"All validation checks passed!"}, res.Info)

	res = NewResult("abc", "f.csv")
	res.AddError(2, "year", "bad")
	res.AddError(3, "year", "bad")
	res.Finalize()
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, []string{"Validation failed: 2 error(s)"}, res.Info)
}

func TestValidationResult_JSONShape(t *testing.T) {
	res := NewResult("abc12345", "TX_submission_2023.csv")
	res.Timestamp = time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	res.AddError(2, "year", "Year is required. Use a 4-digit year (e.g., 2023).")
	res.RowCount = 4
	res.ValidRows = 3
	res.DataSummary = DataSummary{Kind: SummaryFormat, Format: FormatUnknown}
	res.Finalize()

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))

	wantKeys := []string{
		"submission_id", "filename", "timestamp", "status", "errors", "warnings", "info",
		"row_count", "valid_rows", "error_count", "warning_count", "data_summary",
	}
	for _, k := range wantKeys {
		assert.Contains(t, generic, k)
	}
	assert.Len(t, generic, len(wantKeys))

	assert.Equal(t, "2024-03-09 14:05:07", generic["timestamp"])
	assert.Equal(t, "failed", generic["status"])
	assert.Equal(t, float64(1), generic["error_count"])
	assert.Equal(t, float64(0), generic["warning_count"])
	assert.Equal(t, []any{}, generic["warnings"])
	assert.Equal(t, map[string]any{"format": "unknown"}, generic["data_summary"])

	finding := generic["errors"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{
		"row":      float64(2),
		"field":    "year",
		"message":  "Year is required. Use a 4-digit year (e.g., 2023).",
		"severity": "error",
	}, finding)
}

func TestValidationResult_RoundTrip(t *testing.T) {
	summaries := map[string]DataSummary{
		"none":   {},
		"format": {Kind: SummaryFormat, Format: FormatUnknown},
		"aggregated": {
			Kind: SummaryAggregated, Format: FormatAggregated,
			States: 2, Topics: 1, Years: []int{2022, 2023}, TopicsList: []string{"Obesity"},
		},
		"aggregated empty lists": {
			Kind: SummaryAggregated, Format: FormatUnknown, Years: []int{}, TopicsList: []string{},
		},
		"raw": {
			Kind: SummaryRaw, Format: FormatRaw,
			States: 1, StateNames: []string{"California"}, Respondents: 12,
		},
	}

	for name, summary := range summaries {
		t.Run(name, func(t *testing.T) {
			res := NewResult("abc12345", "data.csv")
			res.Status = StatusFailed
			res.AddError(0, "columns", "Unknown columns: notes")
			res.AddError(7, "topic", "Topic is required")
			res.AddInfo("File contains 12 rows and 7 columns")
			res.RowCount = 12
			res.ValidRows = 11
			res.DataSummary = summary

			data, err := json.Marshal(res)
			require.NoError(t, err)

			var back ValidationResult
			require.NoError(t, json.Unmarshal(data, &back))

			if diff := cmp.Diff(*res, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeverity_JSON(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		data, err := json.Marshal(s)
		require.NoError(t, err)

		var back Severity
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, s, back)
	}

	var bad Severity
	assert.Error(t, json.Unmarshal([]byte(`"fatal"`), &bad))
}
