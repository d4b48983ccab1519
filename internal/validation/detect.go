package validation

import (
	"strings"

	"github.com/JonMunkholm/brfss/internal/codebook"
)

// Format is the detected layout of a submitted table.
type Format string

const (
	FormatRaw        Format = "raw"
	FormatAggregated Format = "aggregated"
	FormatUnknown    Format = "unknown"
)

// Detection thresholds.
const (
	minRawIndicators      = 2
	minVariableColumns    = 3
	minQuestionColumns    = 3
	minAggregateIndicator = 3
)

// DetectFormat classifies a header. Raw survey signals win over aggregated
// ones because aggregated indicator names also show up in partial raw files.
func DetectFormat(cb *codebook.Codebook, columns []string) Format {
	lower := make(map[string]bool, len(columns))
	upper := make(map[string]bool, len(columns))
	for _, c := range columns {
		c = strings.TrimSpace(c)
		lower[strings.ToLower(c)] = true
		upper[strings.ToUpper(c)] = true
	}

	var rawHits, varHits, questionHits, aggHits int
	for c := range lower {
		if cb.IsRawIndicator(c) {
			rawHits++
		}
		if cb.IsAggregatedIndicator(c) {
			aggHits++
		}
	}
	for c := range upper {
		if _, ok := cb.Variable(c); ok {
			varHits++
		}
		if cb.HasQuestionPrefix(c) {
			questionHits++
		}
	}

	switch {
	case rawHits >= minRawIndicators,
		varHits >= minVariableColumns,
		questionHits >= minQuestionColumns:
		return FormatRaw
	case aggHits >= minAggregateIndicator:
		return FormatAggregated
	default:
		return FormatUnknown
	}
}
