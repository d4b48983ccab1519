package validation

// suggest.go holds the deterministic scoring functions behind "did you mean"
// hints. They are kept apart from the validators so hint quality can be
// tested on its own.

import (
	"strings"

	"github.com/JonMunkholm/brfss/internal/codebook"
)

const (
	fipsDistance     = 5
	maxFIPSHints     = 3
	maxColumnHints   = 3
	minSimilarColumn = 4
	columnSimilarity = 0.6
	maxTopicHints    = 3
	maxAbbrHints     = 5
)

// NearbyFIPS returns up to three codes within five of code, ascending.
func NearbyFIPS(codes []int, code int) []int {
	var out []int
	for _, c := range codes {
		d := c - code
		if d < 0 {
			d = -d
		}
		if d <= fipsDistance {
			out = append(out, c)
			if len(out) == maxFIPSHints {
				break
			}
		}
	}
	return out
}

// ColumnSimilar reports whether an unrecognized column plausibly misspells
// identifier. Both arguments are upper case. A column matches when either
// contains the other, or when the count of column characters that also
// occur in the identifier reaches 60% of the identifier's length.
func ColumnSimilar(column, identifier string) bool {
	if len(column) < minSimilarColumn {
		return false
	}
	if strings.Contains(column, identifier) || strings.Contains(identifier, column) {
		return true
	}
	shared := 0
	for _, r := range column {
		if strings.ContainsRune(identifier, r) {
			shared++
		}
	}
	return float64(shared) >= float64(len(identifier))*columnSimilarity
}

// SuggestVariables returns up to three "ID (Name)" hints for a column,
// in codebook order.
func SuggestVariables(column string, rules []codebook.FieldRule) []string {
	column = strings.ToUpper(column)
	var out []string
	for _, r := range rules {
		if ColumnSimilar(column, r.ID) {
			out = append(out, r.ID+" ("+r.Label()+")")
			if len(out) == maxColumnHints {
				break
			}
		}
	}
	return out
}

// SuggestTopics returns up to three vocabulary entries that contain the
// topic or are contained in it, ignoring case.
func SuggestTopics(topic string, vocabulary []string) []string {
	needle := strings.ToLower(strings.TrimSpace(topic))
	var out []string
	for _, t := range vocabulary {
		lt := strings.ToLower(t)
		if strings.Contains(lt, needle) || strings.Contains(needle, lt) {
			out = append(out, t)
			if len(out) == maxTopicHints {
				break
			}
		}
	}
	return out
}

// SameInitial returns up to five abbreviations sharing abbr's first letter.
func SameInitial(abbr string, abbreviations []string) []string {
	if abbr == "" {
		return nil
	}
	var out []string
	for _, a := range abbreviations {
		if a[0] == abbr[0] {
			out = append(out, a)
			if len(out) == maxAbbrHints {
				break
			}
		}
	}
	return out
}
