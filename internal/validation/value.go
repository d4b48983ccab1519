package validation

import (
	"math"
	"strconv"
	"strings"
)

// NumberState tags the outcome of parsing an optional numeric cell.
type NumberState int

const (
	// NumberAbsent means the cell was blank.
	NumberAbsent NumberState = iota
	// NumberInvalid means the cell held text that is not a finite number.
	NumberInvalid
	// NumberPresent means Value holds the parsed number.
	NumberPresent
)

// Number is an optional numeric cell value.
type Number struct {
	State NumberState
	Value float64
	Text  string // original cell text
}

// ParseNumber parses an optional numeric value from cell text. Surrounding
// whitespace is ignored; NaN, infinities and hexadecimal notation are invalid.
func ParseNumber(text string) Number {
	s := strings.TrimSpace(text)
	if s == "" {
		return Number{State: NumberAbsent, Text: text}
	}
	if strings.ContainsAny(s, "xX_") {
		return Number{State: NumberInvalid, Text: text}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{State: NumberInvalid, Text: text}
	}
	return Number{State: NumberPresent, Value: f, Text: text}
}

// Present reports whether a number was parsed.
func (n Number) Present() bool { return n.State == NumberPresent }

// Int returns the value truncated toward zero, the way survey tools coerce
// "3.0" or "3.7" into code 3.
func (n Number) Int() int {
	switch {
	case n.Value >= math.MaxInt:
		return math.MaxInt
	case n.Value <= math.MinInt:
		return math.MinInt
	}
	return int(n.Value)
}

// formatFloat renders f the way report messages show decimals: integral
// values keep a trailing ".0" so 55 reads as "55.0".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatInts renders a list as "[1, 2, 3]".
func formatInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatQuoted renders a list as "['A', 'B']".
func formatQuoted(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = "'" + v + "'"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
