package validation

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/brfss/internal/codebook"
)

const stateColumn = "_state"

// boundColumn is a table column matched to a codebook rule.
type boundColumn struct {
	column string
	rule   codebook.FieldRule
}

// rawValidator checks per-respondent survey rows.
type rawValidator struct {
	cb      *codebook.Codebook
	fips    []int
	columns []boundColumn
	state   bool
}

func newRawValidator(cb *codebook.Codebook) *rawValidator {
	return &rawValidator{cb: cb, fips: cb.FIPSCodes()}
}

// prepare binds columns to rules and records the file-level column notes.
func (v *rawValidator) prepare(t *Table, res *ValidationResult) bool {
	res.AddInfo("Detected format: Raw survey response data")

	v.state = t.Has(stateColumn)
	columns := uniqueColumns(t.Columns())

	recognized := make(map[string]bool)
	for _, col := range columns {
		if rule, ok := v.bind(col); ok {
			v.columns = append(v.columns, boundColumn{column: col, rule: rule})
			recognized[strings.ToUpper(col)] = true
		}
	}
	res.AddInfo(fmt.Sprintf("Found %d recognized BRFSS variable columns", len(v.columns)))

	var file findings
	variables := v.cb.Variables()
	dataColumns := 0
	for _, col := range columns {
		upper := strings.ToUpper(col)
		if v.cb.IsSystemColumn(upper) {
			continue
		}
		dataColumns++
		if recognized[upper] {
			continue
		}
		if hints := SuggestVariables(upper, variables); len(hints) > 0 {
			file.addf(0, col, "Column '%s' not recognized. Did you mean: %s?", col, strings.Join(hints, ", "))
		}
	}

	switch {
	case len(v.columns) == 0 && dataColumns > 2:
		file.add(0, "columns", "No BRFSS variable columns recognized. Check column names match BRFSS codebook (e.g., GENHLTH, DIABETE4, SMOKE100).")
	case len(v.columns) < 3 && dataColumns > 5:
		file.addf(0, "columns", "Only %d BRFSS variable columns recognized out of %d data columns. Verify column names.",
			len(v.columns), dataColumns)
	}
	res.merge(file)
	return true
}

// bind resolves a column to a current variable, then to a legacy question.
func (v *rawValidator) bind(col string) (codebook.FieldRule, bool) {
	if rule, ok := v.cb.Variable(col); ok {
		return rule, true
	}
	return v.cb.Question(col)
}

func (v *rawValidator) checkRow(r Row) findings {
	var out findings
	line := r.Line()

	if v.state {
		v.checkState(r, &out)
	}

	for _, bc := range v.columns {
		value := r.Get(bc.column)
		if verdict := ValidateResponse(value, bc.rule.Response); !verdict.Valid {
			out.add(line, bc.column, bc.rule.Label()+": "+verdict.Message)
		}
	}
	return out
}

func (v *rawValidator) checkState(r Row, out *findings) {
	raw := r.Get(stateColumn)
	n := ParseNumber(raw)
	switch n.State {
	case NumberAbsent:
		return
	case NumberInvalid:
		out.addf(r.Line(), stateColumn,
			"Non-numeric state code: '%s'. Expected a FIPS code number (e.g., 6 for California, 36 for New York).", raw)
		return
	}

	code := n.Int()
	if _, ok := v.cb.StateName(code); ok {
		return
	}
	hint := ""
	if nearby := NearbyFIPS(v.fips, code); len(nearby) > 0 {
		hint = " Nearby valid codes: " + formatInts(nearby)
	}
	out.addf(r.Line(), stateColumn,
		"Invalid state FIPS code: %d. Valid range is 1-56 (states), 66 (Guam), 72 (Puerto Rico), 78 (Virgin Islands).%s",
		code, hint)
}

// uniqueColumns drops repeated header names, keeping first occurrences.
func uniqueColumns(columns []string) []string {
	seen := make(map[string]bool, len(columns))
	out := columns[:0:0]
	for _, c := range columns {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
