package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/JonMunkholm/brfss/internal/codebook"
)

// Aggregated column names.
const (
	colYear             = "year"
	colLocationAbbr     = "locationabbr"
	colLocationDesc     = "locationdesc"
	colClass            = "class"
	colTopic            = "topic"
	colQuestion         = "question"
	colDataValue        = "data_value"
	colDataValueType    = "data_value_type"
	colDataValueUnit    = "data_value_unit"
	colSampleSize       = "sample_size"
	colConfidenceLow    = "confidence_limit_low"
	colConfidenceHigh   = "confidence_limit_high"
	colBreakOut         = "break_out"
	colBreakOutCategory = "break_out_category"
	colDatasource       = "datasource"
	colResponse         = "response"
)

const (
	firstSurveyYear      = 1984
	maxPercentage        = 100
	minReliableSample    = 10
	minComfortableSample = 50
	maxIntervalWidth     = 30
	maxListedColumns     = 8
	maxUnknownColumns    = 5
	maxDuplicateRows     = 5
)

// hygieneFields are checked for stray whitespace and control characters.
var hygieneFields = []string{colLocationAbbr, colLocationDesc, colTopic, colQuestion}

// aggregatedValidator checks per-statistic prevalence rows.
type aggregatedValidator struct {
	cb      *codebook.Codebook
	maxYear int
	table   *Table
	abbrs   []string
	topics  []string

	// logical maps a row index to the other lines sharing its key.
	logical map[int][]int
}

func newAggregatedValidator(cb *codebook.Codebook, maxYear int) *aggregatedValidator {
	return &aggregatedValidator{
		cb:      cb,
		maxYear: maxYear,
		abbrs:   cb.Abbreviations(),
		topics:  cb.Topics(),
	}
}

// prepare runs the schema gate and the table-wide duplicate checks. It
// returns false when required columns are missing and rows must be skipped.
func (v *aggregatedValidator) prepare(t *Table, res *ValidationResult) bool {
	res.AddInfo("Detected format: Aggregated prevalence data")
	v.table = t

	var file findings
	var missing []string
	for _, col := range v.cb.RequiredColumns() {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		present := t.Columns()
		if len(present) > maxListedColumns {
			present = present[:maxListedColumns]
		}
		file.addf(0, "columns", "Missing %d required column(s). Your file has: %s...",
			len(missing), strings.Join(present, ", "))
		for _, col := range missing {
			file.addf(0, col, "Missing required column '%s' - %s. Add this column to your CSV.",
				col, v.cb.ColumnDescription(col))
		}
		res.merge(file)
		res.Status = StatusFailed
		return false
	}

	var unknown []string
	for _, col := range uniqueColumns(t.Columns()) {
		if !v.cb.IsKnownAggregatedColumn(col) {
			unknown = append(unknown, col)
		}
	}
	if len(unknown) > 0 {
		if len(unknown) > maxUnknownColumns {
			unknown = unknown[:maxUnknownColumns]
		}
		file.add(0, "columns", "Unknown columns: "+strings.Join(unknown, ", "))
	}

	if dups := exactDuplicates(t); len(dups) > 0 {
		shown := dups
		if len(shown) > maxDuplicateRows {
			shown = shown[:maxDuplicateRows]
		}
		file.addf(0, "duplicates", "Found %d duplicate row(s). First duplicates at rows: %s. Remove duplicate entries.",
			len(dups), formatInts(shown))
	}

	v.logical = logicalDuplicates(t)
	if len(v.logical) > 0 {
		file.addf(0, "logical_duplicates",
			"Found %d rows with duplicate state/year/topic combinations. Each combination should be unique.", len(v.logical))
	}

	res.merge(file)
	return true
}

// exactDuplicates returns the lines of rows identical to an earlier row.
func exactDuplicates(t *Table) []int {
	seen := make(map[string]bool, t.Len())
	var lines []int
	for i := 0; i < t.Len(); i++ {
		key := strings.Join(t.Row(i).cells(), "\x00")
		if seen[key] {
			lines = append(lines, t.Row(i).Line())
			continue
		}
		seen[key] = true
	}
	return lines
}

// logicalDuplicates groups rows by location, year, topic and, when present,
// breakout and category. Every row of a group with more than one member is
// returned, mapped to the lines of its other members.
func logicalDuplicates(t *Table) map[int][]int {
	keyCols := []string{colLocationAbbr, colYear, colTopic}
	for _, c := range []string{colBreakOut, colBreakOutCategory} {
		if t.Has(c) {
			keyCols = append(keyCols, c)
		}
	}

	groups := make(map[string][]int)
	var order []string
	parts := make([]string, len(keyCols))
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for j, c := range keyCols {
			parts[j] = row.Get(c)
		}
		key := strings.Join(parts, "\x00")
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	out := make(map[int][]int)
	for _, key := range order {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		for _, idx := range members {
			var others []int
			for _, o := range members {
				if o != idx {
					others = append(others, o+2)
				}
			}
			out[idx] = others
		}
	}
	return out
}

func (v *aggregatedValidator) checkRow(r Row) findings {
	var out findings
	line := r.Line()

	v.checkYear(r, &out)
	v.checkLocation(r, &out)

	if v.table.Has(colClass) {
		if class, ok := r.Lookup(colClass); ok && !v.cb.IsClass(strings.TrimSpace(class)) {
			out.addf(line, colClass, "Unrecognized class: '%s'", class)
		}
	}

	v.checkTopic(r, &out)

	if _, ok := r.Lookup(colQuestion); !ok {
		out.add(line, colQuestion, "Question is required")
	}

	dv := v.checkDataValue(r, &out)
	v.checkSampleSize(r, &out)
	v.checkConfidence(r, dv, &out)
	v.checkBreakout(r, &out)
	v.checkVocabularies(r, &out)
	v.checkHygiene(r, &out)

	if others, dup := v.logical[line-2]; dup {
		out.addf(line, "logical_duplicates",
			"Duplicate state/year/topic combination. Also found at rows: %s", formatInts(others))
	}
	return out
}

func (v *aggregatedValidator) checkYear(r Row, out *findings) {
	line := r.Line()
	n := ParseNumber(r.Get(colYear))
	switch n.State {
	case NumberAbsent:
		out.add(line, colYear, "Year is required. Use a 4-digit year (e.g., 2023).")
	case NumberInvalid:
		out.addf(line, colYear, "Invalid year format: '%s'. Expected a 4-digit year (e.g., 2023).", n.Text)
	default:
		year := n.Int()
		switch {
		case year < firstSurveyYear:
			out.addf(line, colYear, "Year %d is before BRFSS started. The BRFSS survey began in 1984.", year)
		case year > v.maxYear:
			out.addf(line, colYear, "Future year %d - verify this is correct.", year)
		}
	}
}

func (v *aggregatedValidator) checkLocation(r Row, out *findings) {
	line := r.Line()
	abbr, ok := r.Lookup(colLocationAbbr)
	if !ok {
		out.add(line, colLocationAbbr, "State abbreviation is required. Use 2-letter state code (e.g., CA, NY, TX).")
	} else {
		clean := strings.ToUpper(strings.TrimSpace(abbr))
		name, known := v.cb.Jurisdiction(clean)
		switch {
		case !known:
			hint := ""
			if similar := SameInitial(clean, v.abbrs); len(similar) > 0 {
				hint = fmt.Sprintf(" States starting with '%s': %s", clean[:1], formatQuoted(similar))
			}
			out.addf(line, colLocationAbbr, "Invalid state abbreviation: '%s'.%s", abbr, hint)
		default:
			desc, hasDesc := r.Lookup(colLocationDesc)
			if hasDesc && !strings.EqualFold(strings.TrimSpace(desc), name) {
				out.addf(line, colLocationDesc, "State name '%s' doesn't match abbreviation '%s' (expected '%s')",
					desc, clean, name)
			}
		}
	}

	if _, ok := r.Lookup(colLocationDesc); !ok {
		out.add(line, colLocationDesc, "State name is required")
	}
}

func (v *aggregatedValidator) checkTopic(r Row, out *findings) {
	line := r.Line()
	topic, ok := r.Lookup(colTopic)
	if !ok {
		out.add(line, colTopic, "Topic is required")
		return
	}
	if _, known := v.cb.Topic(strings.TrimSpace(topic)); known {
		return
	}
	if similar := SuggestTopics(topic, v.topics); len(similar) > 0 {
		out.addf(line, colTopic, "Unrecognized topic: '%s'. Did you mean: %s?", topic, strings.Join(similar, ", "))
		return
	}
	out.addf(line, colTopic, "Unrecognized topic: '%s'. See BRFSS documentation for valid topics.", topic)
}

// checkDataValue validates the point estimate and returns it for the
// confidence interval checks.
func (v *aggregatedValidator) checkDataValue(r Row, out *findings) Number {
	line := r.Line()
	n := ParseNumber(r.Get(colDataValue))
	switch n.State {
	case NumberAbsent:
		out.add(line, colDataValue, "Data value is required. Enter the prevalence percentage (e.g., 25.5 for 25.5%).")
	case NumberInvalid:
		out.addf(line, colDataValue, "Invalid numeric value: '%s'. Expected a number (e.g., 25.5).", n.Text)
	default:
		switch {
		case n.Value < 0:
			out.addf(line, colDataValue, "Negative value not allowed: %s. Prevalence must be 0 or greater.", formatFloat(n.Value))
		case n.Value > maxPercentage && !unboundedType(r.Get(colDataValueType)):
			out.addf(line, colDataValue,
				"Percentage %s%% exceeds 100%%. If this is a count or rate, set data_value_type to 'Number' or 'Rate'.",
				formatFloat(n.Value))
		}
	}
	return n
}

// unboundedType reports whether a data value type is not a percentage.
func unboundedType(t string) bool {
	return strings.Contains(t, "Number") || strings.Contains(t, "Rate")
}

func (v *aggregatedValidator) checkSampleSize(r Row, out *findings) {
	if !v.table.Has(colSampleSize) {
		return
	}
	line := r.Line()
	n := ParseNumber(r.Get(colSampleSize))
	switch n.State {
	case NumberAbsent:
		return
	case NumberInvalid:
		out.addf(line, colSampleSize, "Invalid sample size: '%s'. Expected a positive integer.", n.Text)
		return
	}
	size := n.Int()
	switch {
	case size < 0:
		out.addf(line, colSampleSize, "Negative sample size: %d. Sample size must be a positive integer.", size)
	case size < minReliableSample:
		out.addf(line, colSampleSize,
			"Sample size %d is too small for reliable estimates. BRFSS typically requires n >= 10.", size)
	case size < minComfortableSample:
		out.addf(line, colSampleSize,
			"Small sample size (n=%d) may produce wide confidence intervals. Consider if estimate is reliable.", size)
	}
}

func (v *aggregatedValidator) checkConfidence(r Row, dv Number, out *findings) {
	if !v.table.Has(colConfidenceLow) || !v.table.Has(colConfidenceHigh) {
		return
	}
	line := r.Line()
	lo := ParseNumber(r.Get(colConfidenceLow))
	hi := ParseNumber(r.Get(colConfidenceHigh))
	if lo.State == NumberAbsent || hi.State == NumberAbsent {
		return
	}
	if lo.State == NumberInvalid || hi.State == NumberInvalid {
		out.add(line, "confidence_limit", "Invalid confidence limit values. Expected numeric values.")
		return
	}

	low, high := lo.Value, hi.Value
	if low < 0 {
		out.addf(line, colConfidenceLow, "Negative confidence limit: %s. Prevalence CI bounds must be >= 0.", formatFloat(low))
	}
	if high < 0 {
		out.addf(line, colConfidenceHigh, "Negative confidence limit: %s. Prevalence CI bounds must be >= 0.", formatFloat(high))
	}
	if v.prevalenceTyped(r) && high > maxPercentage {
		out.addf(line, colConfidenceHigh, "CI upper bound (%s%%) exceeds 100%%. Prevalence cannot exceed 100%%.", formatFloat(high))
	}
	if low > high {
		out.addf(line, "confidence_limit",
			"Confidence limits are inverted: low (%s) > high (%s). Swap the values or verify source data.",
			formatFloat(low), formatFloat(high))
	}

	if !dv.Present() {
		return
	}
	if dv.Value < low || dv.Value > high {
		out.addf(line, "confidence_limit",
			"Data value (%s%%) is outside its confidence interval [%s, %s]. The point estimate should fall within the CI bounds.",
			formatFloat(dv.Value), formatFloat(low), formatFloat(high))
	}
	if width := high - low; width > maxIntervalWidth {
		out.addf(line, "confidence_limit",
			"Wide confidence interval (%.1f percentage points). This may indicate small sample size or high variability.", width)
	}
}

// prevalenceTyped reports whether the row's value is a bounded percentage.
func (v *aggregatedValidator) prevalenceTyped(r Row) bool {
	dvType, hasType := r.Lookup(colDataValueType)
	return !hasType ||
		strings.Contains(dvType, "Prevalence") ||
		strings.Contains(r.Get(colDataValueUnit), "%")
}

func (v *aggregatedValidator) checkBreakout(r Row, out *findings) {
	if !v.table.Has(colBreakOut) || !v.table.Has(colBreakOutCategory) {
		return
	}
	breakout, ok1 := r.Lookup(colBreakOut)
	category, ok2 := r.Lookup(colBreakOutCategory)
	if !ok1 || !ok2 {
		return
	}
	breakout = strings.TrimSpace(breakout)
	category = strings.TrimSpace(category)
	allowed, known := v.cb.BreakoutCategories(breakout)
	if !known {
		return
	}
	for _, c := range allowed {
		if c == category {
			return
		}
	}
	out.addf(r.Line(), colBreakOutCategory, "Category '%s' may not be valid for break_out '%s'", category, breakout)
}

func (v *aggregatedValidator) checkVocabularies(r Row, out *findings) {
	line := r.Line()

	if s, ok := v.present(r, colDataValueType); ok && !v.cb.IsDataValueType(strings.TrimSpace(s)) {
		out.addf(line, colDataValueType, "Unrecognized data value type: '%s'", s)
	}
	if s, ok := v.present(r, colDatasource); ok && !v.cb.IsDatasource(strings.TrimSpace(s)) {
		out.addf(line, colDatasource, "Unrecognized datasource: '%s'", s)
	}
	if s, ok := v.present(r, colDataValueUnit); ok && !v.cb.IsUnit(strings.TrimSpace(s)) {
		out.addf(line, colDataValueUnit, "Unrecognized data value unit: '%s'. Expected one of: %s",
			s, strings.Join(v.cb.Units(), ", "))
	}
	if s, ok := v.present(r, colResponse); ok && !v.cb.IsResponse(strings.TrimSpace(s)) {
		out.addf(line, colResponse, "Invalid response value: '%s'. Expected 'Yes' or 'No'.", s)
	}
}

// present returns a non-blank cell of an optional column.
func (v *aggregatedValidator) present(r Row, col string) (string, bool) {
	if !v.table.Has(col) {
		return "", false
	}
	return r.Lookup(col)
}

func (v *aggregatedValidator) checkHygiene(r Row, out *findings) {
	line := r.Line()
	for _, field := range hygieneFields {
		if val := r.Get(field); val != "" && val != strings.TrimSpace(val) {
			out.addf(line, field, "Field '%s' has leading or trailing whitespace: '%s'. Remove extra spaces.", field, val)
		}
	}
	for _, field := range hygieneFields {
		if hasControl(r.Get(field)) {
			out.addf(line, field, "Field '%s' contains non-printable characters. Check for data corruption.", field)
		}
	}
}

// hasControl reports control characters other than tab, newline and
// carriage return.
func hasControl(s string) bool {
	for _, c := range s {
		if c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		if unicode.IsControl(c) {
			return true
		}
	}
	return false
}
