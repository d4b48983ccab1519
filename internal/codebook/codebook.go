// Package codebook holds the BRFSS reference data the validators check
// submissions against: variable response rules, geographic tables,
// aggregated-data vocabularies and column-name synonyms.
//
// A Codebook is built once and never mutated afterwards, so a single value
// can be shared by every validation run and by concurrent row workers.
package codebook

import (
	"sort"
	"strings"
	"sync"
)

// Codebook is the immutable reference set for one process.
type Codebook struct {
	variables      []FieldRule
	variableByID   map[string]FieldRule
	questions      []FieldRule
	questionByCode map[string]FieldRule // keyed by normalized code

	fipsCodes    []int
	stateByFIPS  map[int]string
	abbrs        []string
	nameByAbbr   map[string]string
	abbrByName   map[string]string // lowercase name -> abbr
	classes      map[string]bool
	topics       []string
	topicByLower map[string]string
	breakouts    map[string][]string
	types        map[string]bool
	units        []string
	sources      map[string]bool
	responses    []string
	synonyms     map[string]string

	required    []aggregatedColumn
	requiredSet map[string]bool
	knownAgg    map[string]bool
	rawSignals  map[string]bool
	aggSignals  map[string]bool
	systemCols  map[string]bool
}

var (
	defaultOnce sync.Once
	defaultBook *Codebook
)

// Default returns the process-wide codebook, building it on first use.
func Default() *Codebook {
	defaultOnce.Do(func() {
		defaultBook = build()
	})
	return defaultBook
}

// build assembles the lookup indexes from the static tables.
func build() *Codebook {
	cb := &Codebook{
		variables:      currentVariables,
		variableByID:   make(map[string]FieldRule, len(currentVariables)),
		questions:      legacyQuestions,
		questionByCode: make(map[string]FieldRule, len(legacyQuestions)),
		stateByFIPS:    make(map[int]string),
		nameByAbbr:     make(map[string]string, len(jurisdictions)),
		abbrByName:     make(map[string]string, len(jurisdictions)),
		classes:        toSet(classes),
		topics:         topics,
		topicByLower:   make(map[string]string, len(topics)),
		breakouts:      make(map[string][]string, len(breakouts)),
		types:          toSet(dataValueTypes),
		units:          dataValueUnits,
		sources:        toSet(datasources),
		responses:      responses,
		synonyms:       columnSynonyms,
		required:       aggregatedRequired,
		requiredSet:    make(map[string]bool, len(aggregatedRequired)),
		knownAgg:       toSet(aggregatedOptional),
		rawSignals:     toSet(rawIndicators),
		aggSignals:     toSet(aggregatedIndicators),
		systemCols:     toSet(systemColumns),
	}

	for _, v := range currentVariables {
		cb.variableByID[v.ID] = v
	}
	for _, q := range legacyQuestions {
		cb.questionByCode[normalizeQuestionCode(q.ID)] = q
	}
	for _, j := range jurisdictions {
		cb.abbrs = append(cb.abbrs, j.Abbr)
		cb.nameByAbbr[j.Abbr] = j.Name
		cb.abbrByName[strings.ToLower(j.Name)] = j.Abbr
		if j.FIPS > 0 {
			cb.stateByFIPS[j.FIPS] = j.Name
			cb.fipsCodes = append(cb.fipsCodes, j.FIPS)
		}
	}
	sort.Ints(cb.fipsCodes)
	for _, t := range topics {
		cb.topicByLower[strings.ToLower(t)] = t
	}
	for _, b := range breakouts {
		cb.breakouts[b.Name] = b.Categories
	}
	for _, c := range aggregatedRequired {
		cb.requiredSet[c.Name] = true
		cb.knownAgg[c.Name] = true
	}

	return cb
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Variables returns the current variable rules in codebook order.
func (cb *Codebook) Variables() []FieldRule {
	return append([]FieldRule(nil), cb.variables...)
}

// Questions returns the legacy question rules in codebook order.
func (cb *Codebook) Questions() []FieldRule {
	return append([]FieldRule(nil), cb.questions...)
}

// Variable looks up a current variable by identifier (case-insensitive).
func (cb *Codebook) Variable(id string) (FieldRule, bool) {
	r, ok := cb.variableByID[strings.ToUpper(id)]
	return r, ok
}

// Question looks up a legacy question code. Dots and underscores are
// ignored, so "CHS.01", "chs_01" and "CHS01" all resolve.
func (cb *Codebook) Question(code string) (FieldRule, bool) {
	r, ok := cb.questionByCode[normalizeQuestionCode(code)]
	return r, ok
}

// StateName returns the jurisdiction name for a raw-data FIPS code.
func (cb *Codebook) StateName(fips int) (string, bool) {
	name, ok := cb.stateByFIPS[fips]
	return name, ok
}

// FIPSCodes returns every valid FIPS code in ascending order.
func (cb *Codebook) FIPSCodes() []int {
	return append([]int(nil), cb.fipsCodes...)
}

// Jurisdiction returns the name for a 2-letter location abbreviation.
func (cb *Codebook) Jurisdiction(abbr string) (string, bool) {
	name, ok := cb.nameByAbbr[abbr]
	return name, ok
}

// Abbreviations returns all location abbreviations in table order.
func (cb *Codebook) Abbreviations() []string {
	return append([]string(nil), cb.abbrs...)
}

// AbbreviationFor resolves a jurisdiction name (case-insensitive).
func (cb *Codebook) AbbreviationFor(name string) (string, bool) {
	abbr, ok := cb.abbrByName[strings.ToLower(strings.TrimSpace(name))]
	return abbr, ok
}

// IsClass reports whether s is a known indicator class.
func (cb *Codebook) IsClass(s string) bool { return cb.classes[s] }

// Topic resolves a topic case-insensitively to its canonical spelling.
func (cb *Codebook) Topic(s string) (string, bool) {
	t, ok := cb.topicByLower[strings.ToLower(s)]
	return t, ok
}

// Topics returns the topic vocabulary in table order.
func (cb *Codebook) Topics() []string {
	return append([]string(nil), cb.topics...)
}

// BreakoutCategories returns the allowed categories for a known breakout.
func (cb *Codebook) BreakoutCategories(breakout string) ([]string, bool) {
	cats, ok := cb.breakouts[breakout]
	return cats, ok
}

// IsDataValueType reports whether s is a known data value type.
func (cb *Codebook) IsDataValueType(s string) bool { return cb.types[s] }

// IsDatasource reports whether s is a known datasource.
func (cb *Codebook) IsDatasource(s string) bool { return cb.sources[s] }

// Units returns the accepted data value units.
func (cb *Codebook) Units() []string {
	return append([]string(nil), cb.units...)
}

// IsUnit reports whether s is an accepted data value unit.
func (cb *Codebook) IsUnit(s string) bool {
	for _, u := range cb.units {
		if u == s {
			return true
		}
	}
	return false
}

// IsResponse reports whether s is an accepted aggregated response value.
func (cb *Codebook) IsResponse(s string) bool {
	for _, r := range cb.responses {
		if r == s {
			return true
		}
	}
	return false
}

// Synonym returns the canonical column for a separator-stripped name.
func (cb *Codebook) Synonym(stripped string) (string, bool) {
	c, ok := cb.synonyms[stripped]
	return c, ok
}

// RequiredColumns returns the aggregated required columns in order.
func (cb *Codebook) RequiredColumns() []string {
	out := make([]string, len(cb.required))
	for i, c := range cb.required {
		out[i] = c.Name
	}
	return out
}

// ColumnDescription explains what a required aggregated column holds.
func (cb *Codebook) ColumnDescription(col string) string {
	for _, c := range cb.required {
		if c.Name == col {
			return c.Description
		}
	}
	return "Required field"
}

// IsKnownAggregatedColumn reports whether col is a required or optional
// aggregated column.
func (cb *Codebook) IsKnownAggregatedColumn(col string) bool { return cb.knownAgg[col] }

// IsRawIndicator reports whether a lowercase column signals raw survey data.
func (cb *Codebook) IsRawIndicator(col string) bool { return cb.rawSignals[col] }

// IsAggregatedIndicator reports whether a lowercase column signals
// aggregated data.
func (cb *Codebook) IsAggregatedIndicator(col string) bool { return cb.aggSignals[col] }

// IsSystemColumn reports whether an uppercase column is a raw system field.
func (cb *Codebook) IsSystemColumn(col string) bool { return cb.systemCols[col] }

// HasQuestionPrefix reports whether an uppercase column starts with one of
// the legacy questionnaire section prefixes.
func (cb *Codebook) HasQuestionPrefix(col string) bool {
	for _, p := range questionPrefixes {
		if strings.HasPrefix(col, p) {
			return true
		}
	}
	return false
}
