package codebook

import (
	"fmt"
	"strings"
)

// Family identifies how a response value is checked.
type Family int

const (
	// FamilyEnumerated means the value must be one of ResponseSpec.Codes.
	FamilyEnumerated Family = iota
	FamilyDays0To30
	FamilyDays1To30
	FamilyAge
	FamilyCount0To76
	FamilyCount0To87
	FamilyDrinks
	FamilyDiagnosisAge
	FamilyAlcoholFrequency
	FamilyWeight
	FamilyCountyFIPS
	FamilyZIP
)

var familyNames = map[Family]string{
	FamilyEnumerated:       "codes",
	FamilyDays0To30:        "days_0_30",
	FamilyDays1To30:        "days_1_30",
	FamilyAge:              "age",
	FamilyCount0To76:       "count_0_76",
	FamilyCount0To87:       "count_0_87",
	FamilyDrinks:           "drinks",
	FamilyDiagnosisAge:     "diabetes_age",
	FamilyAlcoholFrequency: "alcohol_days",
	FamilyWeight:           "weight",
	FamilyCountyFIPS:       "county_fips",
	FamilyZIP:              "zipcode",
}

// String returns the codebook name of the family.
func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// ResponseSpec describes the valid responses for one variable: either an
// enumerated code set or a named numeric range family.
type ResponseSpec struct {
	Family Family
	Codes  []int // only for FamilyEnumerated
}

// Codes builds an enumerated ResponseSpec.
func Codes(codes ...int) ResponseSpec {
	return ResponseSpec{Family: FamilyEnumerated, Codes: codes}
}

// CodeRange builds an enumerated specification for lo..hi plus extra codes.
func CodeRange(lo, hi int, extra ...int) ResponseSpec {
	codes := make([]int, 0, hi-lo+1+len(extra))
	for i := lo; i <= hi; i++ {
		codes = append(codes, i)
	}
	return ResponseSpec{Family: FamilyEnumerated, Codes: append(codes, extra...)}
}

// Range builds a numeric family specification.
func Range(f Family) ResponseSpec {
	return ResponseSpec{Family: f}
}

// IsEnumerated reports whether the spec is a code set.
func (s ResponseSpec) IsEnumerated() bool {
	return s.Family == FamilyEnumerated
}

// Has reports whether code is in an enumerated code set.
func (s ResponseSpec) Has(code int) bool {
	for _, c := range s.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// SameCodes reports whether the enumerated set equals want, in order.
func (s ResponseSpec) SameCodes(want ...int) bool {
	if len(s.Codes) != len(want) {
		return false
	}
	for i := range want {
		if s.Codes[i] != want[i] {
			return false
		}
	}
	return true
}

// FieldRule binds a variable identifier to its response specification.
type FieldRule struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Response ResponseSpec `yaml:"-"`
}

// Label returns the human readable name, falling back to the identifier.
func (r FieldRule) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// normalizeQuestionCode strips the punctuation used in legacy dotted
// question codes so "CHS.01", "chs_01" and "CHS01" compare equal.
func normalizeQuestionCode(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, "_", "")
}
