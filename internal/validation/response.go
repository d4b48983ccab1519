package validation

import (
	"fmt"

	"github.com/JonMunkholm/brfss/internal/codebook"
)

// Legends shown for the most common code shapes.
const (
	yesNoLegend  = "1=Yes, 2=No, 7=Don't know, 9=Refused"
	healthLegend = "1=Excellent, 2=Very good, 3=Good, 4=Fair, 5=Poor, 7=Don't know, 9=Refused"
	fourLegend   = "1-4 (response options), 7=Don't know, 9=Refused"

	maxListedCodes = 10
	truncatedCodes = 8
)

// Verdict is the outcome of checking one response value.
type Verdict struct {
	Valid   bool
	Message string
}

var valid = Verdict{Valid: true}

func invalid(format string, args ...any) Verdict {
	return Verdict{Message: fmt.Sprintf(format, args...)}
}

// ValidateResponse checks one cell against a response specification.
// Blank values are always valid since skip patterns leave cells empty.
func ValidateResponse(value string, spec codebook.ResponseSpec) Verdict {
	n := ParseNumber(value)
	switch n.State {
	case NumberAbsent:
		return valid
	case NumberInvalid:
		return invalid("Non-numeric response: '%s'. Expected a number code.", value)
	}
	v := n.Int()

	switch spec.Family {
	case codebook.FamilyEnumerated:
		if spec.Has(v) {
			return valid
		}
		return invalid("Invalid code %d. %s", v, codeHint(spec))

	case codebook.FamilyDays0To30:
		if inRange(v, 0, 30) || oneOf(v, 77, 88, 99) {
			return valid
		}
		return invalid("Invalid days value %d. Expected: 0-30 (number of days), 77=Don't know, 88=None, 99=Refused", v)

	case codebook.FamilyDays1To30:
		if inRange(v, 1, 30) || oneOf(v, 77, 88, 99) {
			return valid
		}
		return invalid("Invalid days value %d. Expected: 1-30 (number of days), 77=Don't know, 88=None, 99=Refused", v)

	case codebook.FamilyAge:
		if inRange(v, 18, 97) || oneOf(v, 7, 9, 98, 99) {
			return valid
		}
		return invalid("Invalid age %d. Expected: 18-97 (age in years), 7=Don't know, 9=Refused, 98=Don't know/Not sure, 99=Refused", v)

	case codebook.FamilyCount0To76:
		if inRange(v, 0, 76) || oneOf(v, 77, 88, 99) {
			return valid
		}
		return invalid("Invalid count %d. Expected: 0-76 (actual count), 77=Don't know, 88=None, 99=Refused", v)

	case codebook.FamilyCount0To87:
		if inRange(v, 0, 87) || oneOf(v, 88, 99) {
			return valid
		}
		return invalid("Invalid count %d. Expected: 0-87 (actual count), 88=None/Don't know, 99=Refused", v)

	case codebook.FamilyDrinks:
		if inRange(v, 1, 76) || oneOf(v, 77, 88, 99) {
			return valid
		}
		return invalid("Invalid drinks value %d. Expected: 1-76 (number of drinks), 77=Don't know, 88=None/Don't drink, 99=Refused", v)

	case codebook.FamilyDiagnosisAge:
		if inRange(v, 1, 97) || oneOf(v, 98, 99) {
			return valid
		}
		return invalid("Invalid diabetes age %d. Expected: 1-97 (age first diagnosed), 98=Don't know, 99=Refused", v)

	case codebook.FamilyAlcoholFrequency:
		// 1xx = days per week, 2xx = days per month
		if inRange(v, 101, 199) || inRange(v, 201, 299) || oneOf(v, 777, 888, 999) {
			return valid
		}
		return invalid("Invalid alcohol days code %d. Expected: 101-107 (days per week, e.g., 103=3 days/week), "+
			"201-230 (days per month, e.g., 215=15 days/month), 777=Don't know, 888=No drinks, 999=Refused", v)

	case codebook.FamilyWeight:
		if inRange(v, 50, 776) || oneOf(v, 7777, 9999) {
			return valid
		}
		return invalid("Invalid weight %d. Expected: 50-776 (pounds), 7777=Don't know, 9999=Refused", v)

	case codebook.FamilyCountyFIPS:
		if inRange(v, 1, 999) {
			return valid
		}
		return invalid("Invalid county code %d. Expected: 1-999 (county FIPS, including 777=Don't know and 999=Refused)", v)

	case codebook.FamilyZIP:
		if inRange(v, 1, 99999) {
			return valid
		}
		return invalid("Invalid ZIP code %d. Expected: 1-99999 (5-digit ZIP code, including 77777=Don't know and 99999=Refused)", v)
	}

	return valid
}

// codeHint explains the accepted codes for an enumerated set.
func codeHint(spec codebook.ResponseSpec) string {
	switch {
	case spec.SameCodes(1, 2, 7, 9):
		return "Valid codes: " + yesNoLegend
	case spec.SameCodes(1, 2, 3, 4, 5, 7, 9):
		return "Valid codes: " + healthLegend
	case spec.SameCodes(1, 2, 3, 4, 7, 9):
		return "Valid codes: " + fourLegend
	case len(spec.Codes) <= maxListedCodes:
		return "Valid codes: " + formatInts(spec.Codes)
	default:
		return "Valid codes: " + formatInts(spec.Codes[:truncatedCodes]) + "... (see BRFSS codebook)"
	}
}

func inRange(v, lo, hi int) bool { return v >= lo && v <= hi }

func oneOf(v int, codes ...int) bool {
	for _, c := range codes {
		if v == c {
			return true
		}
	}
	return false
}
