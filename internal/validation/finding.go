package validation

import (
	"encoding/json"
	"fmt"
)

// Severity grades a finding.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity maps a serialized severity name back to its value.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil
		}
	}
	return SeverityError, fmt.Errorf("unknown severity %q", name)
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Finding is one rule violation. Row is the physical line number of the
// offending record, or 0 for file-level findings.
type Finding struct {
	Row      int      `json:"row"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// findings collects the findings of one unit of work (a row or a file-level
// pass) before they are merged into a result in deterministic order.
type findings []Finding

// add records an error-severity finding. Soft conditions are recorded
// through the same path: any rule violation fails the submission.
func (f *findings) add(row int, field, msg string) {
	*f = append(*f, Finding{Row: row, Field: field, Message: msg, Severity: SeverityError})
}

func (f *findings) addf(row int, field, format string, args ...any) {
	f.add(row, field, fmt.Sprintf(format, args...))
}
