package validation

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/JonMunkholm/brfss/internal/codebook"
)

const maxSummaryNames = 10

// SummaryKind selects which fields a DataSummary carries.
type SummaryKind int

const (
	// SummaryNone is the zero value: no summary was derived.
	SummaryNone SummaryKind = iota
	// SummaryFormat carries only the detected format.
	SummaryFormat
	// SummaryAggregated describes a table with location abbreviations.
	SummaryAggregated
	// SummaryRaw describes a table keyed by state FIPS codes.
	SummaryRaw
)

// DataSummary describes what a submission contained.
type DataSummary struct {
	Kind   SummaryKind
	Format Format

	States int // distinct jurisdictions (both kinds)

	Topics     int
	Years      []int
	TopicsList []string

	StateNames  []string
	Respondents int
}

type summaryJSON struct {
	Format      *Format   `json:"format,omitempty"`
	States      *int      `json:"states,omitempty"`
	Topics      *int      `json:"topics,omitempty"`
	Years       *[]int    `json:"years,omitempty"`
	TopicsList  *[]string `json:"topics_list,omitempty"`
	StateNames  *[]string `json:"state_names,omitempty"`
	Respondents *int      `json:"respondents,omitempty"`
}

func (s DataSummary) MarshalJSON() ([]byte, error) {
	var out summaryJSON
	switch s.Kind {
	case SummaryNone:
		return []byte("{}"), nil
	case SummaryFormat:
		out.Format = &s.Format
	case SummaryAggregated:
		years, topics := s.Years, s.TopicsList
		if years == nil {
			years = []int{}
		}
		if topics == nil {
			topics = []string{}
		}
		out = summaryJSON{Format: &s.Format, States: &s.States, Topics: &s.Topics, Years: &years, TopicsList: &topics}
	case SummaryRaw:
		names := s.StateNames
		if names == nil {
			names = []string{}
		}
		out = summaryJSON{Format: &s.Format, States: &s.States, StateNames: &names, Respondents: &s.Respondents}
	default:
		return nil, fmt.Errorf("unknown summary kind %d", s.Kind)
	}
	return json.Marshal(out)
}

func (s *DataSummary) UnmarshalJSON(data []byte) error {
	var in summaryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = DataSummary{}
	if in.Format != nil {
		s.Format = *in.Format
	}
	if in.States != nil {
		s.States = *in.States
	}

	switch {
	case in.TopicsList != nil || in.Years != nil || in.Topics != nil:
		s.Kind = SummaryAggregated
		if in.Topics != nil {
			s.Topics = *in.Topics
		}
		if in.Years != nil {
			s.Years = *in.Years
		}
		if in.TopicsList != nil {
			s.TopicsList = *in.TopicsList
		}
	case in.StateNames != nil || in.Respondents != nil:
		s.Kind = SummaryRaw
		if in.StateNames != nil {
			s.StateNames = *in.StateNames
		}
		if in.Respondents != nil {
			s.Respondents = *in.Respondents
		}
	case in.Format != nil:
		s.Kind = SummaryFormat
	}
	return nil
}

// Summarize derives the data summary for a validated table.
func Summarize(cb *codebook.Codebook, t *Table, format Format) DataSummary {
	switch {
	case t.Has(colLocationAbbr):
		return summarizeAggregated(t, format)
	case t.Has(stateColumn):
		return summarizeRaw(cb, t, format)
	default:
		return DataSummary{Kind: SummaryFormat, Format: format}
	}
}

func summarizeAggregated(t *Table, format Format) DataSummary {
	s := DataSummary{Kind: SummaryAggregated, Format: format, Years: []int{}, TopicsList: []string{}}

	states := make(map[string]bool)
	topics := make(map[string]bool)
	years := make(map[int]bool)
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if v, ok := row.Lookup(colLocationAbbr); ok {
			states[v] = true
		}
		if v, ok := row.Lookup(colTopic); ok && !topics[v] {
			topics[v] = true
			if len(s.TopicsList) < maxSummaryNames {
				s.TopicsList = append(s.TopicsList, v)
			}
		}
		if n := ParseNumber(row.Get(colYear)); n.Present() {
			years[n.Int()] = true
		}
	}

	s.States = len(states)
	s.Topics = len(topics)
	for y := range years {
		s.Years = append(s.Years, y)
	}
	sort.Ints(s.Years)
	return s
}

func summarizeRaw(cb *codebook.Codebook, t *Table, format Format) DataSummary {
	s := DataSummary{Kind: SummaryRaw, Format: format, StateNames: []string{}, Respondents: t.Len()}

	seen := make(map[string]bool)
	for i := 0; i < t.Len(); i++ {
		v, ok := t.Row(i).Lookup(stateColumn)
		if !ok {
			continue
		}
		label := stateLabel(cb, v)
		if seen[label] {
			continue
		}
		seen[label] = true
		if len(s.StateNames) < maxSummaryNames {
			s.StateNames = append(s.StateNames, label)
		}
	}
	s.States = len(seen)
	return s
}

func stateLabel(cb *codebook.Codebook, v string) string {
	if n := ParseNumber(v); n.Present() {
		if name, ok := cb.StateName(n.Int()); ok {
			return name
		}
		return fmt.Sprintf("Unknown(%d)", n.Int())
	}
	return fmt.Sprintf("Unknown(%s)", v)
}
