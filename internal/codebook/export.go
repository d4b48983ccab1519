package codebook

// VariableDoc is the serializable form of a FieldRule.
type VariableDoc struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Family string `json:"family" yaml:"family"`
	Codes  []int  `json:"codes,omitempty" yaml:"codes,omitempty,flow"`
}

// JurisdictionDoc is one row of the location table.
type JurisdictionDoc struct {
	Abbr string `json:"abbr" yaml:"abbr"`
	Name string `json:"name" yaml:"name"`
	FIPS int    `json:"fips,omitempty" yaml:"fips,omitempty"`
}

// ColumnDoc describes a required aggregated column.
type ColumnDoc struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Document is a read-only snapshot of the codebook for export.
type Document struct {
	Variables       []VariableDoc       `json:"variables" yaml:"variables"`
	Questions       []VariableDoc       `json:"questions" yaml:"questions"`
	Jurisdictions   []JurisdictionDoc   `json:"jurisdictions" yaml:"jurisdictions"`
	RequiredColumns []ColumnDoc         `json:"required_columns" yaml:"required_columns"`
	Topics          []string            `json:"topics" yaml:"topics"`
	Breakouts       map[string][]string `json:"breakouts" yaml:"breakouts"`
	Units           []string            `json:"units" yaml:"units"`
}

// Doc converts a rule to its serializable form.
func (r FieldRule) Doc() VariableDoc {
	d := VariableDoc{ID: r.ID, Name: r.Name, Family: r.Response.Family.String()}
	if r.Response.IsEnumerated() {
		d.Codes = append([]int(nil), r.Response.Codes...)
	}
	return d
}

func docs(rules []FieldRule) []VariableDoc {
	out := make([]VariableDoc, len(rules))
	for i, r := range rules {
		out[i] = r.Doc()
	}
	return out
}

// VariableDocs lists the current variables in codebook order.
func (cb *Codebook) VariableDocs() []VariableDoc { return docs(cb.variables) }

// Export builds a Document. The result shares nothing with the codebook.
func (cb *Codebook) Export() Document {
	doc := Document{
		Variables: docs(cb.variables),
		Questions: docs(cb.questions),
		Topics:    cb.Topics(),
		Units:     cb.Units(),
		Breakouts: make(map[string][]string, len(cb.breakouts)),
	}
	for _, j := range jurisdictions {
		doc.Jurisdictions = append(doc.Jurisdictions, JurisdictionDoc{Abbr: j.Abbr, Name: j.Name, FIPS: j.FIPS})
	}
	for _, c := range cb.required {
		doc.RequiredColumns = append(doc.RequiredColumns, ColumnDoc{Name: c.Name, Description: c.Description})
	}
	for name, cats := range cb.breakouts {
		doc.Breakouts[name] = append([]string(nil), cats...)
	}
	return doc
}
