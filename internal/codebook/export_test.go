package codebook

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestFieldRule_Doc(t *testing.T) {
	cb := Default()

	gen, ok := cb.Variable("GENHLTH")
	if !ok {
		t.Fatal("GENHLTH missing")
	}
	want := VariableDoc{ID: "GENHLTH", Name: "General Health", Family: "codes", Codes: []int{1, 2, 3, 4, 5, 7, 9}}
	if diff := cmp.Diff(want, gen.Doc()); diff != "" {
		t.Errorf("Doc() mismatch (-want +got):\n%s", diff)
	}

	for _, v := range cb.VariableDocs() {
		if v.Family != "codes" && v.Codes != nil {
			t.Errorf("%s: range family %q should not list codes", v.ID, v.Family)
		}
	}
}

func TestExport_IsDetached(t *testing.T) {
	cb := Default()
	doc := cb.Export()

	if len(doc.Variables) != len(cb.Variables()) {
		t.Errorf("Variables = %d, want %d", len(doc.Variables), len(cb.Variables()))
	}
	if len(doc.Jurisdictions) != len(cb.Abbreviations()) {
		t.Errorf("Jurisdictions = %d, want %d", len(doc.Jurisdictions), len(cb.Abbreviations()))
	}
	if len(doc.RequiredColumns) != len(cb.RequiredColumns()) {
		t.Errorf("RequiredColumns = %d, want %d", len(doc.RequiredColumns), len(cb.RequiredColumns()))
	}

	doc.Variables[0].Codes = append(doc.Variables[0].Codes, 999)
	for name := range doc.Breakouts {
		doc.Breakouts[name][0] = "changed"
	}
	if diff := cmp.Diff(cb.Export(), Default().Export()); diff != "" {
		t.Errorf("export changed the codebook:\n%s", diff)
	}
	fresh := cb.Export()
	if cmp.Equal(doc.Variables[0], fresh.Variables[0]) {
		t.Error("mutating an export leaked into the codebook")
	}
}

func TestExport_YAML(t *testing.T) {
	out, err := yaml.Marshal(Default().Export())
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	text := string(out)
	for _, want := range []string{
		"variables:",
		"- id: GENHLTH",
		"codes: [1, 2, 3, 4, 5, 7, 9]",
		"abbr: CA",
		"required_columns:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("YAML missing %q", want)
		}
	}
}
