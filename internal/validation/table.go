package validation

// table.go holds the in-memory shape the engine validates: an ordered
// header and rows of raw cell text.
//
// Cells are kept verbatim (no trimming) so whitespace hygiene checks can
// see exactly what was submitted. A cell that is empty or only whitespace
// is "blank" and treated the same as a missing column value.

import "strings"

// Table is an ordered sequence of rows sharing a header.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header and data rows. Short rows are padded
// with blanks and long rows truncated to the header width. When a header
// name repeats, lookups resolve to its first occurrence.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		rows:    make([][]string, len(rows)),
	}
	t.reindex()

	for i, r := range rows {
		cells := make([]string, len(columns))
		copy(cells, r)
		t.rows[i] = cells
	}
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// withColumns returns a table sharing t's rows under a new header of the
// same width.
func (t *Table) withColumns(columns []string) *Table {
	nt := &Table{columns: columns, rows: t.rows}
	nt.reindex()
	return nt
}

// Columns returns a copy of the header in file order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Has reports whether the header contains col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Row returns the i-th data row (0-based).
func (t *Table) Row(i int) Row {
	return Row{table: t, idx: i}
}

// Row is a view of one data row.
type Row struct {
	table *Table
	idx   int
}

// Line returns the physical line number of the row in the source file:
// the header is line 1 and the first data row is line 2.
func (r Row) Line() int { return r.idx + 2 }

// Get returns the raw cell text for col, or "" when the column is absent.
func (r Row) Get(col string) string {
	pos, ok := r.table.index[col]
	if !ok {
		return ""
	}
	return r.table.rows[r.idx][pos]
}

// Lookup returns the raw cell text and whether the cell holds a non-blank value.
func (r Row) Lookup(col string) (string, bool) {
	v := r.Get(col)
	return v, !IsBlank(v)
}

// cells returns the raw row slice. Callers must not modify it.
func (r Row) cells() []string { return r.table.rows[r.idx] }

// IsBlank reports whether v is empty or only whitespace.
func IsBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
