package validation

import (
	"strings"

	"github.com/JonMunkholm/brfss/internal/codebook"
)

// NormalizeColumns lowercases and trims every column name, then renames
// columns whose separator-stripped spelling is a known synonym. Columns
// starting with "_" are raw system fields and keep their names. It returns
// the renamed table and how many columns actually changed name.
func NormalizeColumns(cb *codebook.Codebook, t *Table) (*Table, int) {
	cols := t.Columns()
	renamed := 0
	for i, c := range cols {
		c = strings.ToLower(strings.TrimSpace(c))
		cols[i] = c
		if strings.HasPrefix(c, "_") {
			continue
		}
		if canonical, ok := lookupSynonym(cb, c); ok && canonical != c {
			cols[i] = canonical
			renamed++
		}
	}
	return t.withColumns(cols), renamed
}

func lookupSynonym(cb *codebook.Codebook, col string) (string, bool) {
	if canonical, ok := cb.Synonym(stripSeparators(col)); ok {
		return canonical, true
	}
	return cb.Synonym(col)
}

// stripSeparators removes the characters exports use between words.
func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', ' ', '-', '.':
			return -1
		}
		return r
	}, s)
}
