// core/tsv/table.go
package tsv

import "strings"

// Table is an ordered sequence of rows sharing one header. Stages never
// mutate a Table in place; each transform returns a fresh one.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with a copy of the given header.
func New(columns []string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Col returns the index of the named column, or -1.
func (t *Table) Col(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ResolveColumn tries candidate names in priority order: exact matches
// first, then a case-insensitive pass. Returns -1 if none are present.
func (t *Table) ResolveColumn(candidates ...string) int {
	for _, name := range candidates {
		if i := t.Col(name); i >= 0 {
			return i
		}
	}
	for _, name := range candidates {
		for i, c := range t.Columns {
			if strings.EqualFold(c, name) {
				return i
			}
		}
	}
	return -1
}

// Column returns a copy of all values of the column at index i.
func (t *Table) Column(i int) []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row[i])
	}
	return out
}

// AppendRow adds a copy of row to the table.
func (t *Table) AppendRow(row []string) {
	t.Rows = append(t.Rows, append([]string(nil), row...))
}
