// core/filter/filter.go
package filter

import (
	"fmt"
	"strings"

	"veptab-core/tsv"
)

// DefaultConsequenceColumn is the VEP column holding &-delimited terms.
const DefaultConsequenceColumn = "Consequence"

// Known indicator column spellings, tried in priority order.
var (
	maneColumns      = []string{"MANE_SELECT", "MANE_select", "MANE"}
	canonicalColumns = []string{"CANONICAL", "canonical"}
)

// Options selects which rows survive the filter stage.
type Options struct {
	Keep              []string // accepted consequence terms
	MANEOnly          bool
	CanonicalOnly     bool
	ConsequenceColumn string // defaults to DefaultConsequenceColumn
}

// Stats counts surviving rows after each predicate, in application order.
type Stats struct {
	In               int
	AfterConsequence int
	AfterMANE        int
	AfterCanonical   int
	Out              int
}

// Apply keeps rows whose consequence field intersects the accepted set,
// optionally restricted to MANE-select and/or canonical transcripts.
// Column set and row order are preserved; zero matches is valid output.
func Apply(t *tsv.Table, o Options) (*tsv.Table, Stats, error) {
	colName := o.ConsequenceColumn
	if colName == "" {
		colName = DefaultConsequenceColumn
	}
	ci := t.Col(colName)
	if ci < 0 {
		return nil, Stats{}, fmt.Errorf("missing column %q", colName)
	}

	keep := make(map[string]struct{}, len(o.Keep))
	for _, term := range o.Keep {
		if term = strings.TrimSpace(term); term != "" {
			keep[term] = struct{}{}
		}
	}

	maneIdx, canIdx := -1, -1
	if o.MANEOnly {
		if maneIdx = t.ResolveColumn(maneColumns...); maneIdx < 0 {
			return nil, Stats{}, fmt.Errorf("mane-only requires one of columns %s", strings.Join(maneColumns, ", "))
		}
	}
	if o.CanonicalOnly {
		if canIdx = t.ResolveColumn(canonicalColumns...); canIdx < 0 {
			return nil, Stats{}, fmt.Errorf("canonical-only requires one of columns %s", strings.Join(canonicalColumns, ", "))
		}
	}

	out := tsv.New(t.Columns)
	st := Stats{In: len(t.Rows)}
	for _, row := range t.Rows {
		if !hasKeptConsequence(row[ci], keep) {
			continue
		}
		st.AfterConsequence++
		if o.MANEOnly && !tsv.Truthy(row[maneIdx]) {
			continue
		}
		st.AfterMANE++
		if o.CanonicalOnly && !tsv.Truthy(row[canIdx]) {
			continue
		}
		st.AfterCanonical++
		out.AppendRow(row)
	}
	st.Out = len(out.Rows)
	return out, st, nil
}

// hasKeptConsequence reports whether any &-delimited term is accepted.
// Empty cells and the literal "nan" (a pandas export artifact) never match.
func hasKeptConsequence(cell string, keep map[string]struct{}) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") {
		return false
	}
	for _, part := range strings.Split(cell, "&") {
		if _, ok := keep[strings.TrimSpace(part)]; ok {
			return true
		}
	}
	return false
}
