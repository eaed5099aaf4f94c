// core/overview/overview.go
package overview

import (
	"strings"

	"veptab-core/tsv"
)

// DefaultSampleSize bounds the distinct-value sample per column.
const DefaultSampleSize = 5

// ColumnSummary describes one column of a table.
type ColumnSummary struct {
	Name     string
	NonEmpty int
	Empty    int // cells that trim to ""
	Distinct int // distinct non-empty trimmed values
	Sample   []string
}

// Summary is a read-only description of a table.
type Summary struct {
	Rows    int
	Cols    int
	Columns []ColumnSummary
}

// Summarize computes row/column counts, per-column null rates and a small
// first-seen sample of distinct values. sampleSize <= 0 uses the default.
func Summarize(t *tsv.Table, sampleSize int) Summary {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	s := Summary{Rows: len(t.Rows), Cols: len(t.Columns)}
	for i, name := range t.Columns {
		cs := ColumnSummary{Name: name}
		seen := make(map[string]struct{})
		for _, row := range t.Rows {
			v := strings.TrimSpace(row[i])
			if v == "" {
				cs.Empty++
				continue
			}
			cs.NonEmpty++
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			if len(cs.Sample) < sampleSize {
				cs.Sample = append(cs.Sample, v)
			}
		}
		cs.Distinct = len(seen)
		s.Columns = append(s.Columns, cs)
	}
	return s
}
