// core/normalise/normalise.go
package normalise

import (
	"fmt"
	"strings"

	"veptab-core/tsv"
)

// Canonical output column names.
const (
	GeneColumn       = "Gene_symbol"
	TranscriptColumn = "Transcript"
)

// UnknownGene is the sentinel used when no source mapping applies.
// A normalised Gene_symbol is never empty.
const UnknownGene = "UNKNOWN"

// Source column names tried in priority order. The canonical names head
// each list, which makes the stage idempotent.
var (
	geneColumns       = []string{GeneColumn, "SYMBOL", "Gene", "gene_symbol", "gene"}
	transcriptColumns = []string{TranscriptColumn, "Feature", "transcript_id", "transcript"}
)

// Options configures gene/transcript derivation.
type Options struct {
	// GeneColumn, when set, is preferred over the priority list for any
	// row where it is non-empty. It must exist in the input.
	GeneColumn string
	// TranscriptToGene backfills Gene_symbol by the row's derived
	// transcript when no gene column yields a value.
	TranscriptToGene map[string]string
	// Provenance tags; when non-empty each is appended as a constant
	// metadata column (vep_cache_version / plugins_version).
	VEPCacheVersion string
	PluginsVersion  string
}

// Apply derives Gene_symbol (uppercased, trimmed, never empty) and
// Transcript (trimmed, casing preserved, possibly empty) and returns a new
// table carrying all original columns plus the derived ones.
func Apply(t *tsv.Table, o Options) (*tsv.Table, error) {
	overrideIdx := -1
	if o.GeneColumn != "" {
		if overrideIdx = t.Col(o.GeneColumn); overrideIdx < 0 {
			return nil, fmt.Errorf("gene column %q not found in input", o.GeneColumn)
		}
	}

	geneIdx := presentColumns(t, geneColumns)
	trIdx := presentColumns(t, transcriptColumns)

	cols := append([]string(nil), t.Columns...)
	geneOut := indexOf(cols, GeneColumn)
	if geneOut < 0 {
		cols = append(cols, GeneColumn)
		geneOut = len(cols) - 1
	}
	trOut := indexOf(cols, TranscriptColumn)
	if trOut < 0 {
		cols = append(cols, TranscriptColumn)
		trOut = len(cols) - 1
	}
	versionCols := make([]int, 0, 2)
	versionVals := make([]string, 0, 2)
	for _, v := range []struct{ name, value string }{
		{"vep_cache_version", o.VEPCacheVersion},
		{"plugins_version", o.PluginsVersion},
	} {
		if v.value == "" {
			continue
		}
		idx := indexOf(cols, v.name)
		if idx < 0 {
			cols = append(cols, v.name)
			idx = len(cols) - 1
		}
		versionCols = append(versionCols, idx)
		versionVals = append(versionVals, v.value)
	}

	out := tsv.New(cols)
	for _, row := range t.Rows {
		nr := make([]string, len(cols))
		copy(nr, row)

		tr := firstNonEmpty(row, trIdx)
		gene := ""
		if overrideIdx >= 0 {
			gene = strings.TrimSpace(row[overrideIdx])
		}
		if gene == "" {
			gene = firstNonEmpty(row, geneIdx)
		}
		if gene == "" && tr != "" && o.TranscriptToGene != nil {
			gene = strings.TrimSpace(o.TranscriptToGene[tr])
		}
		if gene == "" {
			gene = UnknownGene
		}

		nr[geneOut] = strings.ToUpper(gene)
		nr[trOut] = tr
		for i, vc := range versionCols {
			nr[vc] = versionVals[i]
		}
		out.Rows = append(out.Rows, nr)
	}
	return out, nil
}

func presentColumns(t *tsv.Table, candidates []string) []int {
	var idx []int
	for _, name := range candidates {
		if i := t.Col(name); i >= 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

func firstNonEmpty(row []string, idx []int) string {
	for _, i := range idx {
		if v := strings.TrimSpace(row[i]); v != "" {
			return v
		}
	}
	return ""
}

func indexOf(ss []string, name string) int {
	for i, s := range ss {
		if s == name {
			return i
		}
	}
	return -1
}
