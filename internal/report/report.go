// internal/report/report.go
package report

import (
	"fmt"
	"io"
	"strings"

	linq "github.com/ahmetb/go-linq"

	"veptab-core/normalise"
	"veptab-core/overview"
	"veptab-core/tsv"
	"veptab/internal/jsonutil"
	"veptab/pkg/api"
)

// Key columns surfaced with their own sanity block when present.
var keyColumns = []string{"variant_id", "Gene_symbol", "Transcript"}

// Build assembles the stable API form of a table overview: the generic
// per-column summary plus key-column sanity stats and the UNKNOWN
// gene-symbol count.
func Build(path string, t *tsv.Table, s overview.Summary, head int) api.OverviewV1 {
	if head <= 0 {
		head = overview.DefaultSampleSize
	}
	ov := api.OverviewV1{Path: path, Rows: s.Rows, Cols: s.Cols}
	for _, c := range s.Columns {
		ov.Columns = append(ov.Columns, api.ColumnStatV1{
			Name:     c.Name,
			NonEmpty: c.NonEmpty,
			Empty:    c.Empty,
			Distinct: c.Distinct,
			Sample:   c.Sample,
		})
	}

	for _, key := range keyColumns {
		idx := t.Col(key)
		if idx < 0 {
			continue
		}
		values := t.Column(idx)

		var nonEmpty []string
		linq.From(values).
			SelectT(strings.TrimSpace).
			WhereT(func(v string) bool { return v != "" }).
			ToSlice(&nonEmpty)

		var sample []string
		linq.From(values).Take(head).ToSlice(&sample)

		ov.Keys = append(ov.Keys, api.KeyStatV1{
			Column:   key,
			NonEmpty: len(nonEmpty),
			Distinct: linq.From(nonEmpty).Distinct().Count(),
			Sample:   sample,
		})
	}

	if gi := t.Col(normalise.GeneColumn); gi >= 0 {
		ov.UnknownGeneRows = linq.From(t.Rows).CountWithT(func(row []string) bool {
			return strings.EqualFold(strings.TrimSpace(row[gi]), normalise.UnknownGene)
		})
	}
	return ov
}

// WriteText renders the overview for humans.
func WriteText(w io.Writer, ov api.OverviewV1) error {
	if ov.Path != "" {
		if _, err := fmt.Fprintf(w, "== Overview: %s ==\n", ov.Path); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "rows: %d\tcols: %d\n", ov.Rows, ov.Cols); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "columns:"); err != nil {
		return err
	}
	for _, c := range ov.Columns {
		if _, err := fmt.Fprintf(w, "  %s\tnon-empty=%d\tempty=%d\tdistinct=%d\tsample=[%s]\n",
			c.Name, c.NonEmpty, c.Empty, c.Distinct, strings.Join(c.Sample, ", ")); err != nil {
			return err
		}
	}
	if len(ov.Keys) > 0 {
		if _, err := fmt.Fprintln(w, "keys:"); err != nil {
			return err
		}
		for _, k := range ov.Keys {
			if _, err := fmt.Fprintf(w, "  %s\tnon-empty=%d\tdistinct=%d\tsample=[%s]\n",
				k.Column, k.NonEmpty, k.Distinct, strings.Join(k.Sample, ", ")); err != nil {
				return err
			}
		}
	}
	if ov.UnknownGeneRows > 0 {
		if _, err := fmt.Fprintf(w, "WARNING: %d rows have %s=%s\n",
			ov.UnknownGeneRows, normalise.GeneColumn, normalise.UnknownGene); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the overview as indented JSON.
func WriteJSON(w io.Writer, ov api.OverviewV1) error {
	return jsonutil.EncodePretty(w, ov)
}
