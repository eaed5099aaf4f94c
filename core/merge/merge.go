// core/merge/merge.go
package merge

import (
	"fmt"
	"strings"

	"veptab-core/tsv"
)

// Key selects the join column pair.
type Key string

// How selects the join mode.
type How string

const (
	KeyGene       Key = "gene"
	KeyTranscript Key = "transcript"

	HowLeft  How = "left"
	HowInner How = "inner"
)

// ConstraintPrefix marks non-key columns taken from the constraint table.
const ConstraintPrefix = "constraint_"

// Right-side key column spellings accepted per join key, tried in order.
var (
	geneKeyColumns       = []string{"Gene_symbol", "gene_symbol", "gene", "SYMBOL"}
	transcriptKeyColumns = []string{"Transcript", "transcript", "transcript_id", "Feature"}
)

// ParseKey accepts "gene", "gene_symbol" or "transcript".
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gene", "gene_symbol":
		return KeyGene, nil
	case "transcript":
		return KeyTranscript, nil
	}
	return "", fmt.Errorf("join key must be 'gene_symbol' or 'transcript', got %q", s)
}

// ParseHow accepts "left" or "inner".
func ParseHow(s string) (How, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return HowLeft, nil
	case "inner":
		return HowInner, nil
	}
	return "", fmt.Errorf("join mode must be 'left' or 'inner', got %q", s)
}

// MissingKeyError reports a join key column absent from one side.
// It is fatal and raised before any join work.
type MissingKeyError struct {
	Side   string // "input" or "constraint"
	Column string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s table is missing join key column %q", e.Side, e.Column)
}

// Overlap reports diagnostic join statistics. Observational only; an
// empty inner join is still a success.
type Overlap struct {
	Left        int // left (annotation) rows
	Right       int // constraint rows
	MatchedLeft int // left rows with at least one constraint match
	OutputRows  int
}

// Rate is the fraction of left rows that matched.
func (o Overlap) Rate() float64 {
	if o.Left == 0 {
		return 0
	}
	return float64(o.MatchedLeft) / float64(o.Left)
}

// Options configures the constraint join.
type Options struct {
	On  Key
	How How
	// ConstraintVersion, when set, is appended as a constant
	// constraint_version provenance column.
	ConstraintVersion string
}

// Apply joins the normalised table against the constraint table.
//
// The left key column is Gene_symbol or Transcript; the right key column
// is resolved from known spellings. Keys are whitespace-trimmed and, for
// gene joins, uppercased on both sides. Duplicate right keys produce the
// cross-product; nothing is deduplicated. Under a left join, unmatched
// rows carry empty strings in every constraint column.
func Apply(left, right *tsv.Table, o Options) (*tsv.Table, Overlap, error) {
	var leftKey string
	var rightCandidates []string
	switch o.On {
	case KeyGene:
		leftKey, rightCandidates = "Gene_symbol", geneKeyColumns
	case KeyTranscript:
		leftKey, rightCandidates = "Transcript", transcriptKeyColumns
	default:
		return nil, Overlap{}, fmt.Errorf("unknown join key %q", o.On)
	}
	how := o.How
	if how == "" {
		how = HowLeft
	}
	if how != HowLeft && how != HowInner {
		return nil, Overlap{}, fmt.Errorf("unknown join mode %q", o.How)
	}

	li := left.Col(leftKey)
	if li < 0 {
		return nil, Overlap{}, &MissingKeyError{Side: "input", Column: leftKey}
	}
	ri := right.ResolveColumn(rightCandidates...)
	if ri < 0 {
		return nil, Overlap{}, &MissingKeyError{Side: "constraint", Column: leftKey}
	}

	norm := func(s string) string {
		s = strings.TrimSpace(s)
		if o.On == KeyGene {
			s = strings.ToUpper(s)
		}
		return s
	}

	// Index constraint rows by normalised key; order within a key is the
	// table order, so duplicate-key matches emit deterministically.
	index := make(map[string][]int, len(right.Rows))
	for i, row := range right.Rows {
		k := norm(row[ri])
		if k == "" {
			continue
		}
		index[k] = append(index[k], i)
	}

	cols := append([]string(nil), left.Columns...)
	var rightCols []int // constraint column indexes carried to the output
	for i, c := range right.Columns {
		if i == ri {
			continue
		}
		rightCols = append(rightCols, i)
		cols = append(cols, ConstraintPrefix+c)
	}
	versionCol := -1
	if o.ConstraintVersion != "" {
		cols = append(cols, "constraint_version")
		versionCol = len(cols) - 1
	}

	out := tsv.New(cols)
	ov := Overlap{Left: len(left.Rows), Right: len(right.Rows)}

	emit := func(lrow []string, rrow []string) {
		nr := make([]string, len(cols))
		copy(nr, lrow)
		at := len(left.Columns)
		for _, rc := range rightCols {
			if rrow != nil {
				nr[at] = rrow[rc]
			}
			at++
		}
		if versionCol >= 0 {
			nr[versionCol] = o.ConstraintVersion
		}
		out.Rows = append(out.Rows, nr)
	}

	for _, lrow := range left.Rows {
		k := norm(lrow[li])
		var matches []int
		if k != "" {
			matches = index[k]
		}
		if len(matches) == 0 {
			if how == HowLeft {
				emit(lrow, nil)
			}
			continue
		}
		ov.MatchedLeft++
		for _, m := range matches {
			emit(lrow, right.Rows[m])
		}
	}
	ov.OutputRows = len(out.Rows)
	return out, ov, nil
}
