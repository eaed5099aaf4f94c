// pkg/api/overview_v1.go
package api

// ColumnStatV1 is the stable JSON schema for one column of a table
// summary. Keep fields, names, and types stable. Add new fields only
// with ",omitempty".
type ColumnStatV1 struct {
	Name     string   `json:"name"`
	NonEmpty int      `json:"non_empty"`
	Empty    int      `json:"empty"`
	Distinct int      `json:"distinct"`
	Sample   []string `json:"sample,omitempty"`
}

// KeyStatV1 describes one of the well-known key columns
// (variant_id, Gene_symbol, Transcript) when present.
type KeyStatV1 struct {
	Column   string   `json:"column"`
	NonEmpty int      `json:"non_empty"`
	Distinct int      `json:"distinct"`
	Sample   []string `json:"sample,omitempty"`
}

// OverviewV1 is the stable schema for table overviews.
type OverviewV1 struct {
	Path            string         `json:"path,omitempty"`
	Rows            int            `json:"rows"`
	Cols            int            `json:"cols"`
	Columns         []ColumnStatV1 `json:"columns"`
	Keys            []KeyStatV1    `json:"keys,omitempty"`
	UnknownGeneRows int            `json:"unknown_gene_rows,omitempty"`
}

// OverlapV1 is the stable schema for merge overlap diagnostics.
type OverlapV1 struct {
	Left        int     `json:"left_rows"`
	Right       int     `json:"right_rows"`
	MatchedLeft int     `json:"matched_left_rows"`
	OutputRows  int     `json:"output_rows"`
	MatchRate   float64 `json:"match_rate"`
}
