package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"veptab-core/overview"
	"veptab-core/tsv"
	"veptab/pkg/api"
)

func buildFixture(t *testing.T) (*tsv.Table, api.OverviewV1) {
	t.Helper()
	tbl, err := tsv.Read(strings.NewReader(
		"variant_id\tGene_symbol\tTranscript\n"+
			"v1\tBRCA1\tENST1\n"+
			"v2\tUNKNOWN\tENST2\n"+
			"v3\tBRCA1\t\n"), "fixture.tsv")
	require.NoError(t, err)
	return tbl, Build("fixture.tsv", tbl, overview.Summarize(tbl, 3), 3)
}

func TestBuildKeyStats(t *testing.T) {
	_, ov := buildFixture(t)

	assert.Equal(t, 3, ov.Rows)
	assert.Equal(t, 3, ov.Cols)
	require.Len(t, ov.Keys, 3)

	byName := map[string]api.KeyStatV1{}
	for _, k := range ov.Keys {
		byName[k.Column] = k
	}
	assert.Equal(t, 3, byName["variant_id"].NonEmpty)
	assert.Equal(t, 3, byName["variant_id"].Distinct)
	assert.Equal(t, 2, byName["Gene_symbol"].Distinct)
	assert.Equal(t, 2, byName["Transcript"].NonEmpty)
	assert.Equal(t, []string{"v1", "v2", "v3"}, byName["variant_id"].Sample)

	assert.Equal(t, 1, ov.UnknownGeneRows)
}

func TestBuildWithoutKeyColumns(t *testing.T) {
	tbl, err := tsv.Read(strings.NewReader("a\tb\n1\t2\n"), "plain.tsv")
	require.NoError(t, err)
	ov := Build("plain.tsv", tbl, overview.Summarize(tbl, 5), 5)
	assert.Empty(t, ov.Keys)
	assert.Zero(t, ov.UnknownGeneRows)
}

func TestWriteText(t *testing.T) {
	_, ov := buildFixture(t)
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, ov))

	out := buf.String()
	assert.Contains(t, out, "== Overview: fixture.tsv ==")
	assert.Contains(t, out, "rows: 3")
	assert.Contains(t, out, "Gene_symbol")
	assert.Contains(t, out, "WARNING: 1 rows have Gene_symbol=UNKNOWN")
}

func TestWriteJSONStableFields(t *testing.T) {
	_, ov := buildFixture(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, ov))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "rows")
	assert.Contains(t, decoded, "columns")
	assert.Contains(t, decoded, "keys")
	assert.Contains(t, decoded, "unknown_gene_rows")
}
