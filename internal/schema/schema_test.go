package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"veptab-core/tsv"
)

func mustRead(t *testing.T, data string) *tsv.Table {
	t.Helper()
	tbl, err := tsv.Read(strings.NewReader(data), "test.tsv")
	require.NoError(t, err)
	return tbl
}

func TestVEPRawOK(t *testing.T) {
	tbl := mustRead(t, "Consequence\tSYMBOL\nmissense_variant\tBRCA1\n")
	problems, err := Check(VEPRaw, tbl)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestVEPRawMissingConsequence(t *testing.T) {
	tbl := mustRead(t, "SYMBOL\nBRCA1\n")
	problems, err := Check(VEPRaw, tbl)
	require.NoError(t, err)
	assert.NotEmpty(t, problems)
}

func TestNormalisedRequiresDerivedColumns(t *testing.T) {
	ok := mustRead(t, "Gene_symbol\tTranscript\nBRCA1\tENST1\n")
	problems, err := Check(AnnotationNormalised, ok)
	require.NoError(t, err)
	assert.Empty(t, problems)

	missing := mustRead(t, "Gene_symbol\nBRCA1\n")
	problems, err = Check(AnnotationNormalised, missing)
	require.NoError(t, err)
	assert.NotEmpty(t, problems)
}

func TestConstraintNeedsSomeKey(t *testing.T) {
	ok := mustRead(t, "transcript\tpLI\nENST1\t0.9\n")
	problems, err := Check(GnomadConstraint, ok)
	require.NoError(t, err)
	assert.Empty(t, problems)

	bad := mustRead(t, "pLI\n0.9\n")
	problems, err = Check(GnomadConstraint, bad)
	require.NoError(t, err)
	assert.NotEmpty(t, problems)
}

func TestUnknownSchemaName(t *testing.T) {
	_, err := Check(Name("NOPE"), &tsv.Table{Columns: []string{"a"}})
	assert.Error(t, err)
}
