// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veptab-core/filter"
	"veptab-core/merge"
	"veptab-core/tsv"
	"veptab/internal/logutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	in := writeFile(t, dir, "vep.tsv",
		"variant_id\tConsequence\tSYMBOL\tFeature\n"+
			"v1\tmissense_variant\tbrca1\tENST001\n"+
			"v2\tsynonymous_variant\tTP53\tENST002\n"+
			"v3\tstop_gained&splice_region_variant\tbrca1\tENST003\n")
	constraint := writeFile(t, dir, "constraint.tsv",
		"gene\tlof_oe\n"+
			"BRCA1\t0.12\n"+
			"TP53\t0.08\n")
	return Config{
		InTSV:         in,
		ConstraintTSV: constraint,
		OutDir:        filepath.Join(dir, "out"),
		Head:          5,
		Filter:        filter.Options{Keep: []string{"missense_variant", "stop_gained"}},
		Merge:         merge.Options{On: merge.KeyGene, How: merge.HowLeft, ConstraintVersion: "gnomad-v4.1"},
	}
}

func TestRunProducesAllStages(t *testing.T) {
	cfg := testConfig(t)
	log := logutil.New(io.Discard, logutil.Options{Quiet: true})

	results, ov, err := Run(context.Background(), cfg, log)
	require.NoError(t, err)
	require.NotNil(t, ov)
	require.Len(t, results, 4)

	assert.Equal(t, "filter", results[0].Name)
	assert.Equal(t, 2, results[0].Rows)
	assert.Equal(t, "normalise", results[1].Name)
	assert.Equal(t, "merge", results[2].Name)
	assert.Equal(t, "overview", results[3].Name)

	merged, err := tsv.ReadPath(cfg.StagePath("merged"))
	require.NoError(t, err)
	assert.Contains(t, merged.Columns, "Gene_symbol")
	assert.Contains(t, merged.Columns, "constraint_lof_oe")
	assert.Contains(t, merged.Columns, "constraint_version")
	assert.Equal(t, 2, len(merged.Rows))

	assert.Equal(t, 2, ov.Rows)
	assert.Equal(t, 0, ov.UnknownGeneRows)
}

func TestRunGzipOutputs(t *testing.T) {
	cfg := testConfig(t)
	cfg.GzipOut = true
	log := logutil.New(io.Discard, logutil.Options{Quiet: true})

	_, _, err := Run(context.Background(), cfg, log)
	require.NoError(t, err)

	for _, stage := range []string{"filtered", "normalised", "merged"} {
		p := cfg.StagePath(stage)
		assert.Equal(t, ".gz", filepath.Ext(p))
		tbl, err := tsv.ReadPath(p)
		require.NoError(t, err, stage)
		assert.NotEmpty(t, tbl.Columns, stage)
	}
}

func TestRunSkipOverview(t *testing.T) {
	cfg := testConfig(t)
	cfg.SkipOverview = true
	log := logutil.New(io.Discard, logutil.Options{Quiet: true})

	results, ov, err := Run(context.Background(), cfg, log)
	require.NoError(t, err)
	assert.Nil(t, ov)
	require.Len(t, results, 3)
	assert.Equal(t, "merge", results[2].Name)
}

func TestRunAbortsOnMissingConstraint(t *testing.T) {
	cfg := testConfig(t)
	cfg.ConstraintTSV = filepath.Join(t.TempDir(), "nope.tsv")
	log := logutil.New(io.Discard, logutil.Options{Quiet: true})

	results, _, err := Run(context.Background(), cfg, log)
	require.Error(t, err)

	// Earlier stage outputs survive the abort.
	require.Len(t, results, 2)
	_, statErr := os.Stat(cfg.StagePath("normalised"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(cfg.StagePath("merged"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunHonoursCancelledContext(t *testing.T) {
	cfg := testConfig(t)
	log := logutil.New(io.Discard, logutil.Options{Quiet: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, _, err := Run(ctx, cfg, log)
	require.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, len(results), 1)
}
