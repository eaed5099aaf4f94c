// internal/pipelinecli/options_test.go
package pipelinecli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veptab-core/merge"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParseArgsMinimal(t *testing.T) {
	fs := NewFlagSet("vep-pipeline")
	o, err := ParseArgs(fs, []string{"-i", "in.tsv", "-c", "constraint.tsv"})
	require.NoError(t, err)
	assert.Equal(t, "in.tsv", o.InTSV)
	assert.Equal(t, "constraint.tsv", o.ConstraintTSV)
	assert.Equal(t, "out", o.OutDir)
	assert.Equal(t, merge.KeyGene, o.On)
	assert.Equal(t, merge.HowLeft, o.How)
}

func TestParseArgsRequiresInputs(t *testing.T) {
	fs := NewFlagSet("vep-pipeline")
	_, err := ParseArgs(fs, []string{"-c", "constraint.tsv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--in-tsv")

	fs = NewFlagSet("vep-pipeline")
	_, err = ParseArgs(fs, []string{"-i", "in.tsv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--constraint-tsv")
}

func TestConfigFileFillsDefaults(t *testing.T) {
	p := writeYAML(t, `
in_tsv: raw.tsv.gz
constraint_tsv: gnomad.tsv.gz
out_dir: results
keep_consequence: stop_gained
mane_only: true
on: transcript
how: inner
constraint_version: gnomad-v4.1
gzip_out: true
head: 10
`)
	fs := NewFlagSet("vep-pipeline")
	o, err := ParseArgs(fs, []string{"--config", p})
	require.NoError(t, err)
	assert.Equal(t, "raw.tsv.gz", o.InTSV)
	assert.Equal(t, "gnomad.tsv.gz", o.ConstraintTSV)
	assert.Equal(t, "results", o.OutDir)
	assert.Equal(t, "stop_gained", o.KeepConsequence)
	assert.True(t, o.MANEOnly)
	assert.Equal(t, merge.KeyTranscript, o.On)
	assert.Equal(t, merge.HowInner, o.How)
	assert.Equal(t, "gnomad-v4.1", o.ConstraintVersion)
	assert.True(t, o.GzipOut)
	assert.Equal(t, 10, o.Head)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	p := writeYAML(t, `
in_tsv: raw.tsv.gz
constraint_tsv: gnomad.tsv.gz
out_dir: results
on: transcript
`)
	fs := NewFlagSet("vep-pipeline")
	o, err := ParseArgs(fs, []string{"--config", p, "--out-dir", "rerun", "--on", "gene_symbol"})
	require.NoError(t, err)
	assert.Equal(t, "rerun", o.OutDir)
	assert.Equal(t, merge.KeyGene, o.On)
	assert.Equal(t, "raw.tsv.gz", o.InTSV)
}

func TestConfigFileRejectsUnknownKeys(t *testing.T) {
	p := writeYAML(t, `
in_tsv: raw.tsv.gz
constraint_tsv: gnomad.tsv.gz
typo_key: oops
`)
	fs := NewFlagSet("vep-pipeline")
	_, err := ParseArgs(fs, []string{"--config", p})
	require.Error(t, err)
}

func TestConfigFileBadJoinKey(t *testing.T) {
	p := writeYAML(t, `
in_tsv: raw.tsv.gz
constraint_tsv: gnomad.tsv.gz
on: chromosome
`)
	fs := NewFlagSet("vep-pipeline")
	_, err := ParseArgs(fs, []string{"--config", p})
	require.Error(t, err)
}
