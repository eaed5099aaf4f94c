// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"veptab/internal/filterapp"
	"veptab/internal/mergeapp"
	"veptab/internal/normaliseapp"
	"veptab/internal/overviewapp"
	"veptab/internal/pipelineapp"
)

const rawTSV = "variant_id\tConsequence\tSYMBOL\tFeature\tMANE_SELECT\n" +
	"v1\tmissense_variant\tbrca1\tENST001\tNM_0001\n" +
	"v2\tsynonymous_variant\tTP53\tENST002\t\n" +
	"v3\tstop_gained&splice_region_variant\ttp53\tENST003\tNM_0002\n"

const constraintTSV = "gene\tlof_oe\tmis_z\n" +
	"BRCA1\t0.12\t3.1\n" +
	"TP53\t0.08\t4.4\n"

func write(t *testing.T, dir, fn, data string) string {
	t.Helper()
	p := filepath.Join(dir, fn)
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestToolChainEndToEnd(t *testing.T) {
	dir := t.TempDir()
	raw := write(t, dir, "raw.tsv", rawTSV)
	constraint := write(t, dir, "constraint.tsv", constraintTSV)

	filtered := filepath.Join(dir, "filtered.tsv")
	normalised := filepath.Join(dir, "normalised.tsv")
	merged := filepath.Join(dir, "merged.tsv.gz")

	var out, errBuf bytes.Buffer
	run := func(name string, app func([]string, io.Writer, io.Writer) int, argv []string) {
		t.Helper()
		out.Reset()
		errBuf.Reset()
		if code := app(argv, &out, &errBuf); code != 0 {
			t.Fatalf("%s exit %d, stderr=%s", name, code, errBuf.String())
		}
	}

	run("vep-filter", filterapp.Run, []string{
		"--in-tsv", raw,
		"--out-tsv", filtered,
		"--keep-consequence", "missense_variant,stop_gained",
		"--quiet",
	})
	run("vep-normalise", normaliseapp.Run, []string{
		"-i", filtered,
		"-o", normalised,
		"--vep-cache-version", "110",
		"--quiet",
	})
	run("vep-merge", mergeapp.Run, []string{
		"-i", normalised,
		"-c", constraint,
		"-o", merged,
		"--on", "gene_symbol",
		"--constraint-version", "gnomad-v4.1",
		"--quiet",
	})
	run("vep-overview", overviewapp.Run, []string{
		"-i", merged,
		"--output", "json",
		"--quiet",
	})

	report := out.String()
	for _, want := range []string{`"rows": 2`, "constraint_lof_oe", "Gene_symbol"} {
		if !strings.Contains(report, want) {
			t.Fatalf("overview JSON missing %q:\n%s", want, report)
		}
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	raw := write(t, dir, "raw.tsv", rawTSV)
	constraint := write(t, dir, "constraint.tsv", constraintTSV)
	outDir := filepath.Join(dir, "results")

	var out, errBuf bytes.Buffer
	code := pipelineapp.Run([]string{
		"-i", raw,
		"-c", constraint,
		"-o", outDir,
		"--keep-consequence", "missense_variant,stop_gained",
		"--constraint-version", "gnomad-v4.1",
		"--quiet",
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("vep-pipeline exit %d, stderr=%s", code, errBuf.String())
	}

	for _, fn := range []string{"filtered.tsv", "normalised.tsv", "merged.tsv"} {
		if _, err := os.Stat(filepath.Join(outDir, fn)); err != nil {
			t.Fatalf("missing stage output %s: %v", fn, err)
		}
	}
	if !strings.Contains(out.String(), "rows") {
		t.Fatalf("expected an overview report on stdout, got:\n%s", out.String())
	}
}

func TestMergeStatsJSON(t *testing.T) {
	dir := t.TempDir()
	left := write(t, dir, "normalised.tsv",
		"variant_id\tGene_symbol\tTranscript\n"+
			"v1\tBRCA1\tENST001\n"+
			"v2\tNOPE\tENST002\n")
	constraint := write(t, dir, "constraint.tsv", constraintTSV)
	stats := filepath.Join(dir, "overlap.json")

	var out, errBuf bytes.Buffer
	code := mergeapp.Run([]string{
		"-i", left,
		"-c", constraint,
		"-o", filepath.Join(dir, "merged.tsv"),
		"--stats-json", stats,
		"--quiet",
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("merge exit %d, stderr=%s", code, errBuf.String())
	}

	raw, err := os.ReadFile(stats)
	if err != nil {
		t.Fatalf("read stats: %v", err)
	}
	for _, want := range []string{`"left_rows":2`, `"matched_left_rows":1`, `"match_rate":0.5`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("stats JSON missing %q:\n%s", want, raw)
		}
	}
}

func TestMissingInputIsUsageError(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := filterapp.Run([]string{
		"--in-tsv", filepath.Join(t.TempDir(), "nope.tsv"),
		"--out-tsv", "-",
	}, &out, &errBuf)
	if code != 2 {
		t.Fatalf("expected exit 2 for a missing input, got %d", code)
	}
	if errBuf.Len() == 0 {
		t.Fatal("expected a diagnostic on stderr")
	}
}

func TestGzipInputRoundTrip(t *testing.T) {
	dir := t.TempDir()
	raw := write(t, dir, "raw.tsv", rawTSV)

	gz := filepath.Join(dir, "filtered.tsv.gz")
	var out, errBuf bytes.Buffer
	if code := filterapp.Run([]string{
		"-i", raw, "-o", gz,
		"--keep-consequence", "missense_variant,stop_gained",
		"--quiet",
	}, &out, &errBuf); code != 0 {
		t.Fatalf("filter exit %d, stderr=%s", code, errBuf.String())
	}

	out.Reset()
	errBuf.Reset()
	if code := overviewapp.Run([]string{"-i", gz, "--quiet"}, &out, &errBuf); code != 0 {
		t.Fatalf("overview exit %d, stderr=%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "rows") {
		t.Fatalf("expected a text report, got:\n%s", out.String())
	}
}
