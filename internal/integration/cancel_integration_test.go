package integration

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"veptab/internal/pipelineapp"
)

func TestCancelledRunExits130(t *testing.T) {
	dir := t.TempDir()
	raw := write(t, dir, "raw.tsv", rawTSV)
	constraint := write(t, dir, "constraint.tsv", constraintTSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := pipelineapp.RunContext(ctx, []string{
		"-i", raw,
		"-c", constraint,
		"-o", filepath.Join(dir, "results"),
		"--quiet",
	}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
