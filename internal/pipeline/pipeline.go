// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"

	"veptab-core/filter"
	"veptab-core/merge"
	"veptab-core/normalise"
	"veptab-core/overview"
	"veptab-core/tsv"
	"veptab/internal/report"
	"veptab/pkg/api"
)

// Config controls the one-shot filter → normalise → merge → overview run.
type Config struct {
	InTSV         string
	ConstraintTSV string
	OutDir        string
	GzipOut       bool
	SkipOverview  bool
	Head          int

	Filter    filter.Options
	Normalise normalise.Options
	Merge     merge.Options
}

// StageResult records one completed stage for diagnostics.
type StageResult struct {
	Name    string
	OutPath string
	Rows    int
	Elapsed time.Duration
}

// WriteError marks a failure to persist a stage output, as opposed to a
// bad input or option.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return "write " + e.Path + ": " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

// StagePath names a stage output file inside OutDir.
func (c Config) StagePath(name string) string {
	ext := ".tsv"
	if c.GzipOut {
		ext = ".tsv.gz"
	}
	return filepath.Join(c.OutDir, name+ext)
}

// Run executes the fixed four-stage sequence in process, writing each
// stage's table before the next stage starts. The first error aborts the
// run; outputs of completed stages stay on disk, each independently
// inspectable and re-runnable. There is no rollback and no retry.
func Run(ctx context.Context, cfg Config, log *charmlog.Logger) ([]StageResult, *api.OverviewV1, error) {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, nil, &WriteError{Path: cfg.OutDir, Err: err}
	}

	var results []StageResult
	record := func(name, path string, rows int, t0 time.Time) {
		r := StageResult{Name: name, OutPath: path, Rows: rows, Elapsed: time.Since(t0)}
		results = append(results, r)
		log.Info("stage complete", "stage", r.Name, "out", r.OutPath, "rows", r.Rows,
			"elapsed", r.Elapsed.Round(time.Millisecond))
	}

	// 1) Filter
	t0 := time.Now()
	raw, err := tsv.ReadPath(cfg.InTSV)
	if err != nil {
		return results, nil, err
	}
	filtered, fst, err := filter.Apply(raw, cfg.Filter)
	if err != nil {
		return results, nil, err
	}
	if fst.Out == 0 {
		log.Warn("no rows passed the filter", "in", fst.In)
	}
	filteredPath := cfg.StagePath("filtered")
	if err := filtered.WritePath(filteredPath); err != nil {
		return results, nil, &WriteError{Path: filteredPath, Err: err}
	}
	record("filter", filteredPath, fst.Out, t0)
	if err := ctx.Err(); err != nil {
		return results, nil, err
	}

	// 2) Normalise
	t0 = time.Now()
	normalised, err := normalise.Apply(filtered, cfg.Normalise)
	if err != nil {
		return results, nil, err
	}
	normalisedPath := cfg.StagePath("normalised")
	if err := normalised.WritePath(normalisedPath); err != nil {
		return results, nil, &WriteError{Path: normalisedPath, Err: err}
	}
	record("normalise", normalisedPath, len(normalised.Rows), t0)
	if err := ctx.Err(); err != nil {
		return results, nil, err
	}

	// 3) Merge
	t0 = time.Now()
	constraint, err := tsv.ReadPath(cfg.ConstraintTSV)
	if err != nil {
		return results, nil, err
	}
	merged, ov, err := merge.Apply(normalised, constraint, cfg.Merge)
	if err != nil {
		return results, nil, err
	}
	log.Info("merge overlap",
		"left", ov.Left, "right", ov.Right,
		"matched", ov.MatchedLeft, "output", ov.OutputRows,
		"rate", fmt.Sprintf("%.3f", ov.Rate()))
	mergedPath := cfg.StagePath("merged")
	if err := merged.WritePath(mergedPath); err != nil {
		return results, nil, &WriteError{Path: mergedPath, Err: err}
	}
	record("merge", mergedPath, ov.OutputRows, t0)
	if err := ctx.Err(); err != nil {
		return results, nil, err
	}

	// 4) Overview (optional)
	if cfg.SkipOverview {
		return results, nil, nil
	}
	t0 = time.Now()
	summary := report.Build(mergedPath, merged, overview.Summarize(merged, cfg.Head), cfg.Head)
	record("overview", "", summary.Rows, t0)
	return results, &summary, nil
}
