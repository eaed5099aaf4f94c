// internal/pipelineapp/app.go
package pipelineapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"veptab-core/filter"
	"veptab-core/merge"
	"veptab-core/normalise"
	"veptab/internal/clibase"
	"veptab/internal/cmdutil"
	"veptab/internal/logutil"
	"veptab/internal/pipeline"
	"veptab/internal/pipelinecli"
	"veptab/internal/report"
	"veptab/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriterSize(stdout, 64<<10)

	fs := pipelinecli.NewFlagSet("vep-pipeline")
	fs.SetOutput(io.Discard)
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := pipelinecli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			pipelinecli.PrintExamples(outw)
			return cmdutil.Flush(outw, stderr, 0)
		}
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return cmdutil.Flush(outw, stderr, 0)
		}
		fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.Flush(outw, stderr, 2)
	}
	if opts.Version {
		fmt.Fprintf(outw, "vep-pipeline version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, 0)
	}

	log := logutil.New(stderr, logutil.Options{Quiet: opts.Quiet, JSON: opts.LogJSON})

	var transcriptMap map[string]string
	if opts.TranscriptMap != "" {
		transcriptMap, err = normalise.LoadTranscriptMap(opts.TranscriptMap)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		log.Info("loaded transcript map", "path", opts.TranscriptMap, "entries", len(transcriptMap))
	}

	cfg := pipeline.Config{
		InTSV:         opts.InTSV,
		ConstraintTSV: opts.ConstraintTSV,
		OutDir:        opts.OutDir,
		GzipOut:       opts.GzipOut,
		SkipOverview:  opts.SkipOverview,
		Head:          opts.Head,
		Filter: filter.Options{
			Keep:          strings.Split(opts.KeepConsequence, ","),
			MANEOnly:      opts.MANEOnly,
			CanonicalOnly: opts.CanonicalOnly,
		},
		Normalise: normalise.Options{
			GeneColumn:       opts.GeneColumn,
			TranscriptToGene: transcriptMap,
			VEPCacheVersion:  opts.VEPCacheVersion,
			PluginsVersion:   opts.PluginsVersion,
		},
		Merge: merge.Options{
			On:                opts.On,
			How:               opts.How,
			ConstraintVersion: opts.ConstraintVersion,
		},
	}

	results, ov, err := pipeline.Run(parent, cfg, log)
	if err != nil {
		if errors.Is(err, context.Canceled) || parent.Err() != nil {
			return 130
		}
		fmt.Fprintln(stderr, err)
		var werr *pipeline.WriteError
		if errors.As(err, &werr) {
			return 3
		}
		return 2
	}

	stages := make([]string, 0, len(results))
	for _, r := range results {
		if r.OutPath != "" {
			stages = append(stages, r.OutPath)
		}
	}
	log.Info("pipeline complete", "out_dir", opts.OutDir, "stages", strings.Join(stages, ", "))

	if ov != nil {
		if werr := report.WriteText(outw, *ov); werr != nil && !cmdutil.IsBrokenPipe(werr) {
			fmt.Fprintln(stderr, werr)
			return 3
		}
	}
	return cmdutil.Flush(outw, stderr, 0)
}
