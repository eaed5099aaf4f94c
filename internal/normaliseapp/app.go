// internal/normaliseapp/app.go
package normaliseapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"veptab-core/normalise"
	"veptab-core/tsv"
	"veptab/internal/clibase"
	"veptab/internal/cmdutil"
	"veptab/internal/logutil"
	"veptab/internal/normalisecli"
	"veptab/internal/schema"
	"veptab/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriterSize(stdout, 64<<10)

	fs := normalisecli.NewFlagSet("vep-normalise")
	fs.SetOutput(io.Discard)
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := normalisecli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			normalisecli.PrintExamples(outw)
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
		fmt.Fprintf(outw, "vep-normalise version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, 0)
	}

	log := logutil.New(stderr, logutil.Options{Quiet: opts.Quiet, JSON: opts.LogJSON})

	var trMap map[string]string
	if opts.TranscriptMap != "" {
		trMap, err = normalise.LoadTranscriptMap(opts.TranscriptMap)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		log.Info("loaded transcript map", "path", opts.TranscriptMap, "entries", len(trMap))
	}

	tbl, err := tsv.ReadPath(opts.InTSV)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log.Info("read input", "path", opts.InTSV, "rows", len(tbl.Rows))

	out, err := normalise.Apply(tbl, normalise.Options{
		GeneColumn:       opts.GeneColumn,
		TranscriptToGene: trMap,
		VEPCacheVersion:  opts.VEPCacheVersion,
		PluginsVersion:   opts.PluginsVersion,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if parent.Err() != nil {
		return 130
	}

	if opts.Validate {
		if problems, perr := schema.Check(schema.AnnotationNormalised, out); perr != nil {
			log.Warn("schema check unavailable", "err", perr)
		} else {
			for _, p := range problems {
				log.Warn("schema mismatch", "schema", schema.AnnotationNormalised, "problem", p)
			}
		}
	}

	if err := out.WritePath(opts.OutTSV); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	log.Info("wrote output", "path", opts.OutTSV, "rows", len(out.Rows))
	return cmdutil.Flush(outw, stderr, 0)
}
