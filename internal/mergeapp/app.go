// internal/mergeapp/app.go
package mergeapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"veptab-core/merge"
	"veptab-core/tsv"
	"veptab/internal/clibase"
	"veptab/internal/cmdutil"
	"veptab/internal/jsonutil"
	"veptab/internal/logutil"
	"veptab/internal/mergecli"
	"veptab/internal/schema"
	"veptab/internal/version"
	"veptab/pkg/api"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriterSize(stdout, 64<<10)

	fs := mergecli.NewFlagSet("vep-merge")
	fs.SetOutput(io.Discard)
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := mergecli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			mergecli.PrintExamples(outw)
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
		fmt.Fprintf(outw, "vep-merge version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, 0)
	}

	log := logutil.New(stderr, logutil.Options{Quiet: opts.Quiet, JSON: opts.LogJSON})

	left, err := tsv.ReadPath(opts.InTSV)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	right, err := tsv.ReadPath(opts.ConstraintTSV)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log.Info("read inputs",
		"annotation", opts.InTSV, "annotation_rows", len(left.Rows),
		"constraint", opts.ConstraintTSV, "constraint_rows", len(right.Rows))

	if opts.Validate {
		for _, check := range []struct {
			name schema.Name
			tbl  *tsv.Table
		}{
			{schema.AnnotationNormalised, left},
			{schema.GnomadConstraint, right},
		} {
			if problems, perr := schema.Check(check.name, check.tbl); perr != nil {
				log.Warn("schema check unavailable", "err", perr)
			} else {
				for _, p := range problems {
					log.Warn("schema mismatch", "schema", check.name, "problem", p)
				}
			}
		}
	}

	out, ov, err := merge.Apply(left, right, merge.Options{
		On:                opts.On,
		How:               opts.How,
		ConstraintVersion: opts.ConstraintVersion,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if parent.Err() != nil {
		return 130
	}

	// Overlap statistics are observational; they never gate success.
	log.Info("merge overlap",
		"on", opts.On, "how", opts.How,
		"left", ov.Left, "right", ov.Right,
		"matched", ov.MatchedLeft, "output", ov.OutputRows,
		"rate", fmt.Sprintf("%.3f", ov.Rate()))
	if ov.OutputRows == 0 {
		log.Warn("join produced zero rows; writing an empty table")
	}

	if err := out.WritePath(opts.OutTSV); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	log.Info("wrote output", "path", opts.OutTSV, "rows", ov.OutputRows)

	if opts.StatsJSON != "" {
		if err := writeStats(opts.StatsJSON, outw, ov); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}
	return cmdutil.Flush(outw, stderr, 0)
}

func writeStats(path string, stdout io.Writer, ov merge.Overlap) error {
	stats := api.OverlapV1{
		Left:        ov.Left,
		Right:       ov.Right,
		MatchedLeft: ov.MatchedLeft,
		OutputRows:  ov.OutputRows,
		MatchRate:   ov.Rate(),
	}
	if path == "-" {
		return jsonutil.EncodePretty(stdout, stats)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jsonutil.Encode(f, stats); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
