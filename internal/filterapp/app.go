// internal/filterapp/app.go
package filterapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"veptab-core/filter"
	"veptab-core/tsv"
	"veptab/internal/clibase"
	"veptab/internal/cmdutil"
	"veptab/internal/filtercli"
	"veptab/internal/logutil"
	"veptab/internal/schema"
	"veptab/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriterSize(stdout, 64<<10)

	fs := filtercli.NewFlagSet("vep-filter")
	fs.SetOutput(io.Discard)
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := filtercli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			filtercli.PrintExamples(outw)
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
		fmt.Fprintf(outw, "vep-filter version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, 0)
	}

	log := logutil.New(stderr, logutil.Options{Quiet: opts.Quiet, JSON: opts.LogJSON})

	tbl, err := tsv.ReadPath(opts.InTSV)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log.Info("read input", "path", opts.InTSV, "rows", len(tbl.Rows))

	if opts.Validate {
		if problems, perr := schema.Check(schema.VEPRaw, tbl); perr != nil {
			log.Warn("schema check unavailable", "err", perr)
		} else {
			for _, p := range problems {
				log.Warn("schema mismatch", "schema", schema.VEPRaw, "problem", p)
			}
		}
	}

	out, st, err := filter.Apply(tbl, filter.Options{
		Keep:              strings.Split(opts.KeepConsequence, ","),
		MANEOnly:          opts.MANEOnly,
		CanonicalOnly:     opts.CanonicalOnly,
		ConsequenceColumn: opts.ConsequenceColumn,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if parent.Err() != nil {
		return 130
	}

	log.Info("filtered", "kept", st.Out, "of", st.In,
		"after_consequence", st.AfterConsequence)
	if st.Out == 0 {
		log.Warn("no rows passed the filter; writing an empty table")
	}

	if err := out.WritePath(opts.OutTSV); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	log.Info("wrote output", "path", opts.OutTSV, "rows", st.Out)
	return cmdutil.Flush(outw, stderr, 0)
}
