// internal/overviewapp/app.go
package overviewapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"veptab-core/overview"
	"veptab-core/tsv"
	"veptab/internal/clibase"
	"veptab/internal/cmdutil"
	"veptab/internal/logutil"
	"veptab/internal/overviewcli"
	"veptab/internal/report"
	"veptab/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriterSize(stdout, 64<<10)

	fs := overviewcli.NewFlagSet("vep-overview")
	fs.SetOutput(io.Discard)
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := overviewcli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			overviewcli.PrintExamples(outw)
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
		fmt.Fprintf(outw, "vep-overview version %s\n", version.Version)
		return cmdutil.Flush(outw, stderr, 0)
	}

	log := logutil.New(stderr, logutil.Options{Quiet: opts.Quiet, JSON: opts.LogJSON})

	tbl, err := tsv.ReadPath(opts.InTSV)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log.Info("read input", "path", opts.InTSV, "rows", len(tbl.Rows))

	ov := report.Build(opts.InTSV, tbl, overview.Summarize(tbl, opts.Head), opts.Head)
	if parent.Err() != nil {
		return 130
	}
	if ov.UnknownGeneRows > 0 {
		log.Warn("rows with unknown gene symbol", "count", ov.UnknownGeneRows)
	}

	switch opts.Output {
	case overviewcli.FormatJSON:
		err = report.WriteJSON(outw, ov)
	default:
		err = report.WriteText(outw, ov)
	}
	if err != nil && !cmdutil.IsBrokenPipe(err) {
		fmt.Fprintln(stderr, err)
		return 3
	}
	return cmdutil.Flush(outw, stderr, 0)
}
