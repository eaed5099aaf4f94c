// internal/mergecli/options.go
package mergecli

import (
	"flag"
	"fmt"
	"io"

	"veptab-core/merge"
	"veptab/internal/clibase"
	"veptab/internal/cliutil"
)

// Options holds all vep-merge flags.
type Options struct {
	clibase.Common

	ConstraintTSV     string
	On                merge.Key
	How               merge.How
	ConstraintVersion string
	StatsJSON         string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "join gnomAD constraint metrics onto normalised annotations", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s -i normalised.tsv -c constraint.tsv.gz -o merged.tsv --on transcript --how left\n", name)

		_, _ = fmt.Fprintln(out, "\nMerge:")
		_, _ = fmt.Fprintln(out, "  -c, --constraint-tsv file  gnomAD constraint TSV (.tsv or .tsv.gz) [required]")
		_, _ = fmt.Fprintf(out, "      --on key               Join key: gene_symbol | transcript [%s]\n", def("on"))
		_, _ = fmt.Fprintf(out, "      --how mode             Join mode: left | inner [%s]\n", def("how"))
		_, _ = fmt.Fprintln(out, "      --constraint-version s Tag rows with a constraint_version column")
		_, _ = fmt.Fprintln(out, "      --stats-json file      Write overlap stats as JSON, '-' for STDOUT")
	})
	return fs
}

// PrintExamples prints a tiny, focused quickstart for vep-merge.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "vep-merge", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Left-join constraint metrics by transcript:")
		_, _ = fmt.Fprintln(w, "  vep-merge \\")
		_, _ = fmt.Fprintln(w, "    --in-tsv normalised.tsv \\")
		_, _ = fmt.Fprintln(w, "    --constraint-tsv gnomad.constraint.tsv.gz \\")
		_, _ = fmt.Fprintln(w, "    --out-tsv merged.tsv \\")
		_, _ = fmt.Fprintln(w, "    --on transcript --how left --constraint-version gnomad-v4.1")
	})
}

// ParseArgs registers and parses all flags, returning an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool
	var on, how string

	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.ConstraintTSV, "constraint-tsv", "", "gnomAD constraint TSV (.tsv or .tsv.gz) [required]")
	fs.StringVar(&o.ConstraintTSV, "c", "", "alias of --constraint-tsv")
	fs.StringVar(&on, "on", "gene_symbol", "join key: gene_symbol | transcript")
	fs.StringVar(&how, "how", "left", "join mode: left | inner")
	fs.StringVar(&o.ConstraintVersion, "constraint-version", "", "provenance tag (e.g. gnomad-v4.1)")
	fs.StringVar(&o.StatsJSON, "stats-json", "", "write overlap stats as JSON to this file, '-' for STDOUT")

	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}

	if err := clibase.AfterParse(&o.Common, posArgs, true); err != nil {
		return o, err
	}
	if o.ConstraintTSV == "" {
		return o, fmt.Errorf("--constraint-tsv is required")
	}
	var err error
	if o.On, err = merge.ParseKey(on); err != nil {
		return o, err
	}
	if o.How, err = merge.ParseHow(how); err != nil {
		return o, err
	}
	return o, nil
}
