// internal/filtercli/options.go
package filtercli

import (
	"flag"
	"fmt"
	"io"

	"veptab/internal/clibase"
	"veptab/internal/cliutil"
	"veptab/internal/config"
)

// Options holds all vep-filter flags.
type Options struct {
	clibase.Common

	KeepConsequence   string
	MANEOnly          bool
	CanonicalOnly     bool
	ConsequenceColumn string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "filter VEP rows by consequence, MANE and canonical flags", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s -i raw.tsv.gz -o filtered.tsv -c stop_gained --mane-only\n", name)

		_, _ = fmt.Fprintln(out, "\nFilter:")
		_, _ = fmt.Fprintf(out, "  -c, --keep-consequence s   Comma-separated consequences to keep [%s]\n", def("keep-consequence"))
		_, _ = fmt.Fprintf(out, "      --mane-only            Keep only MANE-select transcripts [%s]\n", def("mane-only"))
		_, _ = fmt.Fprintf(out, "      --canonical-only       Keep only canonical transcripts [%s]\n", def("canonical-only"))
		_, _ = fmt.Fprintf(out, "      --consequence-column s Column holding &-delimited terms [%s]\n", def("consequence-column"))
	})
	return fs
}

// PrintExamples prints a tiny, focused quickstart for vep-filter.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "vep-filter", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Keep missense and stop-gained rows on MANE transcripts:")
		_, _ = fmt.Fprintln(w, "  vep-filter \\")
		_, _ = fmt.Fprintln(w, "    --in-tsv annotations.tsv.gz \\")
		_, _ = fmt.Fprintln(w, "    --out-tsv filtered.tsv \\")
		_, _ = fmt.Fprintln(w, "    --keep-consequence missense_variant,stop_gained \\")
		_, _ = fmt.Fprintln(w, "    --mane-only")
	})
}

// ParseArgs registers and parses all flags, returning an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool
	env := config.FromEnv()

	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.KeepConsequence, "keep-consequence", env.KeepConsequence, "comma-separated consequences to keep")
	fs.StringVar(&o.KeepConsequence, "c", env.KeepConsequence, "alias of --keep-consequence")
	fs.BoolVar(&o.MANEOnly, "mane-only", false, "keep only MANE-select transcripts [false]")
	fs.BoolVar(&o.CanonicalOnly, "canonical-only", false, "keep only canonical transcripts [false]")
	fs.StringVar(&o.ConsequenceColumn, "consequence-column", "", "column holding &-delimited consequence terms [Consequence]")

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
	return o, nil
}
