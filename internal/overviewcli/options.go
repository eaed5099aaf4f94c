// internal/overviewcli/options.go
package overviewcli

import (
	"flag"
	"fmt"
	"io"

	"veptab/internal/clibase"
	"veptab/internal/cliutil"
	"veptab/internal/config"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options holds all vep-overview flags.
type Options struct {
	clibase.Common

	Head   int
	Output string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "shape, null-rate and key sanity checks for a TSV", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s -i merged.tsv --head 5 --output text\n", name)

		_, _ = fmt.Fprintln(out, "\nOverview:")
		_, _ = fmt.Fprintf(out, "      --head n               Distinct-value sample size per column [%s]\n", def("head"))
		_, _ = fmt.Fprintf(out, "      --output fmt           Report format: text | json [%s]\n", def("output"))
	})
	return fs
}

// PrintExamples prints a tiny, focused quickstart for vep-overview.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "vep-overview", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Summarise a merged table as JSON:")
		_, _ = fmt.Fprintln(w, "  vep-overview --in-tsv merged.tsv --output json")
	})
}

// ParseArgs registers and parses all flags, returning an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool
	env := config.FromEnv()

	clibase.Register(fs, &o.Common)

	fs.IntVar(&o.Head, "head", env.OverviewHead, "distinct-value sample size per column")
	fs.StringVar(&o.Output, "output", FormatText, "report format: text | json ["+FormatText+"]")

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

	if err := clibase.AfterParse(&o.Common, posArgs, false); err != nil {
		return o, err
	}
	if o.Output != FormatText && o.Output != FormatJSON {
		return o, fmt.Errorf("--output must be %q or %q, got %q", FormatText, FormatJSON, o.Output)
	}
	if o.Head < 1 {
		return o, fmt.Errorf("--head must be positive, got %d", o.Head)
	}
	return o, nil
}
