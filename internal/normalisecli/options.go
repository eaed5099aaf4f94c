// internal/normalisecli/options.go
package normalisecli

import (
	"flag"
	"fmt"
	"io"

	"veptab/internal/clibase"
	"veptab/internal/cliutil"
)

// Options holds all vep-normalise flags.
type Options struct {
	clibase.Common

	GeneColumn      string
	TranscriptMap   string // two-column TSV: transcript → gene
	VEPCacheVersion string
	PluginsVersion  string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "derive canonical Gene_symbol and Transcript columns", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s -i filtered.tsv -o normalised.tsv --vep-cache-version 109\n", name)

		_, _ = fmt.Fprintln(out, "\nNormalise:")
		_, _ = fmt.Fprintln(out, "      --gene-column s        Prefer this column for Gene_symbol")
		_, _ = fmt.Fprintln(out, "      --transcript-map file  TSV of transcript→gene backfill pairs")
		_, _ = fmt.Fprintln(out, "      --vep-cache-version s  Tag rows with a vep_cache_version column")
		_, _ = fmt.Fprintln(out, "      --plugins-version s    Tag rows with a plugins_version column")
	})
	return fs
}

// PrintExamples prints a tiny, focused quickstart for vep-normalise.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "vep-normalise", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Normalise gene/transcript columns and tag provenance:")
		_, _ = fmt.Fprintln(w, "  vep-normalise \\")
		_, _ = fmt.Fprintln(w, "    --in-tsv filtered.tsv \\")
		_, _ = fmt.Fprintln(w, "    --out-tsv normalised.tsv \\")
		_, _ = fmt.Fprintln(w, "    --vep-cache-version 109 --plugins-version v1.0")
	})
}

// ParseArgs registers and parses all flags, returning an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool

	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.GeneColumn, "gene-column", "", "explicit source column for Gene_symbol")
	fs.StringVar(&o.TranscriptMap, "transcript-map", "", "TSV of transcript→gene backfill pairs")
	fs.StringVar(&o.VEPCacheVersion, "vep-cache-version", "", "VEP cache version tag")
	fs.StringVar(&o.PluginsVersion, "plugins-version", "", "VEP plugins version tag")

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
