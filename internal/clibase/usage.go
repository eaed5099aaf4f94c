// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"veptab/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs. extra prints the
// tool-specific sections (usage line, tool flags); the shared I/O and
// miscellaneous blocks follow it.
func UsageCommon(fs *flag.FlagSet, name, oneLiner string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – %s\n", name, oneLiner)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nI/O:")
		fmt.Fprintln(out, "  -i, --in-tsv file          Input TSV (.tsv or .tsv.gz), '-' for STDIN")
		if fs.Lookup("out-tsv") != nil {
			fmt.Fprintln(out, "  -o, --out-tsv file         Output TSV (.tsv or .tsv.gz), '-' for STDOUT")
		}

		fmt.Fprintln(out, "\nMiscellaneous:")
		if fs.Lookup("validate") != nil {
			fmt.Fprintf(out, "      --validate             Check tables against reference schemas (advisory) [%s]\n", def("validate"))
		}
		fmt.Fprintf(out, "      --log-json             Emit diagnostics as JSON lines [%s]\n", def("log-json"))
		fmt.Fprintf(out, "  -q, --quiet                Suppress non-essential diagnostics [%s]\n", def("quiet"))
		fmt.Fprintln(out, "      --examples             Show quickstart examples and exit")
		fmt.Fprintln(out, "  -v, --version              Print version and exit")
		fmt.Fprintln(out, "  -h, --help                 Show this help and exit")
	}
}
