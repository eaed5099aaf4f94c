// internal/clibase/common.go
package clibase

import (
	"flag"
	"fmt"

	"veptab/internal/cliutil"
)

// Common holds CLI fields shared by every veptab tool.
type Common struct {
	// I/O
	InTSV  string
	OutTSV string

	// Diagnostics
	Quiet    bool
	LogJSON  bool
	Validate bool

	// Misc
	Version bool
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.InTSV, "in-tsv", "", "input TSV (.tsv or .tsv.gz), '-' for STDIN")
	fs.StringVar(&c.InTSV, "i", "", "alias of --in-tsv")
	fs.StringVar(&c.OutTSV, "out-tsv", "", "output TSV (.tsv or .tsv.gz), '-' for STDOUT")
	fs.StringVar(&c.OutTSV, "o", "", "alias of --out-tsv")

	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential diagnostics [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.LogJSON, "log-json", false, "emit diagnostics as JSON lines [false]")
	fs.BoolVar(&c.Validate, "validate", false, "check tables against the reference schemas (advisory) [false]")

	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// AfterParse folds positionals into the input path and runs shared
// validation. needOut tools (everything except overview) must name an
// output file.
func AfterParse(c *Common, posArgs []string, needOut bool) error {
	pos, err := cliutil.PickInput(posArgs)
	if err != nil {
		return err
	}
	if pos != "" {
		if c.InTSV != "" {
			return fmt.Errorf("input given both via --in-tsv and positionally")
		}
		c.InTSV = pos
	}
	if c.InTSV == "" {
		return fmt.Errorf("--in-tsv is required")
	}
	if needOut && c.OutTSV == "" {
		return fmt.Errorf("--out-tsv is required")
	}
	return nil
}
