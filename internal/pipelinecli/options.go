// internal/pipelinecli/options.go
package pipelinecli

import (
	"flag"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v2"

	"veptab-core/merge"
	"veptab/internal/clibase"
	"veptab/internal/cliutil"
	"veptab/internal/config"
)

// Options holds all vep-pipeline flags. The pipeline writes a directory of
// stage files rather than a single table, so it carries its own I/O fields
// instead of embedding clibase.Common.
type Options struct {
	InTSV         string
	ConstraintTSV string
	OutDir        string
	ConfigFile    string

	KeepConsequence string
	MANEOnly        bool
	CanonicalOnly   bool

	GeneColumn      string
	TranscriptMap   string
	VEPCacheVersion string
	PluginsVersion  string

	On                merge.Key
	How               merge.How
	ConstraintVersion string

	GzipOut      bool
	SkipOverview bool
	Head         int

	Quiet   bool
	LogJSON bool
	Version bool
}

// FileConfig mirrors the YAML run file. Every field is optional; flags
// given on the command line win over the file.
type FileConfig struct {
	InTSV         string `yaml:"in_tsv"`
	ConstraintTSV string `yaml:"constraint_tsv"`
	OutDir        string `yaml:"out_dir"`

	KeepConsequence string `yaml:"keep_consequence"`
	MANEOnly        *bool  `yaml:"mane_only"`
	CanonicalOnly   *bool  `yaml:"canonical_only"`

	GeneColumn      string `yaml:"gene_column"`
	TranscriptMap   string `yaml:"transcript_map"`
	VEPCacheVersion string `yaml:"vep_cache_version"`
	PluginsVersion  string `yaml:"plugins_version"`

	On                string `yaml:"on"`
	How               string `yaml:"how"`
	ConstraintVersion string `yaml:"constraint_version"`

	GzipOut      *bool `yaml:"gzip_out"`
	SkipOverview *bool `yaml:"skip_overview"`
	Head         *int  `yaml:"head"`
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "run filter, normalise, merge and overview as one job", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s -i raw.tsv.gz -c constraint.tsv.gz -o results/\n", name)
		_, _ = fmt.Fprintf(out, "  %s --config run.yaml\n", name)

		_, _ = fmt.Fprintln(out, "\nPipeline:")
		_, _ = fmt.Fprintln(out, "  -c, --constraint-tsv file  gnomAD constraint TSV (.tsv or .tsv.gz) [required]")
		_, _ = fmt.Fprintf(out, "  -o, --out-dir dir          Directory for stage outputs [%s]\n", def("out-dir"))
		_, _ = fmt.Fprintln(out, "      --config file          YAML run file; flags override its values")
		_, _ = fmt.Fprintf(out, "      --gzip-out             Write stage files as .tsv.gz [%s]\n", def("gzip-out"))
		_, _ = fmt.Fprintf(out, "      --skip-overview        Stop after the merge stage [%s]\n", def("skip-overview"))
		_, _ = fmt.Fprintf(out, "      --head n               Distinct-value sample size in the overview [%s]\n", def("head"))

		_, _ = fmt.Fprintln(out, "\nFilter:")
		_, _ = fmt.Fprintf(out, "      --keep-consequence s   Comma-separated consequences to keep [%s]\n", def("keep-consequence"))
		_, _ = fmt.Fprintf(out, "      --mane-only            Keep only MANE-select transcripts [%s]\n", def("mane-only"))
		_, _ = fmt.Fprintf(out, "      --canonical-only       Keep only canonical transcripts [%s]\n", def("canonical-only"))

		_, _ = fmt.Fprintln(out, "\nNormalise:")
		_, _ = fmt.Fprintln(out, "      --gene-column s        Take gene symbols from this column instead")
		_, _ = fmt.Fprintln(out, "      --transcript-map file  Two-column transcript-to-gene TSV for backfill")
		_, _ = fmt.Fprintln(out, "      --vep-cache-version s  Stamp rows with a vep_cache_version column")
		_, _ = fmt.Fprintln(out, "      --plugins-version s    Stamp rows with a plugins_version column")

		_, _ = fmt.Fprintln(out, "\nMerge:")
		_, _ = fmt.Fprintf(out, "      --on key               Join key: gene_symbol | transcript [%s]\n", def("on"))
		_, _ = fmt.Fprintf(out, "      --how mode             Join mode: left | inner [%s]\n", def("how"))
		_, _ = fmt.Fprintln(out, "      --constraint-version s Tag rows with a constraint_version column")
	})
	return fs
}

// PrintExamples prints a tiny, focused quickstart for vep-pipeline.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "vep-pipeline", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Full run from raw VEP output to an overview report:")
		_, _ = fmt.Fprintln(w, "  vep-pipeline \\")
		_, _ = fmt.Fprintln(w, "    --in-tsv annotations.tsv.gz \\")
		_, _ = fmt.Fprintln(w, "    --constraint-tsv gnomad.constraint.tsv.gz \\")
		_, _ = fmt.Fprintln(w, "    --out-dir results \\")
		_, _ = fmt.Fprintln(w, "    --keep-consequence missense_variant,stop_gained \\")
		_, _ = fmt.Fprintln(w, "    --on transcript --constraint-version gnomad-v4.1")
		_, _ = fmt.Fprintln(w, "")
		_, _ = fmt.Fprintln(w, "Same run driven by a YAML file, overriding one value:")
		_, _ = fmt.Fprintln(w, "  vep-pipeline --config run.yaml --out-dir rerun")
	})
}

// ParseArgs registers and parses all flags, returning an Options struct.
// When --config names a YAML file, its values fill in any flag the
// command line left at its default.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, showExamples bool
	var on, how string
	env := config.FromEnv()

	fs.StringVar(&o.InTSV, "in-tsv", "", "input TSV (.tsv or .tsv.gz), '-' for STDIN")
	fs.StringVar(&o.InTSV, "i", "", "alias of --in-tsv")
	fs.StringVar(&o.ConstraintTSV, "constraint-tsv", "", "gnomAD constraint TSV (.tsv or .tsv.gz) [required]")
	fs.StringVar(&o.ConstraintTSV, "c", "", "alias of --constraint-tsv")
	fs.StringVar(&o.OutDir, "out-dir", "out", "directory for stage outputs")
	fs.StringVar(&o.OutDir, "o", "out", "alias of --out-dir")
	fs.StringVar(&o.ConfigFile, "config", "", "YAML run file; flags override its values")

	fs.StringVar(&o.KeepConsequence, "keep-consequence", env.KeepConsequence, "comma-separated consequences to keep")
	fs.BoolVar(&o.MANEOnly, "mane-only", false, "keep only MANE-select transcripts [false]")
	fs.BoolVar(&o.CanonicalOnly, "canonical-only", false, "keep only canonical transcripts [false]")

	fs.StringVar(&o.GeneColumn, "gene-column", "", "take gene symbols from this column instead of the priority list")
	fs.StringVar(&o.TranscriptMap, "transcript-map", "", "two-column transcript-to-gene TSV for backfill")
	fs.StringVar(&o.VEPCacheVersion, "vep-cache-version", "", "provenance tag (e.g. 110)")
	fs.StringVar(&o.PluginsVersion, "plugins-version", "", "provenance tag (e.g. 2024-02)")

	fs.StringVar(&on, "on", "gene_symbol", "join key: gene_symbol | transcript")
	fs.StringVar(&how, "how", "left", "join mode: left | inner")
	fs.StringVar(&o.ConstraintVersion, "constraint-version", "", "provenance tag (e.g. gnomad-v4.1)")

	fs.BoolVar(&o.GzipOut, "gzip-out", env.GzipOut, "write stage files as .tsv.gz")
	fs.BoolVar(&o.SkipOverview, "skip-overview", false, "stop after the merge stage [false]")
	fs.IntVar(&o.Head, "head", env.OverviewHead, "distinct-value sample size in the overview")

	fs.BoolVar(&o.Quiet, "quiet", false, "suppress non-essential diagnostics [false]")
	fs.BoolVar(&o.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&o.LogJSON, "log-json", false, "emit diagnostics as JSON lines [false]")
	fs.BoolVar(&o.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&o.Version, "version", false, "print version and exit [false]")

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

	if o.ConfigFile != "" {
		if err := applyFile(fs, &o, &on, &how); err != nil {
			return o, err
		}
	}

	pos, err := cliutil.PickInput(posArgs)
	if err != nil {
		return o, err
	}
	if pos != "" {
		if o.InTSV != "" {
			return o, fmt.Errorf("input given both via --in-tsv and positionally")
		}
		o.InTSV = pos
	}
	if o.InTSV == "" {
		return o, fmt.Errorf("--in-tsv is required")
	}
	if o.ConstraintTSV == "" {
		return o, fmt.Errorf("--constraint-tsv is required")
	}
	if o.Head < 1 {
		return o, fmt.Errorf("--head must be positive, got %d", o.Head)
	}
	if o.On, err = merge.ParseKey(on); err != nil {
		return o, err
	}
	if o.How, err = merge.ParseHow(how); err != nil {
		return o, err
	}
	return o, nil
}

// applyFile folds YAML values into o for every flag the command line did
// not set explicitly.
func applyFile(fs *flag.FlagSet, o *Options, on, how *string) error {
	raw, err := os.ReadFile(o.ConfigFile)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc FileConfig
	if err := yaml.UnmarshalStrict(raw, &fc); err != nil {
		return fmt.Errorf("%s: %w", o.ConfigFile, err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	setStr := func(names []string, dst *string, v string) {
		if v == "" {
			return
		}
		for _, n := range names {
			if set[n] {
				return
			}
		}
		*dst = v
	}
	setBool := func(names []string, dst *bool, v *bool) {
		if v == nil {
			return
		}
		for _, n := range names {
			if set[n] {
				return
			}
		}
		*dst = *v
	}

	setStr([]string{"in-tsv", "i"}, &o.InTSV, fc.InTSV)
	setStr([]string{"constraint-tsv", "c"}, &o.ConstraintTSV, fc.ConstraintTSV)
	setStr([]string{"out-dir", "o"}, &o.OutDir, fc.OutDir)
	setStr([]string{"keep-consequence"}, &o.KeepConsequence, fc.KeepConsequence)
	setBool([]string{"mane-only"}, &o.MANEOnly, fc.MANEOnly)
	setBool([]string{"canonical-only"}, &o.CanonicalOnly, fc.CanonicalOnly)
	setStr([]string{"gene-column"}, &o.GeneColumn, fc.GeneColumn)
	setStr([]string{"transcript-map"}, &o.TranscriptMap, fc.TranscriptMap)
	setStr([]string{"vep-cache-version"}, &o.VEPCacheVersion, fc.VEPCacheVersion)
	setStr([]string{"plugins-version"}, &o.PluginsVersion, fc.PluginsVersion)
	setStr([]string{"on"}, on, fc.On)
	setStr([]string{"how"}, how, fc.How)
	setStr([]string{"constraint-version"}, &o.ConstraintVersion, fc.ConstraintVersion)
	setBool([]string{"gzip-out"}, &o.GzipOut, fc.GzipOut)
	setBool([]string{"skip-overview"}, &o.SkipOverview, fc.SkipOverview)
	if fc.Head != nil && !set["head"] {
		o.Head = *fc.Head
	}
	return nil
}
