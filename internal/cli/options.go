// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"coilscan/internal/cliutil"
	"coilscan/internal/version"
)

// Run modes
const (
	ModeDomains = "domains"
	ModeProfile = "profile"
	ModeCheck   = "check"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	SeqFiles []string

	// Model
	TransFile string
	EmissFile string
	Variant   string
	ScoreMode bool // interpret matrices and thresholds as log-odds scores

	// Decoding
	Thresholds string
	ExtendFrac float64
	MinLength  int
	MaxGap     int
	MinSeqLen  int
	MaxSeqLen  int

	// Performance
	Threads int

	// Output
	Mode    string
	Output  string
	Profile bool
	Compact bool
	Sort    bool
	Header  bool // true unless --no-header
	Quiet   bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: coiled-coil domain prediction from protein sequences

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	var seq stringSlice
	fs.Var(&seq, "sequences", "FASTA file(s) (repeatable, '.gz' ok, or '-') [*]")

	// Model
	fs.StringVar(&opt.TransFile, "transitions", "", "transition matrix file (default: built-in)")
	fs.StringVar(&opt.EmissFile, "emissions", "", "emission matrix file (default: built-in)")
	fs.StringVar(&opt.Variant, "variant", "high", "built-in parameter set: high | low [high]")
	fs.BoolVar(&opt.ScoreMode, "score", false, "treat loaded matrices and thresholds as log-odds scores [false]")

	// Decoding
	fs.StringVar(&opt.Thresholds, "thresholds", "", "comma-separated core cutoffs (default 50,90,99 or 0.5,1,2 with --score)")
	fs.Float64Var(&opt.ExtendFrac, "extend-frac", 0.5, "extension cutoff as a fraction of each core cutoff (0,1] [0.5]")
	fs.IntVar(&opt.MinLength, "min-length", 9, "minimum domain length in residues [9]")
	fs.IntVar(&opt.MaxGap, "max-gap", 2, "bridge sub-threshold gaps up to this length [2]")
	fs.IntVar(&opt.MinSeqLen, "min-seq-len", 8, "warn on sequences shorter than this [8]")
	fs.IntVar(&opt.MaxSeqLen, "max-seq-len", 100000, "skip sequences longer than this with a warning (0 = unlimited) [100000]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Mode, "mode", ModeDomains, "run mode: domains | profile | check ["+ModeDomains+"]")
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json | jsonl | csv | tsv [text]")
	fs.BoolVar(&opt.Profile, "profile", false, "include the per-position probability list [false]")
	fs.BoolVar(&opt.Compact, "compact", false, "append a compact block view per sequence (text) [false]")
	fs.BoolVar(&opt.Sort, "sort", false, "sort outputs by input order for determinism [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in csv/tsv [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings on stderr [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	// positional args are extra sequence files; globs expand here
	exp, err := cliutil.ExpandPositionals(append(posArgs, fs.Args()...))
	if err != nil {
		return opt, err
	}
	opt.SeqFiles = append([]string(nil), seq...)
	opt.SeqFiles = append(opt.SeqFiles, exp...)
	opt.Header = !noHeader

	// Validation
	if (opt.TransFile == "") != (opt.EmissFile == "") {
		return opt, errors.New("--transitions and --emissions must be supplied together")
	}
	if opt.TransFile == "" && opt.Variant != "high" && opt.Variant != "low" {
		return opt, fmt.Errorf("invalid --variant %q", opt.Variant)
	}
	switch opt.Mode {
	case ModeDomains, ModeProfile, ModeCheck:
	default:
		return opt, fmt.Errorf("invalid --mode %q", opt.Mode)
	}
	if opt.Mode != ModeCheck && len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --sequences file is required")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.ExtendFrac <= 0 || opt.ExtendFrac > 1 {
		return opt, errors.New("--extend-frac must be in (0,1]")
	}
	if opt.MinLength < 1 {
		return opt, errors.New("--min-length must be ≥ 1")
	}
	if opt.MaxGap < 0 {
		return opt, errors.New("--max-gap must be ≥ 0")
	}
	if opt.MinSeqLen < 0 {
		return opt, errors.New("--min-seq-len must be ≥ 0")
	}
	if opt.MaxSeqLen < 0 {
		return opt, errors.New("--max-seq-len must be ≥ 0")
	}
	switch opt.Output {
	case "text", "json", "jsonl", "csv", "tsv":
	default:
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
