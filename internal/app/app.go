// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"coilscan-core/coils"
	"coilscan-core/hmm"

	"coilscan/internal/cli"
	"coilscan/internal/cmdutil"
	"coilscan/internal/pipeline"
	"coilscan/internal/runutil"
	"coilscan/internal/version"
	"coilscan/internal/visitors"
	"coilscan/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("coilscan")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "coilscan version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	par, err := buildParams(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	values := runutil.DefaultThresholds(par.MatrixType)
	if opts.Thresholds != "" {
		values, err = runutil.ParseThresholds(opts.Thresholds)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}
	tiers, warns, err := runutil.BuildTiers(values, opts.ExtendFrac)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if !opts.Quiet {
		for _, w := range warns {
			_, _ = fmt.Fprintln(stderr, w)
		}
	}

	if opts.Mode == cli.ModeCheck {
		writeCheck(outw, par, tiers)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	thr := opts.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	wopt := writers.Options{
		Sort:        opts.Sort,
		Header:      opts.Header,
		WithProfile: opts.Profile || opts.Mode == cli.ModeProfile,
		Compact:     opts.Compact,
	}
	inCh, writeErr := writers.StartResultWriter(outw, opts.Output, wopt, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	_, perr := cmdutil.RunStream[coils.Result](
		ctx,
		pipeline.Config{Threads: thr, MaxSeqLen: opts.MaxSeqLen},
		opts.SeqFiles,
		par,
		coils.Options{
			Tiers:     tiers,
			Segment:   coils.SegmentOptions{MinLen: opts.MinLength, MaxGap: opts.MaxGap},
			MinSeqLen: opts.MinSeqLen,
		},
		visitors.Warn{Err: stderr, Quiet: opts.Quiet}.Visit,
		func(r coils.Result) error {
			select {
			case inCh <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, perr)
		return 3
	}
	return 0
}

// buildParams resolves the model: explicit matrix files when given,
// otherwise a built-in variant.
func buildParams(opts cli.Options) (*hmm.Params, error) {
	mt := hmm.MatrixProb
	if opts.ScoreMode {
		mt = hmm.MatrixScore
	}
	if opts.TransFile != "" {
		return hmm.Load(opts.TransFile, opts.EmissFile, mt)
	}
	par, ok := hmm.DefaultVariant(opts.Variant)
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", opts.Variant)
	}
	if opts.ScoreMode {
		par.MatrixType = hmm.MatrixScore
	}
	return par, nil
}

// writeCheck prints a short model summary for --mode check. Reaching this
// point means Validate already passed.
func writeCheck(w io.Writer, par *hmm.Params, tiers []coils.Tier) {
	_, _ = fmt.Fprintf(w, "model: %s\n", par.Name)
	_, _ = fmt.Fprintf(w, "states: %d (background + %d heptad)\n", hmm.NumStates, hmm.NumCoilStates)
	mt := "probability"
	if par.MatrixType == hmm.MatrixScore {
		mt = "score"
	}
	_, _ = fmt.Fprintf(w, "matrix type: %s\n", mt)
	_, _ = fmt.Fprintf(w, "validation: ok\n")
	for _, t := range tiers {
		_, _ = fmt.Fprintf(w, "tier: core=%g ext=%g\n", t.Core, t.Ext)
	}
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
