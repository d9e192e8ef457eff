// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"coilscan-core/alphabet"
	"coilscan-core/coils"
	"coilscan-core/fb"
	"coilscan-core/hmm"
	"coilscan-core/seqio"
)

// Config controls the batch pipeline.
type Config struct {
	Threads   int // worker goroutines (>=1)
	MaxSeqLen int // per-sequence residue cap enforced by each worker's workspace; 0 = unlimited
}

// ForEachResult streams per-sequence Results to visit. Records are read file
// by file and assigned a global batch index in read order. Each worker owns
// one reusable forward-backward workspace. Per-sequence problems (empty
// record, over the buffer cap) become warnings-only Results; only I/O and
// context errors abort the batch. The first error encountered is returned.
func ForEachResult(
	ctx context.Context,
	cfg Config,
	seqFiles []string,
	par *hmm.Params,
	opts coils.Options,
	visit func(coils.Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	jobs := make(chan seqio.Record, cfg.Threads*2)
	results := make(chan coils.Result, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			ws := fb.NewWorkspace(cfg.MaxSeqLen)
			for {
				select {
				case <-ctx.Done():
					return
				case rec, ok := <-jobs:
					if !ok {
						return
					}
					res := process(ws, rec, par, opts)
					select {
					case results <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for res := range results {
			if cerr != nil {
				continue
			}
			if err := visit(res); err != nil && cerr == nil {
				cerr = err
			}
		}
	}()

	// Feed work; cancellation only applies between records, never
	// mid-recursion.
	next := 0
feed:
	for _, fa := range seqFiles {
		rch, err := seqio.Records(ctx, fa)
		if err != nil {
			// Keep scanning other files; first error will be returned.
			if cerr == nil {
				cerr = err
			}
			continue
		}
		for rec := range rch {
			rec.Index = next
			next++
			select {
			case <-ctx.Done():
				break feed
			case jobs <- rec:
			}
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}

// process runs one record through encode -> forward-backward -> decode,
// downgrading engine rejections to warnings-only Results.
func process(ws *fb.Workspace, rec seqio.Record, par *hmm.Params, opts coils.Options) coils.Result {
	codes, _ := alphabet.Encode(rec.Seq)

	post, err := fb.ComputePosteriors(ws, codes, par)
	switch {
	case err == nil:
		return coils.Analyze(rec.Index, rec.ID, rec.Seq, codes, rec.Complete, post, par, opts)
	case len(codes) == 0:
		return coils.FailedResult(rec.Index, rec.ID, 0, rec.Complete,
			coils.WarnEmptySequence, "record has no residues")
	default:
		return coils.FailedResult(rec.Index, rec.ID, len(codes), rec.Complete,
			coils.WarnSequenceTooLong, fmt.Sprintf("engine rejected sequence: %v", err))
	}
}
