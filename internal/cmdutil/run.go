// internal/cmdutil/run.go
package cmdutil

import (
	"context"

	"coilscan/internal/pipeline"

	"coilscan-core/coils"
	"coilscan-core/hmm"
)

// RunStream runs the shared pipeline, applies a visitor, and streams results
// via send. It returns the number of kept outputs and the first error
// encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	seqFiles []string,
	par *hmm.Params,
	opts coils.Options,
	visit func(coils.Result) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachResult(ctx, cfg, seqFiles, par, opts, func(r coils.Result) error {
		keep, out, vErr := visit(r)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
