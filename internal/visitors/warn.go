package visitors

import (
	"io"

	"coilscan-core/coils"

	"coilscan/internal/cmdutil"
)

// Warn forwards every result and echoes its warnings to Err (unless Quiet).
type Warn struct {
	Err   io.Writer
	Quiet bool
}

func (v Warn) Visit(r coils.Result) (bool, coils.Result, error) {
	for _, w := range r.Warnings {
		cmdutil.Warnf(v.Err, v.Quiet, "%s", w.String())
	}
	return true, r, nil
}
