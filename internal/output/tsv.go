// internal/output/tsv.go
package output

import (
	"fmt"
	"io"

	"coilscan-core/coils"
)

// WriteTSVRows emits one row per called domain under TSVHeader.
func WriteTSVRows(w io.Writer, r coils.Result) error {
	for _, tier := range r.Tiers {
		for i, d := range tier.Domains {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%g\t%d\t%d\t%d\t%d\t%.1f\t%.1f\n",
				r.ID, r.Index, tier.Threshold, i+1, d.Start+1, d.End, d.Len(), d.Max, d.Mean); err != nil {
				return err
			}
		}
	}
	return nil
}
