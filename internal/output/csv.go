// internal/output/csv.go
package output

import (
	"fmt"
	"io"

	"coilscan-core/coils"
)

// WriteCSVRows emits one row per called domain, matching the downstream
// analysis tooling's column set. Sequences with no domains contribute no
// rows. Commas in sequence names are replaced so the row stays parseable.
func WriteCSVRows(w io.Writer, r coils.Result) error {
	name := sanitizeCSV(r.ID)
	for _, tier := range r.Tiers {
		for i, d := range tier.Domains {
			if _, err := fmt.Fprintf(w, "%s,%g,%d,%d,%d,%d,%.1f\n",
				name, tier.Threshold, i+1, d.Start+1, d.End, d.Len(), d.Max); err != nil {
				return err
			}
		}
	}
	return nil
}

func sanitizeCSV(s string) string {
	out := []byte(s)
	changed := false
	for i, c := range out {
		if c == ',' || c == '\n' || c == '\r' {
			out[i] = '_'
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(out)
}
