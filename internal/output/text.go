// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"coilscan-core/coils"
)

// Renderer produces an optional extra block per sequence (e.g. the compact
// profile). A nil Renderer emits nothing.
type Renderer func(coils.Result) string

// WriteText renders one sequence's domain report. Coordinates are 1-based
// inclusive. With withProfile, a per-position probability list follows the
// domain block; render, when non-nil, appends its block last.
func WriteText(w io.Writer, r coils.Result, withProfile bool, render Renderer) error {
	if _, err := fmt.Fprintf(w, ">%s ## %d aa\n", r.ID, r.Length); err != nil {
		return err
	}
	for _, warn := range r.Warnings {
		if _, err := fmt.Fprintf(w, "# warning[%s]: %s\n", warn.Code, warn.Detail); err != nil {
			return err
		}
	}
	if r.Failed() {
		_, err := fmt.Fprintln(w)
		return err
	}
	for _, tier := range r.Tiers {
		if _, err := fmt.Fprintf(w, "NUMBER PREDICTED COILED-COIL DOMAINS WITH THRESHOLD %.1f : %d\n",
			tier.Threshold, len(tier.Domains)); err != nil {
			return err
		}
		for i, d := range tier.Domains {
			if _, err := fmt.Fprintf(w, "  %d. from %d to %d (length = %d) with max = %.1f\n",
				i+1, d.Start+1, d.End, d.Len(), d.Max); err != nil {
				return err
			}
		}
	}
	if withProfile {
		if err := writeProbList(w, r); err != nil {
			return err
		}
	}
	if render != nil {
		if _, err := io.WriteString(w, render(r)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeProbList emits the per-position list: position, residue, probability
// and heptad phase of the best coil state.
func writeProbList(w io.Writer, r coils.Result) error {
	for i, p := range r.Profile {
		res := byte('X')
		if i < len(r.Residues) {
			res = r.Residues[i]
		}
		phase := byte('-')
		if i < len(r.Phase) {
			phase = r.Phase[i]
		}
		if _, err := fmt.Fprintf(w, "%6d %c %8.3f %c\n", i+1, res, p, phase); err != nil {
			return err
		}
	}
	return nil
}
