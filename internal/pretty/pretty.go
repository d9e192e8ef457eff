// internal/pretty/pretty.go
//
// Compact per-sequence rendering for text output. Each block shows sixty
// residues with their heptad phase assignment and a decile digit of the
// coiled-coil probability underneath, so long sequences stay readable.
package pretty

import (
	"fmt"
	"strings"

	"coilscan-core/coils"
)

const lineWidth = 60

// RenderCompact formats a three-row block view of the profile. Sequences
// without a profile render as an empty string.
func RenderCompact(r coils.Result) string {
	if len(r.Profile) == 0 {
		return ""
	}
	var b strings.Builder
	for off := 0; off < len(r.Profile); off += lineWidth {
		end := off + lineWidth
		if end > len(r.Profile) {
			end = len(r.Profile)
		}
		fmt.Fprintf(&b, "%8d %s\n", off+1, row(r.Residues, off, end, residueAt))
		fmt.Fprintf(&b, "%8s %s\n", "phase", row(r.Phase, off, end, phaseAt))
		fmt.Fprintf(&b, "%8s %s\n", "prob", deciles(r.Profile[off:end]))
	}
	return b.String()
}

func row(src []byte, off, end int, at func([]byte, int) byte) string {
	out := make([]byte, end-off)
	for i := range out {
		out[i] = at(src, off+i)
	}
	return string(out)
}

func residueAt(src []byte, i int) byte {
	if i < len(src) {
		return src[i]
	}
	return 'X'
}

func phaseAt(src []byte, i int) byte {
	if i < len(src) {
		return src[i]
	}
	return '-'
}

// deciles maps a probability on the 0..100 scale to a single digit 0..9.
func deciles(probs []float64) string {
	out := make([]byte, len(probs))
	for i, p := range probs {
		d := int(p / 10)
		if d < 0 {
			d = 0
		}
		if d > 9 {
			d = 9
		}
		out[i] = byte('0' + d)
	}
	return string(out)
}
