// core/coils/profile.go
package coils

import (
	"math"

	"coilscan-core/fb"
	"coilscan-core/hmm"
)

// MaxLogOdds clamps score-scale profile values so that p=0 and p=1 stay
// finite.
const MaxLogOdds = 7.0

// Profile reduces a posterior matrix to the per-position coiled-coil
// probability, on the 0-100 scale used by the reports: the posterior mass of
// all heptad states collapsed to one in-domain indicator.
func Profile(post *fb.Posteriors) []float64 {
	prof := make([]float64, post.Len())
	for t := 0; t < post.Len(); t++ {
		var p float64
		for s := hmm.StateHeptadA; s <= hmm.StateHeptadG; s++ {
			p += post.At(t, s)
		}
		prof[t] = 100 * p
	}
	return prof
}

// ScoreProfile converts a probability profile (0-100) to the log-odds scale
// used with score-type matrices, adding the per-position auxiliary residue
// score from par.Score when present. seq supplies the residue codes for the
// auxiliary lookup; phases supplies the per-position heptad state.
func ScoreProfile(prob []float64, seq []int, phases []int, par *hmm.Params) []float64 {
	out := make([]float64, len(prob))
	for t, v := range prob {
		p := v / 100
		var lo float64
		switch {
		case p <= 0:
			lo = -MaxLogOdds
		case p >= 1:
			lo = MaxLogOdds
		default:
			lo = math.Log10(p / (1 - p))
			if lo > MaxLogOdds {
				lo = MaxLogOdds
			} else if lo < -MaxLogOdds {
				lo = -MaxLogOdds
			}
		}
		if par.Score != nil && seq[t] >= 0 && seq[t] < len(par.Score[0]) {
			lo += par.Score[phases[t]][seq[t]]
		}
		out[t] = lo
	}
	return out
}

// Phases returns, per position, the coil state with the largest posterior,
// and its heptad letter ('a'-'g'; '-' where background dominates the whole
// distribution).
func Phases(post *fb.Posteriors) ([]int, []byte) {
	states := make([]int, post.Len())
	letters := make([]byte, post.Len())
	for t := 0; t < post.Len(); t++ {
		best := hmm.StateHeptadA
		for s := hmm.StateHeptadA + 1; s <= hmm.StateHeptadG; s++ {
			if post.At(t, s) > post.At(t, best) {
				best = s
			}
		}
		states[t] = best
		letters[t] = hmm.PhaseLetter(best)
	}
	return states, letters
}
