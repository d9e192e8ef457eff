// core/hmm/defaults.go
package hmm

import (
	"coilscan-core/alphabet"

	"gonum.org/v1/gonum/floats"
)

// Background amino-acid frequencies (Robinson-Robinson style), indexed by
// residue letter. Ambiguity codes get small masses so they are observable
// without dominating; rows are renormalized when the model is built.
var backgroundFreq = map[byte]float64{
	'A': 0.078, 'R': 0.051, 'N': 0.045, 'D': 0.054, 'C': 0.019,
	'Q': 0.043, 'E': 0.063, 'G': 0.074, 'H': 0.022, 'I': 0.051,
	'L': 0.090, 'K': 0.057, 'M': 0.022, 'F': 0.039, 'P': 0.052,
	'S': 0.071, 'T': 0.058, 'W': 0.013, 'Y': 0.032, 'V': 0.066,
	'B': 0.001, 'Z': 0.001, 'X': 0.001, 'U': 0.0001,
}

// Heptad propensity weights relative to background. Core positions a and d
// favor the hydrophobic seam; e and g favor the charged flanks. Proline is
// strongly disfavored at every coil position.
var coilWeight = [7]map[byte]float64{
	// a
	{'L': 3.5, 'I': 2.6, 'M': 2.0, 'V': 1.8, 'A': 1.5, 'F': 1.2, 'N': 1.1, 'P': 0.05, 'G': 0.3},
	// b
	{'E': 1.6, 'K': 1.5, 'Q': 1.4, 'A': 1.3, 'R': 1.3, 'L': 1.2, 'P': 0.05, 'G': 0.4},
	// c
	{'E': 1.6, 'K': 1.4, 'Q': 1.4, 'A': 1.3, 'R': 1.2, 'S': 1.1, 'P': 0.05, 'G': 0.4},
	// d
	{'L': 3.8, 'I': 2.0, 'M': 2.1, 'V': 1.5, 'A': 1.6, 'Y': 1.2, 'P': 0.05, 'G': 0.3},
	// e
	{'E': 2.2, 'K': 1.9, 'Q': 1.6, 'R': 1.5, 'A': 1.2, 'P': 0.05, 'G': 0.4},
	// f
	{'E': 1.5, 'K': 1.5, 'Q': 1.4, 'R': 1.3, 'A': 1.2, 'S': 1.1, 'D': 1.1, 'P': 0.05, 'G': 0.4},
	// g
	{'E': 2.1, 'K': 1.9, 'Q': 1.6, 'R': 1.5, 'L': 1.2, 'A': 1.2, 'P': 0.05, 'G': 0.4},
}

// DefaultHigh builds the high-sensitivity model (the -H variant of the
// original program): cheaper entry into the coil cycle and a longer expected
// dwell time, so weaker coiled coils surface in the posterior.
func DefaultHigh() *Params {
	return buildDefault("high", 0.004, 0.996)
}

// DefaultLow builds the low-sensitivity model (-L variant): stricter entry,
// shorter dwell, fewer but higher-confidence calls.
func DefaultLow() *Params {
	return buildDefault("low", 0.001, 0.990)
}

// DefaultVariant resolves a variant name to its built-in model.
func DefaultVariant(name string) (*Params, bool) {
	switch name {
	case "high":
		return DefaultHigh(), true
	case "low":
		return DefaultLow(), true
	}
	return nil, false
}

// buildDefault assembles a model with the given coil entry probability and
// in-coil continuation probability. The coil cycle advances one heptad phase
// per position (a->b->...->g->a); leaving the cycle returns to background.
func buildDefault(name string, pEnter, pCont float64) *Params {
	p := &Params{
		Name:       name,
		Init:       make([]float64, NumStates),
		Trans:      newMatrix(NumStates, NumStates),
		Emission:   newMatrix(NumStates, alphabet.NumCodes),
		MatrixType: MatrixProb,
	}

	// Start mostly in background; a sequence may begin mid-coil at any phase.
	p.Init[StateBackground] = 0.95
	for s := StateHeptadA; s <= StateHeptadG; s++ {
		p.Init[s] = 0.05 / NumCoilStates
	}

	// Background row: stay, or enter the cycle at any phase.
	p.Trans[StateBackground][StateBackground] = 1 - pEnter
	for s := StateHeptadA; s <= StateHeptadG; s++ {
		p.Trans[StateBackground][s] = pEnter / NumCoilStates
	}
	// Coil rows: advance cyclically or fall back to background.
	for s := StateHeptadA; s <= StateHeptadG; s++ {
		next := s + 1
		if next > StateHeptadG {
			next = StateHeptadA
		}
		p.Trans[s][next] = pCont
		p.Trans[s][StateBackground] = 1 - pCont
	}

	// Background emissions.
	for letter, f := range backgroundFreq {
		c, _ := alphabet.Code(letter)
		p.Emission[StateBackground][c] = f
	}
	normalizeRow(p.Emission[StateBackground])

	// Coil emissions: background reweighted by heptad propensities.
	for phase := 0; phase < 7; phase++ {
		row := p.Emission[StateHeptadA+phase]
		for letter, f := range backgroundFreq {
			c, _ := alphabet.Code(letter)
			w := 1.0
			if v, ok := coilWeight[phase][letter]; ok {
				w = v
			}
			row[c] = f * w
		}
		normalizeRow(row)
	}

	return p
}

func newMatrix(r, c int) [][]float64 {
	backing := make([]float64, r*c)
	m := make([][]float64, r)
	for i := range m {
		m[i] = backing[i*c : (i+1)*c]
	}
	return m
}

func normalizeRow(row []float64) {
	if s := floats.Sum(row); s > 0 {
		floats.Scale(1/s, row)
	}
}
