// core/hmm/params.go
package hmm

import (
	"fmt"
	"math"

	"coilscan-core/alphabet"

	"gonum.org/v1/gonum/floats"
)

// NumStates is the size of the state set: one background state plus the
// seven heptad register positions a-g of a coiled coil.
const NumStates = 8

// Named states. Coil states are ordered by heptad phase so that
// state-1 maps to phase 'a', state-2 to 'b', and so on.
const (
	StateBackground = 0
	StateHeptadA    = 1
	StateHeptadG    = 7
)

// NumCoilStates counts the coil-bearing states.
const NumCoilStates = NumStates - 1

// rowTol is the tolerance for probability-row sums.
const rowTol = 1e-6

// MatrixType selects the emission semantics and, with it, the threshold
// family the domain decoder applies.
type MatrixType int

const (
	// MatrixProb: emissions are P(residue|state); profiles and thresholds
	// are probabilities on the 0-100 scale.
	MatrixProb MatrixType = iota
	// MatrixScore: emissions are still probabilities but the profile is
	// re-expressed as a log-odds score, optionally offset by the auxiliary
	// Score table; thresholds are log-odds cutoffs.
	MatrixScore
)

func (mt MatrixType) String() string {
	if mt == MatrixScore {
		return "score"
	}
	return "prob"
}

// Params holds one immutable model: loaded (or built) once per run and
// shared read-only across all sequences.
type Params struct {
	Name string

	// Init is the start distribution over states.
	Init []float64
	// Trans[i][j] = P(state j | state i); each row sums to 1.
	Trans [][]float64
	// Emission[s][c] = P(residue code c | state s); rows sum to 1.
	// Codes that are not amino-acid letters keep zero columns.
	Emission [][]float64
	// Score is the optional auxiliary per-state residue score table used
	// when MatrixType is MatrixScore. May be nil.
	Score [][]float64

	MatrixType MatrixType
}

// CoilStates returns the indices of the coil-bearing states.
func CoilStates() []int {
	s := make([]int, NumCoilStates)
	for i := range s {
		s[i] = StateHeptadA + i
	}
	return s
}

// PhaseLetter maps a coil state index to its heptad letter a-g.
// The background state renders as '-'.
func PhaseLetter(state int) byte {
	if state < StateHeptadA || state > StateHeptadG {
		return '-'
	}
	return byte('a' + state - StateHeptadA)
}

// Validate checks dimensions, non-negativity and row sums. A model failing
// validation is fatal to the run before any sequence is processed.
func (p *Params) Validate() error {
	if len(p.Init) != NumStates {
		return fmt.Errorf("hmm: init distribution has %d entries, want %d", len(p.Init), NumStates)
	}
	if err := checkRow("init", p.Init); err != nil {
		return err
	}
	if len(p.Trans) != NumStates {
		return fmt.Errorf("hmm: transition matrix has %d rows, want %d", len(p.Trans), NumStates)
	}
	for i, row := range p.Trans {
		if len(row) != NumStates {
			return fmt.Errorf("hmm: transition row %d has %d entries, want %d", i, len(row), NumStates)
		}
		if err := checkRow(fmt.Sprintf("transition row %d", i), row); err != nil {
			return err
		}
	}
	if len(p.Emission) != NumStates {
		return fmt.Errorf("hmm: emission matrix has %d rows, want %d", len(p.Emission), NumStates)
	}
	for i, row := range p.Emission {
		if len(row) != alphabet.NumCodes {
			return fmt.Errorf("hmm: emission row %d has %d entries, want %d", i, len(row), alphabet.NumCodes)
		}
		if err := checkRow(fmt.Sprintf("emission row %d", i), row); err != nil {
			return err
		}
	}
	if p.MatrixType == MatrixScore && p.Score != nil {
		if len(p.Score) != NumStates {
			return fmt.Errorf("hmm: score matrix has %d rows, want %d", len(p.Score), NumStates)
		}
		for i, row := range p.Score {
			if len(row) != alphabet.NumCodes {
				return fmt.Errorf("hmm: score row %d has %d entries, want %d", i, len(row), alphabet.NumCodes)
			}
		}
	}
	return nil
}

func checkRow(name string, row []float64) error {
	for _, v := range row {
		if math.IsNaN(v) || v < 0 {
			return fmt.Errorf("hmm: %s contains negative or NaN entry", name)
		}
	}
	if s := floats.Sum(row); math.Abs(s-1) > rowTol {
		return fmt.Errorf("hmm: %s sums to %g, want 1", name, s)
	}
	return nil
}

// Emit returns the emission likelihood of residue code c in state s.
// Codes outside the table (alphabet.Unknown) are zero-likelihood.
func (p *Params) Emit(s, c int) float64 {
	if c < 0 || c >= alphabet.NumCodes {
		return 0
	}
	return p.Emission[s][c]
}
