// core/fb/fb.go
package fb

import (
	"errors"
	"fmt"
	"math"

	"coilscan-core/hmm"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptySequence is returned for zero-length input.
	ErrEmptySequence = errors.New("fb: empty sequence")
	// ErrSequenceTooLong is returned when the input exceeds the workspace cap.
	ErrSequenceTooLong = errors.New("fb: sequence exceeds workspace capacity")
)

// Posteriors holds the per-position state posterior distribution for one
// sequence, plus the per-step scale factors needed to reconstruct the total
// likelihood. The backing storage belongs to a Workspace and is valid until
// the workspace's next ComputePosteriors call.
type Posteriors struct {
	n     int
	prob  [][]float64 // n rows of hmm.NumStates, rows sum to 1
	scale []float64   // forward rescale divisor applied at each position
	total []float64   // sum_s fwd*bwd at each position, pre-normalization
	dead  []int       // positions where every state had zero likelihood
}

// Len returns the sequence length.
func (p *Posteriors) Len() int { return p.n }

// At returns posterior(t, state).
func (p *Posteriors) At(t, state int) float64 { return p.prob[t][state] }

// Row returns the state distribution at position t. Callers must not hold
// the slice across engine calls.
func (p *Posteriors) Row(t int) []float64 { return p.prob[t] }

// Scale returns the rescale divisor applied at position t in the forward
// pass (1 at degenerate positions).
func (p *Posteriors) Scale(t int) float64 { return p.scale[t] }

// Total returns sum_s forward(t,s)*backward(t,s) before normalization.
// With consistent scaling this value is the same at every position.
func (p *Posteriors) Total(t int) float64 { return p.total[t] }

// LogLikelihood returns the log of the total sequence likelihood,
// reconstructed from the stored scale factors.
func (p *Posteriors) LogLikelihood() float64 {
	var ll float64
	for _, c := range p.scale[:p.n] {
		ll += math.Log(c)
	}
	return ll
}

// DeadPositions lists positions where all states had zero emission
// likelihood (unknown residue runs). The engine substitutes the model start
// distribution there and keeps going; callers attach a warning.
func (p *Posteriors) DeadPositions() []int { return p.dead }

// Workspace owns the reusable scratch matrices for the recursion. It grows
// to the longest sequence seen and never shrinks; every row in the active
// region is fully overwritten on each call, so no stale values from a longer
// previous sequence can leak into a shorter one's result. A Workspace is not
// safe for concurrent use; give each worker its own.
type Workspace struct {
	cap  int // 0 = unlimited
	fwd  [][]float64
	bwd  [][]float64
	post Posteriors
}

// NewWorkspace returns a workspace that rejects sequences longer than
// maxLen residues (0 = no limit).
func NewWorkspace(maxLen int) *Workspace {
	return &Workspace{cap: maxLen}
}

func (ws *Workspace) grow(n int) {
	if len(ws.fwd) >= n {
		return
	}
	ws.fwd = growMatrix(ws.fwd, n)
	ws.bwd = growMatrix(ws.bwd, n)
	ws.post.prob = growMatrix(ws.post.prob, n)
	ws.post.scale = append(ws.post.scale, make([]float64, n-len(ws.post.scale))...)
	ws.post.total = append(ws.post.total, make([]float64, n-len(ws.post.total))...)
}

func growMatrix(m [][]float64, n int) [][]float64 {
	for len(m) < n {
		m = append(m, make([]float64, hmm.NumStates))
	}
	return m
}

// ComputePosteriors runs the scaled forward-backward recursion over seq
// (residue codes) and fills the workspace's posterior matrix. The returned
// Posteriors aliases workspace storage.
//
// Scaling follows the standard per-position renormalization: the forward
// vector is divided by its sum after every step, the backward pass reuses
// the same divisors, and the posterior at t is fwd(t)*bwd(t) normalized by
// its sum. Without this, forward values underflow within a few hundred
// positions.
func ComputePosteriors(ws *Workspace, seq []int, par *hmm.Params) (*Posteriors, error) {
	n := len(seq)
	if n == 0 {
		return nil, ErrEmptySequence
	}
	if ws.cap > 0 && n > ws.cap {
		return nil, fmt.Errorf("%w: %d residues, cap %d", ErrSequenceTooLong, n, ws.cap)
	}
	ws.grow(n)

	out := &ws.post
	out.n = n
	out.dead = out.dead[:0]

	// Forward pass.
	for t := 0; t < n; t++ {
		f := ws.fwd[t]
		if t == 0 {
			for s := 0; s < hmm.NumStates; s++ {
				f[s] = par.Init[s] * par.Emit(s, seq[0])
			}
		} else {
			prev := ws.fwd[t-1]
			for s := 0; s < hmm.NumStates; s++ {
				var acc float64
				for q := 0; q < hmm.NumStates; q++ {
					acc += prev[q] * par.Trans[q][s]
				}
				f[s] = acc * par.Emit(s, seq[t])
			}
		}
		c := floats.Sum(f)
		if c <= 0 {
			// Zero-likelihood observation: restart from the model start
			// distribution rather than dividing by zero.
			out.dead = append(out.dead, t)
			copy(f, par.Init)
			c = 1
		} else {
			floats.Scale(1/c, f)
		}
		out.scale[t] = c
	}

	// Backward pass, rescaled with the forward divisors so that
	// fwd(t)*bwd(t) is on the same footing at every position.
	last := ws.bwd[n-1]
	for s := 0; s < hmm.NumStates; s++ {
		last[s] = 1
	}
	for t := n - 2; t >= 0; t-- {
		b := ws.bwd[t]
		next := ws.bwd[t+1]
		for s := 0; s < hmm.NumStates; s++ {
			var acc float64
			for q := 0; q < hmm.NumStates; q++ {
				acc += par.Trans[s][q] * par.Emit(q, seq[t+1]) * next[q]
			}
			b[s] = acc
		}
		floats.Scale(1/out.scale[t+1], b)
	}

	// Posterior combination.
	for t := 0; t < n; t++ {
		row := out.prob[t]
		floats.MulTo(row, ws.fwd[t], ws.bwd[t])
		tot := floats.Sum(row)
		out.total[t] = tot
		if tot <= 0 {
			copy(row, par.Init)
			continue
		}
		floats.Scale(1/tot, row)
	}

	return out, nil
}
