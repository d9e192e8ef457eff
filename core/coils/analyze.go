// core/coils/analyze.go
package coils

import (
	"fmt"

	"coilscan-core/alphabet"
	"coilscan-core/fb"
	"coilscan-core/hmm"
)

// Options configures the scoring and decoding stage.
type Options struct {
	// Tiers, ordered loosest to strictest, on the scale matching the
	// model's matrix type (percent for prob, log-odds for score).
	Tiers []Tier
	// Segment holds the shared length/gap floors.
	Segment SegmentOptions
	// MinSeqLen: sequences shorter than this get a short-sequence warning
	// (they are still processed).
	MinSeqLen int
}

// TierDomains is one tier's decoded domain list.
type TierDomains struct {
	Threshold float64
	Domains   []Domain
}

// Result is the full per-sequence outcome: the profile, per-position heptad
// phases, per-tier domain calls, and any diagnostics. A Result with a nil
// Profile carries only warnings (the sequence could not be processed).
type Result struct {
	Index    int
	ID       string
	Length   int
	Complete bool

	Residues []byte // original letters, for report rendering
	Profile  []float64
	Phase    []byte
	Tiers    []TierDomains

	Warnings []Warning
}

// Failed reports whether the sequence produced no usable profile.
func (r *Result) Failed() bool { return r.Profile == nil }

func (r *Result) warn(code Code, detail string) {
	r.Warnings = append(r.Warnings, Warning{SeqIndex: r.Index, SeqID: r.ID, Code: code, Detail: detail})
}

// Analyze turns one sequence's posterior matrix into a Result: profile
// reduction, phase assignment, per-tier segmentation, and diagnostics.
// seq are the residue codes driving the posterior; residues the original
// letters; complete the record-completion flag from the reader.
func Analyze(index int, id string, residues []byte, seq []int, complete bool,
	post *fb.Posteriors, par *hmm.Params, opts Options) Result {

	res := Result{
		Index:    index,
		ID:       id,
		Length:   len(seq),
		Complete: complete,
		Residues: residues,
	}

	if !complete {
		res.warn(WarnTruncatedRecord, "record not read to completion; results cover the residues read")
	}
	if opts.MinSeqLen > 0 && len(seq) < opts.MinSeqLen {
		res.warn(WarnShortSequence, fmt.Sprintf("%d residues, below %d", len(seq), opts.MinSeqLen))
	}
	var unknown []int
	for i, c := range seq {
		if !alphabet.Supported(c) {
			unknown = append(unknown, i)
		}
	}
	if len(unknown) > 0 {
		res.warn(WarnUnknownResidue, fmt.Sprintf("%d position(s), first at %d", len(unknown), unknown[0]+1))
	}
	if dead := post.DeadPositions(); len(dead) > 0 {
		res.warn(WarnZeroLikelihood, fmt.Sprintf("%d position(s) with zero likelihood in all states, first at %d", len(dead), dead[0]+1))
	}

	prof := Profile(post)
	phaseStates, phaseLetters := Phases(post)
	if par.MatrixType == hmm.MatrixScore {
		prof = ScoreProfile(prof, seq, phaseStates, par)
	}
	res.Profile = prof
	res.Phase = phaseLetters

	if flat(prof) {
		res.warn(WarnFlatProfile, "profile is constant across all positions")
	}

	res.Tiers = make([]TierDomains, len(opts.Tiers))
	for i, tier := range opts.Tiers {
		res.Tiers[i] = TierDomains{
			Threshold: tier.Core,
			Domains:   Segment(prof, tier, opts.Segment),
		}
	}
	return res
}

// FailedResult builds a warnings-only Result for a sequence that could not
// be run through the engine at all (empty, over the buffer cap).
func FailedResult(index int, id string, length int, complete bool, code Code, detail string) Result {
	res := Result{Index: index, ID: id, Length: length, Complete: complete}
	res.warn(code, detail)
	return res
}

func flat(prof []float64) bool {
	if len(prof) == 0 {
		return false
	}
	for _, v := range prof[1:] {
		if v != prof[0] {
			return false
		}
	}
	return true
}
