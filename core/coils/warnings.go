// core/coils/warnings.go
package coils

import "fmt"

// Code tags a per-sequence diagnostic. Warnings never abort the batch; they
// ride along on the sequence's Result.
type Code string

const (
	WarnEmptySequence   Code = "empty-sequence"
	WarnSequenceTooLong Code = "sequence-too-long"
	WarnShortSequence   Code = "short-sequence"
	WarnUnknownResidue  Code = "unknown-residue"
	WarnZeroLikelihood  Code = "zero-likelihood"
	WarnFlatProfile     Code = "flat-profile"
	WarnTruncatedRecord Code = "truncated-record"
)

// Warning is one diagnostic record, keyed by the sequence's batch index.
type Warning struct {
	SeqIndex int
	SeqID    string
	Code     Code
	Detail   string
}

func (w Warning) String() string {
	return fmt.Sprintf("sequence %d (%s): %s: %s", w.SeqIndex, w.SeqID, w.Code, w.Detail)
}
