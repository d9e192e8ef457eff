// core/coils/segment.go
package coils

import "gonum.org/v1/gonum/floats"

// Tier is one confidence level of the decoder: a domain must contain at
// least one position at or above Core, and extends over every position at or
// above Ext. Core >= Ext.
type Tier struct {
	Core float64
	Ext  float64
}

// SegmentOptions are the decoder's structural floors, shared by all tiers.
type SegmentOptions struct {
	// MinLen drops domains shorter than this many residues.
	MinLen int
	// MaxGap bridges dips below Ext no longer than this many residues,
	// provided qualifying positions resume before the gap runs out.
	MaxGap int
}

// Domain is a called coiled-coil region, half-open [Start, End) over 0-based
// positions, with its peak and mean profile values.
type Domain struct {
	Start int
	End   int
	Max   float64
	Mean  float64
}

// Len returns the domain length in residues.
func (d Domain) Len() int { return d.End - d.Start }

// Segment decodes one tier's domain list from a profile. It is a pure
// function of (profile, tier, opts); tiers are decoded independently, so a
// stricter tier's coverage is a subset of a looser tier's by construction.
func Segment(profile []float64, tier Tier, opts SegmentOptions) []Domain {
	type run struct{ start, end int }

	// Runs of positions at or above the extension cutoff.
	var runs []run
	inRun := false
	var start int
	for i, v := range profile {
		if v >= tier.Ext {
			if !inRun {
				start, inRun = i, true
			}
		} else if inRun {
			runs = append(runs, run{start, i})
			inRun = false
		}
	}
	if inRun {
		runs = append(runs, run{start, len(profile)})
	}

	// Bridge short dips between adjacent runs.
	var merged []run
	for _, r := range runs {
		if n := len(merged); n > 0 && r.start-merged[n-1].end <= opts.MaxGap {
			merged[n-1].end = r.end
			continue
		}
		merged = append(merged, r)
	}

	// Keep runs that reach the core cutoff and meet the length floor.
	var out []Domain
	for _, r := range merged {
		if r.end-r.start < opts.MinLen {
			continue
		}
		seg := profile[r.start:r.end]
		max := floats.Max(seg)
		if max < tier.Core {
			continue
		}
		out = append(out, Domain{
			Start: r.start,
			End:   r.end,
			Max:   max,
			Mean:  floats.Sum(seg) / float64(len(seg)),
		})
	}
	return out
}

// Coverage returns the total number of positions covered by a domain list.
func Coverage(domains []Domain) int {
	n := 0
	for _, d := range domains {
		n += d.Len()
	}
	return n
}
