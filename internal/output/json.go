// internal/output/json.go
package output

import (
	"io"

	"coilscan-core/coils"

	"coilscan/internal/jsonutil"
	"coilscan/pkg/api"
)

// ToAPIResult maps an internal result onto the stable v1 schema. The profile
// and phase strings are included only when withProfile is set; domain
// coordinates become 1-based inclusive to match the text report.
func ToAPIResult(r coils.Result, withProfile bool) api.ResultV1 {
	out := api.ResultV1{
		Index:      r.Index,
		SequenceID: r.ID,
		Length:     r.Length,
		Complete:   r.Complete,
	}
	if withProfile && r.Profile != nil {
		out.Profile = r.Profile
		out.Phase = string(r.Phase)
	}
	for _, tier := range r.Tiers {
		t := api.TierV1{Threshold: tier.Threshold, Domains: []api.DomainV1{}}
		for _, d := range tier.Domains {
			t.Domains = append(t.Domains, api.DomainV1{
				From:   d.Start + 1,
				To:     d.End,
				Length: d.Len(),
				Max:    d.Max,
				Mean:   d.Mean,
			})
		}
		out.Tiers = append(out.Tiers, t)
	}
	for _, warn := range r.Warnings {
		out.Warnings = append(out.Warnings, api.WarningV1{Code: string(warn.Code), Detail: warn.Detail})
	}
	return out
}

// WriteJSON writes all results as one JSON array.
func WriteJSON(w io.Writer, results []coils.Result, withProfile bool) error {
	arr := make([]api.ResultV1, 0, len(results))
	for _, r := range results {
		arr = append(arr, ToAPIResult(r, withProfile))
	}
	return jsonutil.EncodePretty(w, arr)
}
