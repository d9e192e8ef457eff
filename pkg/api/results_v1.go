// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON schema for one sequence's prediction.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	Index      int         `json:"index"`
	SequenceID string      `json:"sequence_id"`
	Length     int         `json:"length"`
	Complete   bool        `json:"complete"`
	Profile    []float64   `json:"profile,omitempty"`
	Phase      string      `json:"phase,omitempty"`
	Tiers      []TierV1    `json:"tiers,omitempty"`
	Warnings   []WarningV1 `json:"warnings,omitempty"`
}

// TierV1 is one threshold tier's domain list.
type TierV1 struct {
	Threshold float64    `json:"threshold"`
	Domains   []DomainV1 `json:"domains"`
}

// DomainV1 is one called domain. From/To are 1-based inclusive, matching the
// text report.
type DomainV1 struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Length int     `json:"length"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// WarningV1 is one per-sequence diagnostic.
type WarningV1 struct {
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}
