// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"coilscan-core/coils"
	"coilscan-core/hmm"
)

// DefaultThresholds returns the tier cutoffs for a matrix type:
// probability percentages for prob matrices, log-odds values for score
// matrices.
func DefaultThresholds(mt hmm.MatrixType) []float64 {
	if mt == hmm.MatrixScore {
		return []float64{0.5, 1.0, 2.0}
	}
	return []float64{50, 90, 99}
}

// ParseThresholds parses a comma-separated tier list ("50,90,99").
func ParseThresholds(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad threshold %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

// BuildTiers turns cutoff values into decoder tiers, each with an extension
// cutoff at extendFrac of the core value. Values are sorted ascending;
// a warning is returned if the input order had to be fixed. extendFrac must
// be in (0, 1].
func BuildTiers(values []float64, extendFrac float64) ([]coils.Tier, []string, error) {
	if extendFrac <= 0 || extendFrac > 1 {
		return nil, nil, fmt.Errorf("extend fraction %g out of range (0,1]", extendFrac)
	}
	if len(values) == 0 {
		return nil, nil, fmt.Errorf("no thresholds given")
	}
	var warns []string
	if !sort.Float64sAreSorted(values) {
		values = append([]float64(nil), values...)
		sort.Float64s(values)
		warns = append(warns, "warning: thresholds reordered ascending")
	}
	tiers := make([]coils.Tier, len(values))
	for i, v := range values {
		tiers[i] = coils.Tier{Core: v, Ext: v * extendFrac}
	}
	return tiers, warns, nil
}
