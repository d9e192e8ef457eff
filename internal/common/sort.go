// internal/common/sort.go
package common

import (
	"sort"

	"coilscan-core/coils"
)

// LessResult defines a stable order for results (for --sort): batch index,
// then sequence ID as a tiebreak for identical indices from merged inputs.
func LessResult(a, b coils.Result) bool {
	if a.Index != b.Index {
		return a.Index < b.Index
	}
	return a.ID < b.ID
}

func SortResults(rs []coils.Result) {
	sort.Slice(rs, func(i, j int) bool { return LessResult(rs[i], rs[j]) })
}
