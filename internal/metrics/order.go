package metrics

import (
	"sort"

	"marketradar/internal"
)

func ByTotalPrice(records []internal.ProductRecord) []internal.ProductRecord {
	out := make([]internal.ProductRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalPrice < out[j].TotalPrice })
	return out
}

func TopByValueScore(records []internal.ProductRecord, n int) []internal.ProductRecord {
	out := make([]internal.ProductRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ValueScore > out[j].ValueScore })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
