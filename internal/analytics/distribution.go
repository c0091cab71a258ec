package analytics

import "math"

// CategoryDistribution returns one single-entry map per category holding its
// share of total. counts[i] belongs to categories[i].
//
// The ratio is rounded before it is scaled, so every share is a multiple of
// 100. With no products every share is 0.
func CategoryDistribution(categories []string, counts []int64, total int64) []map[string]int64 {
	out := make([]map[string]int64, 0, len(categories))
	for i, category := range categories {
		var share int64
		if total > 0 && i < len(counts) {
			share = int64(math.Round(float64(counts[i])/float64(total))) * 100
		}
		out = append(out, map[string]int64{category: share})
	}
	return out
}
