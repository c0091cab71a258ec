package analytics

import "math"

// CalculatePercentage returns the change from previous to current as a whole
// percentage. With no previous value the change is current scaled by 100,
// rounded the same way.
func CalculatePercentage(current, previous float64) float64 {
	if previous == 0 {
		return math.Round(current * 100)
	}
	return math.Round((current - previous) / previous * 100)
}
