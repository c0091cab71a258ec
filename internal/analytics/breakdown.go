package analytics

import (
	"math"
	"time"
)

// AgeGroups counts users by age band.
type AgeGroups struct {
	Teen  int64 `json:"teen"`
	Adult int64 `json:"adult"`
	Old   int64 `json:"old"`
}

// Age returns the age in whole years at now.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// GroupAges sorts dates of birth into teen (under 20), adult (20 to 39) and
// old (over 40). Users aged exactly 40 fall in no band.
func GroupAges(dobs []time.Time, now time.Time) AgeGroups {
	var groups AgeGroups
	for _, dob := range dobs {
		age := Age(dob, now)
		switch {
		case age < 20:
			groups.Teen++
		case age < 40:
			groups.Adult++
		case age > 40:
			groups.Old++
		}
	}
	return groups
}

// MarketingShare is the fraction of gross income attributed to marketing.
const MarketingShare = 0.30

// RevenueDistribution splits gross income into cost lines and net margin.
type RevenueDistribution struct {
	NetMargin      float64 `json:"netMargin"`
	Discount       float64 `json:"discount"`
	ProductionCost float64 `json:"productionCost"`
	Burnt          float64 `json:"burnt"`
	MarketingCost  float64 `json:"marketingCost"`
}

// DistributeRevenue computes the revenue distribution for the pie charts.
func DistributeRevenue(grossIncome, discount, productionCost, burnt float64) RevenueDistribution {
	marketing := math.Round(grossIncome * MarketingShare)
	return RevenueDistribution{
		NetMargin:      grossIncome - discount - productionCost - burnt - marketing,
		Discount:       discount,
		ProductionCost: productionCost,
		Burnt:          burnt,
		MarketingCost:  marketing,
	}
}
