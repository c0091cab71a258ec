package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		current, previous, want float64
	}{
		{0, 0, 0},
		{50, 0, 5000},
		{150, 100, 50},
		{50, 100, -50},
		{100, 100, 0},
		{1, 3, -67},
		{2, 3, -33},
		{10.126, 0, 1013},
		{12.3456, 0, 1235},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculatePercentage(tt.current, tt.previous),
			"CalculatePercentage(%v, %v)", tt.current, tt.previous)
	}
}

func TestCategoryDistribution_RoundsRatioBeforeScaling(t *testing.T) {
	got := CategoryDistribution(
		[]string{"laptop", "phone", "camera"},
		[]int64{6, 3, 1},
		10,
	)

	assert.Equal(t, []map[string]int64{
		{"laptop": 100},
		{"phone": 0},
		{"camera": 0},
	}, got)
}

func TestCategoryDistribution_NoProducts(t *testing.T) {
	got := CategoryDistribution([]string{"laptop"}, []int64{0}, 0)
	assert.Equal(t, []map[string]int64{{"laptop": 0}}, got)

	assert.Empty(t, CategoryDistribution(nil, nil, 5))
}

func TestHistoricalData_CountMode(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	records := []Record{{CreatedAt: time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC)}}

	got := HistoricalData(6, today, records, PropertyCount)

	assert.Equal(t, []float64{0, 0, 0, 1, 0, 0}, got)
}

func TestHistoricalData_SumMode(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{CreatedAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), Total: 100, Discount: 10},
		{CreatedAt: time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC), Total: 50, Discount: 5},
		{CreatedAt: time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC), Total: 70, Discount: 7},
		{CreatedAt: time.Date(2023, time.December, 9, 0, 0, 0, 0, time.UTC), Total: 999},
	}

	assert.Equal(t, []float64{70, 0, 0, 0, 0, 150}, HistoricalData(6, today, records, PropertyTotal))
	assert.Equal(t, []float64{7, 0, 0, 0, 0, 15}, HistoricalData(6, today, records, PropertyDiscount))
}

func TestHistoricalData_WrapsAcrossYearBoundary(t *testing.T) {
	today := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{CreatedAt: time.Date(2023, time.November, 20, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)},
	}

	assert.Equal(t, []float64{0, 0, 1, 0, 1, 0}, HistoricalData(6, today, records, PropertyCount))
}

func TestHistoricalData_IgnoresYear(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	records := []Record{{CreatedAt: time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)}}

	got := HistoricalData(12, today, records, PropertyCount)

	assert.Equal(t, 1.0, got[11])
}

func TestHistoricalData_UsesTodaysLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	today := time.Date(2024, time.June, 15, 12, 0, 0, 0, ist)
	placed := time.Date(2024, time.June, 1, 0, 30, 0, 0, ist).UTC()
	records := []Record{{CreatedAt: placed}}

	got := HistoricalData(6, today, records, PropertyCount)

	assert.Equal(t, []float64{0, 0, 0, 0, 0, 1}, got)
}

func TestHistoricalData_NonPositiveLength(t *testing.T) {
	assert.Empty(t, HistoricalData(0, time.Now(), []Record{{CreatedAt: time.Now()}}, PropertyCount))
}

func TestGroupAges(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	dobs := []time.Time{
		time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC), // 14
		time.Date(2004, time.June, 16, 0, 0, 0, 0, time.UTC),   // 19
		time.Date(2004, time.June, 15, 0, 0, 0, 0, time.UTC),   // 20
		time.Date(1990, time.March, 3, 0, 0, 0, 0, time.UTC),   // 34
		time.Date(1984, time.June, 1, 0, 0, 0, 0, time.UTC),    // 40
		time.Date(1970, time.June, 1, 0, 0, 0, 0, time.UTC),    // 54
	}

	assert.Equal(t, AgeGroups{Teen: 2, Adult: 2, Old: 1}, GroupAges(dobs, now))
}

func TestDistributeRevenue(t *testing.T) {
	got := DistributeRevenue(1000, 100, 200, 50)

	assert.Equal(t, RevenueDistribution{
		NetMargin:      350,
		Discount:       100,
		ProductionCost: 200,
		Burnt:          50,
		MarketingCost:  300,
	}, got)
}
