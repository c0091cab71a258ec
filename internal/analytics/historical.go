package analytics

import "time"

// Property selects what a record contributes to its bucket.
type Property int

const (
	// PropertyCount adds one per record.
	PropertyCount Property = iota
	// PropertyDiscount adds the record's discount.
	PropertyDiscount
	// PropertyTotal adds the record's total.
	PropertyTotal
)

// Record is a timestamped row fed into HistoricalData.
type Record struct {
	CreatedAt time.Time
	Discount  float64
	Total     float64
}

func (r Record) value(p Property) float64 {
	switch p {
	case PropertyDiscount:
		return r.Discount
	case PropertyTotal:
		return r.Total
	default:
		return 1
	}
}

// HistoricalData buckets records into n trailing months. Index n-1 is the
// month of today and index 0 is n-1 months earlier. Months are compared by
// calendar month only, so a record from the same month of an earlier year
// lands in the current month's bucket. Record times are read in today's
// location.
func HistoricalData(n int, today time.Time, records []Record, property Property) []float64 {
	if n <= 0 {
		return []float64{}
	}

	data := make([]float64, n)
	for _, rec := range records {
		monthDiff := (int(today.Month()) - int(rec.CreatedAt.In(today.Location()).Month()) + 12) % 12
		if monthDiff < n {
			data[n-monthDiff-1] += rec.value(property)
		}
	}
	return data
}
