package domain

import "github.com/narwhalmedia/storefront/internal/analytics"

// Stats is the dashboard overview. JSON names match what the admin
// frontend reads.
type Stats struct {
	CategoryCount     []map[string]int64 `json:"categoryCount"`
	ChangePercent     ChangePercent      `json:"changePercent"`
	Count             Count              `json:"count"`
	Chart             MonthlyOrders      `json:"chart"`
	UserGenderRatio   GenderRatio        `json:"userGenderRatio"`
	LatestTransaction []Transaction      `json:"latestTransaction"`
}

// ChangePercent is the month over month change of each metric
type ChangePercent struct {
	Revenue float64 `json:"revenue"`
	Product float64 `json:"product"`
	User    float64 `json:"user"`
	Order   float64 `json:"order"`
}

// Count holds all-time totals
type Count struct {
	Revenue float64 `json:"revenue"`
	Product int64   `json:"product"`
	User    int64   `json:"user"`
	Order   int64   `json:"order"`
}

// MonthlyOrders is the six month order count and revenue series
type MonthlyOrders struct {
	Order   []float64 `json:"order"`
	Revenue []float64 `json:"revenue"`
}

// GenderRatio splits users by gender
type GenderRatio struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}

// Transaction summarizes a recent order
type Transaction struct {
	ID       string  `json:"_id"`
	Discount float64 `json:"discount"`
	Amount   float64 `json:"amount"`
	Quantity int     `json:"quantity"`
	Status   string  `json:"status"`
}

// PieCharts feeds the dashboard pie charts
type PieCharts struct {
	OrderFulfillment    OrderFulfillment              `json:"orderFullfillment"`
	ProductCategories   []map[string]int64            `json:"productCategories"`
	StockAvailability   StockAvailability             `json:"stockAvailability"`
	RevenueDistribution analytics.RevenueDistribution `json:"revenueDistribution"`
	AdminCustomer       AdminCustomer                 `json:"adminCustomer"`
	UserAgeGroup        analytics.AgeGroups           `json:"userAgeGroup"`
}

// OrderFulfillment counts orders per status
type OrderFulfillment struct {
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Delivered  int64 `json:"delivered"`
}

// StockAvailability splits products by stock
type StockAvailability struct {
	InStock    int64 `json:"inStock"`
	OutOfStock int64 `json:"outOfStock"`
}

// AdminCustomer splits users by role
type AdminCustomer struct {
	Admin    int64 `json:"admin"`
	Customer int64 `json:"customer"`
}

// BarCharts holds six month product and user series and a twelve month
// order series
type BarCharts struct {
	Products []float64 `json:"products"`
	Users    []float64 `json:"users"`
	Orders   []float64 `json:"orders"`
}

// LineCharts holds twelve month series
type LineCharts struct {
	Products []float64 `json:"products"`
	Users    []float64 `json:"users"`
	Discount []float64 `json:"discount"`
	Revenue  []float64 `json:"revenue"`
}
