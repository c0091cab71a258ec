package domain

import (
	"strings"
	"time"
)

// Product is an item for sale. Photo holds the storage key of its image.
type Product struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"_id"`
	Name      string    `gorm:"not null" json:"name"`
	Photo     string    `gorm:"not null" json:"photo"`
	Price     float64   `gorm:"not null" json:"price"`
	Stock     int       `gorm:"not null" json:"stock"`
	Category  string    `gorm:"not null;index" json:"category"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeCategory trims and lowercases a category label
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// SortOrder orders search results by price
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchFilter narrows a product search
type SearchFilter struct {
	Search   string
	MaxPrice float64
	Category string
	Sort     SortOrder
	Page     int
	PerPage  int
}

// StockChange reduces one product's stock
type StockChange struct {
	ProductID string
	Quantity  int
}
