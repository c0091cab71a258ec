package domain

import (
	"time"
)

// Status is the fulfillment state of an order
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
)

// Next returns the status an order moves to when an admin processes it.
// Delivered is terminal.
func (s Status) Next() Status {
	switch s {
	case StatusProcessing:
		return StatusShipped
	default:
		return StatusDelivered
	}
}

// ShippingInfo is the delivery address of an order
type ShippingInfo struct {
	Address string `gorm:"not null" json:"address" validate:"required"`
	City    string `gorm:"not null" json:"city" validate:"required"`
	State   string `gorm:"not null" json:"state" validate:"required"`
	Country string `gorm:"not null" json:"country" validate:"required"`
	PinCode int    `gorm:"not null" json:"pinCode" validate:"required"`
}

// Item is one order line
type Item struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"type:varchar(36);not null;index" json:"-"`
	ProductID string  `gorm:"type:varchar(36);not null" json:"productId" validate:"required"`
	Name      string  `gorm:"not null" json:"name" validate:"required"`
	Photo     string  `gorm:"not null" json:"photo" validate:"required"`
	Price     float64 `gorm:"not null" json:"price" validate:"gte=0"`
	Quantity  int     `gorm:"not null" json:"quantity" validate:"gt=0"`
}

// TableName keeps the table name explicit
func (Item) TableName() string {
	return "order_items"
}

// Customer is the slice of a user shown alongside orders
type Customer struct {
	ID   string `gorm:"type:varchar(128);primaryKey" json:"_id"`
	Name string `gorm:"not null" json:"name"`
}

// TableName maps Customer onto the users table
func (Customer) TableName() string {
	return "users"
}

// Order is a placed order
type Order struct {
	ID              string       `gorm:"type:varchar(36);primaryKey" json:"_id"`
	ShippingInfo    ShippingInfo `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingInfo"`
	UserID          string       `gorm:"type:varchar(128);not null;index" json:"userId"`
	User            *Customer    `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Subtotal        float64      `gorm:"not null" json:"subtotal"`
	Tax             float64      `gorm:"not null" json:"tax"`
	ShippingCharges float64      `gorm:"not null;default:0" json:"shippingCharges"`
	Discount        float64      `gorm:"not null;default:0" json:"discount"`
	Total           float64      `gorm:"not null" json:"total"`
	Status          Status       `gorm:"type:varchar(16);not null;default:Processing;index" json:"status"`
	Items           []Item       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	CreatedAt       time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// ProductIDs lists the product id of every line item
func (o *Order) ProductIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Quantity is the number of units across all lines
func (o *Order) Quantity() int {
	var n int
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
