package domain

import "time"

// Coupon grants a flat discount when its code is applied at checkout
type Coupon struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"_id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"couponCode"`
	Amount    float64   `gorm:"not null" json:"discountAmount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Party identifies a payment gateway
type Party string

const (
	PartyStripe   Party = "stripe"
	PartyRazorpay Party = "razorpay"
)

// Intent is what the client needs to complete a payment with a gateway
type Intent struct {
	Party        Party  `json:"paymentParty"`
	ClientSecret string `json:"clientSecret"`
}
