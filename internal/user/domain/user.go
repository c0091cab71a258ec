package domain

import (
	"time"
)

// Role values
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Gender values
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOthers = "others"
)

// User is a storefront customer or administrator. The ID is issued by the
// identity provider the client signs in with.
type User struct {
	ID        string    `gorm:"type:varchar(128);primaryKey" json:"_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Photo     string    `gorm:"not null" json:"photo"`
	Role      string    `gorm:"type:varchar(16);not null;default:user;index" json:"role"`
	Gender    string    `gorm:"type:varchar(16);not null;index" json:"gender"`
	DOB       time.Time `gorm:"column:dob;not null" json:"dob"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user may use admin routes
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Age returns the user's age in whole years at now
func (u *User) Age(now time.Time) int {
	age := now.Year() - u.DOB.Year()
	if now.Month() < u.DOB.Month() || (now.Month() == u.DOB.Month() && now.Day() < u.DOB.Day()) {
		age--
	}
	return age
}
