package models

import "time"

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsElevated is the single place admin-gating is decided from a role. The
// boolean is never persisted, so it cannot drift from the role.
func IsElevated(role Role) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:VARCHAR(20);default:'user'" json:"role"`
	Address      Address   `gorm:"embedded" json:"address"`
	Orders       []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Address is embedded in User and, shipping-prefixed, in Order.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Customer segments derived from aggregate order history. Never stored.
const (
	SegmentNew       = "New"
	SegmentReturning = "Returning"
	SegmentHighValue = "High-Value"
	SegmentVIP       = "VIP"
)

// SegmentFor classifies a customer from order count and lifetime spend.
func SegmentFor(totalOrders int, totalSpent float64) string {
	switch {
	case totalSpent >= 50000:
		return SegmentVIP
	case totalSpent >= 10000:
		return SegmentHighValue
	case totalOrders >= 2:
		return SegmentReturning
	default:
		return SegmentNew
	}
}
