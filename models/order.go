package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"    // order recorded, awaiting processing
	OrderStatusProcessing OrderStatus = "Processing" // being prepared
	OrderStatusPacked     OrderStatus = "Packed"     // packed, ready for dispatch
	OrderStatusShipped    OrderStatus = "Shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "Delivered"  // customer received the item
	OrderStatusReturned   OrderStatus = "Returned"   // customer returned the item
	OrderStatusCancelled  OrderStatus = "Cancelled"  // cancelled before completion
)

// AllOrderStatuses in workflow order; Returned and Cancelled are side
// branches reachable from any non-terminal state.
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusPacked,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusReturned,
	OrderStatusCancelled,
}

// IsTerminal reports whether no further transitions are expected.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusReturned, OrderStatusCancelled:
		return true
	}
	return false
}

// ParseOrderStatus maps a case-insensitive string to an OrderStatus.
func ParseOrderStatus(status string) (OrderStatus, error) {
	for _, s := range AllOrderStatuses {
		if strings.EqualFold(status, string(s)) {
			return s, nil
		}
	}
	return "", errors.New("invalid order status")
}

type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderRef string `gorm:"uniqueIndex;not null" json:"order_ref"`
	// UserID is a weak reference: deleting a user keeps the order for
	// bookkeeping. Empty means the order was placed before provisioning
	// resolved (never the case for persisted rows).
	UserID          string      `gorm:"index" json:"user_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `gorm:"index" json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	ShippingAddress Address     `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	// Total is fixed at creation from the verified payment amount and never
	// recomputed from current catalog prices.
	Total        float64     `json:"total"`
	Status       OrderStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	TrackingInfo string      `json:"tracking_info"`
	CreatedAt    time.Time   `json:"created_at"`
}

// OrderItem deliberately carries no price: display prices are recomputed
// from Order.Total, the amount actually collected.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `json:"quantity"`
}
