package models

import "time"

type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// ParseOrderStatus maps a raw string to a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusProcessing, OrderStatusReadyForPickup, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransition reports whether moving from s to next is legal:
// PROCESSING → READY_FOR_PICKUP, READY_FOR_PICKUP → COMPLETED, and any
// non-terminal status → CANCELLED.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case OrderStatusCancelled:
		return true
	case OrderStatusReadyForPickup:
		return s == OrderStatusProcessing
	case OrderStatusCompleted:
		return s == OrderStatusReadyForPickup
	}
	return false
}

// Order is a placed purchase. Its item set is frozen at creation; unit
// prices are not snapshotted, so the order value follows the current
// product prices. IsDeleted is a soft marker orthogonal to status.
type Order struct {
	ID        uint        `gorm:"primaryKey"`
	Reference string      `gorm:"uniqueIndex;not null"`
	UserID    int64       `gorm:"index;not null"`
	User      User        `gorm:"foreignKey:UserID"`
	Status    OrderStatus `gorm:"type:order_status;not null;default:'PROCESSING'"`
	IsDeleted bool        `gorm:"not null;default:false"`
	CreatedAt time.Time
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderItem snapshots the quantity of one cart line at placement time.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"index;not null"`
	ProductID uint    `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
	Product   Product `gorm:"foreignKey:ProductID"`
}

func (i *OrderItem) TableName() string {
	return "order_items"
}
