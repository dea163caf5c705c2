package enum

import (
	"database/sql/driver"
	"fmt"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus converts a raw value into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return st, nil
}

func (s OrderStatus) String() string {
	return string(s)
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions or edits are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Only pending orders move, and only to completed or cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s != OrderStatusPending {
		return false
	}
	return next == OrderStatusCompleted || next == OrderStatusCancelled
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = OrderStatus(v)
	case []byte:
		*s = OrderStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	return nil
}
