package enum

import (
	"database/sql/driver"
	"fmt"
)

// PaymentStatus classifies how much of an order's grand total is covered
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = PaymentStatusUnpaid
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentStatus", value)
	}
	return nil
}

// PaymentMethod tags how a payment was tendered
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodMobile PaymentMethod = "mobile"
	PaymentMethodOther  PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile, PaymentMethodOther:
		return true
	}
	return false
}
