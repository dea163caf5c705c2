package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one line of an order. Amounts accept JSON numbers or
// strings.
type OrderItemRequest struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	ProductName string           `json:"product_name" binding:"omitempty,max=255"`
	Qty         int              `json:"qty"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal  `json:"discount"`
}

// PaymentRequest is money tendered against an order
type PaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" binding:"omitempty,max=20"`
	Reference string          `json:"reference" binding:"omitempty,max=100"`
	PaidAt    *time.Time      `json:"paid_at"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	Source         string             `json:"source"`
	Status         string             `json:"status"`
	CustomerID     *uuid.UUID         `json:"customer_id"`
	CustomerName   string             `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone  string             `json:"customer_phone" binding:"omitempty,max=50"`
	Notes          string             `json:"notes"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	Items          []OrderItemRequest `json:"items" binding:"dive"`
	Payments       []PaymentRequest   `json:"payments" binding:"dive"`
}

// UpdateOrderRequest represents an order update. Omitted fields are left
// unchanged; "items": [] clears the items.
type UpdateOrderRequest struct {
	Source         *string             `json:"source"`
	Notes          *string             `json:"notes"`
	DiscountAmount *decimal.Decimal    `json:"discount_amount"`
	TaxAmount      *decimal.Decimal    `json:"tax_amount"`
	Items          *[]OrderItemRequest `json:"items"`
	Payments       *[]PaymentRequest   `json:"payments"`
}
