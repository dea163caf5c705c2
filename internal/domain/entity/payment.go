package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
)

// Payment is money received against an order
type Payment struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	Amount    decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method    enum.PaymentMethod `gorm:"size:20;not null;default:'cash'" json:"method"`
	Reference string             `gorm:"size:100" json:"reference,omitempty"`
	PaidAt    time.Time          `gorm:"not null;index" json:"paid_at"`
	CreatedAt time.Time          `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
