package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
)

// Expense is an outgoing cost counted against sales on the dashboard
type Expense struct {
	ID        uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Category  enum.ExpenseCategory `gorm:"size:30;not null;index" json:"category"`
	Title     string               `gorm:"size:255;not null" json:"title"`
	Amount    decimal.Decimal      `gorm:"type:numeric(12,2);not null" json:"amount"`
	Date      time.Time            `gorm:"type:date;not null;index" json:"date"`
	Note      string               `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
