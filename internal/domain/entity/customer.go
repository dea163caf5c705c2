package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a walk-in or delivery customer
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Phone     string         `gorm:"size:50;index" json:"phone,omitempty"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Addresses []CustomerAddress `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// CustomerAddress is one entry in a customer's address book
type CustomerAddress struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Label      string    `gorm:"size:50" json:"label,omitempty"`
	Line1      string    `gorm:"size:255;not null" json:"line1"`
	Line2      string    `gorm:"size:255" json:"line2,omitempty"`
	Area       string    `gorm:"size:100" json:"area,omitempty"`
	City       string    `gorm:"size:100" json:"city,omitempty"`
	IsPrimary  bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new address
func (a *CustomerAddress) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomerAddress model
func (CustomerAddress) TableName() string {
	return "customer_addresses"
}

// String joins the non-empty address parts into a single line.
func (a CustomerAddress) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line1, a.Line2, a.Area, a.City} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
