package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable catalog entry. Catalog maintenance happens
// elsewhere; orders only read the name and sale price.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Code      string          `gorm:"size:100;uniqueIndex" json:"code,omitempty"`
	SalePrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"sale_price"`
	IsActive  bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
