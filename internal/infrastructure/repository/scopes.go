package repository

import (
	"time"

	"gorm.io/gorm"
)

// WithOrderDetails preloads everything a receipt or recalculation reads.
func WithOrderDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.created_at ASC, order_items.id ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.paid_at ASC, payments.id ASC")
		})
}

// Between returns a scope restricting column to the half-open range
// [from, to).
func Between(column string, from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ? AND "+column+" < ?", from, to)
	}
}
