package entity

import "time"

// OrderSequence is the per-period counter behind order numbers
type OrderSequence struct {
	Key        string    `gorm:"size:64;primaryKey"`
	CurrentVal int64     `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for OrderSequence
func (OrderSequence) TableName() string {
	return "order_sequences"
}
