package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/database"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/numerator"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository returns the counter store behind order numbers.
// Inside a transaction the upsert keeps the counter row locked until
// commit, which serializes concurrent order creation per period.
func NewSequenceRepository(db *gorm.DB) numerator.Store {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) Next(ctx context.Context, key string) (int64, error) {
	var next int64
	err := database.Conn(ctx, r.db).Raw(`
		INSERT INTO order_sequences (key, current_val, updated_at)
		VALUES (?, 1, NOW())
		ON CONFLICT (key) DO UPDATE
		SET current_val = order_sequences.current_val + 1, updated_at = NOW()
		RETURNING current_val
	`, key).Scan(&next).Error
	return next, err
}
