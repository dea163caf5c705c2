package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
)

// ProductRepository defines catalog lookups used when pricing orders
type ProductRepository interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
}
