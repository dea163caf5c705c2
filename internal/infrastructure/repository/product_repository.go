package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	domainRepo "github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/database"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := database.Conn(ctx, r.db).
		Where("is_active = ?", true).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs fetches products in one query (prevents N+1)
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := database.Conn(ctx, r.db).Where("id IN ?", ids).Find(&products).Error
	return products, err
}
