package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/money"
)

// CatalogService answers the price lookups the order screen makes while a
// cashier picks products.
type CatalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// ProductPrice is the result of a price lookup.
type ProductPrice struct {
	Found bool   `json:"found"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Price string `json:"price"`
}

// ProductPrice returns the sale price of an active product. Unknown or
// inactive products are reported with Found=false rather than an error.
func (s *CatalogService) ProductPrice(ctx context.Context, id uuid.UUID) (*ProductPrice, error) {
	product, err := s.productRepo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return &ProductPrice{Found: false, Price: money.Format(nil)}, nil
	}
	return &ProductPrice{
		Found: true,
		ID:    product.ID.String(),
		Name:  product.Name,
		Price: money.Format(product.SalePrice),
	}, nil
}
