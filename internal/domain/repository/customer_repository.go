package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
)

// CustomerRepository is the read side of the customer book that orders need.
type CustomerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
	// PrimaryAddress returns the customer's primary address, falling back
	// to the most recently created one. Nil when the customer has none.
	PrimaryAddress(ctx context.Context, customerID uuid.UUID) (*entity.CustomerAddress, error)
}
