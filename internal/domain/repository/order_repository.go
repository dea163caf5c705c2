package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create inserts the order together with its items and payments.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithDetails loads items, payments and customer.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetForUpdate loads the order with details and locks its row for the
	// rest of the transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ExistsByOrderNo(ctx context.Context, orderNo string) (bool, error)
	// Save updates the order header, derived totals and item line totals.
	Save(ctx context.Context, order *entity.Order) error
	// ReplaceItems swaps the order's items for the given set.
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.OrderItem) error
	// ReplacePayments swaps the order's payments for the given set.
	ReplacePayments(ctx context.Context, orderID uuid.UUID, payments []entity.Payment) error
	AddPayment(ctx context.Context, payment *entity.Payment) error
	// Delete removes the order, its items and its payments.
	Delete(ctx context.Context, id uuid.UUID) error
}
