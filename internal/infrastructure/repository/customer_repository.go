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

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := database.Conn(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := database.Conn(ctx, r.db).
		Where("phone = ?", phone).
		Order("created_at ASC").
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return database.Conn(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) PrimaryAddress(ctx context.Context, customerID uuid.UUID) (*entity.CustomerAddress, error) {
	var addr entity.CustomerAddress
	err := database.Conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("is_primary DESC, created_at DESC").
		First(&addr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &addr, err
}
