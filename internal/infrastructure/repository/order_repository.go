package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	domainRepo "github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/database"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return database.Conn(ctx, r.db).Omit("Customer").Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := database.Conn(ctx, r.db).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := database.Conn(ctx, r.db).
		Scopes(WithOrderDetails).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: clause.CurrentTable}}).
		Scopes(WithOrderDetails).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) ExistsByOrderNo(ctx context.Context, orderNo string) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.Order{}).
		Where("order_no = ?", orderNo).
		Count(&count).Error
	return count > 0, err
}

func (r *orderRepository) Save(ctx context.Context, order *entity.Order) error {
	db := database.Conn(ctx, r.db)
	if err := db.Omit(clause.Associations).Save(order).Error; err != nil {
		return err
	}
	for _, item := range order.Items {
		err := db.Model(&entity.OrderItem{}).
			Where("id = ?", item.ID).
			Update("line_total", item.LineTotal).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.OrderItem) error {
	db := database.Conn(ctx, r.db)
	if err := db.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return db.Create(&items).Error
}

func (r *orderRepository) ReplacePayments(ctx context.Context, orderID uuid.UUID, payments []entity.Payment) error {
	db := database.Conn(ctx, r.db)
	if err := db.Where("order_id = ?", orderID).Delete(&entity.Payment{}).Error; err != nil {
		return err
	}
	if len(payments) == 0 {
		return nil
	}
	for i := range payments {
		payments[i].OrderID = orderID
	}
	return db.Create(&payments).Error
}

func (r *orderRepository) AddPayment(ctx context.Context, payment *entity.Payment) error {
	return database.Conn(ctx, r.db).Create(payment).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := database.Conn(ctx, r.db)
	if err := db.Where("order_id = ?", id).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", id).Delete(&entity.Payment{}).Error; err != nil {
		return err
	}
	return db.Delete(&entity.Order{}, "id = ?", id).Error
}
