package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	domainRepo "github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/database"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// SumPayments sums payments by the time they were received, so sales are
// counted on the day money came in rather than the day the order was taken.
func (r *analyticsRepository) SumPayments(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := database.Conn(ctx, r.db).Model(&entity.Payment{}).
		Scopes(Between("paid_at", from, to)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *analyticsRepository) CountOrders(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.Order{}).
		Scopes(Between("created_at", from, to)).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) RecentOrders(ctx context.Context, limit int) ([]entity.Order, error) {
	var orders []entity.Order
	err := database.Conn(ctx, r.db).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) SumExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := database.Conn(ctx, r.db).Model(&entity.Expense{}).
		Scopes(Between("date", from, to)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *expenseRepository) SumByCategory(ctx context.Context, from, to time.Time) (map[enum.ExpenseCategory]decimal.Decimal, error) {
	var rows []struct {
		Category enum.ExpenseCategory
		Total    decimal.Decimal
	}

	query := database.Conn(ctx, r.db).Model(&entity.Expense{})
	if !from.IsZero() || !to.IsZero() {
		query = query.Scopes(Between("date", from, to))
	}
	err := query.
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[enum.ExpenseCategory]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Category] = row.Total
	}
	return totals, nil
}

func (r *expenseRepository) RecentExpenses(ctx context.Context, limit int) ([]entity.Expense, error) {
	var expenses []entity.Expense
	err := database.Conn(ctx, r.db).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&expenses).Error
	return expenses, err
}
