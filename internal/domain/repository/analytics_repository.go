package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
)

// AnalyticsRepository defines aggregation queries behind the dashboard
type AnalyticsRepository interface {
	// SumPayments returns the total of payments received in [from, to).
	SumPayments(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// CountOrders returns the number of orders created in [from, to).
	CountOrders(ctx context.Context, from, to time.Time) (int64, error)

	// RecentOrders returns the latest orders, newest first.
	RecentOrders(ctx context.Context, limit int) ([]entity.Order, error)
}

// ExpenseRepository aggregates expenses. It is optional: the dashboard
// runs without it when the expenses feature is switched off.
type ExpenseRepository interface {
	// SumExpenses returns the total of expenses dated in [from, to).
	SumExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// SumByCategory totals expenses dated in [from, to) per category.
	// Zero bounds select every expense.
	SumByCategory(ctx context.Context, from, to time.Time) (map[enum.ExpenseCategory]decimal.Decimal, error)

	// RecentExpenses returns the latest expenses, newest first.
	RecentExpenses(ctx context.Context, limit int) ([]entity.Expense, error)
}
