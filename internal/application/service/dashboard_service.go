package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/money"
)

const (
	recentOrdersLimit   = 10
	recentExpensesLimit = 5
	dailySalesDays      = 7
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analytics repository.AnalyticsRepository
	expenses  repository.ExpenseRepository
	loc       *time.Location
	now       func() time.Time
}

// NewDashboardService creates a new dashboard service. A nil expenses
// repository switches expense aggregation off.
func NewDashboardService(
	analytics repository.AnalyticsRepository,
	expenses repository.ExpenseRepository,
	loc *time.Location,
) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{
		analytics: analytics,
		expenses:  expenses,
		loc:       loc,
		now:       time.Now,
	}
}

// ExpensesEnabled reports whether the expense capability is on.
func (s *DashboardService) ExpensesEnabled() bool {
	return s.expenses != nil
}

// DashboardStats represents dashboard statistics. Money fields are
// formatted strings.
type DashboardStats struct {
	TodaySales      string            `json:"today_sales"`
	MonthSales      string            `json:"month_sales"`
	TodayOrders     int64             `json:"today_orders"`
	ExpensesEnabled bool              `json:"expenses_enabled"`
	TodayExpenses   string            `json:"today_expenses"`
	MonthExpenses   string            `json:"month_expenses"`
	TodayProfit     string            `json:"today_profit"`
	MonthProfit     string            `json:"month_profit"`
	DailySalesData  []DailySalesPoint `json:"daily_sales_data"`
	RecentOrders    []RecentOrder     `json:"recent_orders"`
	RecentExpenses  []RecentExpense   `json:"recent_expenses,omitempty"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date   string `json:"date"`
	Sales  string `json:"sales"`
	Profit string `json:"profit"`
}

// RecentOrder is a compact order row for the dashboard.
type RecentOrder struct {
	ID            string `json:"id"`
	OrderNo       string `json:"order_no"`
	Customer      string `json:"customer,omitempty"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	GrandTotal    string `json:"grand_total"`
	DueTotal      string `json:"due_total"`
	CreatedAt     string `json:"created_at"`
}

// RecentExpense is a compact expense row for the dashboard.
type RecentExpense struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
}

// GetDashboardStats returns dashboard statistics. Sales are counted from
// payments by the time they were received.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now().In(s.loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	endOfDay := startOfDay.AddDate(0, 0, 1)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	stats := &DashboardStats{ExpensesEnabled: s.ExpensesEnabled()}

	todaySales, err := s.analytics.SumPayments(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	monthSales, err := s.analytics.SumPayments(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}
	stats.TodayOrders, err = s.analytics.CountOrders(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}

	todayExpenses, err := s.sumExpenses(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}
	monthExpenses, err := s.sumExpenses(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}

	stats.TodaySales = money.Format(todaySales)
	stats.MonthSales = money.Format(monthSales)
	stats.TodayExpenses = money.Format(todayExpenses)
	stats.MonthExpenses = money.Format(monthExpenses)
	stats.TodayProfit = signed(todaySales.Sub(todayExpenses))
	stats.MonthProfit = signed(monthSales.Sub(monthExpenses))

	// Calculate daily sales for the last 7 days
	stats.DailySalesData = make([]DailySalesPoint, 0, dailySalesDays)
	for i := dailySalesDays - 1; i >= 0; i-- {
		from := startOfDay.AddDate(0, 0, -i)
		to := from.AddDate(0, 0, 1)

		sales, err := s.analytics.SumPayments(ctx, from, to)
		if err != nil {
			return nil, err
		}
		spent, err := s.sumExpenses(ctx, from, to)
		if err != nil {
			return nil, err
		}
		stats.DailySalesData = append(stats.DailySalesData, DailySalesPoint{
			Date:   from.Format("Jan 02"),
			Sales:  money.Format(sales),
			Profit: signed(sales.Sub(spent)),
		})
	}

	orders, err := s.analytics.RecentOrders(ctx, recentOrdersLimit)
	if err != nil {
		return nil, err
	}
	stats.RecentOrders = make([]RecentOrder, 0, len(orders))
	for i := range orders {
		stats.RecentOrders = append(stats.RecentOrders, s.recentOrder(&orders[i]))
	}

	if s.expenses != nil {
		expenses, err := s.expenses.RecentExpenses(ctx, recentExpensesLimit)
		if err != nil {
			return nil, err
		}
		stats.RecentExpenses = make([]RecentExpense, 0, len(expenses))
		for _, e := range expenses {
			stats.RecentExpenses = append(stats.RecentExpenses, RecentExpense{
				Title:    e.Title,
				Category: string(e.Category),
				Amount:   money.Format(e.Amount),
				Date:     e.Date.Format("2006-01-02"),
			})
		}
	}

	return stats, nil
}

// ExpenseBreakdown holds expense totals per category. Month is empty when
// the totals cover every recorded expense.
type ExpenseBreakdown struct {
	Enabled    bool            `json:"enabled"`
	Month      string          `json:"month,omitempty"`
	Categories []CategoryTotal `json:"categories"`
	GrandTotal string          `json:"grand_total"`
}

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// ExpenseBreakdown totals expenses per category, limited to the calendar
// month of month when it is given. Every category is listed, and
// unrecognised stored categories count as other.
func (s *DashboardService) ExpenseBreakdown(ctx context.Context, month *time.Time) (*ExpenseBreakdown, error) {
	breakdown := &ExpenseBreakdown{Enabled: s.ExpensesEnabled()}

	var from, to time.Time
	if month != nil {
		from = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, s.loc)
		to = from.AddDate(0, 1, 0)
		breakdown.Month = from.Format("2006-01")
	}

	totals := make(map[enum.ExpenseCategory]decimal.Decimal)
	if s.expenses != nil {
		stored, err := s.expenses.SumByCategory(ctx, from, to)
		if err != nil {
			return nil, err
		}
		for category, amount := range stored {
			if !category.Valid() {
				category = enum.ExpenseCategoryOther
			}
			totals[category] = totals[category].Add(amount)
		}
	}

	grand := decimal.Zero
	for _, category := range enum.ExpenseCategories() {
		amount := totals[category]
		grand = grand.Add(amount)
		breakdown.Categories = append(breakdown.Categories, CategoryTotal{
			Category: string(category),
			Total:    money.Format(amount),
		})
	}
	breakdown.GrandTotal = money.Format(grand)

	return breakdown, nil
}

func (s *DashboardService) sumExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	if s.expenses == nil {
		return decimal.Zero, nil
	}
	return s.expenses.SumExpenses(ctx, from, to)
}

func (s *DashboardService) recentOrder(o *entity.Order) RecentOrder {
	row := RecentOrder{
		ID:            o.ID.String(),
		OrderNo:       o.OrderNo,
		Status:        o.Status.String(),
		PaymentStatus: string(o.PaymentStatus),
		GrandTotal:    money.Format(o.GrandTotal),
		DueTotal:      money.Format(o.DueTotal),
		CreatedAt:     o.CreatedAt.In(s.loc).Format(receiptTimeLayout),
	}
	if o.Customer != nil {
		row.Customer = o.Customer.Name
	}
	return row
}

// signed formats a value that may legitimately be negative, such as profit.
func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + money.Format(d.Neg())
	}
	return money.Format(d)
}
