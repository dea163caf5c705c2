package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/application/service"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/response"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/numerator"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/printer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubOrders struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.Order
}

func newStubOrders() *stubOrders {
	return &stubOrders{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *stubOrders) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = uuid.New()
	for i := range o.Items {
		o.Items[i].ID = uuid.New()
	}
	for i := range o.Payments {
		o.Payments[i].ID = uuid.New()
	}
	c := *o
	r.orders[o.ID] = &c
	return nil
}

func (r *stubOrders) get(id uuid.UUID) *entity.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil
	}
	c := *o
	return &c
}

func (r *stubOrders) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.get(id), nil
}

func (r *stubOrders) GetWithDetails(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.get(id), nil
}

func (r *stubOrders) GetForUpdate(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.get(id), nil
}

func (r *stubOrders) ExistsByOrderNo(context.Context, string) (bool, error) { return false, nil }

func (r *stubOrders) Save(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *o
	r.orders[o.ID] = &c
	return nil
}

func (r *stubOrders) ReplaceItems(context.Context, uuid.UUID, []entity.OrderItem) error { return nil }

func (r *stubOrders) ReplacePayments(context.Context, uuid.UUID, []entity.Payment) error {
	return nil
}

func (r *stubOrders) AddPayment(context.Context, *entity.Payment) error { return nil }

func (r *stubOrders) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

type noCustomers struct{}

func (noCustomers) GetByID(context.Context, uuid.UUID) (*entity.Customer, error) { return nil, nil }

func (noCustomers) GetByPhone(context.Context, string) (*entity.Customer, error) { return nil, nil }

func (noCustomers) Create(_ context.Context, c *entity.Customer) error {
	c.ID = uuid.New()
	return nil
}

func (noCustomers) PrimaryAddress(context.Context, uuid.UUID) (*entity.CustomerAddress, error) {
	return nil, nil
}

type noProducts struct{}

func (noProducts) GetActiveByID(context.Context, uuid.UUID) (*entity.Product, error) { return nil, nil }

func (noProducts) GetByIDs(context.Context, []uuid.UUID) ([]entity.Product, error) { return nil, nil }

type counter struct {
	mu sync.Mutex
	n  int64
}

func (c *counter) Next(context.Context, string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n, nil
}

type stubExpenses struct{}

func (stubExpenses) SumExpenses(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (stubExpenses) SumByCategory(context.Context, time.Time, time.Time) (map[enum.ExpenseCategory]decimal.Decimal, error) {
	return map[enum.ExpenseCategory]decimal.Decimal{
		enum.ExpenseCategoryUtility: decimal.NewFromInt(300),
		enum.ExpenseCategorySalary:  decimal.NewFromInt(700),
	}, nil
}

func (stubExpenses) RecentExpenses(context.Context, int) ([]entity.Expense, error) { return nil, nil }

type testServer struct {
	router *gin.Engine
	orders *stubOrders
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	orders := newStubOrders()
	numbers := numerator.New(&counter{}, numerator.DefaultConfig("ORD"))
	orderService := service.NewOrderService(passTx{}, orders, noCustomers{}, noProducts{}, numbers, nil, time.UTC)

	sink, err := printer.NewSink(printer.Config{Enabled: false})
	require.NoError(t, err)
	printerService := service.NewPrinterService(sink, orders, service.NewReceiptFormatter("Vhojon Bilash", 48, time.UTC), nil)

	orderHandler := NewOrderHandler(orderService)
	printerHandler := NewPrinterHandler(printerService)
	catalogHandler := NewCatalogHandler(nil)
	clockHandler := NewClockHandler(service.NewClockService(time.UTC))
	dashboardHandler := NewDashboardHandler(service.NewDashboardService(nil, stubExpenses{}, time.UTC))

	r := gin.New()
	r.POST("/orders", orderHandler.Create)
	r.GET("/orders/:id", orderHandler.Get)
	r.DELETE("/orders/:id", orderHandler.Delete)
	r.POST("/orders/:id/cancel", orderHandler.Cancel)
	r.GET("/orders/:id/print/:variant/preview", printerHandler.Preview)
	r.POST("/orders/:id/print/:variant", printerHandler.Print)
	r.GET("/printer/status", printerHandler.GetStatus)
	r.GET("/catalog/products/:id/price", catalogHandler.GetPrice)
	r.GET("/clock", clockHandler.Now)
	r.GET("/dashboard/expenses", dashboardHandler.GetExpenseBreakdown)

	return &testServer{router: r, orders: orders}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createOrder(t *testing.T) response.OrderCreatedResponse {
	t.Helper()
	w := s.do(http.MethodPost, "/orders", `{
		"customer_name": "",
		"items": [{"product_name": "Chicken Biryani", "qty": 2, "unit_price": "10.00"}],
		"payments": [{"amount": 5}]
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.OrderCreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func TestOrderHandler_CreateReturnsFlatTotals(t *testing.T) {
	s := newTestServer(t)

	created := s.createOrder(t)

	assert.True(t, created.OK)
	assert.NotEmpty(t, created.OrderID)
	assert.Regexp(t, `^ORD-\d{8}-0001$`, created.OrderNo)
	assert.Equal(t, "partial", created.PaymentStatus)
	assert.Equal(t, "20.00", created.Subtotal)
	assert.Equal(t, "0.00", created.DiscountAmount)
	assert.Equal(t, "20.00", created.GrandTotal)
	assert.Equal(t, "5.00", created.PaidTotal)
	assert.Equal(t, "15.00", created.DueTotal)
}

func TestOrderHandler_CreateValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/orders", `{"items": []}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "validation", body.Kind)
}

func TestOrderHandler_CreateMalformedBody(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/orders", `{"items": [`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Get(t *testing.T) {
	s := newTestServer(t)
	created := s.createOrder(t)

	w := s.do(http.MethodGet, "/orders/"+created.OrderID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data response.OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, created.OrderNo, body.Data.OrderNo)
	assert.Equal(t, "pending", body.Data.Status)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "Chicken Biryani", body.Data.Items[0].ProductName)
	assert.Equal(t, "20.00", body.Data.Items[0].LineTotal)
}

func TestOrderHandler_GetUnknownAndInvalid(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/orders/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/orders/not-a-uuid", "").Code)
}

func TestOrderHandler_CancelThenDelete(t *testing.T) {
	s := newTestServer(t)
	created := s.createOrder(t)

	w := s.do(http.MethodPost, "/orders/"+created.OrderID+"/cancel", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodDelete, "/orders/"+created.OrderID, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/orders/"+created.OrderID, "").Code)
}

func TestPrinterHandler_PrintWithDisabledSink(t *testing.T) {
	s := newTestServer(t)
	created := s.createOrder(t)

	w := s.do(http.MethodPost, "/orders/"+created.OrderID+"/print/customer", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result service.PrintResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.OK)
	assert.Equal(t, printer.OutcomeDisabled, result.Outcome)
	assert.Equal(t, created.OrderNo, result.OrderNo)
}

func TestPrinterHandler_Preview(t *testing.T) {
	s := newTestServer(t)
	created := s.createOrder(t)

	w := s.do(http.MethodGet, "/orders/"+created.OrderID+"/print/chef/preview", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data service.ReceiptPreview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 48, body.Data.Width)
	assert.Contains(t, body.Data.Text, "KITCHEN ORDER")
	assert.Contains(t, body.Data.Text, "2 x Chicken Biryani")
	assert.NotContains(t, body.Data.Text, "20.00")
}

func TestPrinterHandler_RejectsUnknownVariant(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/orders/"+uuid.NewString()+"/print/invoice", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrinterHandler_PrintUnknownOrder(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/orders/"+uuid.NewString()+"/print/customer", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrinterHandler_Status(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/printer/status", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"enabled":false`)
}

func TestCatalogHandler_InvalidIDIsNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/catalog/products/garbage/price", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"found": false, "price": "0.00"}`, w.Body.String())
}

func TestClockHandler_Now(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/clock", "")

	require.Equal(t, http.StatusOK, w.Code)
	var clock service.ServerClock
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clock))
	assert.NotEmpty(t, clock.Date)
	assert.NotEmpty(t, clock.Time)
	_, err := time.Parse(time.RFC3339, clock.ISO)
	assert.NoError(t, err)
}

func TestDashboardHandler_ExpenseBreakdown(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/dashboard/expenses?month=2026-02-01", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Contains(t, body, `"month":"2026-02"`)
	assert.Contains(t, body, `{"category":"utility","total":"300.00"}`)
	assert.Contains(t, body, `{"category":"raw_material","total":"0.00"}`)
	assert.Contains(t, body, `"grand_total":"1000.00"`)
}

func TestDashboardHandler_ExpenseBreakdownRejectsBadMonth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/dashboard/expenses?month=february", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
