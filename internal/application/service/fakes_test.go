package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/events"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/printer"
)

var fixedNow = time.Date(2026, 10, 16, 9, 5, 7, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// --- transactions ---

type fakeTx struct {
	calls int
}

func (f *fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// --- orders ---

type memOrderRepo struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*entity.Order
	customers *memCustomerRepo
	saves     int
}

func newMemOrderRepo(customers *memCustomerRepo) *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*entity.Order), customers: customers}
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	c.Payments = append([]entity.Payment(nil), o.Payments...)
	return &c
}

func (r *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = fixedNow
	}
	for _, existing := range r.orders {
		if existing.OrderNo == order.OrderNo {
			return errors.New("duplicate order_no")
		}
	}
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	for i := range order.Payments {
		order.Payments[i].ID = uuid.New()
		order.Payments[i].OrderID = order.ID
	}
	stored := cloneOrder(order)
	stored.Customer = nil
	r.orders[order.ID] = stored
	return nil
}

func (r *memOrderRepo) load(id uuid.UUID) *entity.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil
	}
	c := cloneOrder(o)
	if c.CustomerID != nil && r.customers != nil {
		c.Customer = r.customers.byID[*c.CustomerID]
	}
	return c
}

func (r *memOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.load(id), nil
}

func (r *memOrderRepo) GetWithDetails(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.load(id), nil
}

func (r *memOrderRepo) GetForUpdate(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.load(id), nil
}

func (r *memOrderRepo) ExistsByOrderNo(_ context.Context, orderNo string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNo == orderNo {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrderRepo) Save(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	stored := cloneOrder(order)
	stored.Customer = nil
	r.orders[order.ID] = stored
	return nil
}

func (r *memOrderRepo) ReplaceItems(_ context.Context, orderID uuid.UUID, items []entity.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = orderID
	}
	if o, ok := r.orders[orderID]; ok {
		o.Items = append([]entity.OrderItem(nil), items...)
	}
	return nil
}

func (r *memOrderRepo) ReplacePayments(_ context.Context, orderID uuid.UUID, payments []entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range payments {
		payments[i].ID = uuid.New()
		payments[i].OrderID = orderID
	}
	if o, ok := r.orders[orderID]; ok {
		o.Payments = append([]entity.Payment(nil), payments...)
	}
	return nil
}

func (r *memOrderRepo) AddPayment(_ context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment.ID = uuid.New()
	if o, ok := r.orders[payment.OrderID]; ok {
		o.Payments = append(o.Payments, *payment)
	}
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

// --- customers ---

type memCustomerRepo struct {
	byID      map[uuid.UUID]*entity.Customer
	addresses map[uuid.UUID][]entity.CustomerAddress
	created   int
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{
		byID:      make(map[uuid.UUID]*entity.Customer),
		addresses: make(map[uuid.UUID][]entity.CustomerAddress),
	}
}

func (r *memCustomerRepo) add(name, phone string, addrs ...entity.CustomerAddress) *entity.Customer {
	c := &entity.Customer{ID: uuid.New(), Name: name, Phone: phone}
	r.byID[c.ID] = c
	for i := range addrs {
		addrs[i].ID = uuid.New()
		addrs[i].CustomerID = c.ID
	}
	r.addresses[c.ID] = addrs
	return c
}

func (r *memCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.byID[id], nil
}

func (r *memCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.byID[customer.ID] = customer
	r.created++
	return nil
}

func (r *memCustomerRepo) PrimaryAddress(_ context.Context, customerID uuid.UUID) (*entity.CustomerAddress, error) {
	addrs := r.addresses[customerID]
	for i := range addrs {
		if addrs[i].IsPrimary {
			a := addrs[i]
			return &a, nil
		}
	}
	if len(addrs) > 0 {
		a := addrs[len(addrs)-1]
		return &a, nil
	}
	return nil, nil
}

// --- products ---

type memProductRepo struct {
	byID map[uuid.UUID]entity.Product
}

func newMemProductRepo(products ...entity.Product) *memProductRepo {
	r := &memProductRepo{byID: make(map[uuid.UUID]entity.Product)}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *memProductRepo) GetActiveByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok || !p.IsActive {
		return nil, nil
	}
	return &p, nil
}

func (r *memProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- numbering ---

type memSequence struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newMemSequence() *memSequence {
	return &memSequence{counters: make(map[string]int64)}
}

func (s *memSequence) Next(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}

// --- events ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

// --- printing ---

type recordingSink struct {
	pages  []*printer.Page
	result printer.Result
}

func (s *recordingSink) Send(_ context.Context, page *printer.Page) printer.Result {
	s.pages = append(s.pages, page)
	return s.result
}

func (s *recordingSink) Status(context.Context) printer.Status {
	return printer.Status{Enabled: true, Configured: true, Reachable: s.result.OK}
}
