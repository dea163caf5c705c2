package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/events"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/apperror"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/logger"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/money"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/numerator"
)

const walkInCustomer = "Walk-in Customer"

// OrderService handles order-related operations. Every mutation runs in
// one transaction and recalculates the order as its last step.
type OrderService struct {
	tx        repository.TxManager
	orderRepo repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	numbers   *numerator.Generator
	publisher events.Publisher
	loc       *time.Location
	now       func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	tx repository.TxManager,
	orderRepo repository.OrderRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	numbers *numerator.Generator,
	publisher events.Publisher,
	loc *time.Location,
) *OrderService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &OrderService{
		tx:        tx,
		orderRepo: orderRepo,
		customers: customers,
		products:  products,
		numbers:   numbers,
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
	}
}

// OrderItemInput represents an item in an order. UnitPrice defaults to the
// product's sale price and ProductName to the product's name.
type OrderItemInput struct {
	ProductID   *uuid.UUID
	ProductName string
	Qty         int
	UnitPrice   *decimal.Decimal
	Discount    decimal.Decimal
}

// PaymentInput represents money tendered against an order
type PaymentInput struct {
	Amount    decimal.Decimal
	Method    enum.PaymentMethod
	Reference string
	PaidAt    *time.Time
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	UserID        *uuid.UUID
	Source        enum.OrderSource
	Status        enum.OrderStatus
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone string
	Notes         string
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Items         []OrderItemInput
	Payments      []PaymentInput
}

// UpdateOrderInput replaces the parts of an order that are set. Items and
// Payments are only applied when the matching Replace flag is true, so an
// empty list with the flag set clears them.
type UpdateOrderInput struct {
	Notes           *string
	Source          *enum.OrderSource
	Discount        *decimal.Decimal
	Tax             *decimal.Decimal
	Items           []OrderItemInput
	Payments        []PaymentInput
	ReplaceItems    bool
	ReplacePayments bool
}

// CreateOrder issues a number, attaches items and payments and persists the
// recalculated order.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	var order *entity.Order
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		items, err := s.priceItems(ctx, input.Items)
		if err != nil {
			return err
		}

		customer, err := s.resolveCustomer(ctx, input.CustomerID, input.CustomerName, input.CustomerPhone)
		if err != nil {
			return err
		}

		now := s.now().In(s.loc)
		orderNo, err := s.numbers.Issue(ctx, now, s.orderRepo.ExistsByOrderNo)
		if err != nil {
			if errors.Is(err, numerator.ErrExhausted) {
				return apperror.NewConflictError("Could not allocate a unique order number, please retry")
			}
			return err
		}

		order = &entity.Order{
			OrderNo:        orderNo,
			Status:         enum.OrderStatusPending,
			Source:         input.Source,
			Notes:          strings.TrimSpace(input.Notes),
			CreatedBy:      input.UserID,
			DiscountAmount: input.Discount,
			TaxAmount:      input.Tax,
			Items:          items,
			Payments:       buildPayments(input.Payments, now),
		}
		if order.Source == "" {
			order.Source = enum.OrderSourceStore
		}
		if customer != nil {
			if err := s.attachAddress(ctx, order, customer); err != nil {
				return err
			}
		}

		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		if input.Status != "" && input.Status != enum.OrderStatusPending {
			if err := order.TransitionTo(input.Status); err != nil {
				return err
			}
		}
		return s.recalculate(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderCreated, order)
	return order, nil
}

// UpdateOrder replaces items, payments or header fields of a pending order.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, input *UpdateOrderInput) (*entity.Order, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	var order *entity.Order
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockModifiable(ctx, id)
		if err != nil {
			return err
		}

		if input.ReplaceItems {
			items, err := s.priceItems(ctx, input.Items)
			if err != nil {
				return err
			}
			if err := s.orderRepo.ReplaceItems(ctx, order.ID, items); err != nil {
				return err
			}
			order.Items = items
		}
		if input.ReplacePayments {
			payments := buildPayments(input.Payments, s.now())
			if err := s.orderRepo.ReplacePayments(ctx, order.ID, payments); err != nil {
				return err
			}
			order.Payments = payments
		}
		if input.Notes != nil {
			order.Notes = strings.TrimSpace(*input.Notes)
		}
		if input.Source != nil {
			order.Source = *input.Source
		}
		if input.Discount != nil {
			order.DiscountAmount = *input.Discount
		}
		if input.Tax != nil {
			order.TaxAmount = *input.Tax
		}

		return s.recalculate(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderUpdated, order)
	return order, nil
}

// DeleteOrder removes an order together with its items and payments.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	var order *entity.Order
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		return s.orderRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventOrderDeleted, order)
	return nil
}

// GetOrder returns an order with customer, items and payments.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// RecordPayment appends a payment to a pending order.
func (s *OrderService) RecordPayment(ctx context.Context, id uuid.UUID, input *PaymentInput) (*entity.Order, error) {
	if input == nil {
		return nil, apperror.NewFieldError("amount", "Payment is required")
	}
	if fields := validatePayment("", *input); len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewFieldError("amount", "Amount must be greater than zero")
	}

	var order *entity.Order
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockModifiable(ctx, id)
		if err != nil {
			return err
		}

		payment := buildPayments([]PaymentInput{*input}, s.now())[0]
		payment.OrderID = order.ID
		if err := s.orderRepo.AddPayment(ctx, &payment); err != nil {
			return err
		}
		order.Payments = append(order.Payments, payment)

		return s.recalculate(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderPaid, order)
	return order, nil
}

// CompleteOrder moves a pending order to completed.
func (s *OrderService) CompleteOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return s.transition(ctx, id, enum.OrderStatusCompleted, events.EventOrderCompleted)
}

// CancelOrder moves a pending order to cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return s.transition(ctx, id, enum.OrderStatusCancelled, events.EventOrderCancelled)
}

// Recalculate recomputes and stores the derived totals of any order,
// including terminal ones. It only rewrites derived fields.
func (s *OrderService) Recalculate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		return s.recalculate(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, next enum.OrderStatus, eventType string) (*entity.Order, error) {
	var order *entity.Order
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if err := order.TransitionTo(next); err != nil {
			return err
		}
		return s.recalculate(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventType, order)
	return order, nil
}

func (s *OrderService) lockModifiable(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if err := order.CanModify(); err != nil {
		return nil, err
	}
	return order, nil
}

// recalculate derives totals, logs any degraded input and saves the order.
func (s *OrderService) recalculate(ctx context.Context, order *entity.Order) error {
	res := order.Recalculate()
	for _, d := range res.Degradations {
		logger.Warn(ctx, "order amount coerced to zero",
			"order_no", order.OrderNo,
			"field", d.Field,
			"value", d.Value,
			"reason", d.Reason,
		)
	}
	return s.orderRepo.Save(ctx, order)
}

// priceItems resolves catalog products (one query) and snapshots name and
// price onto each line.
func (s *OrderService) priceItems(ctx context.Context, inputs []OrderItemInput) ([]entity.OrderItem, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID != nil {
			ids = append(ids, *in.ProductID)
		}
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(ids))
	if len(ids) > 0 {
		products, err := s.products.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}
	}

	var fields []apperror.FieldError
	items := make([]entity.OrderItem, 0, len(inputs))
	for i, in := range inputs {
		prefix := fmt.Sprintf("items[%d].", i)
		item := entity.OrderItem{
			ProductName: strings.TrimSpace(in.ProductName),
			Qty:         in.Qty,
			Discount:    in.Discount,
		}

		if in.ProductID != nil {
			product, ok := productMap[*in.ProductID]
			if !ok {
				fields = append(fields, apperror.FieldError{Field: prefix + "product_id", Message: "Product not found"})
				continue
			}
			if !product.IsActive {
				fields = append(fields, apperror.FieldError{Field: prefix + "product_id", Message: "Product is not active"})
				continue
			}
			pid := product.ID
			item.ProductID = &pid
			if item.ProductName == "" {
				item.ProductName = product.Name
			}
			item.UnitPrice = product.SalePrice
		}
		if in.UnitPrice != nil {
			item.UnitPrice = *in.UnitPrice
		} else if in.ProductID == nil {
			fields = append(fields, apperror.FieldError{Field: prefix + "unit_price", Message: "Unit price is required without a product"})
			continue
		}

		items = append(items, item)
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}
	return items, nil
}

// resolveCustomer finds the referenced customer or gets-or-creates one by
// phone. It returns nil when no customer data was given.
func (s *OrderService) resolveCustomer(ctx context.Context, id *uuid.UUID, name, phone string) (*entity.Customer, error) {
	if id != nil {
		customer, err := s.customers.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewFieldError("customer_id", "Customer not found")
		}
		return customer, nil
	}

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" && phone == "" {
		return nil, nil
	}

	if phone != "" {
		customer, err := s.customers.GetByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if customer != nil {
			return customer, nil
		}
	}

	if name == "" {
		name = walkInCustomer
	}
	customer := &entity.Customer{Name: name, Phone: phone}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// attachAddress links the customer and snapshots their primary address.
func (s *OrderService) attachAddress(ctx context.Context, order *entity.Order, customer *entity.Customer) error {
	cid := customer.ID
	order.CustomerID = &cid
	order.Customer = customer

	addr, err := s.customers.PrimaryAddress(ctx, customer.ID)
	if err != nil {
		return err
	}
	order.SnapshotAddress(addr)
	return nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *entity.Order) {
	if order == nil {
		return
	}
	event := events.OrderEvent{
		EventType:     eventType,
		OrderID:       order.ID,
		OrderNo:       order.OrderNo,
		Status:        order.Status.String(),
		PaymentStatus: string(order.PaymentStatus),
		GrandTotal:    money.Format(order.GrandTotal),
		DueTotal:      money.Format(order.DueTotal),
		Timestamp:     s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish order event", "event", eventType, "order_no", order.OrderNo, "error", err)
	}
}

func buildPayments(inputs []PaymentInput, now time.Time) []entity.Payment {
	payments := make([]entity.Payment, 0, len(inputs))
	for _, in := range inputs {
		p := entity.Payment{
			Amount:    in.Amount,
			Method:    in.Method,
			Reference: strings.TrimSpace(in.Reference),
			PaidAt:    now,
		}
		if p.Method == "" {
			p.Method = enum.PaymentMethodCash
		}
		if in.PaidAt != nil && !in.PaidAt.IsZero() {
			p.PaidAt = *in.PaidAt
		}
		payments = append(payments, p)
	}
	return payments
}

func validateCreate(input *CreateOrderInput) error {
	if input == nil {
		return apperror.NewFieldError("items", "Order is required")
	}

	var fields []apperror.FieldError
	if len(input.Items) == 0 {
		fields = append(fields, apperror.FieldError{Field: "items", Message: "At least one item is required"})
	}
	if input.Source != "" && !input.Source.Valid() {
		fields = append(fields, apperror.FieldError{Field: "source", Message: "Unknown order source"})
	}
	if input.Status != "" && (!input.Status.Valid() || input.Status == enum.OrderStatusCancelled) {
		fields = append(fields, apperror.FieldError{Field: "status", Message: "Orders can only be created as pending or completed"})
	}
	fields = append(fields, validateAmounts(&input.Discount, &input.Tax)...)
	fields = append(fields, validateItems(input.Items)...)
	for i, p := range input.Payments {
		fields = append(fields, validatePayment(fmt.Sprintf("payments[%d].", i), p)...)
	}

	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

func validateUpdate(input *UpdateOrderInput) error {
	if input == nil {
		return apperror.NewBadRequestError("Nothing to update")
	}

	var fields []apperror.FieldError
	if input.Source != nil && !input.Source.Valid() {
		fields = append(fields, apperror.FieldError{Field: "source", Message: "Unknown order source"})
	}
	fields = append(fields, validateAmounts(input.Discount, input.Tax)...)
	if input.ReplaceItems {
		fields = append(fields, validateItems(input.Items)...)
	}
	if input.ReplacePayments {
		for i, p := range input.Payments {
			fields = append(fields, validatePayment(fmt.Sprintf("payments[%d].", i), p)...)
		}
	}

	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

func validateAmounts(discount, tax *decimal.Decimal) []apperror.FieldError {
	var fields []apperror.FieldError
	if discount != nil && discount.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "discount_amount", Message: "Discount cannot be negative"})
	}
	if tax != nil && tax.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "tax_amount", Message: "Tax cannot be negative"})
	}
	return fields
}

func validateItems(items []OrderItemInput) []apperror.FieldError {
	var fields []apperror.FieldError
	for i, it := range items {
		prefix := fmt.Sprintf("items[%d].", i)
		if it.ProductID == nil && strings.TrimSpace(it.ProductName) == "" {
			fields = append(fields, apperror.FieldError{Field: prefix + "product_id", Message: "Product or product name is required"})
		}
		if it.Qty <= 0 {
			fields = append(fields, apperror.FieldError{Field: prefix + "qty", Message: "Quantity must be a positive whole number"})
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			fields = append(fields, apperror.FieldError{Field: prefix + "unit_price", Message: "Unit price cannot be negative"})
		}
		if it.Discount.IsNegative() {
			fields = append(fields, apperror.FieldError{Field: prefix + "discount", Message: "Discount cannot be negative"})
		}
	}
	return fields
}

func validatePayment(prefix string, p PaymentInput) []apperror.FieldError {
	var fields []apperror.FieldError
	if p.Amount.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: prefix + "amount", Message: "Amount cannot be negative"})
	}
	if p.Method != "" && !p.Method.Valid() {
		fields = append(fields, apperror.FieldError{Field: prefix + "method", Message: "Unknown payment method"})
	}
	return fields
}
