package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/events"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/apperror"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/numerator"
)

type orderFixture struct {
	svc       *OrderService
	tx        *fakeTx
	orders    *memOrderRepo
	customers *memCustomerRepo
	publisher *recordingPublisher
	biryani   entity.Product
	borhani   entity.Product
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		tx:        &fakeTx{},
		customers: newMemCustomerRepo(),
		publisher: &recordingPublisher{},
		biryani:   entity.Product{ID: uuid.New(), Name: "Chicken Biryani", SalePrice: dec("10.00"), IsActive: true},
		borhani:   entity.Product{ID: uuid.New(), Name: "Borhani", SalePrice: dec("25.00"), IsActive: true},
	}
	f.orders = newMemOrderRepo(f.customers)
	products := newMemProductRepo(f.biryani, f.borhani)
	numbers := numerator.New(newMemSequence(), numerator.DefaultConfig("ORD"))

	f.svc = NewOrderService(f.tx, f.orders, f.customers, products, numbers, f.publisher, time.UTC)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *orderFixture) scenarioInput() *CreateOrderInput {
	return &CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: &f.biryani.ID, Qty: 3},
			{ProductID: &f.borhani.ID, Qty: 1},
		},
		Discount: dec("5.00"),
		Tax:      dec("2.00"),
		Payments: []PaymentInput{{Amount: dec("30.00"), Method: enum.PaymentMethodCash}},
	}
}

func TestCreateOrder_PartialPayment(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.svc.CreateOrder(context.Background(), f.scenarioInput())
	require.NoError(t, err)

	assert.Equal(t, "ORD-20261016-0001", order.OrderNo)
	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.Equal(t, enum.OrderSourceStore, order.Source)
	assert.Equal(t, "55.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "52.00", order.GrandTotal.StringFixed(2))
	assert.Equal(t, "30.00", order.PaidTotal.StringFixed(2))
	assert.Equal(t, "22.00", order.DueTotal.StringFixed(2))
	assert.Equal(t, enum.PaymentStatusPartial, order.PaymentStatus)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Chicken Biryani", order.Items[0].ProductName)
	assert.Equal(t, "30.00", order.Items[0].LineTotal.StringFixed(2))

	stored, err := f.orders.GetWithDetails(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "22.00", stored.DueTotal.StringFixed(2))
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{events.EventOrderCreated}, f.publisher.types())
}

func TestCreateOrder_NumbersAreSequentialAndSkipTaken(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	// A row inserted by hand with the next number must be skipped.
	require.NoError(t, f.orders.Create(ctx, &entity.Order{OrderNo: "ORD-20261016-0002"}))

	first, err := f.svc.CreateOrder(ctx, f.scenarioInput())
	require.NoError(t, err)
	second, err := f.svc.CreateOrder(ctx, f.scenarioInput())
	require.NoError(t, err)

	assert.Equal(t, "ORD-20261016-0001", first.OrderNo)
	assert.Equal(t, "ORD-20261016-0003", second.OrderNo)
}

func TestCreateOrder_UnitPriceOverrideAndFreeTextItem(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: &f.biryani.ID, Qty: 2, UnitPrice: decPtr("8.50"), Discount: dec("1.00")},
			{ProductName: "Extra Raita", Qty: 1, UnitPrice: decPtr("1.25")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "16.00", order.Items[0].LineTotal.StringFixed(2))
	assert.Nil(t, order.Items[1].ProductID)
	assert.Equal(t, "Extra Raita", order.Items[1].ProductName)
	assert.Equal(t, "17.25", order.GrandTotal.StringFixed(2))
	assert.Equal(t, enum.PaymentStatusUnpaid, order.PaymentStatus)
}

func TestCreateOrder_CustomerByPhoneWithAddressSnapshot(t *testing.T) {
	f := newOrderFixture(t)
	existing := f.customers.add("Rahim", "01711000000",
		entity.CustomerAddress{Line1: "House 4", Area: "Dhanmondi", City: "Dhaka"},
		entity.CustomerAddress{Line1: "Road 11", Area: "Banani", City: "Dhaka", IsPrimary: true},
	)

	input := f.scenarioInput()
	input.CustomerPhone = "01711000000"
	order, err := f.svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	require.NotNil(t, order.CustomerID)
	assert.Equal(t, existing.ID, *order.CustomerID)
	assert.Equal(t, "Road 11, Banani, Dhaka", order.DeliveryAddress)
	assert.Equal(t, 0, f.customers.created)

	// Later edits to the address book do not reach the order.
	f.customers.addresses[existing.ID][1].Line1 = "Road 99"
	stored, err := f.orders.GetWithDetails(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Road 11, Banani, Dhaka", stored.DeliveryAddress)
}

func TestCreateOrder_CreatesUnknownCustomer(t *testing.T) {
	f := newOrderFixture(t)

	input := f.scenarioInput()
	input.CustomerName = "Karim"
	input.CustomerPhone = "01800000000"
	order, err := f.svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, f.customers.created)
	require.NotNil(t, order.Customer)
	assert.Equal(t, "Karim", order.Customer.Name)
	assert.Empty(t, order.DeliveryAddress)
}

func TestCreateOrder_ValidationHappensBeforeAnyWrite(t *testing.T) {
	f := newOrderFixture(t)
	missing := uuid.New()

	tests := []struct {
		name  string
		input *CreateOrderInput
		field string
	}{
		{"no items", &CreateOrderInput{}, "items"},
		{"zero qty", &CreateOrderInput{Items: []OrderItemInput{{ProductID: &f.biryani.ID, Qty: 0}}}, "items[0].qty"},
		{"negative discount", &CreateOrderInput{Items: []OrderItemInput{{ProductID: &f.biryani.ID, Qty: 1}}, Discount: dec("-1")}, "discount_amount"},
		{"negative payment", &CreateOrderInput{
			Items:    []OrderItemInput{{ProductID: &f.biryani.ID, Qty: 1}},
			Payments: []PaymentInput{{Amount: dec("-3")}},
		}, "payments[0].amount"},
		{"unknown product", &CreateOrderInput{Items: []OrderItemInput{{ProductID: &missing, Qty: 1}}}, "items[0].product_id"},
		{"free text without price", &CreateOrderInput{Items: []OrderItemInput{{ProductName: "Tea", Qty: 1}}}, "items[0].unit_price"},
		{"cancelled on create", &CreateOrderInput{Items: []OrderItemInput{{ProductID: &f.biryani.ID, Qty: 1}}, Status: enum.OrderStatusCancelled}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateOrder(context.Background(), tt.input)
			require.Error(t, err)
			require.True(t, apperror.IsKind(err, apperror.KindValidation), "got %v", err)

			appErr := apperror.GetAppError(err)
			fields := make([]string, len(appErr.Errors))
			for i, fe := range appErr.Errors {
				fields[i] = fe.Field
			}
			assert.Contains(t, fields, tt.field)
		})
	}

	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.publisher.types())
}

func TestCreateOrder_CompletedOnCreate(t *testing.T) {
	f := newOrderFixture(t)
	input := f.scenarioInput()
	input.Status = enum.OrderStatusCompleted

	order, err := f.svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, order.Status)
}

func TestCreateOrder_PublishFailureDoesNotFailCreation(t *testing.T) {
	f := newOrderFixture(t)
	f.publisher.err = errors.New("redis down")

	order, err := f.svc.CreateOrder(context.Background(), f.scenarioInput())
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderNo)
}

func TestRecordPayment_SettlesOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.scenarioInput())
	require.NoError(t, err)

	order, err = f.svc.RecordPayment(ctx, order.ID, &PaymentInput{Amount: dec("25.00"), Method: enum.PaymentMethodCard})
	require.NoError(t, err)

	assert.Equal(t, "55.00", order.PaidTotal.StringFixed(2))
	assert.Equal(t, "0.00", order.DueTotal.StringFixed(2))
	assert.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)
	assert.Len(t, order.Payments, 2)
	assert.Contains(t, f.publisher.types(), events.EventOrderPaid)
}

func TestRecordPayment_RejectsZeroAmount(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.svc.CreateOrder(context.Background(), f.scenarioInput())
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(context.Background(), order.ID, &PaymentInput{})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUpdateOrder_ReplacesItemsAndRecalculates(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.scenarioInput())
	require.NoError(t, err)

	noDiscount := dec("0")
	order, err = f.svc.UpdateOrder(ctx, order.ID, &UpdateOrderInput{
		ReplaceItems: true,
		Items:        []OrderItemInput{{ProductID: &f.borhani.ID, Qty: 2}},
		Discount:     &noDiscount,
	})
	require.NoError(t, err)

	assert.Equal(t, "50.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "52.00", order.GrandTotal.StringFixed(2))
	assert.Equal(t, "22.00", order.DueTotal.StringFixed(2))
	require.Len(t, order.Items, 1)
	assert.NotEqual(t, uuid.Nil, order.Items[0].ID)
}

func TestCancelledOrderRejectsMutation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.scenarioInput())
	require.NoError(t, err)

	_, err = f.svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateOrder(ctx, order.ID, &UpdateOrderInput{
		ReplaceItems: true,
		Items:        []OrderItemInput{{ProductID: &f.biryani.ID, Qty: 10}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindState))

	_, err = f.svc.RecordPayment(ctx, order.ID, &PaymentInput{Amount: dec("1")})
	assert.True(t, apperror.IsKind(err, apperror.KindState))

	stored, err := f.svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, stored.Status)
	assert.Equal(t, "52.00", stored.GrandTotal.StringFixed(2))
	assert.Len(t, stored.Items, 2)
}

func TestTransitions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.scenarioInput())
	require.NoError(t, err)

	completed, err := f.svc.CompleteOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, completed.Status)

	_, err = f.svc.CompleteOrder(ctx, order.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindState))
	_, err = f.svc.CancelOrder(ctx, order.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindState))

	_, err = f.svc.CompleteOrder(ctx, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestRecalculateRepairsStaleTotals(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.scenarioInput())
	require.NoError(t, err)

	f.orders.orders[order.ID].GrandTotal = dec("999")
	f.orders.orders[order.ID].DueTotal = dec("999")

	repaired, err := f.svc.Recalculate(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "52.00", repaired.GrandTotal.StringFixed(2))
	assert.Equal(t, "22.00", repaired.DueTotal.StringFixed(2))
}

func TestDeleteOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order, err := f.svc.CreateOrder(ctx, f.scenarioInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteOrder(ctx, order.ID))

	_, err = f.svc.GetOrder(ctx, order.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.True(t, apperror.IsKind(f.svc.DeleteOrder(ctx, order.ID), apperror.KindNotFound))
	assert.Contains(t, f.publisher.types(), events.EventOrderDeleted)
}

func TestDeleteOrder_AnyStatus(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	input := f.scenarioInput()
	input.Status = enum.OrderStatusCompleted

	order, err := f.svc.CreateOrder(ctx, input)
	require.NoError(t, err)
	require.Equal(t, enum.OrderStatusCompleted, order.Status)

	require.NoError(t, f.svc.DeleteOrder(ctx, order.ID))
	assert.Empty(t, f.orders.orders)
}
