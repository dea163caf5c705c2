package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/apperror"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newPendingOrder() *Order {
	return &Order{
		ID:             uuid.New(),
		OrderNo:        "ORD-20261016-0001",
		Status:         enum.OrderStatusPending,
		DiscountAmount: dec("5.00"),
		TaxAmount:      dec("2.00"),
		Items: []OrderItem{
			{ID: uuid.New(), ProductName: "Chicken Biryani", Qty: 3, UnitPrice: dec("10.00")},
			{ID: uuid.New(), ProductName: "Borhani", Qty: 1, UnitPrice: dec("25.00")},
		},
	}
}

func TestOrderRecalculate(t *testing.T) {
	o := newPendingOrder()
	o.Payments = []Payment{{ID: uuid.New(), Amount: dec("30.00")}}

	res := o.Recalculate()

	assert.False(t, res.Degraded())
	assert.True(t, o.Subtotal.Equal(dec("55.00")))
	assert.True(t, o.GrandTotal.Equal(dec("52.00")))
	assert.True(t, o.PaidTotal.Equal(dec("30.00")))
	assert.True(t, o.DueTotal.Equal(dec("22.00")))
	assert.Equal(t, enum.PaymentStatusPartial, o.PaymentStatus)
	assert.True(t, o.Items[0].LineTotal.Equal(dec("30.00")))
	assert.True(t, o.Items[1].LineTotal.Equal(dec("25.00")))
}

func TestOrderRecalculateOverwritesStaleDerivedFields(t *testing.T) {
	o := newPendingOrder()
	o.Subtotal = dec("999")
	o.DueTotal = dec("999")
	o.PaymentStatus = enum.PaymentStatusPaid

	o.Recalculate()

	assert.True(t, o.Subtotal.Equal(dec("55.00")))
	assert.True(t, o.DueTotal.Equal(dec("52.00")))
	assert.Equal(t, enum.PaymentStatusUnpaid, o.PaymentStatus)
}

func TestOrderCanModify(t *testing.T) {
	o := newPendingOrder()
	assert.NoError(t, o.CanModify())

	require.NoError(t, o.TransitionTo(enum.OrderStatusCancelled))
	err := o.CanModify()
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindState))
}

func TestOrderTransitionTo(t *testing.T) {
	o := newPendingOrder()
	require.NoError(t, o.TransitionTo(enum.OrderStatusCompleted))
	assert.Equal(t, enum.OrderStatusCompleted, o.Status)

	err := o.TransitionTo(enum.OrderStatusCancelled)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindState))
	assert.Equal(t, enum.OrderStatusCompleted, o.Status)

	err = newPendingOrder().TransitionTo(enum.OrderStatus("shipped"))
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestOrderSnapshotAddress(t *testing.T) {
	o := newPendingOrder()
	addr := &CustomerAddress{ID: uuid.New(), Line1: "House 12, Road 4", Area: "Dhanmondi", City: "Dhaka"}

	o.SnapshotAddress(addr)
	require.NotNil(t, o.CustomerAddressID)
	assert.Equal(t, addr.ID, *o.CustomerAddressID)
	assert.Equal(t, "House 12, Road 4, Dhanmondi, Dhaka", o.DeliveryAddress)

	addr.Line1 = "Somewhere else"
	assert.Equal(t, "House 12, Road 4, Dhanmondi, Dhaka", o.DeliveryAddress)

	o.SnapshotAddress(nil)
	assert.Nil(t, o.CustomerAddressID)
	assert.Empty(t, o.DeliveryAddress)
}

func TestNewReceipt(t *testing.T) {
	o := newPendingOrder()
	o.Customer = &Customer{Name: "Rahim", Phone: "01700000000"}
	o.Recalculate()

	r := NewReceipt("Vhojon Bilash", o)
	assert.Equal(t, "Vhojon Bilash", r.StoreName)
	assert.Equal(t, o.OrderNo, r.OrderNo)
	assert.Equal(t, "Rahim", r.CustomerName)
	require.Len(t, r.Lines, 2)
	assert.Equal(t, "Chicken Biryani", r.Lines[0].Name)
	assert.True(t, r.Lines[0].Total.Equal(dec("30.00")))
	assert.True(t, r.GrandTotal.Equal(dec("52.00")))
}
