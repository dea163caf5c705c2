package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/ledger"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/apperror"
)

// Order is a sale with its line items and payments. Subtotal through
// PaymentStatus are derived and only ever written by ApplyTotals.
type Order struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderNo           string             `gorm:"size:64;uniqueIndex;not null" json:"order_no"`
	Status            enum.OrderStatus   `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Source            enum.OrderSource   `gorm:"size:20;not null;default:'store'" json:"source"`
	CustomerID        *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerAddressID *uuid.UUID         `gorm:"type:uuid" json:"customer_address_id,omitempty"`
	DeliveryAddress   string             `gorm:"type:text" json:"delivery_address,omitempty"`
	Notes             string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy         *uuid.UUID         `gorm:"type:uuid;index" json:"created_by,omitempty"`
	DiscountAmount    decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"discount_amount"`
	TaxAmount         decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"tax_amount"`
	Subtotal          decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"subtotal"`
	GrandTotal        decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"grand_total"`
	PaidTotal         decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"paid_total"`
	DueTotal          decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0;index" json:"due_total"`
	PaymentStatus     enum.PaymentStatus `gorm:"size:20;not null;default:'unpaid'" json:"payment_status"`
	CreatedAt         time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`

	// Relationships
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Payments []Payment   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// CanModify returns a StateError once the order reached a terminal status.
func (o *Order) CanModify() error {
	if o.Status.IsTerminal() {
		return apperror.NewStateError("Order " + o.OrderNo + " is " + o.Status.String() + " and can no longer be modified")
	}
	return nil
}

// TransitionTo moves the order to next if the state machine allows it.
func (o *Order) TransitionTo(next enum.OrderStatus) error {
	if !next.Valid() {
		return apperror.NewFieldError("status", "unknown status "+next.String())
	}
	if !o.Status.CanTransitionTo(next) {
		return apperror.NewStateError("Cannot move order " + o.OrderNo + " from " + o.Status.String() + " to " + next.String())
	}
	o.Status = next
	return nil
}

// SnapshotAddress copies addr onto the order. Later edits to the customer's
// address book do not touch the order.
func (o *Order) SnapshotAddress(addr *CustomerAddress) {
	if addr == nil {
		o.CustomerAddressID = nil
		o.DeliveryAddress = ""
		return
	}
	id := addr.ID
	o.CustomerAddressID = &id
	o.DeliveryAddress = addr.String()
}

// LedgerInput builds the recalculation input from the loaded items and
// payments.
func (o *Order) LedgerInput() ledger.Input {
	in := ledger.Input{
		Lines:    make([]ledger.Line, len(o.Items)),
		Payments: make([]ledger.Payment, len(o.Payments)),
		Discount: o.DiscountAmount,
		Tax:      o.TaxAmount,
	}
	for i, it := range o.Items {
		in.Lines[i] = ledger.Line{
			Ref:       it.ID.String(),
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
		}
	}
	for i, p := range o.Payments {
		in.Payments[i] = ledger.Payment{Ref: p.ID.String(), Amount: p.Amount}
	}
	return in
}

// Recalculate recomputes every derived field from Items and Payments and
// returns the ledger result so callers can inspect degradations.
func (o *Order) Recalculate() ledger.Result {
	res := ledger.Recalculate(o.LedgerInput())
	o.ApplyTotals(res)
	return res
}

// ApplyTotals writes a ledger result onto the order and its items.
func (o *Order) ApplyTotals(res ledger.Result) {
	for i := range o.Items {
		if i < len(res.LineTotals) {
			o.Items[i].LineTotal = res.LineTotals[i]
		}
	}
	o.Subtotal = res.Subtotal
	o.DiscountAmount = res.DiscountAmount
	o.TaxAmount = res.TaxAmount
	o.GrandTotal = res.GrandTotal
	o.PaidTotal = res.PaidTotal
	o.DueTotal = res.DueTotal
	o.PaymentStatus = res.PaymentStatus
}

// OrderItem is a line on an order. ProductName is captured when the line is
// written so receipts survive catalog edits.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Qty         int             `gorm:"not null" json:"qty"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Discount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"discount"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
