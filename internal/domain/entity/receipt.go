package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLine represents a single line item on a receipt.
type ReceiptLine struct {
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a value object composed from an order at print time. It is
// not persisted.
type Receipt struct {
	StoreName     string          `json:"store_name"`
	OrderNo       string          `json:"order_no"`
	CreatedAt     time.Time       `json:"created_at"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Lines         []ReceiptLine   `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Paid          decimal.Decimal `json:"paid"`
	Due           decimal.Decimal `json:"due"`
}

// NewReceipt snapshots an order (with items and customer loaded) into a
// Receipt.
func NewReceipt(storeName string, o *Order) *Receipt {
	r := &Receipt{
		StoreName:  storeName,
		OrderNo:    o.OrderNo,
		CreatedAt:  o.CreatedAt,
		Notes:      o.Notes,
		Lines:      make([]ReceiptLine, 0, len(o.Items)),
		Subtotal:   o.Subtotal,
		Discount:   o.DiscountAmount,
		Tax:        o.TaxAmount,
		GrandTotal: o.GrandTotal,
		Paid:       o.PaidTotal,
		Due:        o.DueTotal,
	}
	if o.Customer != nil {
		r.CustomerName = o.Customer.Name
		r.CustomerPhone = o.Customer.Phone
	}
	for _, it := range o.Items {
		r.Lines = append(r.Lines, ReceiptLine{
			Name:      it.ProductName,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Total:     it.LineTotal,
		})
	}
	return r
}
