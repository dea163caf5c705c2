// Package ledger derives an order's monetary totals and payment status from
// its line items and payments. Everything here is pure: no I/O, no logging.
// Unreadable amounts are treated as zero and reported back as Degradations
// for the caller to log.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/money"
)

// Line is one item row as stored, before any validation of its amounts.
type Line struct {
	Ref       string
	Qty       int
	UnitPrice any
	Discount  any
}

// Payment is one tendered amount.
type Payment struct {
	Ref    string
	Amount any
}

// Input is everything a recalculation reads.
type Input struct {
	Lines    []Line
	Payments []Payment
	Discount any // order-level flat discount
	Tax      any // order-level flat tax
}

// Degradation records an input that was replaced by zero.
type Degradation struct {
	Field  string
	Value  any
	Reason string
}

func (d Degradation) String() string {
	return fmt.Sprintf("%s: %s (%v)", d.Field, d.Reason, d.Value)
}

// Result holds the derived totals. LineTotals is index-aligned with
// Input.Lines.
type Result struct {
	LineTotals     []decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
	PaidTotal      decimal.Decimal
	DueTotal       decimal.Decimal
	PaymentStatus  enum.PaymentStatus
	Degradations   []Degradation
}

// Degraded reports whether any input had to be coerced.
func (r Result) Degraded() bool {
	return len(r.Degradations) > 0
}

type recorder struct {
	list []Degradation
}

// amount reads v as a non-negative amount.
func (r *recorder) amount(field string, v any) decimal.Decimal {
	d, ok := money.Parse(v)
	if !ok {
		if v != nil {
			r.list = append(r.list, Degradation{Field: field, Value: v, Reason: "not a number"})
		}
		return money.Zero
	}
	if d.IsNegative() {
		r.list = append(r.list, Degradation{Field: field, Value: v, Reason: "negative amount"})
		return money.Zero
	}
	return money.Round(d)
}

// Recalculate performs a full recomputation. Calling it twice on the same
// input yields the same Result.
func Recalculate(in Input) Result {
	rec := &recorder{}
	res := Result{LineTotals: make([]decimal.Decimal, len(in.Lines))}

	subtotal := money.Zero
	for i, l := range in.Lines {
		lt := rec.lineTotal(fmt.Sprintf("items[%d]", i), l)
		res.LineTotals[i] = lt
		subtotal = subtotal.Add(lt)
	}

	paid := money.Zero
	for i, p := range in.Payments {
		paid = paid.Add(rec.amount(fmt.Sprintf("payments[%d].amount", i), p.Amount))
	}

	res.Subtotal = subtotal
	res.DiscountAmount = rec.amount("discount_amount", in.Discount)
	res.TaxAmount = rec.amount("tax_amount", in.Tax)
	res.GrandTotal = money.ClampZero(subtotal.Sub(res.DiscountAmount).Add(res.TaxAmount))
	res.PaidTotal = paid
	res.DueTotal = money.ClampZero(res.GrandTotal.Sub(paid))
	res.PaymentStatus = Classify(res.GrandTotal, paid)
	res.Degradations = rec.list
	return res
}

// lineTotal computes qty*unit_price - discount for one line, clamped at zero.
func (rec *recorder) lineTotal(field string, l Line) decimal.Decimal {
	qty := l.Qty
	if qty < 0 {
		rec.list = append(rec.list, Degradation{Field: field + ".qty", Value: l.Qty, Reason: "negative quantity"})
		qty = 0
	}
	price := rec.amount(field+".unit_price", l.UnitPrice)
	discount := rec.amount(field+".discount", l.Discount)

	gross := price.Mul(decimal.NewFromInt(int64(qty)))
	return money.Round(money.ClampZero(gross.Sub(discount)))
}

// Classify maps grand and paid totals onto a payment status. Nothing paid is
// always unpaid, including on a zero-total order.
func Classify(grand, paid decimal.Decimal) enum.PaymentStatus {
	switch {
	case !paid.IsPositive():
		return enum.PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(grand):
		return enum.PaymentStatusPaid
	default:
		return enum.PaymentStatusPartial
	}
}
