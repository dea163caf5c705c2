package service

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/money"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/printer"
)

// Customer receipt item table columns (24 + 4 + 8 + 10)
const (
	colName  = 24
	colQty   = 4
	colPrice = 8
	colTotal = 10

	minNameWidth = 8

	summaryLabel = 28
	summaryValue = 20

	receiptTimeLayout = "02-Jan-2006 03:04 PM"
)

// ReceiptFormatter lays out kitchen tickets and customer receipts as
// fixed-width pages.
type ReceiptFormatter struct {
	storeName string
	width     int
	loc       *time.Location
}

// NewReceiptFormatter creates a formatter. Width <= 0 means 48 columns.
func NewReceiptFormatter(storeName string, width int, loc *time.Location) *ReceiptFormatter {
	if width <= 0 {
		width = printer.DefaultWidth
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReceiptFormatter{storeName: storeName, width: width, loc: loc}
}

// StoreName returns the header printed on customer receipts.
func (f *ReceiptFormatter) StoreName() string {
	return f.storeName
}

// Format renders r for the given variant.
func (f *ReceiptFormatter) Format(variant enum.ReceiptVariant, r *entity.Receipt) *printer.Page {
	if variant == enum.ReceiptVariantChef {
		return f.FormatKitchenTicket(r)
	}
	return f.FormatCustomerReceipt(r)
}

// FormatKitchenTicket renders what the kitchen needs to cook: no prices.
func (f *ReceiptFormatter) FormatKitchenTicket(r *entity.Receipt) *printer.Page {
	p := printer.NewPage(f.width)
	p.Title("KITCHEN ORDER")
	p.Rule('=')
	p.Bold("Order: " + r.OrderNo)
	p.Text("Time : " + f.timestamp(r.CreatedAt))
	f.customerLines(p, r)
	if r.Notes != "" {
		p.Rule('-')
		p.Bold("Note: " + r.Notes)
	}
	p.Rule('-')
	p.Bold("ITEMS")
	for _, l := range r.Lines {
		p.Bold(fmt.Sprintf("%d x %s", l.Qty, l.Name))
	}
	p.Rule('=')
	return p
}

// FormatCustomerReceipt renders the priced receipt handed to the customer.
func (f *ReceiptFormatter) FormatCustomerReceipt(r *entity.Receipt) *printer.Page {
	p := printer.NewPage(f.width)
	p.Title(f.storeName)
	p.Center("Customer Receipt", false)
	p.Rule('=')
	p.Text("Invoice: " + r.OrderNo)
	p.Text("Date   : " + f.timestamp(r.CreatedAt))
	f.customerLines(p, r)
	p.Rule('-')

	p.Bold(printer.PadRight("Item", colName) +
		printer.PadLeft("Qty", colQty) +
		printer.PadLeft("Price", colPrice) +
		printer.PadLeft("Total", colTotal))
	p.Rule('-')
	for _, l := range r.Lines {
		f.itemRow(p, l)
	}
	p.Rule('-')

	p.Text(summary("Subtotal", money.Format(r.Subtotal)))
	if r.Discount.IsPositive() {
		p.Text(printer.PadRight("Discount", summaryLabel) + "-" + printer.PadLeft(money.Format(r.Discount), summaryValue-1))
	}
	if r.Tax.IsPositive() {
		p.Text(summary("Tax", money.Format(r.Tax)))
	}
	p.Rule('=')
	p.Bold(summary("Grand Total", money.Format(r.GrandTotal)))
	p.Text(summary("Paid", money.Format(r.Paid)))
	p.Text(summary("Due", money.Format(r.Due)))
	p.Rule('-')
	p.Center("Thank you! Come again.", true)
	return p
}

// itemRow prints one priced line. A number wider than its column widens
// that column by taking space from the name; when too little is left for
// the name it goes on its own line above the numbers.
func (f *ReceiptFormatter) itemRow(p *printer.Page, l entity.ReceiptLine) {
	amounts := cell(strconv.Itoa(l.Qty), colQty) +
		cell(money.Format(l.UnitPrice), colPrice) +
		cell(money.Format(l.Total), colTotal)

	nameWidth := f.width - utf8.RuneCountInString(amounts)
	if nameWidth > colName {
		nameWidth = colName
	}
	if nameWidth < minNameWidth {
		p.Text(l.Name)
		p.Text(printer.PadLeft(amounts, f.width))
		return
	}
	p.Text(printer.PadRight(l.Name, nameWidth) + amounts)
}

// cell right-aligns s in n columns, widening past n to keep one space of
// separation from the column on its left.
func cell(s string, n int) string {
	if w := utf8.RuneCountInString(s) + 1; w > n {
		n = w
	}
	return printer.PadLeft(s, n)
}

func (f *ReceiptFormatter) customerLines(p *printer.Page, r *entity.Receipt) {
	if r.CustomerName != "" {
		p.Text("Customer: " + r.CustomerName)
	}
	if r.CustomerPhone != "" {
		p.Text("Phone: " + r.CustomerPhone)
	}
}

func (f *ReceiptFormatter) timestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(f.loc).Format(receiptTimeLayout)
}

func summary(label, value string) string {
	return printer.PadRight(label, summaryLabel) + printer.PadLeft(value, summaryValue)
}
