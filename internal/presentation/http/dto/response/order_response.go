package response

import (
	"time"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/money"
)

// OrderCreatedResponse is the body returned by order creation. Amounts are
// formatted with two decimals.
type OrderCreatedResponse struct {
	OK             bool   `json:"ok"`
	OrderID        string `json:"order_id"`
	OrderNo        string `json:"order_no"`
	PaymentStatus  string `json:"payment_status"`
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	GrandTotal     string `json:"grand_total"`
	PaidTotal      string `json:"paid_total"`
	DueTotal       string `json:"due_total"`
}

// NewOrderCreated builds the creation body from a saved order.
func NewOrderCreated(o *entity.Order) OrderCreatedResponse {
	return OrderCreatedResponse{
		OK:             true,
		OrderID:        o.ID.String(),
		OrderNo:        o.OrderNo,
		PaymentStatus:  string(o.PaymentStatus),
		Subtotal:       money.Format(o.Subtotal),
		DiscountAmount: money.Format(o.DiscountAmount),
		GrandTotal:     money.Format(o.GrandTotal),
		PaidTotal:      money.Format(o.PaidTotal),
		DueTotal:       money.Format(o.DueTotal),
	}
}

// OrderItemResponse is one line in an order response
type OrderItemResponse struct {
	ID          string  `json:"id"`
	ProductID   *string `json:"product_id,omitempty"`
	ProductName string  `json:"product_name"`
	Qty         int     `json:"qty"`
	UnitPrice   string  `json:"unit_price"`
	Discount    string  `json:"discount"`
	LineTotal   string  `json:"line_total"`
}

// PaymentResponse is one payment in an order response
type PaymentResponse struct {
	ID        string    `json:"id"`
	Amount    string    `json:"amount"`
	Method    string    `json:"method"`
	Reference string    `json:"reference,omitempty"`
	PaidAt    time.Time `json:"paid_at"`
}

// CustomerResponse is the customer attached to an order
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// OrderResponse is the full order view
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNo         string              `json:"order_no"`
	Status          string              `json:"status"`
	Source          string              `json:"source"`
	Customer        *CustomerResponse   `json:"customer,omitempty"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Subtotal        string              `json:"subtotal"`
	DiscountAmount  string              `json:"discount_amount"`
	TaxAmount       string              `json:"tax_amount"`
	GrandTotal      string              `json:"grand_total"`
	PaidTotal       string              `json:"paid_total"`
	DueTotal        string              `json:"due_total"`
	PaymentStatus   string              `json:"payment_status"`
	Items           []OrderItemResponse `json:"items"`
	Payments        []PaymentResponse   `json:"payments"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewOrderResponse maps an order with its details.
func NewOrderResponse(o *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID.String(),
		OrderNo:         o.OrderNo,
		Status:          o.Status.String(),
		Source:          string(o.Source),
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		Subtotal:        money.Format(o.Subtotal),
		DiscountAmount:  money.Format(o.DiscountAmount),
		TaxAmount:       money.Format(o.TaxAmount),
		GrandTotal:      money.Format(o.GrandTotal),
		PaidTotal:       money.Format(o.PaidTotal),
		DueTotal:        money.Format(o.DueTotal),
		PaymentStatus:   string(o.PaymentStatus),
		Items:           make([]OrderItemResponse, 0, len(o.Items)),
		Payments:        make([]PaymentResponse, 0, len(o.Payments)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.Customer != nil {
		resp.Customer = &CustomerResponse{
			ID:    o.Customer.ID.String(),
			Name:  o.Customer.Name,
			Phone: o.Customer.Phone,
		}
	}
	for _, it := range o.Items {
		item := OrderItemResponse{
			ID:          it.ID.String(),
			ProductName: it.ProductName,
			Qty:         it.Qty,
			UnitPrice:   money.Format(it.UnitPrice),
			Discount:    money.Format(it.Discount),
			LineTotal:   money.Format(it.LineTotal),
		}
		if it.ProductID != nil {
			pid := it.ProductID.String()
			item.ProductID = &pid
		}
		resp.Items = append(resp.Items, item)
	}
	for _, p := range o.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:        p.ID.String(),
			Amount:    money.Format(p.Amount),
			Method:    string(p.Method),
			Reference: p.Reference,
			PaidAt:    p.PaidAt,
		})
	}
	return resp
}
