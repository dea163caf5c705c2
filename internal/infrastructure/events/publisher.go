// Package events broadcasts order lifecycle changes to other back-office
// consumers (kitchen display, reporting).
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventOrderCreated   = "order.created"
	EventOrderUpdated   = "order.updated"
	EventOrderDeleted   = "order.deleted"
	EventOrderPaid      = "order.payment_recorded"
	EventOrderCompleted = "order.completed"
	EventOrderCancelled = "order.cancelled"
	EventReceiptPrinted = "receipt.printed"
)

// OrderEvent is the payload published for every order change.
type OrderEvent struct {
	EventType     string    `json:"event_type"`
	OrderID       uuid.UUID `json:"order_id"`
	OrderNo       string    `json:"order_no"`
	Status        string    `json:"status,omitempty"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	GrandTotal    string    `json:"grand_total,omitempty"`
	DueTotal      string    `json:"due_total,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Publisher delivers order events.
type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, OrderEvent) error { return nil }
