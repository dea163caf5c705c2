package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/infrastructure/events"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/apperror"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/logger"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/printer"
)

// PrinterService formats receipts and hands them to the configured sink.
// Printing always happens on committed orders and never changes them.
type PrinterService struct {
	sink      printer.Sink
	orderRepo repository.OrderRepository
	formatter *ReceiptFormatter
	publisher events.Publisher
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	sink printer.Sink,
	orderRepo repository.OrderRepository,
	formatter *ReceiptFormatter,
	publisher events.Publisher,
) *PrinterService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &PrinterService{
		sink:      sink,
		orderRepo: orderRepo,
		formatter: formatter,
		publisher: publisher,
	}
}

// PrintResult is the tri-state outcome of a print request.
type PrintResult struct {
	OK      bool                `json:"ok"`
	Outcome printer.Outcome     `json:"outcome"`
	Message string              `json:"message"`
	Variant enum.ReceiptVariant `json:"variant"`
	OrderID uuid.UUID           `json:"order_id"`
	OrderNo string              `json:"order_no"`
}

// ReceiptPreview is the plain-text rendering of a receipt.
type ReceiptPreview struct {
	OrderID uuid.UUID           `json:"order_id"`
	OrderNo string              `json:"order_no"`
	Variant enum.ReceiptVariant `json:"variant"`
	Width   int                 `json:"width"`
	Text    string              `json:"text"`
	Lines   []string            `json:"lines"`
}

// Status returns printer configuration and reachability.
func (s *PrinterService) Status(ctx context.Context) printer.Status {
	return s.sink.Status(ctx)
}

// Preview renders a receipt without printing it.
func (s *PrinterService) Preview(ctx context.Context, orderID uuid.UUID, variant enum.ReceiptVariant) (*ReceiptPreview, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	page := s.formatter.Format(variant, entity.NewReceipt(s.formatter.StoreName(), order))
	return &ReceiptPreview{
		OrderID: order.ID,
		OrderNo: order.OrderNo,
		Variant: variant,
		Width:   page.Width(),
		Text:    page.String(),
		Lines:   page.Lines(),
	}, nil
}

// Print formats and sends a receipt. A missing order is an error; a sink
// that is disabled or unreachable is reported in the result instead.
func (s *PrinterService) Print(ctx context.Context, orderID uuid.UUID, variant enum.ReceiptVariant) (*PrintResult, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	page := s.formatter.Format(variant, entity.NewReceipt(s.formatter.StoreName(), order))
	res := s.sink.Send(ctx, page)

	result := &PrintResult{
		OK:      res.OK,
		Outcome: res.Outcome,
		Message: res.Message,
		Variant: variant,
		OrderID: order.ID,
		OrderNo: order.OrderNo,
	}

	switch res.Outcome {
	case printer.OutcomePrinted:
		logger.Info(ctx, "receipt printed", "order_no", order.OrderNo, "variant", variant)
		s.publishPrinted(ctx, order, variant)
	case printer.OutcomeFailed:
		logger.Warn(ctx, "receipt print failed", "order_no", order.OrderNo, "variant", variant, "error", res.Err)
	}
	return result, nil
}

// TestPrint sends a sample customer receipt.
func (s *PrinterService) TestPrint(ctx context.Context) *PrintResult {
	receipt := &entity.Receipt{
		StoreName: s.formatter.StoreName(),
		OrderNo:   "TEST-0001",
		CreatedAt: time.Now(),
		Lines: []entity.ReceiptLine{
			{Name: "Test Item 1", Qty: 1, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)},
			{Name: "Test Item 2", Qty: 2, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)},
		},
		Subtotal:   decimal.NewFromInt(20),
		GrandTotal: decimal.NewFromInt(20),
		Paid:       decimal.NewFromInt(20),
	}

	res := s.sink.Send(ctx, s.formatter.FormatCustomerReceipt(receipt))
	if res.Outcome == printer.OutcomeFailed {
		logger.Warn(ctx, "test print failed", "error", res.Err)
	}
	return &PrintResult{
		OK:      res.OK,
		Outcome: res.Outcome,
		Message: res.Message,
		Variant: enum.ReceiptVariantCustomer,
		OrderNo: receipt.OrderNo,
	}
}

func (s *PrinterService) loadOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

func (s *PrinterService) publishPrinted(ctx context.Context, order *entity.Order, variant enum.ReceiptVariant) {
	err := s.publisher.Publish(ctx, events.OrderEvent{
		EventType: events.EventReceiptPrinted,
		OrderID:   order.ID,
		OrderNo:   order.OrderNo,
		Status:    order.Status.String(),
		Detail:    string(variant),
		Timestamp: time.Now(),
	})
	if err != nil {
		logger.Warn(ctx, "failed to publish print event", "order_no", order.OrderNo, "error", err)
	}
}
