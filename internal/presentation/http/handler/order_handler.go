package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/application/service"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/request"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/response"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles order creation. The body carries the items, optional
// customer details and any payments taken at the counter.
// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.CreateOrderRequest true "Order"
// @Success 201 {object} response.OrderCreatedResponse
// @Failure 422 {object} response.APIResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateOrderInput{
		UserID:        GetUserID(c),
		Source:        enum.OrderSource(req.Source),
		Status:        enum.OrderStatus(req.Status),
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		Discount:      req.DiscountAmount,
		Tax:           req.TaxAmount,
		Items:         toItemInputs(req.Items),
		Payments:      toPaymentInputs(req.Payments),
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewOrderCreated(order))
}

// Get handles getting a single order with items and payments
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", response.NewOrderResponse(order))
}

// Update handles editing a pending order
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}

	var req request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateOrderInput{
		Notes:    req.Notes,
		Discount: req.DiscountAmount,
		Tax:      req.TaxAmount,
	}
	if req.Source != nil {
		src := enum.OrderSource(*req.Source)
		input.Source = &src
	}
	if req.Items != nil {
		input.ReplaceItems = true
		input.Items = toItemInputs(*req.Items)
	}
	if req.Payments != nil {
		input.ReplacePayments = true
		input.Payments = toPaymentInputs(*req.Payments)
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", response.NewOrderResponse(order))
}

// Delete handles removing an order in any status, with its items and payments
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted successfully", nil)
}

// AddPayment handles recording a payment against an order
func (h *OrderHandler) AddPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := toPaymentInput(req)
	order, err := h.orderService.RecordPayment(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", response.NewOrderResponse(order))
}

// Complete handles marking an order as completed
func (h *OrderHandler) Complete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.CompleteOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order completed successfully", response.NewOrderResponse(order))
}

// Cancel handles cancelling a pending order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", response.NewOrderResponse(order))
}

// Recalculate handles recomputing stored totals from items and payments
func (h *OrderHandler) Recalculate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.Recalculate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order totals recalculated", response.NewOrderResponse(order))
}

func toItemInputs(items []request.OrderItemRequest) []service.OrderItemInput {
	out := make([]service.OrderItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, service.OrderItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
		})
	}
	return out
}

func toPaymentInputs(payments []request.PaymentRequest) []service.PaymentInput {
	out := make([]service.PaymentInput, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentInput(p))
	}
	return out
}

func toPaymentInput(p request.PaymentRequest) service.PaymentInput {
	return service.PaymentInput{
		Amount:    p.Amount,
		Method:    enum.PaymentMethod(p.Method),
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
}
