package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/application/service"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/enum"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer configuration and reachability.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.Status(c.Request.Context()))
}

// TestPrint sends a sample receipt to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	c.JSON(http.StatusOK, h.printerService.TestPrint(c.Request.Context()))
}

// Preview renders a receipt as plain text without printing it.
func (h *PrinterHandler) Preview(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}
	variant, ok := parseVariant(c)
	if !ok {
		return
	}

	preview, err := h.printerService.Preview(c.Request.Context(), id, variant)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt preview generated", preview)
}

// Print sends a kitchen ticket or customer receipt to the printer. A
// disabled or unreachable printer is reported in the body with status 200;
// the order itself is never affected.
func (h *PrinterHandler) Print(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}
	variant, ok := parseVariant(c)
	if !ok {
		return
	}

	result, err := h.printerService.Print(c.Request.Context(), id, variant)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseVariant(c *gin.Context) (enum.ReceiptVariant, bool) {
	variant, err := enum.ParseReceiptVariant(c.Param("variant"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt type. Use 'chef' or 'customer'")
		return "", false
	}
	return variant, true
}
