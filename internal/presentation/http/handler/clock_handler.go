package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/application/service"
)

// ClockHandler exposes the store's wall clock
type ClockHandler struct {
	clockService *service.ClockService
}

// NewClockHandler creates a new clock handler
func NewClockHandler(clockService *service.ClockService) *ClockHandler {
	return &ClockHandler{clockService: clockService}
}

// Now returns the current date and time in the store timezone
func (h *ClockHandler) Now(c *gin.Context) {
	c.JSON(http.StatusOK, h.clockService.Now())
}
