package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/application/service"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/apperror"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// GetExpenseBreakdown handles expense totals per category. An optional
// month query (YYYY-MM-DD, any day of the month) limits the totals.
func (h *DashboardHandler) GetExpenseBreakdown(c *gin.Context) {
	var month *time.Time
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, apperror.NewBadRequestError("month must be a date in YYYY-MM-DD format"))
			return
		}
		month = &parsed
	}

	breakdown, err := h.dashboardService.ExpenseBreakdown(c.Request.Context(), month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense breakdown retrieved successfully", breakdown)
}
