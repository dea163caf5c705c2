package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/application/service"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/response"
)

// CatalogHandler serves product lookups for the order form
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetPrice returns the current price of a product. A missing or inactive
// product answers {"found": false, "price": "0.00"} rather than 404 so the
// form can fall back to manual entry.
func (h *CatalogHandler) GetPrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, service.ProductPrice{Found: false, Price: "0.00"})
		return
	}

	price, err := h.catalogService.ProductPrice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, price)
}
