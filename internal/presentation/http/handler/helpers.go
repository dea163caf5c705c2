package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/response"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/middleware"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// parseUUIDParam reads a UUID path parameter. It writes a 400 response and
// returns false when the value is malformed.
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
