package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/response"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID      = "user_id"
	ContextUsername    = "username"
	ContextRole        = "user_role"
	ContextPermissions = "user_permissions"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextPermissions, claims.Permissions)

		c.Next()
	}
}

// RequirePermission creates a middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		permissions, exists := c.Get(ContextPermissions)
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userPermissions, ok := permissions.([]string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, p := range userPermissions {
			if p == permission {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "You do not have permission to perform this action")
		c.Abort()
	}
}
