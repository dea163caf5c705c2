package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/application/service"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/request"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles staff login
// @Summary Login
// @Description Authenticate a staff account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user": gin.H{
			"id":          output.User.ID,
			"name":        output.User.Name,
			"username":    output.User.Username,
			"role":        output.User.Role,
			"permissions": output.User.GetPermissions(),
		},
		"access_token": output.AccessToken,
		"token_type":   "Bearer",
		"expires_at":   output.ExpiresAt,
	})
}

// Me returns the signed-in staff account
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"username":    user.Username,
		"email":       user.Email,
		"role":        user.Role,
		"permissions": user.GetPermissions(),
	})
}
