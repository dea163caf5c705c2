package request

// LoginRequest represents a staff login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required"`
}
