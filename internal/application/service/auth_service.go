package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/repository"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/apperror"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/utils"
)

// AuthService signs staff in to the back office
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	ExpiresAt   time.Time
}

// Login authenticates an active staff account and returns an access token.
// Unknown users, wrong passwords and non-staff accounts share one error.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsStaff || !user.IsActive {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role, user.GetPermissions())
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:        user,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.jwtManager.Expiry()),
	}, nil
}

// GetCurrentUser returns the signed-in staff account
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}
