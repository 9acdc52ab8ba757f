package service

import (
	"context"

	"volunteerhub/internal/domain"
)

// AuthService defines the interface for identity operations. The middleware
// only depends on ValidateToken; handlers use the full surface.
type AuthService interface {
	// Register creates a new account with a hashed password
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)

	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken verifies an access token and returns the caller's user ID
	ValidateToken(ctx context.Context, token string) (int64, error)
}
