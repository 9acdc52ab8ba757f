// Package auth issues and validates the HS256 access tokens that identify
// callers to the rest of the API, and owns account registration and login.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository"
	apperrors "volunteerhub/pkg/errors"
	"volunteerhub/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "volunteerhub"

// Service implements service.AuthService
type Service struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	cost   int
	logger *logger.Logger
}

// Claims are the JWT claims carried by an access token. Subject is the user ID.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewService constructs an auth Service
func NewService(users repository.UserRepository, secret string, ttl time.Duration, bcryptCost int, log *logger.Logger) *Service {
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcryptCost,
		logger: log,
	}
}

// Register creates a new account with a hashed password
func (s *Service) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.RealName = strings.TrimSpace(req.RealName)

	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "volunteer"
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		RealName:     req.RealName,
		Phone:        req.Phone,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return user, nil
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.logger.WithField("username", req.Username).Warn("Failed login attempt")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &domain.LoginResponse{AccessToken: token, User: user}, nil
}

// ValidateToken verifies an access token and returns the caller's user ID
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject: %w", err)
	}
	return userID, nil
}

// issueToken signs an HS256 token for the user
func (s *Service) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// validateRegisterRequest checks the required account fields
func validateRegisterRequest(req *domain.RegisterRequest) error {
	if req.Username == "" {
		return apperrors.NewValidationError("username is required", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email is required", nil)
	}
	if !isValidEmail(req.Email) {
		return apperrors.NewValidationError("email is not a valid email address", nil)
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	if req.RealName == "" {
		return apperrors.NewValidationError("real_name is required", nil)
	}
	return nil
}

// isValidEmail does a basic structural check
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
