package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"volunteerhub/internal/domain"
	"volunteerhub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubAuthService implements service.AuthService with a canned ValidateToken.
type stubAuthService struct {
	userID int64
	err    error
}

func (s *stubAuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (int64, error) {
	return s.userID, s.err
}

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		service    *stubAuthService
		wantStatus int
		wantUserID int64
	}{
		{
			name:       "Valid bearer token",
			header:     "Bearer good-token",
			service:    &stubAuthService{userID: 42},
			wantStatus: http.StatusOK,
			wantUserID: 42,
		},
		{
			name:       "Missing header",
			header:     "",
			service:    &stubAuthService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			service:    &stubAuthService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Empty token after prefix",
			header:     "Bearer ",
			service:    &stubAuthService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Rejected token",
			header:     "Bearer bad-token",
			service:    &stubAuthService{err: errors.New("token is expired")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUserID, _ = UserID(r)
				w.WriteHeader(http.StatusOK)
			})

			handler := Auth(tt.service, testLogger())(next)

			r := httptest.NewRequest(http.MethodGet, "/api/users/statistics", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, tt.wantUserID, gotUserID)
			} else {
				assert.False(t, called)
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
				assert.Contains(t, w.Body.String(), `"type":"authentication"`)
			}
		})
	}
}

func TestUserID_Unauthenticated(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	id, ok := UserID(r)
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestRequestID(t *testing.T) {
	var ctxID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID, _ = r.Context().Value(RequestIDContextKey).(string)
	})

	handler := RequestID(testLogger())(next)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	headerID := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, headerID)
	assert.Equal(t, headerID, ctxID)
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	handler := RequestID(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	ids := make(map[string]bool)
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		ids[w.Header().Get("X-Request-ID")] = true
	}
	assert.Len(t, ids, 10)
}
