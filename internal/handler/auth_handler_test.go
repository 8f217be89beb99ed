package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
	"github.com/dioprayoga/garasi/backend-go/internal/database/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(username, email, password string) (*models.User, error) {
	args := m.Called(username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(email, password string) (*models.User, string, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) GoogleLogin(ctx context.Context, idToken string) (*models.User, string, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateAccessToken(tokenString string) (*service.TokenClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenClaims), args.Error(1)
}

func handlerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc, handlerLogger())

	r := gin.New()
	r.POST("/users/register", h.Register)
	r.POST("/users/login", h.Login)
	r.POST("/users/google-login", h.GoogleLogin)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", "dio", "dio@example.com", "password123").Return(&models.User{
			ID: 1, Username: "dio", Email: "dio@example.com", Password: "hash", Role: models.RoleCustomer,
		}, nil)

		w := postJSON(t, authRouter(svc), "/users/register", gin.H{
			"username": "dio", "email": "dio@example.com", "password": "password123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "dio", body["username"])
		// The password hash must never leak into the response
		assert.NotContains(t, w.Body.String(), "hash")
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("validation errors", func(t *testing.T) {
		w := postJSON(t, authRouter(new(MockAuthService)), "/users/register", gin.H{
			"username": "dio", "email": "not-an-email", "password": "123",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Message string   `json:"message"`
			Errors  []string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Errors, "Invalid email format")
		assert.Contains(t, body.Errors, "Password must be at least 6 characters")
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", "dio", "dio@example.com", "password123").Return(nil, service.ErrEmailAlreadyExists)

		w := postJSON(t, authRouter(svc), "/users/register", gin.H{
			"username": "dio", "email": "dio@example.com", "password": "password123",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email already registered")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", "dio@example.com", "password123").Return(&models.User{
			ID: 1, Username: "dio", Email: "dio@example.com", Role: models.RoleAdmin,
		}, "signed-token", nil)

		w := postJSON(t, authRouter(svc), "/users/login", gin.H{
			"email": "dio@example.com", "password": "password123",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var body LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "signed-token", body.AccessToken)
		assert.Equal(t, "admin", body.Role)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", "dio@example.com", "wrong").Return(nil, "", service.ErrInvalidCredentials)

		w := postJSON(t, authRouter(svc), "/users/login", gin.H{
			"email": "dio@example.com", "password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password")
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postJSON(t, authRouter(new(MockAuthService)), "/users/login", gin.H{"email": "dio@example.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_GoogleLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("GoogleLogin", mock.Anything, "google-id-token").Return(&models.User{
			ID: 1, Username: "dio", Email: "dio@example.com", Role: models.RoleCustomer,
		}, "signed-token", nil)

		w := postJSON(t, authRouter(svc), "/users/google-login", gin.H{"id_token": "google-id-token"})

		assert.Equal(t, http.StatusOK, w.Code)

		var body LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "customer", body.Role)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("GoogleLogin", mock.Anything, "bad").Return(nil, "", service.ErrInvalidGoogleToken)

		w := postJSON(t, authRouter(svc), "/users/google-login", gin.H{"id_token": "bad"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid Google ID token")
	})
}
