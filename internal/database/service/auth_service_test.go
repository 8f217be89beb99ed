package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dioprayoga/garasi/backend-go/internal/config"
	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
	"github.com/dioprayoga/garasi/backend-go/internal/googleauth"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, idToken string) (*googleauth.Identity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*googleauth.Identity), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		TokenExpiration: 3600,
		AITimeout:       5,
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		setupMocks func(*MockUserRepository)
		wantErr    error
	}{
		{
			name:  "success",
			email: "dio@example.com",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
					args.Get(0).(*models.User).ID = 1
				}).Return(nil)
			},
		},
		{
			name:  "email already exists",
			email: "existing@example.com",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repository.ErrEmailTaken)
			},
			wantErr: ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMocks(userRepo)

			authService := NewAuthService(userRepo, nil, testConfig(), testLogger())
			user, err := authService.Register("dio", tt.email, "password123")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(1), user.ID)
			assert.Equal(t, models.RoleCustomer, user.Role)
			// Stored password is the hash, never the plaintext
			assert.NotEqual(t, "password123", user.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed := hashPassword(t, "password123")

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(*MockUserRepository)
		wantErr    error
	}{
		{
			name:     "success",
			email:    "dio@example.com",
			password: "password123",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByEmail", "dio@example.com").Return(&models.User{
					ID: 1, Email: "dio@example.com", Password: hashed, Role: models.RoleCustomer,
				}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByEmail", "nobody@example.com").Return(nil, repository.ErrUserNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "dio@example.com",
			password: "wrong",
			setupMocks: func(userRepo *MockUserRepository) {
				userRepo.On("FindByEmail", "dio@example.com").Return(&models.User{
					ID: 1, Email: "dio@example.com", Password: hashed, Role: models.RoleCustomer,
				}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMocks(userRepo)

			authService := NewAuthService(userRepo, nil, testConfig(), testLogger())
			user, token, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				// Unknown email and wrong password must be indistinguishable
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, uint(1), user.ID)
		})
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", "admin@example.com").Return(&models.User{
		ID: 7, Email: "admin@example.com", Password: hashPassword(t, "secret"), Role: models.RoleAdmin,
	}, nil)

	authService := NewAuthService(userRepo, nil, testConfig(), testLogger())
	_, token, err := authService.Login("admin@example.com", "secret")
	require.NoError(t, err)

	claims, err := authService.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthService_ValidateAccessToken_Invalid(t *testing.T) {
	authService := NewAuthService(new(MockUserRepository), nil, testConfig(), testLogger())

	// A token minted under a different secret must not validate
	repo := new(MockUserRepository)
	repo.On("FindByEmail", "x@example.com").Return(&models.User{ID: 1, Email: "x@example.com", Password: hashPassword(t, "p"), Role: models.RoleCustomer}, nil)
	other := NewAuthService(repo, nil, &config.Config{JWTSecret: "other-secret", TokenExpiration: 3600}, testLogger())
	_, foreignToken, err := other.Login("x@example.com", "p")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", foreignToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestAuthService_GoogleLogin(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		verifier := new(MockGoogleVerifier)

		verifier.On("Verify", mock.Anything, "valid-token").Return(&googleauth.Identity{Email: "dio@example.com", Name: "Dio"}, nil)
		userRepo.On("FindByEmail", "dio@example.com").Return(&models.User{
			ID: 3, Email: "dio@example.com", Username: "dio", Role: models.RoleCustomer,
		}, nil)

		authService := NewAuthService(userRepo, verifier, testConfig(), testLogger())
		user, token, err := authService.GoogleLogin(context.Background(), "valid-token")
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("provisions new user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		verifier := new(MockGoogleVerifier)

		verifier.On("Verify", mock.Anything, "valid-token").Return(&googleauth.Identity{Email: "new@example.com", Name: ""}, nil)
		userRepo.On("FindByEmail", "new@example.com").Return(nil, repository.ErrUserNotFound)
		userRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
			args.Get(0).(*models.User).ID = 9
		}).Return(nil)

		authService := NewAuthService(userRepo, verifier, testConfig(), testLogger())
		user, token, err := authService.GoogleLogin(context.Background(), "valid-token")
		require.NoError(t, err)
		assert.Equal(t, uint(9), user.ID)
		// Username falls back to the email local part when Google sends no name
		assert.Equal(t, "new", user.Username)
		assert.Equal(t, models.RoleCustomer, user.Role)
		assert.NotEmpty(t, user.Password)
		assert.NotEmpty(t, token)
		userRepo.AssertExpectations(t)
	})

	t.Run("invalid token", func(t *testing.T) {
		verifier := new(MockGoogleVerifier)
		verifier.On("Verify", mock.Anything, "bad-token").Return(nil, googleauth.ErrInvalidIDToken)

		authService := NewAuthService(new(MockUserRepository), verifier, testConfig(), testLogger())
		_, _, err := authService.GoogleLogin(context.Background(), "bad-token")
		assert.ErrorIs(t, err, ErrInvalidGoogleToken)
	})
}
