package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dioprayoga/garasi/backend-go/internal/config"
	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
	"github.com/dioprayoga/garasi/backend-go/internal/googleauth"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(username, email, password string) (*models.User, error)
	Login(email, password string) (*models.User, string, error)
	GoogleLogin(ctx context.Context, idToken string) (*models.User, string, error)
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims is the decoded bearer token payload. Role has already been
// normalized into the closed set.
type TokenClaims struct {
	UserID uint
	Email  string
	Role   models.Role
}

type authService struct {
	userRepo repository.UserRepository
	verifier googleauth.Verifier
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	verifier googleauth.Verifier,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		verifier: verifier,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *authService) Register(username, email, password string) (*models.User, error) {
	s.logger.Info("📝 [AuthService] Registration attempt", "email", email, "username", username)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user, nil
}

func (s *authService) Login(email, password string) (*models.User, string, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate token", "error", err)
		return nil, "", err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return user, token, nil
}

// GoogleLogin verifies the Google ID token and signs the user in,
// provisioning a customer account on first sight of the email. The
// placeholder password is random and bcrypt-hashed, so the account stays
// unreachable through password login.
func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*models.User, string, error) {
	s.logger.Info("🔐 [AuthService] Google login attempt")

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Google token verification failed", "error", err)
		return nil, "", ErrInvalidGoogleToken
	}

	user, err := s.userRepo.FindByEmail(identity.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Error("❌ [AuthService] Database error", "error", err)
			return nil, "", err
		}

		user, err = s.provisionGoogleUser(identity)
		if err != nil {
			s.logger.Error("❌ [AuthService] Failed to provision Google user", "error", err)
			return nil, "", err
		}
		s.logger.Info("✅ [AuthService] Google user provisioned", "user_id", user.ID)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate token", "error", err)
		return nil, "", err
	}

	s.logger.Info("✅ [AuthService] Google user logged in", "user_id", user.ID)
	return user, token, nil
}

func (s *authService) provisionGoogleUser(identity *googleauth.Identity) (*models.User, error) {
	placeholder := make([]byte, 24)
	if _, err := rand.Read(placeholder); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(base64.URLEncoding.EncodeToString(placeholder)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	username := identity.Name
	if username == "" {
		username = strings.SplitN(identity.Email, "@", 2)[0]
	}

	user := &models.User{
		Username: username,
		Email:    identity.Email,
		Password: string(hashed),
		Role:     models.RoleCustomer,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &TokenClaims{
		UserID: uint(userID),
		Email:  email,
		Role:   models.ParseRole(role),
	}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(time.Duration(s.cfg.TokenExpiration) * time.Second).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// Service errors
var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidGoogleToken = errors.New("invalid Google ID token")
)
