package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dioprayoga/garasi/backend-go/internal/database/service"
)

// AuthMiddleware handles bearer token validation and role gating
type AuthMiddleware struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(service service.AuthService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		service: service,
		logger:  logger,
	}
}

// RequireAuth validates the bearer token and stores the decoded claims in
// the context under "claims" (plus "userID" for convenience).
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.logger.Warn("⚠️ [Middleware] Missing Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.logger.Warn("⚠️ [Middleware] Invalid Authorization header format")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.service.ValidateAccessToken(parts[1])
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		m.logger.Debug("✅ [Middleware] Token validated", "user_id", claims.UserID, "role", claims.Role)

		c.Next()
	}
}

// RequireAdmin gates inventory writes. Must run after RequireAuth. The role
// comes from the token claims where it was normalized into the closed set,
// so no string comparison against case variants happens here.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
			c.Abort()
			return
		}

		if !claims.Role.CanManageInventory() {
			m.logger.Warn("⚠️ [Middleware] Forbidden access", "user_id", claims.UserID, "role", claims.Role)
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden access"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetClaims returns the decoded token claims set by RequireAuth, or nil.
func GetClaims(c *gin.Context) *service.TokenClaims {
	value, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := value.(*service.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
