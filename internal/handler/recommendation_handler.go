package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dioprayoga/garasi/backend-go/internal/database/service"
	"github.com/dioprayoga/garasi/backend-go/internal/middleware"
)

// RecommendationHandler handles POST /ai/recommend
type RecommendationHandler struct {
	service service.RecommendationService
	limiter middleware.RateLimiter
	logger  *slog.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service service.RecommendationService, limiter middleware.RateLimiter, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		limiter: limiter,
		logger:  logger,
	}
}

type RecommendRequest struct {
	Budget      int64  `json:"budget"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Fuel        string `json:"fuel"`
	Description string `json:"description"`
}

// Recommend narrows inventory to the user's budget and preferences and
// returns up to three ranked cars. Each user gets a fixed number of calls
// per UTC day.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Budget must be a number greater than 0"})
		return
	}

	allowed, used, limit, err := h.limiter.CheckDailyLimit(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Warn("⚠️ [Handler] Rate limit check failed, allowing request", "error", err)
	} else if !allowed {
		h.logger.Info("🚫 [Handler] Daily recommendation limit reached", "user_id", claims.UserID, "used", used, "limit", limit)
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Anda telah mencapai batas rekomendasi harian. Silakan coba lagi besok."})
		return
	}

	result, err := h.service.Recommend(c.Request.Context(), req.Budget, service.Preferences{
		Brand:       req.Brand,
		Category:    req.Category,
		Fuel:        req.Fuel,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidBudget) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Budget must be a number greater than 0"})
			return
		}
		h.logger.Error("❌ [Handler] Recommendation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if err := h.limiter.IncrementDailyCount(c.Request.Context(), claims.UserID); err != nil {
		h.logger.Warn("⚠️ [Handler] Failed to record rate limit usage", "error", err)
	}

	c.JSON(http.StatusOK, result)
}
