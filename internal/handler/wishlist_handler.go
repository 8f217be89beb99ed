package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
	"github.com/dioprayoga/garasi/backend-go/internal/database/service"
	"github.com/dioprayoga/garasi/backend-go/internal/middleware"
)

// WishlistHandler handles HTTP requests for the authenticated user's wishlist
type WishlistHandler struct {
	service service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(service service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  logger,
	}
}

// Add handles POST /wishlists/:carId
func (h *WishlistHandler) Add(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	carID, err := strconv.ParseUint(c.Param("carId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
		return
	}

	entry, err := h.service.Add(claims.UserID, uint(carID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// List handles GET /wishlists
func (h *WishlistHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	items, err := h.service.List(claims.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Remove handles DELETE /wishlists/:itemId. The path segment may be a
// wishlist row id or a car id; the service resolves both.
func (h *WishlistHandler) Remove(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	identifier, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Wishlist item not found"})
		return
	}

	if err := h.service.Remove(claims.UserID, uint(identifier)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car removed from wishlist"})
}

// handleServiceError maps service errors to HTTP responses
func (h *WishlistHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrCarNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
	case errors.Is(err, repository.ErrAlreadyInWishlist):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Car is already in your wishlist"})
	case errors.Is(err, repository.ErrWishlistItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Wishlist item not found"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}
