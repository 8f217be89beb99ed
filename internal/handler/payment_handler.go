package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
	"github.com/dioprayoga/garasi/backend-go/internal/database/service"
	"github.com/dioprayoga/garasi/backend-go/internal/middleware"
)

// PaymentHandler handles the Stripe checkout flow
type PaymentHandler struct {
	service service.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger,
	}
}

type CheckoutRequest struct {
	CarID uint `json:"car_id" binding:"required"`
}

// CreateCheckoutSession handles POST /payment/create-checkout-session
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		messages := validationMessages(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Car is required", "errors": messages})
		return
	}

	session, err := h.service.CreateCheckoutSession(req.CarID, claims.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":  session.ID,
		"url": session.URL,
	})
}

// Success handles GET /payment/success?session_id=... — the redirect target
// after Stripe confirms payment. It removes the purchased car from the
// buyer's wishlist.
func (h *PaymentHandler) Success(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing session_id"})
		return
	}

	confirmation, err := h.service.HandleSuccess(sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment successful",
		"payment": confirmation,
	})
}

// Cancel handles GET /payment/cancel
func (h *PaymentHandler) Cancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Payment canceled"})
}

// Webhook handles POST /payment/webhook. Stripe signs the raw body, so it
// must be read before any JSON binding touches it.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read request body"})
		return
	}

	if err := h.service.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		if errors.Is(err, service.ErrWebhookSignature) {
			h.logger.Warn("⚠️ [Handler] Webhook signature verification failed", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Webhook signature verification failed"})
			return
		}
		h.logger.Error("❌ [Handler] Webhook processing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// handleServiceError maps service errors to HTTP responses
func (h *PaymentHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrCarNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
	case errors.Is(err, service.ErrAmountAboveLimit), errors.Is(err, service.ErrAmountBelowLimit):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}
