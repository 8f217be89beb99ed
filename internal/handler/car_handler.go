package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
	"github.com/dioprayoga/garasi/backend-go/internal/database/service"
	"github.com/dioprayoga/garasi/backend-go/internal/middleware"
)

// CarHandler handles HTTP requests for the car inventory
type CarHandler struct {
	service     service.CarService
	maxFileSize int64
	logger      *slog.Logger
}

// NewCarHandler creates a new car handler
func NewCarHandler(service service.CarService, maxFileSize int64, logger *slog.Logger) *CarHandler {
	return &CarHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

type CarRequest struct {
	Brand        string   `json:"brand" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	Fuel         string   `json:"fuel" binding:"required"`
	Features     []string `json:"features" binding:"required,min=1"`
	Price        int64    `json:"price" binding:"required,gt=0"`
	ImageURL     string   `json:"image_url"`
	CategoryID   uint     `json:"category_id" binding:"required"`
	ReleasedYear string   `json:"released_year" binding:"required"`
	Condition    string   `json:"condition" binding:"required"`
}

func (r *CarRequest) toInput() service.CarInput {
	return service.CarInput{
		Brand:        r.Brand,
		Type:         r.Type,
		Fuel:         r.Fuel,
		Features:     r.Features,
		Price:        r.Price,
		ImageURL:     r.ImageURL,
		CategoryID:   r.CategoryID,
		ReleasedYear: r.ReleasedYear,
		Condition:    r.Condition,
	}
}

// List handles GET /cars (public)
func (h *CarHandler) List(c *gin.Context) {
	cars, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

// GetByID handles GET /cars/:carId (public)
func (h *CarHandler) GetByID(c *gin.Context) {
	id, ok := h.carID(c)
	if !ok {
		return
	}

	car, err := h.service.GetByID(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// Create handles POST /cars (admin)
func (h *CarHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid car payload", "error", err)
		messages := validationMessages(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": strings.Join(messages, ", "), "errors": messages})
		return
	}

	car, err := h.service.Create(c.Request.Context(), claims.UserID, req.toInput())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

// Update handles PUT /cars/:carId (admin)
func (h *CarHandler) Update(c *gin.Context) {
	id, ok := h.carID(c)
	if !ok {
		return
	}

	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid car payload", "error", err)
		messages := validationMessages(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": strings.Join(messages, ", "), "errors": messages})
		return
	}

	car, err := h.service.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// Delete handles DELETE /cars/:carId (admin)
func (h *CarHandler) Delete(c *gin.Context) {
	id, ok := h.carID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}

// UploadImage handles PATCH /cars/:carId (admin, multipart field "image").
// The new image replaces whatever URL the row held.
func (h *CarHandler) UploadImage(c *gin.Context) {
	id, ok := h.carID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		h.logger.Warn("⚠️ [Handler] No image file in upload request", "car_id", id)
		c.JSON(http.StatusBadRequest, gin.H{"message": "No image file uploaded"})
		return
	}

	if header.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File size too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("❌ [Handler] Failed to open uploaded file", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.service.ReplaceImage(c.Request.Context(), id, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Image has been updated successfully",
		"image_url": url,
	})
}

func (h *CarHandler) carID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("carId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps service errors to HTTP responses
func (h *CarHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrCarNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
	case errors.Is(err, repository.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category not found"})
	case errors.Is(err, service.ErrImageUploadFailed):
		c.JSON(http.StatusBadGateway, gin.H{"message": "Image storage provider error"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}
