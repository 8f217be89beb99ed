package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(order *models.Order) error
	ListByUser(userID uint) ([]models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create stores the order. Stripe retries webhooks, so a session id seen
// twice is reported as ErrOrderExists and the caller treats it as done.
func (r *orderRepository) Create(order *models.Order) error {
	err := r.db.Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrOrderExists
	}
	return err
}

func (r *orderRepository) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// Repository errors
var (
	ErrOrderExists = errors.New("order already recorded")
)
