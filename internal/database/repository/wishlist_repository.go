package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
)

// WishlistRepository defines the interface for wishlist data operations
type WishlistRepository interface {
	Create(item *models.WishlistItem) error
	ListByUser(userID uint) ([]models.WishlistItem, error)
	FindByIDForUser(id, userID uint) (*models.WishlistItem, error)
	FindByUserAndCar(userID, carID uint) (*models.WishlistItem, error)
	Delete(id uint) error
	DeleteByUserAndCar(userID, carID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a new wishlist repository instance
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Create inserts the row and reports a duplicate (user, car) pair through
// ErrAlreadyInWishlist. The unique index is what enforces the rule, so two
// racing adds resolve here rather than in a pre-check.
func (r *wishlistRepository) Create(item *models.WishlistItem) error {
	err := r.db.Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyInWishlist
	}
	return err
}

func (r *wishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.
		Preload("Car").
		Preload("Car.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *wishlistRepository) FindByIDForUser(id, userID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishlistItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) FindByUserAndCar(userID, carID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.Where("user_id = ? AND car_id = ?", userID, carID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishlistItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) Delete(id uint) error {
	result := r.db.Delete(&models.WishlistItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

// DeleteByUserAndCar removes the pair if present. Deleting a missing row is
// not an error; the payment paths call this after the provider already
// confirmed the purchase.
func (r *wishlistRepository) DeleteByUserAndCar(userID, carID uint) error {
	return r.db.Where("user_id = ? AND car_id = ?", userID, carID).
		Delete(&models.WishlistItem{}).Error
}

// Repository errors
var (
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	ErrAlreadyInWishlist    = errors.New("car already in wishlist")
)
