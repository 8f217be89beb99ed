package service

import (
	"errors"
	"log/slog"

	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
)

// WishlistEntry is the denormalized view returned when a car is added to a
// wishlist.
type WishlistEntry struct {
	ID  uint             `json:"id"`
	Car WishlistEntryCar `json:"car"`
}

// WishlistEntryCar carries the car fields the client renders in the wishlist
// modal.
type WishlistEntryCar struct {
	ID       uint   `json:"id"`
	Brand    string `json:"brand"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url"`
}

// WishlistService defines the interface for wishlist business logic
type WishlistService interface {
	Add(userID, carID uint) (*WishlistEntry, error)
	List(userID uint) ([]models.WishlistItem, error)
	Remove(userID, identifier uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	carRepo      repository.CarRepository
	logger       *slog.Logger
}

// NewWishlistService creates a new wishlist service instance
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	carRepo repository.CarRepository,
	logger *slog.Logger,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		carRepo:      carRepo,
		logger:       logger,
	}
}

// Add saves the car for the user. Duplicates surface from the insert itself
// (unique constraint), so two racing adds cannot both succeed.
func (s *wishlistService) Add(userID, carID uint) (*WishlistEntry, error) {
	car, err := s.carRepo.FindByID(carID)
	if err != nil {
		return nil, err
	}

	item := &models.WishlistItem{UserID: userID, CarID: carID}
	if err := s.wishlistRepo.Create(item); err != nil {
		if errors.Is(err, repository.ErrAlreadyInWishlist) {
			s.logger.Warn("⚠️ [WishlistService] Car already in wishlist", "user_id", userID, "car_id", carID)
			return nil, repository.ErrAlreadyInWishlist
		}
		s.logger.Error("❌ [WishlistService] Failed to add wishlist item", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [WishlistService] Car added to wishlist", "user_id", userID, "car_id", carID)
	return &WishlistEntry{
		ID: item.ID,
		Car: WishlistEntryCar{
			ID:       car.ID,
			Brand:    car.Brand,
			Type:     car.Type,
			Category: car.Category.Name,
			Price:    car.Price,
			ImageURL: car.ImageURL,
		},
	}, nil
}

func (s *wishlistService) List(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}

// Remove deletes a saved entry. The identifier is resolved as the wishlist
// item id first and as a car id second; some client screens only know the
// car.
func (s *wishlistService) Remove(userID, identifier uint) error {
	item, err := s.wishlistRepo.FindByIDForUser(identifier, userID)
	if errors.Is(err, repository.ErrWishlistItemNotFound) {
		item, err = s.wishlistRepo.FindByUserAndCar(userID, identifier)
	}
	if err != nil {
		return err
	}

	if err := s.wishlistRepo.Delete(item.ID); err != nil {
		return err
	}

	s.logger.Info("✅ [WishlistService] Wishlist item removed", "user_id", userID, "item_id", item.ID)
	return nil
}
