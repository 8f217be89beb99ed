package service

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"

	"github.com/dioprayoga/garasi/backend-go/internal/database"
	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
	"github.com/dioprayoga/garasi/backend-go/internal/storage"
)

// CarInput carries the fields an admin submits when creating or updating a
// listing. Validation of required fields happens at the binding layer.
type CarInput struct {
	Brand        string
	Type         string
	Fuel         string
	Features     []string
	Price        int64
	ImageURL     string
	CategoryID   uint
	ReleasedYear string
	Condition    string
}

// CarService defines the interface for inventory business logic
type CarService interface {
	List(ctx context.Context) ([]models.Car, error)
	GetByID(id uint) (*models.Car, error)
	Create(ctx context.Context, ownerID uint, input CarInput) (*models.Car, error)
	Update(ctx context.Context, id uint, input CarInput) (*models.Car, error)
	Delete(ctx context.Context, id uint) error
	ReplaceImage(ctx context.Context, id uint, file multipart.File) (string, error)
}

type carService struct {
	carRepo      repository.CarRepository
	categoryRepo repository.CategoryRepository
	cache        *database.RedisClient
	uploader     storage.Uploader
	logger       *slog.Logger
}

// NewCarService creates a new inventory service instance. cache may be nil
// when Redis is unavailable; every cache interaction degrades to the
// database.
func NewCarService(
	carRepo repository.CarRepository,
	categoryRepo repository.CategoryRepository,
	cache *database.RedisClient,
	uploader storage.Uploader,
	logger *slog.Logger,
) CarService {
	return &carService{
		carRepo:      carRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		uploader:     uploader,
		logger:       logger,
	}
}

func (s *carService) List(ctx context.Context) ([]models.Car, error) {
	if s.cache != nil {
		if cars, ok := s.cache.GetCarList(ctx); ok {
			return cars, nil
		}
	}

	cars, err := s.carRepo.FindAll()
	if err != nil {
		s.logger.Error("❌ [CarService] Failed to list cars", "error", err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetCarList(ctx, cars)
	}
	return cars, nil
}

func (s *carService) GetByID(id uint) (*models.Car, error) {
	return s.carRepo.FindByID(id)
}

func (s *carService) Create(ctx context.Context, ownerID uint, input CarInput) (*models.Car, error) {
	s.logger.Info("🚗 [CarService] Creating car", "brand", input.Brand, "type", input.Type, "owner_id", ownerID)

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		return nil, err
	}

	car := &models.Car{
		UserID:       ownerID,
		CategoryID:   input.CategoryID,
		Brand:        input.Brand,
		Type:         input.Type,
		Fuel:         input.Fuel,
		Features:     input.Features,
		Price:        input.Price,
		ImageURL:     input.ImageURL,
		ReleasedYear: input.ReleasedYear,
		Condition:    input.Condition,
	}

	if err := s.carRepo.Create(car); err != nil {
		s.logger.Error("❌ [CarService] Failed to create car", "error", err)
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("✅ [CarService] Car created", "car_id", car.ID)
	return s.carRepo.FindByID(car.ID)
}

func (s *carService) Update(ctx context.Context, id uint, input CarInput) (*models.Car, error) {
	car, err := s.carRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		return nil, err
	}

	car.Brand = input.Brand
	car.Type = input.Type
	car.Fuel = input.Fuel
	car.Features = input.Features
	car.Price = input.Price
	car.ImageURL = input.ImageURL
	car.CategoryID = input.CategoryID
	car.ReleasedYear = input.ReleasedYear
	car.Condition = input.Condition

	if err := s.carRepo.Update(car); err != nil {
		s.logger.Error("❌ [CarService] Failed to update car", "car_id", id, "error", err)
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("✅ [CarService] Car updated", "car_id", id)
	return s.carRepo.FindByID(id)
}

func (s *carService) Delete(ctx context.Context, id uint) error {
	if err := s.carRepo.Delete(id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("✅ [CarService] Car deleted", "car_id", id)
	return nil
}

// ReplaceImage uploads the file to the storage provider and persists the
// returned URL on the car row.
func (s *carService) ReplaceImage(ctx context.Context, id uint, file multipart.File) (string, error) {
	if s.uploader == nil {
		s.logger.Error("❌ [CarService] Image storage provider not configured")
		return "", ErrImageUploadFailed
	}

	if _, err := s.carRepo.FindByID(id); err != nil {
		return "", err
	}

	url, err := s.uploader.UploadCarImage(ctx, id, file)
	if err != nil {
		s.logger.Error("❌ [CarService] Image upload failed", "car_id", id, "error", err)
		return "", ErrImageUploadFailed
	}

	if err := s.carRepo.UpdateImageURL(id, url); err != nil {
		return "", err
	}

	s.invalidate(ctx)
	s.logger.Info("✅ [CarService] Car image replaced", "car_id", id)
	return url, nil
}

func (s *carService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateCarList(ctx)
	}
}

// Service errors
var ErrImageUploadFailed = errors.New("image upload failed")
