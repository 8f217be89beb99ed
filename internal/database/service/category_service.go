package service

import (
	"context"
	"log/slog"

	"github.com/dioprayoga/garasi/backend-go/internal/database"
	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	List() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, id uint, name string) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *database.RedisClient
	logger       *slog.Logger
}

// NewCategoryService creates a new category service instance
func NewCategoryService(categoryRepo repository.CategoryRepository, cache *database.RedisClient, logger *slog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
		logger:       logger,
	}
}

func (s *categoryService) List() ([]models.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetByID(id uint) (*models.Category, error) {
	return s.categoryRepo.FindByID(id)
}

func (s *categoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		s.logger.Error("❌ [CategoryService] Failed to create category", "error", err)
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("✅ [CategoryService] Category created", "category_id", category.ID)
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, name string) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		s.logger.Error("❌ [CategoryService] Failed to update category", "category_id", id, "error", err)
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("✅ [CategoryService] Category updated", "category_id", id)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("✅ [CategoryService] Category deleted", "category_id", id)
	return nil
}

// Cached car listings embed category names, so category writes invalidate
// the inventory cache too.
func (s *categoryService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateCarList(ctx)
	}
}
