package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dioprayoga/garasi/backend-go/internal/database/models"
)

// CandidateFilter narrows inventory for the recommendation flow. MaxPrice is
// always set; the remaining fields AND-compose case-insensitive substring
// matches when non-empty.
type CandidateFilter struct {
	MaxPrice   int64
	Brand      string
	Fuel       string
	CategoryID *uint
}

// CarRepository defines the interface for car data operations
type CarRepository interface {
	Create(car *models.Car) error
	FindAll() ([]models.Car, error)
	FindByID(id uint) (*models.Car, error)
	FindByIDs(ids []uint) ([]models.Car, error)
	FindCandidates(filter CandidateFilter) ([]models.Car, error)
	Update(car *models.Car) error
	UpdateImageURL(id uint, imageURL string) error
	Delete(id uint) error
}

type carRepository struct {
	db *gorm.DB
}

// NewCarRepository creates a new car repository instance
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(car *models.Car) error {
	return r.db.Create(car).Error
}

func (r *carRepository) FindAll() ([]models.Car, error) {
	var cars []models.Car
	err := r.db.Preload("Category").Order("id").Find(&cars).Error
	return cars, err
}

func (r *carRepository) FindByID(id uint) (*models.Car, error) {
	var car models.Car
	err := r.db.Preload("Category").First(&car, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) FindByIDs(ids []uint) ([]models.Car, error) {
	var cars []models.Car
	err := r.db.Preload("Category").Where("id IN ?", ids).Find(&cars).Error
	return cars, err
}

// FindCandidates returns cars at or under the price ceiling matching the
// optional preference filters, most expensive first.
func (r *carRepository) FindCandidates(filter CandidateFilter) ([]models.Car, error) {
	query := r.db.Preload("Category").Where("price <= ?", filter.MaxPrice)

	if filter.Brand != "" {
		query = query.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(filter.Brand)+"%")
	}
	if filter.Fuel != "" {
		query = query.Where("LOWER(fuel) LIKE ?", "%"+strings.ToLower(filter.Fuel)+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var cars []models.Car
	err := query.Order("price DESC").Find(&cars).Error
	return cars, err
}

func (r *carRepository) Update(car *models.Car) error {
	return r.db.Save(car).Error
}

func (r *carRepository) UpdateImageURL(id uint, imageURL string) error {
	result := r.db.Model(&models.Car{}).Where("id = ?", id).Update("image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCarNotFound
	}
	return nil
}

func (r *carRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Car{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCarNotFound
	}
	return nil
}

// Repository errors
var (
	ErrCarNotFound = errors.New("car not found")
)
