package services

import (
	"errors"
	"strings"

	"github.com/nhatrovn/rental-backend/internal/models"
	"github.com/nhatrovn/rental-backend/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrAmenityNotFound  = errors.New("amenity not found")
)

// CatalogService manages the two lookup tables listings hang off:
// categories (room types) and amenities.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type NamedItemRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *CatalogService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, errors.New("failed to fetch categories")
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(req NamedItemRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	category := models.Category{Name: name, Slug: utils.Slugify(name)}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, errors.New("failed to create category")
	}
	return &category, nil
}

func (s *CatalogService) UpdateCategory(id uint, req NamedItemRequest) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, ErrCategoryNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	category.Name = name
	category.Slug = utils.Slugify(name)
	if err := s.db.Save(&category).Error; err != nil {
		return nil, errors.New("failed to update category")
	}
	return &category, nil
}

func (s *CatalogService) DeleteCategory(id uint) error {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return ErrCategoryNotFound
	}

	var count int64
	if err := s.db.Model(&models.Post{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("category is still in use by posts")
	}

	return s.db.Delete(&category).Error
}

func (s *CatalogService) GetAmenities() ([]models.Amenity, error) {
	var amenities []models.Amenity
	if err := s.db.Order("name ASC").Find(&amenities).Error; err != nil {
		return nil, errors.New("failed to fetch amenities")
	}
	return amenities, nil
}

func (s *CatalogService) CreateAmenity(req NamedItemRequest) (*models.Amenity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	amenity := models.Amenity{Name: name, Slug: utils.Slugify(name)}
	if err := s.db.Create(&amenity).Error; err != nil {
		return nil, errors.New("failed to create amenity")
	}
	return &amenity, nil
}

func (s *CatalogService) UpdateAmenity(id uint, req NamedItemRequest) (*models.Amenity, error) {
	var amenity models.Amenity
	if err := s.db.First(&amenity, id).Error; err != nil {
		return nil, ErrAmenityNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	amenity.Name = name
	amenity.Slug = utils.Slugify(name)
	if err := s.db.Save(&amenity).Error; err != nil {
		return nil, errors.New("failed to update amenity")
	}
	return &amenity, nil
}

// DeleteAmenity detaches the amenity from every post before removing
// it.
func (s *CatalogService) DeleteAmenity(id uint) error {
	var amenity models.Amenity
	if err := s.db.First(&amenity, id).Error; err != nil {
		return ErrAmenityNotFound
	}

	if err := s.db.Model(&amenity).Association("Posts").Clear(); err != nil {
		return err
	}
	return s.db.Delete(&amenity).Error
}
