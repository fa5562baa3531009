package repositories

import (
	"errors"

	"github.com/upboard/backend/internal/models"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category operations
type CategoryRepository interface {
	CreateCategory(category *models.Category) error
	GetCategories() ([]models.Category, error)
	GetCategoryBySlug(slug string) (*models.Category, error)
	SeedDefaults(names map[string]string) error
}

type postgresCategoryRepository struct {
	db *gorm.DB
}

func NewPostgresCategoryRepository(db *gorm.DB) CategoryRepository {
	return &postgresCategoryRepository{db: db}
}

func (r *postgresCategoryRepository) CreateCategory(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetCategories lists all categories, defaults first, then by name
func (r *postgresCategoryRepository) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("is_default DESC").Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *postgresCategoryRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// SeedDefaults creates the default categories (slug -> name) if missing
func (r *postgresCategoryRepository) SeedDefaults(names map[string]string) error {
	for slug, name := range names {
		category := models.Category{Name: name, Slug: slug, IsDefault: true}
		if err := r.db.Where("slug = ?", slug).FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	return nil
}
