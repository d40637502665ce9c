package repository

import (
	"context"

	"locallens/internal/cache"
	"locallens/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	SeedDefaults(ctx context.Context) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// SeedDefaults inserts the fixed default categories. The on-conflict
// clause keeps it idempotent under concurrent first calls.
func (r *categoryRepository) SeedDefaults(ctx context.Context) error {
	for _, c := range models.DefaultCategories {
		category := c
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&category).Error; err != nil {
			return models.NewInternalError(err)
		}
	}
	cache.Invalidate(ctx, cache.CategoriesKey)
	return nil
}
