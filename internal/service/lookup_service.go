package service

import (
	"context"

	"locallens/internal/cache"
	"locallens/internal/models"
	"locallens/internal/repository"
)

// LookupService serves the category and location filter sources.
type LookupService struct {
	categoryRepo repository.CategoryRepository
	postRepo     repository.PostRepository
}

// NewLookupService returns a new LookupService.
func NewLookupService(categoryRepo repository.CategoryRepository, postRepo repository.PostRepository) *LookupService {
	return &LookupService{categoryRepo: categoryRepo, postRepo: postRepo}
}

// Categories returns all stored categories, seeding the fixed default
// set on first use of an empty store. Once seeded, subsequent calls just
// read.
func (s *LookupService) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := cache.Aside(ctx, cache.CategoriesKey, &categories, cache.CategoriesTTL, func() error {
		var fetchErr error
		categories, fetchErr = s.categoryRepo.List(ctx)
		if fetchErr != nil {
			return fetchErr
		}
		if len(categories) > 0 {
			return nil
		}
		if seedErr := s.categoryRepo.SeedDefaults(ctx); seedErr != nil {
			return seedErr
		}
		categories, fetchErr = s.categoryRepo.List(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Locations returns the distinct locations present across posts, or the
// fixed default list when no posts exist yet.
func (s *LookupService) Locations(ctx context.Context) ([]string, error) {
	var locations []string
	err := cache.Aside(ctx, cache.LocationsKey, &locations, cache.LocationsTTL, func() error {
		var fetchErr error
		locations, fetchErr = s.postRepo.DistinctLocations(ctx)
		if fetchErr != nil {
			return fetchErr
		}
		if len(locations) == 0 {
			locations = models.DefaultLocations
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return locations, nil
}
