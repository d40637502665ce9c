package repository

import (
	"context"
	"testing"

	"locallens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_SeedDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	require.NoError(t, repo.SeedDefaults(ctx))

	categories, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(models.DefaultCategories))
	for i, c := range categories {
		assert.Equal(t, models.DefaultCategories[i].Name, c.Name, "seed order is stable")
	}
}

func TestCategoryRepository_SeedDefaults_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SeedDefaults(ctx))
	require.NoError(t, repo.SeedDefaults(ctx))

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(models.DefaultCategories))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Username: "alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, first))

	dup := &models.User{Username: "alice2", Email: "a@x.com", Password: "hash"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
