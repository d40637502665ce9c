package seed

import (
	"context"
	"testing"

	"locallens/internal/database"
	"locallens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_Run(t *testing.T) {
	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)

	seeder := NewSeeder(db, Options{Users: 5, Posts: 12})
	require.NoError(t, seeder.Run(context.Background()))

	var userCount, postCount, categoryCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&categoryCount).Error)

	assert.Equal(t, int64(5), userCount)
	assert.Equal(t, int64(12), postCount)
	assert.Equal(t, int64(len(models.DefaultCategories)), categoryCount)
}

func TestSeeder_ClearAll(t *testing.T) {
	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)

	seeder := NewSeeder(db, Options{Users: 3, Posts: 4})
	require.NoError(t, seeder.Run(context.Background()))
	require.NoError(t, seeder.ClearAll())

	var userCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Unscoped().Model(&models.Post{}).Count(&postCount).Error)
	assert.Zero(t, userCount)
	assert.Zero(t, postCount)
}

func TestFactory_BuildPost_Spread(t *testing.T) {
	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)

	f := NewFactory(db, Options{MaxDays: 30})
	user, err := f.CreateUser()
	require.NoError(t, err)

	post := f.BuildPost(user)
	assert.NotEmpty(t, post.Title)
	assert.NotEmpty(t, post.Content)
	assert.NotEmpty(t, post.Category)
	assert.NotEmpty(t, post.Location)
	assert.Equal(t, user.ID, post.UserID)
	assert.False(t, post.CreatedAt.IsZero())
}
