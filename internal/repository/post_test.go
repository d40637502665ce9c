package repository

import (
	"context"
	"testing"
	"time"

	"locallens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPost(t *testing.T, repo PostRepository, userID uint, title, category, location string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		Content:  "content of " + title,
		Category: category,
		Location: location,
		UserID:   userID,
	}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func TestPostRepository_ListFiltersAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice", "alice@example.com")

	p1 := createTestPost(t, repo, user.ID, "yard sale", "For Sale", "Erode")
	p2 := createTestPost(t, repo, user.ID, "street fair", "Events", "Erode")
	p3 := createTestPost(t, repo, user.ID, "movie night", "Events", "Salem")

	// Spread creation times so the order is deterministic.
	require.NoError(t, db.Model(p1).Update("created_at", time.Now().Add(-3*time.Hour)).Error)
	require.NoError(t, db.Model(p2).Update("created_at", time.Now().Add(-2*time.Hour)).Error)
	require.NoError(t, db.Model(p3).Update("created_at", time.Now().Add(-1*time.Hour)).Error)

	all, err := repo.List(ctx, PostFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "movie night", all[0].Title, "most recent first")
	assert.Equal(t, "yard sale", all[2].Title)

	events, err := repo.List(ctx, PostFilter{Category: "Events"}, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, p := range events {
		assert.Equal(t, "Events", p.Category)
	}
	assert.True(t, events[0].CreatedAt.After(events[1].CreatedAt))

	erodeEvents, err := repo.List(ctx, PostFilter{Category: "Events", Location: "Erode"}, 0)
	require.NoError(t, err)
	require.Len(t, erodeEvents, 1)
	assert.Equal(t, "street fair", erodeEvents[0].Title)

	// Author snapshot is joined at read time.
	assert.Equal(t, "alice", erodeEvents[0].User.Username)
}

func TestPostRepository_PopularSort(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice", "alice@example.com")
	fan1 := createTestUser(t, db, "bob", "bob@example.com")
	fan2 := createTestUser(t, db, "carol", "carol@example.com")

	quiet := createTestPost(t, repo, author.ID, "quiet", "News", "Erode")
	popular := createTestPost(t, repo, author.ID, "popular", "News", "Erode")
	_ = quiet

	_, err := repo.ToggleThank(ctx, fan1.ID, popular.ID)
	require.NoError(t, err)
	_, err = repo.ToggleThank(ctx, fan2.ID, popular.ID)
	require.NoError(t, err)

	posts, err := repo.List(ctx, PostFilter{Sort: SortPopular}, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "popular", posts[0].Title)
	assert.Equal(t, 2, posts[0].ThankCount)
	assert.Equal(t, 0, posts[1].ThankCount)
}

func TestPostRepository_ToggleThank_StrictToggle(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice", "alice@example.com")
	fan := createTestUser(t, db, "bob", "bob@example.com")

	post := createTestPost(t, repo, author.ID, "hello", "Discussion", "Erode")

	thanked, err := repo.ToggleThank(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, thanked)

	got, err := repo.GetByID(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ThankCount)
	assert.True(t, got.ThankedByUser)

	// Second toggle returns to the original state.
	thanked, err = repo.ToggleThank(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, thanked)

	got, err = repo.GetByID(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ThankCount)
	assert.False(t, got.ThankedByUser)
}

func TestPostRepository_ThankCountMatchesSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "alice", "alice@example.com")
	post := createTestPost(t, repo, author.ID, "hello", "Discussion", "Erode")

	fans := []*models.User{
		createTestUser(t, db, "bob", "bob@example.com"),
		createTestUser(t, db, "carol", "carol@example.com"),
		createTestUser(t, db, "dave", "dave@example.com"),
	}

	for i, fan := range fans {
		_, err := repo.ToggleThank(ctx, fan.ID, post.ID)
		require.NoError(t, err)

		var setSize int64
		require.NoError(t, db.Model(&models.Thank{}).Where("post_id = ?", post.ID).Count(&setSize).Error)

		got, err := repo.GetByID(ctx, post.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, int(setSize), got.ThankCount, "after toggle %d", i+1)
	}
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 9999, 0)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepository_DistinctLocations(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice", "alice@example.com")

	createTestPost(t, repo, user.ID, "a", "News", "Salem")
	createTestPost(t, repo, user.ID, "b", "News", "Erode")
	createTestPost(t, repo, user.ID, "c", "Events", "Salem")

	locations, err := repo.DistinctLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Erode", "Salem"}, locations)
}
