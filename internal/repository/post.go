package repository

import (
	"context"
	"errors"

	"locallens/internal/cache"
	"locallens/internal/models"

	"gorm.io/gorm"
)

// Sort orders accepted by PostFilter.
const (
	SortRecent  = "recent"
	SortPopular = "popular"
)

// PostFilter narrows and orders a post listing. Empty fields match
// everything; category and location are exact matches.
type PostFilter struct {
	Category string
	Location string
	Sort     string
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, currentUserID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ToggleThank(ctx context.Context, userID, postID uint) (bool, error)
	DistinctLocations(ctx context.Context) ([]string, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		if err := r.applyThankDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		// Anonymous reads share a cache entry; thankedByUser is always
		// false for them so the entry is viewer-independent.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post

	query := r.applyThankDetails(r.db.WithContext(ctx), currentUserID).Preload("User")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}

	// Popularity is an alternate order over the same filtered set, not a
	// separate query. thank_count is a SELECT alias from
	// applyThankDetails and may be referenced in ORDER BY.
	switch filter.Sort {
	case SortPopular:
		query = query.Order("thank_count DESC, created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applyThankDetails adds subqueries to fetch the thank count and the
// requester's own thank state in a single query, so the count can never
// disagree with the underlying set.
func (r *postRepository) applyThankDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM thanks WHERE thanks.post_id = posts.id) as thank_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM thanks WHERE thanks.post_id = posts.id AND thanks.user_id = ?) as thanked_by_user", currentUserID)
	}

	return db.Select(selectQuery + ", false as thanked_by_user")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidatePostsList(ctx)
	return nil
}

// ToggleThank flips the (userID, postID) thank relation and reports the
// new membership state. The insert relies on the unique (user_id, post_id)
// index so two concurrent toggles cannot both observe "absent": exactly
// one insert wins and the loser falls through to the delete branch.
func (r *postRepository) ToggleThank(ctx context.Context, userID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO thanks (user_id, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}

	thanked := res.RowsAffected == 1
	if !thanked {
		// Already marked; this toggle removes it.
		if err := r.db.WithContext(ctx).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Thank{}).Error; err != nil {
			return false, models.NewInternalError(err)
		}
	}

	cache.InvalidatePost(ctx, postID)
	return thanked, nil
}

func (r *postRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	var locations []string
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Distinct("location").
		Where("location <> ''").
		Order("location").
		Pluck("location", &locations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return locations, nil
}
