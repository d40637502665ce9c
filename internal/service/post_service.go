package service

import (
	"context"

	"locallens/internal/middleware"
	"locallens/internal/models"
	"locallens/internal/repository"
)

const (
	maxTitleLen   = 300
	maxContentLen = 10000
)

// PostService implements post listing, authoring and the thank toggle.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePostInput is the payload for Create.
type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	Category string
	Location string
}

// UpdatePostInput is the payload for Update. Empty fields keep their
// current value.
type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Content  string
	Category string
	Location string
}

// List returns post views narrowed by the filter, most recent first (or
// by popularity when requested). ThankedByUser reflects currentUserID's
// own marks; zero means anonymous and every flag is false.
func (s *PostService) List(ctx context.Context, filter repository.PostFilter, currentUserID uint) ([]models.PostView, error) {
	posts, err := s.postRepo.List(ctx, filter, currentUserID)
	if err != nil {
		return nil, err
	}
	return models.Views(posts), nil
}

// Get returns a single post view.
func (s *PostService) Get(ctx context.Context, id, currentUserID uint) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	view := post.View()
	return &view, nil
}

// Create inserts a new post for the given author. The author must
// resolve to an existing user.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.PostView, error) {
	if in.Title == "" || in.Content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}
	if in.Category == "" || in.Location == "" {
		return nil, models.NewValidationError("Category and location are required")
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Location: in.Location,
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.Get(ctx, post.ID, in.UserID)
}

// Update edits a post's content fields. Only the author may edit; the
// thank set and counters are never touched here.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.Category != "" {
		post.Category = in.Category
	}
	if in.Location != "" {
		post.Location = in.Location
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.Get(ctx, in.PostID, in.UserID)
}

// Delete removes a post. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleThank flips the caller's thank mark on a post and returns the
// updated view; ThankedByUser reports the new membership state. Calling
// it twice in a row restores the original state.
func (s *PostService) ToggleThank(ctx context.Context, userID, postID uint) (*models.PostView, error) {
	// Resolve the post first so an unknown ID is a 404, not a dangling
	// thank row.
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	thanked, err := s.postRepo.ToggleThank(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	state := "unthanked"
	if thanked {
		state = "thanked"
	}
	middleware.ThankToggles.WithLabelValues(state).Inc()

	return s.Get(ctx, postID, userID)
}
