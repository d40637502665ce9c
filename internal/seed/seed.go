package seed

import (
	"context"
	"fmt"
	"log"

	"locallens/internal/models"
	"locallens/internal/repository"

	"gorm.io/gorm"
)

// Seeder populates the database with demo content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll wipes seeded content. Thanks go first so the post and user
// deletes never trip foreign keys.
func (s *Seeder) ClearAll() error {
	for _, stmt := range []string{
		"DELETE FROM thanks",
		"DELETE FROM posts",
		"DELETE FROM users",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("cleanup failed on %q: %w", stmt, err)
		}
	}
	log.Println("Cleared existing demo data")
	return nil
}

// Run seeds categories, users, posts and a plausible spread of thanks.
func (s *Seeder) Run(ctx context.Context) error {
	if err := repository.NewCategoryRepository(s.db).SeedDefaults(ctx); err != nil {
		return fmt.Errorf("category seeding failed: %w", err)
	}

	users := make([]*models.User, 0, s.factory.opts.Users)
	for i := 0; i < s.factory.opts.Users; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("user seeding failed: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	if len(users) == 0 {
		return nil
	}

	posts := make([]*models.Post, 0, s.factory.opts.Posts)
	for i := 0; i < s.factory.opts.Posts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("post seeding failed: %w", err)
	}
	log.Printf("Seeded %d posts", len(posts))

	// Roughly a third of the user/post pairs thank each other; duplicates
	// collapse on the unique index.
	thanks := 0
	for _, post := range posts {
		for _, user := range users {
			if s.factory.rng.Intn(3) != 0 {
				continue
			}
			if err := s.factory.CreateThank(user.ID, post.ID); err != nil {
				return fmt.Errorf("thank seeding failed: %w", err)
			}
			thanks++
		}
	}
	log.Printf("Seeded %d thanks", thanks)
	return nil
}
