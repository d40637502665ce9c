package client

import (
	"time"

	"locallens/internal/models"
)

// Canned demo content served when UseFallbackData is set and the server
// is unreachable. Kept small; it exists so a frontend keeps rendering
// during local development without a backend.

func fallbackCategories() []models.Category {
	out := make([]models.Category, len(models.DefaultCategories))
	copy(out, models.DefaultCategories)
	return out
}

func fallbackLocations() []string {
	out := make([]string, len(models.DefaultLocations))
	copy(out, models.DefaultLocations)
	return out
}

func fallbackPosts() []models.PostView {
	return []models.PostView{
		{
			ID:       1,
			Title:    "Street light out on Mill Road",
			Content:  "The light near the bus stop has been out for a week. Reported to the council, sharing here so people take care at night.",
			Category: "News",
			Location: "Erode",
			Date:     time.Now().Add(-24 * time.Hour),
			UserID:   1,
			Author:   models.Author{Username: "demo_resident", Avatar: models.DefaultAvatar},
		},
		{
			ID:       2,
			Title:    "Found: brown wallet near the market",
			Content:  "Picked up a brown leather wallet this morning. Describe it and it's yours.",
			Category: "Lost & Found",
			Location: "Coimbatore",
			Date:     time.Now().Add(-48 * time.Hour),
			UserID:   2,
			Author:   models.Author{Username: "demo_helper", Avatar: models.DefaultAvatar},
		},
	}
}
