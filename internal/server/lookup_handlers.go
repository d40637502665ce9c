package server

import (
	"locallens/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
// @Summary List categories
// @Description List all categories; an empty store is seeded with the default set first
// @Tags lookups
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.lookups.Categories(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(categories)
}

// GetLocations handles GET /api/locations
// @Summary List locations
// @Description List the distinct locations across posts, or the default list when no posts exist
// @Tags lookups
// @Produce json
// @Success 200 {array} string
// @Router /locations [get]
func (s *Server) GetLocations(c *fiber.Ctx) error {
	locations, err := s.lookups.Locations(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(locations)
}
