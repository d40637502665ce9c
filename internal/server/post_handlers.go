package server

import (
	"locallens/internal/models"
	"locallens/internal/repository"
	"locallens/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parsePostID extracts the :id route parameter.
func parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid post ID")
	}
	return uint(id), nil
}

// GetPosts handles GET /api/posts
// @Summary List posts
// @Description List posts, optionally narrowed by category and location
// @Tags posts
// @Produce json
// @Param category query string false "Exact category filter"
// @Param location query string false "Exact location filter"
// @Param sort query string false "recent (default) or popular"
// @Success 200 {array} models.PostView
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	userID, _ := s.optionalUserID(c)

	sort := c.Query("sort", repository.SortRecent)
	if sort != repository.SortRecent && sort != repository.SortPopular {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid sort; use recent or popular"))
	}

	filter := repository.PostFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Sort:     sort,
	}

	views, err := s.posts.List(c.Context(), filter, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(views)
}

// GetPost handles GET /api/posts/:id
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostView
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	userID, _ := s.optionalUserID(c)

	view, err := s.posts.Get(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(view)
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param x-auth-token header string true "Session token"
// @Param request body object{title=string,content=string,category=string,location=string} true "New post"
// @Success 201 {object} models.PostView
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Location string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.posts.Create(c.Context(), service.CreatePostInput{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Location: req.Location,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update post
// @Description Edit a post's fields; only the author may edit
// @Tags posts
// @Accept json
// @Produce json
// @Param x-auth-token header string true "Session token"
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostView
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := parsePostID(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Location string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.posts.Update(c.Context(), service.UpdatePostInput{
		UserID:   userID,
		PostID:   id,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Location: req.Location,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(view)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete post
// @Description Remove a post; only the author may delete
// @Tags posts
// @Produce json
// @Param x-auth-token header string true "Session token"
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := parsePostID(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.posts.Delete(c.Context(), userID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ThankPost handles PUT /api/posts/:id/thank
// @Summary Toggle thank
// @Description Flip the caller's thank mark on a post; calling twice restores the original state
// @Tags posts
// @Produce json
// @Param x-auth-token header string true "Session token"
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostView
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/thank [put]
func (s *Server) ThankPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := parsePostID(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	view, err := s.posts.ToggleThank(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(view)
}
