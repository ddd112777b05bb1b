package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts (public, approved posts only)
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	currentUserID, _ := s.optionalUserID(c)

	posts, err := s.postService.ListPublic(c.Context(), service.ListPublicInput{
		Tag:           c.Query("tag"),
		Search:        c.Query("search"),
		Limit:         p.Limit,
		Offset:        p.Offset,
		CurrentUserID: currentUserID,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id (public single-post fetch).
// Each successful fetch counts one view; list reads do not.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPublicPost(c.Context(), postID, currentUserID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	var views int64
	stat, err := s.analyticsService.RecordView(c.Context(), post.ID, post.UserID)
	if err != nil {
		// The post itself loaded; losing one view count is not worth a 5xx.
		middleware.Logger.WarnContext(c.UserContext(), "failed to record view",
			"post_id", post.ID, "error", err)
	} else {
		views = stat.Views
		middleware.ViewsRecorded.Inc()
	}

	return c.JSON(fiber.Map{
		"post":  post,
		"views": views,
	})
}

// GetMyPosts handles GET /api/posts/mine (any status, newest first)
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	posts, err := s.postService.ListMine(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(posts)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string    `json:"title"`
		Content string    `json:"content"`
		Tags    *[]string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:  userID,
		PostID:  postID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like.
// Each call flips the caller's like on the post.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.postService.ToggleLike(c.Context(), userID, postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"post_id": postID,
		"liked":   liked,
	})
}
