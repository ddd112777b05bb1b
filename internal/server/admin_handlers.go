package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPendingPosts handles GET /api/admin/posts (moderation queue, newest first)
func (s *Server) GetPendingPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	posts, err := s.postService.ListPending(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(posts)
}

// ApprovePost handles POST /api/admin/posts/:id/approve
func (s *Server) ApprovePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.ApprovePost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	middleware.ModerationDecisions.WithLabelValues("approve").Inc()
	return c.JSON(post)
}

// RejectPost handles POST /api/admin/posts/:id/reject
func (s *Server) RejectPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.RejectPost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	middleware.ModerationDecisions.WithLabelValues("reject").Inc()
	return c.JSON(post)
}

// HidePost handles POST /api/admin/posts/:id/hide
func (s *Server) HidePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.HidePost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	middleware.ModerationDecisions.WithLabelValues("hide").Inc()
	return c.JSON(post)
}

// GetPostStats handles GET /api/admin/posts/:id/stats
func (s *Server) GetPostStats(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.analyticsService.StatsFor(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(stats)
}

// GetUserRollup handles GET /api/admin/users/:id/rollup
func (s *Server) GetUserRollup(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	rollup, err := s.analyticsService.UserRollup(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(rollup)
}
