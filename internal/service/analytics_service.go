package service

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// AnalyticsService maintains per-post view counters and per-user rollups.
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	postRepo      repository.PostRepository
}

func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	postRepo repository.PostRepository,
) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		postRepo:      postRepo,
	}
}

// RecordView counts one public read of a post. The stat row is created on
// first view with the post's author denormalized onto it, so rollups never
// join through posts. Callers gate this to approved posts.
func (s *AnalyticsService) RecordView(ctx context.Context, postID, authorID uint) (*models.ViewStat, error) {
	return s.analyticsRepo.IncrementView(ctx, postID, authorID)
}

// StatsFor composes the analytics view of one post. A post that has never
// been viewed reports zero views rather than a missing stat.
func (s *AnalyticsService) StatsFor(ctx context.Context, postID uint) (*models.PostStats, error) {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}

	stats := &models.PostStats{
		PostID:       postID,
		LikeCount:    post.LikesCount,
		CommentCount: post.CommentsCount,
	}

	stat, err := s.analyticsRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if stat != nil {
		stats.ViewCount = stat.Views
		lastViewed := stat.LastViewed
		stats.LastViewed = &lastViewed
	}
	return stats, nil
}

// UserRollup aggregates across every post the user has authored. A user with
// no posts has no rollup; that is reported as not found so the average is
// never computed over zero posts.
func (s *AnalyticsService) UserRollup(ctx context.Context, userID uint) (*models.UserRollup, error) {
	var rollup *models.UserRollup
	err := cache.Aside(ctx, cache.UserRollupKey(userID), &rollup, cache.RollupTTL, func() error {
		var fetchErr error
		rollup, fetchErr = s.computeRollup(ctx, userID)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return rollup, nil
}

func (s *AnalyticsService) computeRollup(ctx context.Context, userID uint) (*models.UserRollup, error) {
	totalPosts, err := s.analyticsRepo.CountPostsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if totalPosts == 0 {
		return nil, models.NewNotFoundError("Rollup for user", userID)
	}

	totalViews, err := s.analyticsRepo.SumViewsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.analyticsRepo.CountLikesByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserRollup{
		UserID:              userID,
		TotalPosts:          totalPosts,
		TotalViews:          totalViews,
		TotalLikes:          totalLikes,
		AverageLikesPerPost: float64(totalLikes) / float64(totalPosts),
	}, nil
}
