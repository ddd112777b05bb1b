package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// AnalyticsRepository defines the interface for view statistics and rollups.
type AnalyticsRepository interface {
	// IncrementView bumps the view counter for a post, creating the stat row
	// on first view. The returned stat reflects the post-increment value.
	IncrementView(ctx context.Context, postID, authorID uint) (*models.ViewStat, error)
	GetByPostID(ctx context.Context, postID uint) (*models.ViewStat, error)
	SumViewsByAuthor(ctx context.Context, authorID uint) (int64, error)
	CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error)
	CountLikesByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) IncrementView(ctx context.Context, postID, authorID uint) (*models.ViewStat, error) {
	// A single upsert keeps concurrent increments from losing counts; the
	// read-modify-write alternative races under load.
	var stat models.ViewStat
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO view_stats (post_id, user_id, views, last_viewed, created_at, updated_at)
		 VALUES (?, ?, 1, NOW(), NOW(), NOW())
		 ON CONFLICT (post_id) DO UPDATE
		 SET views = view_stats.views + 1, last_viewed = NOW(), updated_at = NOW()
		 RETURNING *`,
		postID, authorID,
	).Scan(&stat).Error
	if err != nil {
		return nil, models.NewStoreUnavailableError(err)
	}
	return &stat, nil
}

// GetByPostID returns (nil, nil) when the post has never been viewed.
func (r *analyticsRepository) GetByPostID(ctx context.Context, postID uint) (*models.ViewStat, error) {
	var stat models.ViewStat
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStoreUnavailableError(err)
	}
	return &stat, nil
}

func (r *analyticsRepository) SumViewsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.ViewStat{}).
		Where("user_id = ?", authorID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, models.NewStoreUnavailableError(err)
	}
	return total, nil
}

func (r *analyticsRepository) CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewStoreUnavailableError(err)
	}
	return count, nil
}

func (r *analyticsRepository) CountLikesByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.user_id = ? AND posts.deleted_at IS NULL", authorID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewStoreUnavailableError(err)
	}
	return count, nil
}
