package models

import "time"

// PostStats is the read-only analytics view of a single post, composed from
// the post's counters and its view stat row.
type PostStats struct {
	PostID       uint       `json:"post_id"`
	ViewCount    int64      `json:"view_count"`
	LikeCount    int        `json:"like_count"`
	CommentCount int        `json:"comment_count"`
	LastViewed   *time.Time `json:"last_viewed,omitempty"`
}

// UserRollup aggregates analytics over every post authored by a user.
type UserRollup struct {
	UserID              uint    `json:"user_id"`
	TotalPosts          int64   `json:"total_posts"`
	TotalViews          int64   `json:"total_views"`
	TotalLikes          int64   `json:"total_likes"`
	AverageLikesPerPost float64 `json:"average_likes_per_post"`
}
