package models

import "time"

// ViewStat is the per-post view counter, stored separately from the post.
// Exactly one row exists per post, created lazily on the first public read.
//
// UserID denormalizes the post author so per-user view rollups can be
// computed without joining through posts; it is set once at creation and
// must match Post.UserID.
type ViewStat struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;uniqueIndex" json:"post_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Views      int64     `gorm:"not null;default:0" json:"views"`
	LastViewed time.Time `json:"last_viewed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
