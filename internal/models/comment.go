// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a reader comment on an approved post.
//
// Comments are immutable once created: no edit or delete operation exists,
// and they are intentionally not removed when their post is deleted.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
