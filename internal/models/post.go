// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// PostStatus defines the moderation lifecycle state of a post.
//
// Transitions: pending -> approved | rejected, approved -> hidden.
// rejected and hidden are terminal.
type PostStatus string

const (
	// PostStatusPending indicates the post is awaiting moderator review.
	PostStatusPending PostStatus = "pending"
	// PostStatusApproved indicates the post is publicly visible.
	PostStatusApproved PostStatus = "approved"
	// PostStatusRejected indicates the post was declined by a moderator.
	PostStatusRejected PostStatus = "rejected"
	// PostStatusHidden indicates an approved post was later withdrawn.
	PostStatusHidden PostStatus = "hidden"
)

// Valid reports whether s is a known moderation status.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusPending, PostStatusApproved, PostStatusRejected, PostStatusHidden:
		return true
	}
	return false
}

// Post represents a blog entry subject to moderation.
//
// Title, content, and tags are mutable by the owner only while the post is
// pending. Likes and comments are only accepted while the post is approved.
type Post struct {
	ID      uint       `gorm:"primaryKey" json:"id"`
	Title   string     `gorm:"not null" json:"title"`
	Content string     `gorm:"type:text;not null" json:"content"`
	UserID  uint       `gorm:"not null;index" json:"user_id"`
	User    User       `gorm:"foreignKey:UserID" json:"user"`
	Status  PostStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Tags    []string   `gorm:"type:jsonb;serializer:json" json:"tags"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
