package models

import "time"

// PostUp represents a user's "UP" on a post. The composite unique index
// enforces at most one up per (post, user) pair.
type PostUp struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_up"` // MongoDB ObjectID as string
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_up"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike represents a like on a comment
type CommentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// ToggleResult is returned by the engagement toggle endpoints: whether the
// edge is active after the call, and the new cached counter value.
type ToggleResult struct {
	Active   bool  `json:"active"`
	NewCount int64 `json:"new_count"`
}
