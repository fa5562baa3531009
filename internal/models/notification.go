package models

import "time"

// Notification types. "up" and "like" carry the same fields but stay
// separate types: one is a post-level UP, the other a comment like.
const (
	NotificationTypeUp      = "up"
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

// Notification represents a user notification (PostgreSQL). Content is
// immutable once created; only IsRead ever changes.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"` // up, like, comment
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	PostID      string    `json:"post_id,omitempty"`
	CommentID   *uint     `json:"comment_id,omitempty"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// DeleteNotificationsRequest defines the request body for deleting an
// explicit selection of notifications.
type DeleteNotificationsRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}
