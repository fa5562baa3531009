package notify

import (
	"fmt"

	"github.com/upboard/backend/internal/models"
	"github.com/upboard/backend/internal/repositories"
)

// Emitter creates notification rows for engagement actions and pushes them
// through the hub. Emission is best-effort: callers log a failure and move
// on, the triggering action itself is never rolled back. Emit only after the
// primary mutation has committed.
type Emitter struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	hub           *Hub
}

// NewEmitter creates a new Emitter
func NewEmitter(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, hub *Hub) *Emitter {
	return &Emitter{
		notifications: notifRepo,
		users:         userRepo,
		hub:           hub,
	}
}

// EmitIfApplicable inserts a notification for the recipient unless the actor
// acted on their own content. Returns the created notification, or nil when
// emission was skipped.
func (e *Emitter) EmitIfApplicable(actorID, recipientID uint, notifType, postID string, commentID *uint) (*models.Notification, error) {
	if actorID == recipientID {
		return nil, nil
	}

	message, err := e.renderMessage(actorID, notifType)
	if err != nil {
		return nil, err
	}

	notification := &models.Notification{
		Type:        notifType,
		ActorID:     actorID,
		RecipientID: recipientID,
		PostID:      postID,
		CommentID:   commentID,
		Message:     message,
	}
	if err := e.notifications.CreateNotification(notification); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	e.hub.Publish(*notification)
	return notification, nil
}

func (e *Emitter) renderMessage(actorID uint, notifType string) (string, error) {
	nickname := "Someone"
	if actor, err := e.users.GetUserByID(actorID); err == nil {
		nickname = actor.Nickname
	}

	switch notifType {
	case models.NotificationTypeUp:
		return fmt.Sprintf("%s upped your post", nickname), nil
	case models.NotificationTypeLike:
		return fmt.Sprintf("%s liked your comment", nickname), nil
	case models.NotificationTypeComment:
		return fmt.Sprintf("%s commented on your post", nickname), nil
	default:
		return "", fmt.Errorf("unknown notification type %q", notifType)
	}
}
