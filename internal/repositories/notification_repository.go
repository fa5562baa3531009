package repositories

import (
	"github.com/upboard/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// Every query is scoped to the recipient: one user can never read or delete
// another user's rows.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(recipientID, notificationID uint) error
	MarkAllAsRead(recipientID uint) error
	DeleteRead(recipientID uint) (int64, error)
	DeleteByIDs(recipientID uint, ids []uint) (deleted, deletedUnread int64, err error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = false", recipientID).Count(&count).Error
	return count, err
}

// MarkAsRead flags one notification as read. Already-read or missing rows are
// treated as already resolved, not as an error.
func (r *postgresNotificationRepository) MarkAsRead(recipientID, notificationID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true).Error
}

// MarkAllAsRead flags every unread notification of the recipient. The
// is_read filter keeps the write set to rows that actually change.
func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Update("is_read", true).Error
}

// DeleteRead removes every read notification of the recipient and reports
// how many rows went away.
func (r *postgresNotificationRepository) DeleteRead(recipientID uint) (int64, error) {
	res := r.db.Where("recipient_id = ? AND is_read = true", recipientID).Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

// DeleteByIDs removes an explicit selection of the recipient's notifications.
// It reports how many of the deleted rows were still unread so the caller can
// adjust its unread counter without a refetch.
func (r *postgresNotificationRepository) DeleteByIDs(recipientID uint, ids []uint) (deleted, deletedUnread int64, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Notification{}).
			Where("recipient_id = ? AND id IN ? AND is_read = false", recipientID, ids).
			Count(&deletedUnread).Error; err != nil {
			return err
		}
		res := tx.Where("recipient_id = ? AND id IN ?", recipientID, ids).Delete(&models.Notification{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, deletedUnread, err
}
