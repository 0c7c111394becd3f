package repositories

import (
	"time"

	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// Deferred notifications (non-empty deferred_until) are invisible to the
// list/count methods until promoted.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID uint) error
	MarkAllAsRead(recipientID uint) error
	// PromoteDeferred activates every notification for the target record
	// held back behind the given trigger, re-stamping creation time at
	// activation. Returns the promoted notifications for push delivery.
	PromoteDeferred(targetID, trigger string) ([]models.Notification, error)
	ListDeferredByTarget(targetID string) ([]models.Notification, error)
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

	active := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND deferred_until = ''", recipientID)
	active.Count(&total)

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ? AND deferred_until = ''", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND deferred_until = '' AND is_read = false", recipientID).
		Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(notificationID uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", notificationID).Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND deferred_until = '' AND is_read = false", recipientID).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) PromoteDeferred(targetID, trigger string) ([]models.Notification, error) {
	var promoted []models.Notification
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_id = ? AND deferred_until = ?", targetID, trigger).
			Find(&promoted).Error; err != nil {
			return err
		}
		if len(promoted) == 0 {
			return nil
		}
		now := time.Now()
		if err := tx.Model(&models.Notification{}).
			Where("target_id = ? AND deferred_until = ?", targetID, trigger).
			Updates(map[string]interface{}{"deferred_until": "", "created_at": now}).Error; err != nil {
			return err
		}
		for i := range promoted {
			promoted[i].DeferredUntil = ""
			promoted[i].CreatedAt = now
		}
		return nil
	})
	return promoted, err
}

func (r *postgresNotificationRepository) ListDeferredByTarget(targetID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("target_id = ? AND deferred_until <> ''", targetID).
		Find(&notifications).Error
	return notifications, err
}
