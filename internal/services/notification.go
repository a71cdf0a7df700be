package services

import (
	"context"

	"github.com/diewo77/go-tms/internal/models"
	"gorm.io/gorm"
)

// NotificationService exposes the append-only notification sink.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// createNotification inserts a notification row on the given handle.
// Transition services call it with their transaction so the row is only
// committed together with the state change.
func createNotification(tx *gorm.DB, userID uint, message string) error {
	return tx.Create(&models.Notification{UserID: userID, Message: message}).Error
}

// Create appends a notification for the user, default unread.
func (s *NotificationService) Create(ctx context.Context, userID uint, message string) (*models.Notification, error) {
	n := models.Notification{UserID: userID, Message: message}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// Unread returns the unread notifications for the user, newest first.
func (s *NotificationService) Unread(ctx context.Context, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag on a notification owned by the user.
// Marking an already-read notification succeeds; a notification that does
// not exist or belongs to someone else is ErrNotFound.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead flips every unread notification owned by the user.
// Idempotent: zero affected rows is still a success.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
