package workflow

import (
	"fyp-portal/internal/models"

	"gorm.io/gorm"
)

// notify appends an unread notification inside the caller's
// transaction so a failed workflow write never leaves a stray message.
func notify(tx *gorm.DB, userID uint, message string) error {
	return tx.Create(&models.Notification{
		UserID:  userID,
		Message: message,
	}).Error
}

// Notify queues a message for a user outside any workflow operation.
func (e *Engine) Notify(userID uint, message string) error {
	return notify(e.db, userID, message)
}

// UnreadFor returns the user's unread notifications. No ordering is
// promised; nothing marks notifications read yet.
func (e *Engine) UnreadFor(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := e.db.
		Where("user_id = ? AND read = ?", userID, false).
		Find(&notifications).Error
	return notifications, err
}
