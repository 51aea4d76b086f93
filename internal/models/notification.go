package models

import "time"

// Notification is an unread-by-default message queued for a user.
// Nothing flips Read to true yet; the supervisor home only shows
// unread rows.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Message string `gorm:"size:255;not null" json:"message"`
	Read    bool   `gorm:"not null;default:false" json:"read"`
}
