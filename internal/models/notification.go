package models

import "gorm.io/gorm"

// NotificationType tags the kind of entity that caused a notification.
type NotificationType string

const (
	NotificationComment       NotificationType = "comment"
	NotificationLike          NotificationType = "like"
	NotificationMessage       NotificationType = "message"
	NotificationFriendRequest NotificationType = "friend_request"
)

// Notification is delivered to a single recipient and references the entity
// that caused it. Like notifications reference the liked post so they can be
// removed again when the like is toggled off; the other types reference the
// causing row itself.
type Notification struct {
	gorm.Model
	UserID      uint             `gorm:"not null;index"`
	Type        NotificationType `gorm:"type:varchar(30);not null"`
	ReferenceID uint             `gorm:"not null"`
	IsRead      bool             `gorm:"not null;default:false"`

	User User `gorm:"foreignKey:UserID"`
}
