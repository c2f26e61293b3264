package models

import "time"

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Notification: sistem tarafından oluşturulur; unread→read geçişi sadece
// kullanıcının kendi onayıyla olur.
type Notification struct {
	ID        uint               `gorm:"primaryKey"`
	UserID    uint               `gorm:"index;not null"`
	User      User               `gorm:"constraint:OnDelete:CASCADE"`
	Message   string             `gorm:"type:text;not null"`
	Status    NotificationStatus `gorm:"size:20;not null;default:unread"`
	CreatedAt time.Time
}
