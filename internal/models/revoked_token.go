package models

import "time"

// RevokedToken: logout edilen token'ların jti kaydı. Süresi geçen kayıtlar
// login sırasında temizlenir.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	JTI       string    `gorm:"size:36;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
