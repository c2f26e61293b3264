package models

import "time"

type ActivityType string

const (
	ActivityPutAway ActivityType = "put_away"
	ActivityPick    ActivityType = "pick"
	ActivityReceive ActivityType = "receive"
	ActivityOther   ActivityType = "other"
)

// Activity: personel işlem günlüğü. Sadece eklenir, asla güncellenmez.
type Activity struct {
	ID           uint         `gorm:"primaryKey"`
	StaffID      uint         `gorm:"index;not null"`
	Staff        User         `gorm:"foreignKey:StaffID;constraint:OnDelete:CASCADE"`
	Description  string       `gorm:"type:text"`
	ActivityType ActivityType `gorm:"size:20;not null"`
	CreatedAt    time.Time
}
