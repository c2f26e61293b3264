package models

import "time"

type ScanAction string

const (
	ScanPutAway ScanAction = "put_away"
	ScanPick    ScanAction = "pick"
	ScanReceive ScanAction = "receive"
)

// BarcodeScanning: okutulan her barkodun kaydı. Sadece eklenir.
type BarcodeScanning struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"index;not null"`
	User      User       `gorm:"constraint:OnDelete:CASCADE"`
	ProductID uint       `gorm:"index;not null"`
	Product   Product    `gorm:"constraint:OnDelete:CASCADE"`
	ShelfID   uint       `gorm:"index;not null"`
	Shelf     Shelf      `gorm:"constraint:OnDelete:CASCADE"`
	Action    ScanAction `gorm:"size:20;not null"`
	CreatedAt time.Time
}
