package models

import "time"

// StaffPermission: depo personelinin hangi depoda yetkili olduğunu tutar (kullanıcı başına tek kayıt)
type StaffPermission struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"uniqueIndex;not null"`
	User        User      `gorm:"constraint:OnDelete:CASCADE"`
	WarehouseID uint      `gorm:"index;not null"`
	Warehouse   Warehouse `gorm:"constraint:OnDelete:CASCADE"`
	IsPermitted bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
