package models

import "time"

type Warehouse struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Location  string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Shelves []Shelf `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE"`
}
