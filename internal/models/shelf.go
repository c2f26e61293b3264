package models

import "time"

// Shelf: depo içindeki fiziksel raf. Capacity, raftaki toplam stok adedinin üst sınırı.
type Shelf struct {
	ID          uint   `gorm:"primaryKey"`
	WarehouseID uint   `gorm:"index;not null"`
	Warehouse   Warehouse
	Name        string `gorm:"size:100;not null"`
	Barcode     string `gorm:"size:50;uniqueIndex;not null"`
	Capacity    int    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Inventories []Inventory `gorm:"foreignKey:ShelfID;constraint:OnDelete:CASCADE"`
}
