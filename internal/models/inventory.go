package models

import "time"

type InventoryStatus string

const (
	InventoryAvailable      InventoryStatus = "available"
	InventoryNearlyExpiring InventoryStatus = "nearly_expiring"
	InventoryExpired        InventoryStatus = "expired"
)

// Inventory: bir ürünün bir raftaki miktarı. Status, expiry_date'ten türetilir
// ve StatusForExpiry ile her zaman yeniden hesaplanabilir.
type Inventory struct {
	ID         uint            `gorm:"primaryKey"`
	ProductID  uint            `gorm:"index;not null"`
	Product    Product         `gorm:"constraint:OnDelete:CASCADE"`
	ShelfID    uint            `gorm:"index;not null"`
	Shelf      Shelf           `gorm:"constraint:OnDelete:CASCADE"`
	Quantity   int             `gorm:"not null"`
	ExpiryDate time.Time       `gorm:"not null"`
	Status     InventoryStatus `gorm:"size:20;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StatusForExpiry: expiry_date'e göre stok durumu. Saf fonksiyon, yan etkisi yok;
// aynı girdiyle her çağrı aynı sonucu verir.
func StatusForExpiry(expiry, today time.Time, nearDays int) InventoryStatus {
	// saat kısmını at, sadece gün bazında karşılaştır
	y, m, d := today.Date()
	today = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = expiry.Date()
	expiry = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if expiry.Before(today) {
		return InventoryExpired
	}
	if !expiry.After(today.AddDate(0, 0, nearDays)) {
		return InventoryNearlyExpiring
	}
	return InventoryAvailable
}
