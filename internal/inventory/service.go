package inventory

import (
	"errors"
	"fmt"
	"time"

	"warehouse-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// İş kuralı ihlalleri handler katmanında 409'a çevrilir.
var ErrCapacityExceeded = errors.New("raf kapasitesi aşıldı")

// ShelfLoad: raftaki toplam stok adedi. Çağıranın transaction'ı içinde çalışır.
func ShelfLoad(tx *gorm.DB, shelfID uint) (int, error) {
	var total int64
	err := tx.Model(&models.Inventory{}).
		Where("shelf_id = ?", shelfID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("raf doluluk sorgusu başarısız: %w", err)
	}
	return int(total), nil
}

// AddToShelf: rafa stok ekler. Kapasite kontrolü ve artırma tek transaction'da,
// raf satırı kilitlenerek yapılır; eşzamanlı iki ekleme kapasiteyi aşamaz.
// Aynı ürün + aynı son kullanma tarihli kayıt varsa miktarı artırılır,
// yoksa yeni Inventory satırı açılır.
func AddToShelf(tx *gorm.DB, productID, shelfID uint, quantity int, expiryDate time.Time, nearDays int) (*models.Inventory, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("miktar 0'dan büyük olmalı")
	}

	var shelf models.Shelf
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&shelf, "id = ?", shelfID).Error; err != nil {
		return nil, fmt.Errorf("raf bulunamadı: %w", err)
	}

	load, err := ShelfLoad(tx, shelfID)
	if err != nil {
		return nil, err
	}
	if load+quantity > shelf.Capacity {
		return nil, fmt.Errorf("raf %s (kapasite %d, dolu %d, istenen %d): %w",
			shelf.Barcode, shelf.Capacity, load, quantity, ErrCapacityExceeded)
	}

	status := models.StatusForExpiry(expiryDate, time.Now(), nearDays)

	var inv models.Inventory
	err = tx.Where("product_id = ? AND shelf_id = ? AND expiry_date = ?", productID, shelfID, expiryDate).
		First(&inv).Error
	switch {
	case err == nil:
		inv.Quantity += quantity
		inv.Status = status
		if err := tx.Save(&inv).Error; err != nil {
			return nil, fmt.Errorf("stok güncellenemedi: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		inv = models.Inventory{
			ProductID:  productID,
			ShelfID:    shelfID,
			Quantity:   quantity,
			ExpiryDate: expiryDate,
			Status:     status,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return nil, fmt.Errorf("stok kaydı oluşturulamadı: %w", err)
		}
	default:
		return nil, fmt.Errorf("stok sorgusu başarısız: %w", err)
	}

	return &inv, nil
}

// RefreshStatuses: tüm stok kayıtlarının durumunu expiry_date'ten yeniden
// hesaplar. Idempotent; sadece durumu değişen satırlar yazılır.
func RefreshStatuses(tx *gorm.DB, nearDays int) (int, error) {
	var rows []models.Inventory
	if err := tx.Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("stok kayıtları okunamadı: %w", err)
	}

	now := time.Now()
	updated := 0
	for i := range rows {
		status := models.StatusForExpiry(rows[i].ExpiryDate, now, nearDays)
		if status == rows[i].Status {
			continue
		}
		if err := tx.Model(&models.Inventory{}).
			Where("id = ?", rows[i].ID).
			Update("status", status).Error; err != nil {
			return updated, fmt.Errorf("stok durumu güncellenemedi: %w", err)
		}
		updated++
	}
	return updated, nil
}
