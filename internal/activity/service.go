package activity

import (
	"fmt"

	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

// Personel hareketleri iş akışlarının yan etkisi olarak buradan yazılır.
// Kayıtlar sadece eklenir, güncelleme/silme endpoint'i yok.

func Log(tx *gorm.DB, staffID uint, activityType models.ActivityType, description string) error {
	rec := models.Activity{
		StaffID:      staffID,
		ActivityType: activityType,
		Description:  description,
	}
	if err := tx.Create(&rec).Error; err != nil {
		return fmt.Errorf("aktivite kaydı yazılamadı: %w", err)
	}
	return nil
}

func LogScan(tx *gorm.DB, userID, productID, shelfID uint, action models.ScanAction) error {
	rec := models.BarcodeScanning{
		UserID:    userID,
		ProductID: productID,
		ShelfID:   shelfID,
		Action:    action,
	}
	if err := tx.Create(&rec).Error; err != nil {
		return fmt.Errorf("barkod kaydı yazılamadı: %w", err)
	}
	return nil
}
