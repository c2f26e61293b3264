package order

import (
	"errors"
	"fmt"
	"time"

	"warehouse-backend/internal/activity"
	"warehouse-backend/internal/inventory"
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInsufficientInventory = errors.New("yetersiz stok")

// pickLine: tek sipariş satırı için stok düşer. Uygun (süresi geçmemiş)
// kayıtlar son kullanma tarihi en yakın olandan başlayarak kilitlenir;
// toplam yetmiyorsa hiçbir şey yazılmaz. Boşalan satırlar silinmez ki
// iptal durumunda aynı raflara iade yapılabilsin.
// Uygunluk status kolonuna değil tarihe bakar; status en son refresh'in
// güncelliğinde olabilir, tarihi geçmiş stok asla toplanmamalı.
func pickLine(tx *gorm.DB, staffID uint, d *models.OrderDetail) error {
	y, m, day := time.Now().Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)

	var rows []models.Inventory
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND quantity > 0 AND status <> ? AND expiry_date >= ?",
			d.ProductID, models.InventoryExpired, today).
		Order("expiry_date asc").
		Find(&rows).Error; err != nil {
		return fmt.Errorf("stok sorgusu başarısız: %w", err)
	}

	available := 0
	for i := range rows {
		available += rows[i].Quantity
	}
	if available < d.Quantity {
		return fmt.Errorf("ürün %d (mevcut %d, istenen %d): %w",
			d.ProductID, available, d.Quantity, ErrInsufficientInventory)
	}

	remaining := d.Quantity
	for i := range rows {
		if remaining == 0 {
			break
		}
		take := rows[i].Quantity
		if take > remaining {
			take = remaining
		}

		rows[i].Quantity -= take
		if err := tx.Save(&rows[i]).Error; err != nil {
			return fmt.Errorf("stok düşülemedi: %w", err)
		}
		if err := activity.LogScan(tx, staffID, d.ProductID, rows[i].ShelfID, models.ScanPick); err != nil {
			return err
		}
		remaining -= take
	}
	return nil
}

// restockLine: toplanmış bir satırın miktarını raflara geri yazar. Önce aynı
// ürünün mevcut stok satırları (boşalmış olanlar dahil) raf kapasitesine göre
// doldurulur; miktar yerleştirilemezse iptal komple geri alınır.
func restockLine(tx *gorm.DB, d *models.OrderDetail) error {
	var rows []models.Inventory
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", d.ProductID).
		Order("expiry_date desc").
		Find(&rows).Error; err != nil {
		return fmt.Errorf("stok sorgusu başarısız: %w", err)
	}

	remaining := d.Quantity
	for i := range rows {
		if remaining == 0 {
			break
		}

		var shelf models.Shelf
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&shelf, "id = ?", rows[i].ShelfID).Error; err != nil {
			return fmt.Errorf("raf bulunamadı: %w", err)
		}

		var load int64
		if err := tx.Model(&models.Inventory{}).
			Where("shelf_id = ?", shelf.ID).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&load).Error; err != nil {
			return fmt.Errorf("raf doluluk sorgusu başarısız: %w", err)
		}

		space := shelf.Capacity - int(load)
		if space <= 0 {
			continue
		}
		take := remaining
		if take > space {
			take = space
		}

		rows[i].Quantity += take
		if err := tx.Save(&rows[i]).Error; err != nil {
			return fmt.Errorf("stok iade edilemedi: %w", err)
		}
		remaining -= take
	}

	if remaining > 0 {
		return fmt.Errorf("ürün %d için %d adet rafa sığmadı: %w", d.ProductID, remaining, inventory.ErrCapacityExceeded)
	}
	return nil
}

// recomputeTotal: sipariş tutarını satırlardan yeniden hesaplar ve yazar.
// Her satır mutasyonundan sonra çağrılır, tutarın kaymasına izin verilmez.
func recomputeTotal(tx *gorm.DB, orderID uint) error {
	var details []models.OrderDetail
	if err := tx.Where("order_id = ?", orderID).Find(&details).Error; err != nil {
		return fmt.Errorf("sipariş satırları okunamadı: %w", err)
	}
	total := models.OrderTotal(details)
	if err := tx.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total_price", total).Error; err != nil {
		return fmt.Errorf("sipariş tutarı güncellenemedi: %w", err)
	}
	return nil
}

// setStatus: sipariş ve tüm satırlarını aynı duruma geçirir
func setStatus(tx *gorm.DB, order *models.Order, to models.OrderStatus) error {
	order.Status = to
	if err := tx.Save(order).Error; err != nil {
		return fmt.Errorf("sipariş güncellenemedi: %w", err)
	}
	if err := tx.Model(&models.OrderDetail{}).
		Where("order_id = ?", order.ID).
		Update("status", to).Error; err != nil {
		return fmt.Errorf("sipariş satırları güncellenemedi: %w", err)
	}
	return nil
}
