package inventory

import (
	"errors"
	"time"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InventoryResponse struct {
	ID         uint   `json:"id"`
	ProductID  uint   `json:"product_id"`
	ShelfID    uint   `json:"shelf_id"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date"`
	Status     string `json:"status"`
}

type AddInventoryRequest struct {
	ProductID  uint   `json:"product_id"`
	ShelfID    uint   `json:"shelf_id"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date"` // "2025-12-09"
}

func inventoryResponse(inv *models.Inventory) InventoryResponse {
	return InventoryResponse{
		ID:         inv.ID,
		ProductID:  inv.ProductID,
		ShelfID:    inv.ShelfID,
		Quantity:   inv.Quantity,
		ExpiryDate: inv.ExpiryDate.Format("2006-01-02"),
		Status:     string(inv.Status),
	}
}

// GET /api/inventories?shelf_id=&product_id=&status=
func ListInventoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Inventory{})
		if v := c.Query("shelf_id"); v != "" {
			dbq = dbq.Where("shelf_id = ?", v)
		}
		if v := c.Query("product_id"); v != "" {
			dbq = dbq.Where("product_id = ?", v)
		}
		if v := c.Query("status"); v != "" {
			dbq = dbq.Where("status = ?", v)
		}

		var rows []models.Inventory
		if err := dbq.Order("expiry_date asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stoklar listelenemedi")
		}

		res := make([]InventoryResponse, 0, len(rows))
		for i := range rows {
			res = append(res, inventoryResponse(&rows[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/inventories/:id
func GetInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var inv models.Inventory
		if err := database.DB.First(&inv, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Stok kaydı bulunamadı")
		}
		return c.JSON(inventoryResponse(&inv))
	}
}

// POST /api/inventories (staff/admin)
// Rafa elle stok girişi; kapasite kontrolüyle birlikte tek transaction'da.
func AddInventoryHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddInventoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Miktar 0'dan büyük olmalı")
		}
		expiry, err := time.Parse("2006-01-02", body.ExpiryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var inv *models.Inventory
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			inv, err = AddToShelf(tx, body.ProductID, body.ShelfID, body.Quantity, expiry, cfg.NearExpiryDays)
			return err
		})
		if err != nil {
			if errors.Is(err, ErrCapacityExceeded) {
				return fiber.NewError(fiber.StatusConflict, "Raf kapasitesi aşıldı")
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Raf bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Stok eklenemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(inventoryResponse(inv))
	}
}

// POST /api/inventories/refresh-status (staff/admin)
// Durumları expiry_date'ten yeniden hesaplar; üst üste çağrılması sonucu değiştirmez.
func RefreshStatusHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var updated int
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var err error
			updated, err = RefreshStatuses(tx, cfg.NearExpiryDays)
			return err
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok durumları güncellenemedi")
		}

		return c.JSON(fiber.Map{
			"message": "Stok durumları güncellendi",
			"updated": updated,
		})
	}
}

// DELETE /api/inventories/:id (staff/admin)
func DeleteInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var inv models.Inventory
		if err := database.DB.First(&inv, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Stok kaydı bulunamadı")
		}

		if err := database.DB.Delete(&inv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kaydı silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
