package activity

import (
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ActivityResponse struct {
	ID           uint   `json:"id"`
	StaffID      uint   `json:"staff_id"`
	ActivityType string `json:"activity_type"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
}

type ScanResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	ProductID uint   `json:"product_id"`
	ShelfID   uint   `json:"shelf_id"`
	Action    string `json:"action"`
	CreatedAt string `json:"created_at"`
}

// GET /api/activities?staff_id=&type= (staff/admin)
func ListActivitiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Activity{})
		if v := c.Query("staff_id"); v != "" {
			dbq = dbq.Where("staff_id = ?", v)
		}
		if v := c.Query("type"); v != "" {
			dbq = dbq.Where("activity_type = ?", v)
		}

		var rows []models.Activity
		if err := dbq.Order("created_at desc").Limit(500).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Aktiviteler listelenemedi")
		}

		res := make([]ActivityResponse, 0, len(rows))
		for _, a := range rows {
			res = append(res, ActivityResponse{
				ID:           a.ID,
				StaffID:      a.StaffID,
				ActivityType: string(a.ActivityType),
				Description:  a.Description,
				CreatedAt:    a.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}

// GET /api/barcode-scans?product_id=&shelf_id= (staff/admin)
func ListScansHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.BarcodeScanning{})
		if v := c.Query("product_id"); v != "" {
			dbq = dbq.Where("product_id = ?", v)
		}
		if v := c.Query("shelf_id"); v != "" {
			dbq = dbq.Where("shelf_id = ?", v)
		}

		var rows []models.BarcodeScanning
		if err := dbq.Order("created_at desc").Limit(500).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Barkod kayıtları listelenemedi")
		}

		res := make([]ScanResponse, 0, len(rows))
		for _, s := range rows {
			res = append(res, ScanResponse{
				ID:        s.ID,
				UserID:    s.UserID,
				ProductID: s.ProductID,
				ShelfID:   s.ShelfID,
				Action:    string(s.Action),
				CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}
