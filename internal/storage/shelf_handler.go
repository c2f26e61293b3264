package storage

import (
	"fmt"
	"strings"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/inventory"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ShelfResponse struct {
	ID          uint   `json:"id"`
	WarehouseID uint   `json:"warehouse_id"`
	Name        string `json:"name"`
	Barcode     string `json:"barcode"`
	Capacity    int    `json:"capacity"`
	CreatedAt   string `json:"created_at"`
}

type CreateShelfRequest struct {
	WarehouseID uint   `json:"warehouse_id"`
	Name        string `json:"name"`
	Barcode     string `json:"barcode"`
	Capacity    int    `json:"capacity"`
}

type UpdateShelfRequest struct {
	Name     *string `json:"name"`
	Barcode  *string `json:"barcode"`
	Capacity *int    `json:"capacity"`
}

func shelfResponse(s *models.Shelf) ShelfResponse {
	return ShelfResponse{
		ID:          s.ID,
		WarehouseID: s.WarehouseID,
		Name:        s.Name,
		Barcode:     s.Barcode,
		Capacity:    s.Capacity,
		CreatedAt:   s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/shelves?warehouse_id=
func ListShelvesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Shelf{})
		if v := c.Query("warehouse_id"); v != "" {
			dbq = dbq.Where("warehouse_id = ?", v)
		}

		var shelves []models.Shelf
		if err := dbq.Order("name asc").Find(&shelves).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raflar listelenemedi")
		}

		res := make([]ShelfResponse, 0, len(shelves))
		for i := range shelves {
			res = append(res, shelfResponse(&shelves[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/shelves/:id
func GetShelfHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Shelf
		if err := database.DB.First(&s, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Raf bulunamadı")
		}
		return c.JSON(shelfResponse(&s))
	}
}

// POST /api/shelves (staff/admin)
func CreateShelfHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateShelfRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Barcode = strings.TrimSpace(body.Barcode)

		if body.Name == "" || body.Barcode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Raf adı ve barkod zorunlu")
		}
		if body.Capacity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kapasite 0'dan büyük olmalı")
		}

		var w models.Warehouse
		if err := database.DB.First(&w, "id = ?", body.WarehouseID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Depo bulunamadı")
		}

		// Raf barkodu unique
		var count int64
		database.DB.Model(&models.Shelf{}).Where("barcode = ?", body.Barcode).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu barkod zaten kayıtlı")
		}

		s := models.Shelf{
			WarehouseID: body.WarehouseID,
			Name:        body.Name,
			Barcode:     body.Barcode,
			Capacity:    body.Capacity,
		}
		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raf oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(shelfResponse(&s))
	}
}

// PUT /api/shelves/:id (staff/admin)
func UpdateShelfHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Shelf
		if err := database.DB.First(&s, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Raf bulunamadı")
		}

		var body UpdateShelfRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Raf adı boş olamaz")
			}
			s.Name = name
		}
		if body.Barcode != nil {
			barcode := strings.TrimSpace(*body.Barcode)
			if barcode == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Barkod boş olamaz")
			}
			var count int64
			database.DB.Model(&models.Shelf{}).
				Where("barcode = ? AND id <> ?", barcode, s.ID).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Bu barkod zaten kayıtlı")
			}
			s.Barcode = barcode
		}
		if body.Capacity != nil {
			if *body.Capacity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Kapasite 0'dan büyük olmalı")
			}
			// Kapasite mevcut stoğun altına çekilemez, yoksa raf limiti delinir
			load, err := inventory.ShelfLoad(database.DB, s.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Raf doluluk bilgisi alınamadı")
			}
			if *body.Capacity < load {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Rafta %d adet stok var, kapasite bunun altına düşürülemez", load))
			}
			s.Capacity = *body.Capacity
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raf güncellenemedi")
		}
		return c.JSON(shelfResponse(&s))
	}
}

// DELETE /api/shelves/:id (sadece admin)
func DeleteShelfHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Shelf
		if err := database.DB.First(&s, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Raf bulunamadı")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raf silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
