package storage

import (
	"strings"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type WarehouseResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	CreatedAt string `json:"created_at"`
}

type CreateWarehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type UpdateWarehouseRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

func warehouseResponse(w *models.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		CreatedAt: w.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/warehouses
func ListWarehousesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var warehouses []models.Warehouse
		if err := database.DB.Order("name asc").Find(&warehouses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depolar listelenemedi")
		}

		res := make([]WarehouseResponse, 0, len(warehouses))
		for i := range warehouses {
			res = append(res, warehouseResponse(&warehouses[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/warehouses/:id
func GetWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var w models.Warehouse
		if err := database.DB.First(&w, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}
		return c.JSON(warehouseResponse(&w))
	}
}

// POST /api/warehouses (sadece admin)
func CreateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateWarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Depo adı zorunlu")
		}

		w := models.Warehouse{
			Name:     body.Name,
			Location: strings.TrimSpace(body.Location),
		}
		if err := database.DB.Create(&w).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(warehouseResponse(&w))
	}
}

// PUT /api/warehouses/:id (sadece admin)
func UpdateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var w models.Warehouse
		if err := database.DB.First(&w, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		var body UpdateWarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Depo adı boş olamaz")
			}
			w.Name = name
		}
		if body.Location != nil {
			w.Location = strings.TrimSpace(*body.Location)
		}

		if err := database.DB.Save(&w).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo güncellenemedi")
		}
		return c.JSON(warehouseResponse(&w))
	}
}

// DELETE /api/warehouses/:id (sadece admin)
// Depoya bağlı raflar ve raflardaki stoklar da silinir (cascade).
func DeleteWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var w models.Warehouse
		if err := database.DB.First(&w, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Depo bulunamadı")
		}

		if err := database.DB.Delete(&w).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depo silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
