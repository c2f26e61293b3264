package catalog

import (
	"strings"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func categoryResponse(cat *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}

		res := make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			res = append(res, categoryResponse(&categories[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/categories/:id
func GetCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}
		return c.JSON(categoryResponse(&cat))
	}
}

// POST /api/categories (staff/admin)
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı zorunlu")
		}

		cat := models.Category{
			Name:        body.Name,
			Description: body.Description,
		}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(categoryResponse(&cat))
	}
}

// PUT /api/categories/:id (staff/admin)
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Kategori adı boş olamaz")
			}
			cat.Name = name
		}
		if body.Description != nil {
			cat.Description = *body.Description
		}

		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori güncellenemedi")
		}
		return c.JSON(categoryResponse(&cat))
	}
}

// DELETE /api/categories/:id (sadece admin)
// Kategoriye bağlı ürünler ve onların stokları da silinir (cascade).
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		if err := database.DB.Delete(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
