package catalog

import (
	"strings"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SupplierResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PhotoPath     string `json:"photo_path"`
	CreatedAt     string `json:"created_at"`
}

type CreateSupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PhotoPath     string `json:"photo_path"`
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	PhotoPath     *string `json:"photo_path"`
}

func supplierResponse(s *models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		PhotoPath:     s.PhotoPath,
		CreatedAt:     s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler listelenemedi")
		}

		res := make([]SupplierResponse, 0, len(suppliers))
		for i := range suppliers {
			res = append(res, supplierResponse(&suppliers[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/suppliers/:id
func GetSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Supplier
		if err := database.DB.First(&s, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}
		return c.JSON(supplierResponse(&s))
	}
}

// POST /api/suppliers (staff/admin)
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi adı zorunlu")
		}

		s := models.Supplier{
			Name:          body.Name,
			ContactPerson: strings.TrimSpace(body.ContactPerson),
			Email:         strings.TrimSpace(strings.ToLower(body.Email)),
			Phone:         strings.TrimSpace(body.Phone),
			PhotoPath:     body.PhotoPath,
		}
		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(supplierResponse(&s))
	}
}

// PUT /api/suppliers/:id (staff/admin)
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Supplier
		if err := database.DB.First(&s, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		var body UpdateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi adı boş olamaz")
			}
			s.Name = name
		}
		if body.ContactPerson != nil {
			s.ContactPerson = strings.TrimSpace(*body.ContactPerson)
		}
		if body.Email != nil {
			s.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Phone != nil {
			s.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.PhotoPath != nil {
			s.PhotoPath = *body.PhotoPath
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi güncellenemedi")
		}
		return c.JSON(supplierResponse(&s))
	}
}

// DELETE /api/suppliers/:id (sadece admin)
// Tedarikçiye bağlı ürünler ve sevkiyatlar da silinir (cascade).
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Supplier
		if err := database.DB.First(&s, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
