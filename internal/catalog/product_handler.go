package catalog

import (
	"strings"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  uint            `json:"category_id"`
	SupplierID  uint            `json:"supplier_id"`
	Size        decimal.Decimal `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Barcode     string          `json:"barcode"`
	PhotoPath   string          `json:"photo_path"`
	CreatedAt   string          `json:"created_at"`
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  uint            `json:"category_id"`
	SupplierID  uint            `json:"supplier_id"`
	Size        decimal.Decimal `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Barcode     string          `json:"barcode"`
	PhotoPath   string          `json:"photo_path"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	CategoryID  *uint            `json:"category_id"`
	SupplierID  *uint            `json:"supplier_id"`
	Size        *decimal.Decimal `json:"size"`
	Price       *decimal.Decimal `json:"price"`
	Barcode     *string          `json:"barcode"`
	PhotoPath   *string          `json:"photo_path"`
}

func productResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		Size:        p.Size,
		Price:       p.Price,
		Barcode:     p.Barcode,
		PhotoPath:   p.PhotoPath,
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/products?category_id=&supplier_id=&barcode=
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})

		if v := c.Query("category_id"); v != "" {
			dbq = dbq.Where("category_id = ?", v)
		}
		if v := c.Query("supplier_id"); v != "" {
			dbq = dbq.Where("supplier_id = ?", v)
		}
		if v := c.Query("barcode"); v != "" {
			dbq = dbq.Where("barcode = ?", v)
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, productResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}
		return c.JSON(productResponse(&p))
	}
}

// POST /api/products (staff/admin)
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Barcode = strings.TrimSpace(body.Barcode)

		if body.Name == "" || body.Barcode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı ve barkod zorunlu")
		}
		if body.Price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
		}

		// Barkod globalde unique
		var count int64
		database.DB.Model(&models.Product{}).Where("barcode = ?", body.Barcode).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu barkod zaten kayıtlı")
		}

		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori bulunamadı")
		}
		var sup models.Supplier
		if err := database.DB.First(&sup, "id = ?", body.SupplierID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi bulunamadı")
		}

		p := models.Product{
			Name:        body.Name,
			Description: body.Description,
			CategoryID:  body.CategoryID,
			SupplierID:  body.SupplierID,
			Size:        body.Size,
			Price:       body.Price,
			Barcode:     body.Barcode,
			PhotoPath:   body.PhotoPath,
		}
		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(productResponse(&p))
	}
}

// PUT /api/products/:id (staff/admin)
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Ürün adı boş olamaz")
			}
			p.Name = name
		}
		if body.Barcode != nil {
			barcode := strings.TrimSpace(*body.Barcode)
			if barcode == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Barkod boş olamaz")
			}
			var count int64
			database.DB.Model(&models.Product{}).
				Where("barcode = ? AND id <> ?", barcode, p.ID).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Bu barkod zaten kayıtlı")
			}
			p.Barcode = barcode
		}
		if body.CategoryID != nil {
			var cat models.Category
			if err := database.DB.First(&cat, "id = ?", *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Kategori bulunamadı")
			}
			p.CategoryID = *body.CategoryID
		}
		if body.SupplierID != nil {
			var sup models.Supplier
			if err := database.DB.First(&sup, "id = ?", *body.SupplierID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi bulunamadı")
			}
			p.SupplierID = *body.SupplierID
		}
		if body.Description != nil {
			p.Description = *body.Description
		}
		if body.Size != nil {
			p.Size = *body.Size
		}
		if body.Price != nil {
			if body.Price.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
			}
			p.Price = *body.Price
		}
		if body.PhotoPath != nil {
			p.PhotoPath = *body.PhotoPath
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}
		return c.JSON(productResponse(&p))
	}
}

// DELETE /api/products/:id (sadece admin)
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
