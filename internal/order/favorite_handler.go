package order

import (
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type FavoriteResponse struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	CreatedAt   string `json:"created_at"`
}

// GET /api/favorites
func ListFavoritesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var favorites []models.Favorite
		if err := database.DB.Preload("Product").
			Where("customer_id = ?", customerID).
			Order("created_at desc").
			Find(&favorites).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Favoriler listelenemedi")
		}

		res := make([]FavoriteResponse, 0, len(favorites))
		for _, f := range favorites {
			res = append(res, FavoriteResponse{
				ID:          f.ID,
				ProductID:   f.ProductID,
				ProductName: f.Product.Name,
				CreatedAt:   f.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}

// POST /api/favorites/:productID
// Müşteri-ürün çifti başına tek kayıt; tekrar eklemek hata değildir.
func AddFavoriteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("productID")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var existing models.Favorite
		if err := database.DB.
			Where("customer_id = ? AND product_id = ?", customerID, product.ID).
			First(&existing).Error; err == nil {
			return c.JSON(fiber.Map{"message": "Ürün zaten favorilerde", "favorite_id": existing.ID})
		}

		fav := models.Favorite{CustomerID: customerID, ProductID: product.ID}
		if err := database.DB.Create(&fav).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Favori eklenemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":     "Ürün favorilere eklendi",
			"favorite_id": fav.ID,
		})
	}
}

// DELETE /api/favorites/:productID
func RemoveFavoriteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var fav models.Favorite
		if err := database.DB.
			Where("customer_id = ? AND product_id = ?", customerID, c.Params("productID")).
			First(&fav).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Favori bulunamadı")
		}

		if err := database.DB.Delete(&fav).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Favori silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
