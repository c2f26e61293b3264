package notification

import (
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type NotificationResponse struct {
	ID        uint   `json:"id"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// GET /api/notifications?status=
func ListNotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("user_id = ?", userID)
		if v := c.Query("status"); v != "" {
			dbq = dbq.Where("status = ?", v)
		}

		var rows []models.Notification
		if err := dbq.Order("created_at desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bildirimler listelenemedi")
		}

		res := make([]NotificationResponse, 0, len(rows))
		for _, n := range rows {
			res = append(res, NotificationResponse{
				ID:        n.ID,
				Message:   n.Message,
				Status:    string(n.Status),
				CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}

// POST /api/notifications/:id/read
// unread→read geçişi sadece kullanıcının kendi onayıyla olur.
func MarkReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var n models.Notification
		if err := database.DB.
			Where("id = ? AND user_id = ?", c.Params("id"), userID).
			First(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bildirim bulunamadı")
		}

		if n.Status != models.NotificationRead {
			n.Status = models.NotificationRead
			if err := database.DB.Save(&n).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Bildirim güncellenemedi")
			}
		}

		return c.JSON(NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Status:    string(n.Status),
			CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}
