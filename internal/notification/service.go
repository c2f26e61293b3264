package notification

import (
	"fmt"

	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

// Notify: sistem tarafından kullanıcıya bildirim oluşturur. Okundu işareti
// sadece kullanıcının kendi onayıyla atılır, burada asla.
func Notify(tx *gorm.DB, userID uint, message string) error {
	n := models.Notification{
		UserID:  userID,
		Message: message,
		Status:  models.NotificationUnread,
	}
	if err := tx.Create(&n).Error; err != nil {
		return fmt.Errorf("bildirim oluşturulamadı: %w", err)
	}
	return nil
}
