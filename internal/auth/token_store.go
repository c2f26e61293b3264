package auth

import (
	"errors"
	"fmt"
	"time"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"gorm.io/gorm"
)

// Token iptal kaydı. JWT imzası geçerli olsa bile jti bu tabloda ise token
// geçersiz sayılır.

func RevokeToken(jti string, expiresAt time.Time) error {
	rec := models.RevokedToken{JTI: jti, ExpiresAt: expiresAt}
	if err := database.DB.Create(&rec).Error; err != nil {
		return fmt.Errorf("token iptal kaydı yazılamadı: %w", err)
	}
	return nil
}

func IsTokenRevoked(jti string) bool {
	var rec models.RevokedToken
	err := database.DB.Where("jti = ?", jti).First(&rec).Error
	return !errors.Is(err, gorm.ErrRecordNotFound)
}

// PurgeExpiredTokens: süresi dolmuş iptal kayıtlarını temizle. Zaten süresi
// geçen token imza kontrolünden geçemez, kaydı tutmaya gerek yok.
func PurgeExpiredTokens() {
	database.DB.Where("expires_at < ?", time.Now()).Delete(&models.RevokedToken{})
}
