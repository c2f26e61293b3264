package auth

import (
	"errors"
	"strings"
	"time"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`         // customer | staff | admin (boşsa customer)
	WarehouseID     *uint  `json:"warehouse_id"` // sadece staff için
}

type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

type UserProfile struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	DateJoined string `json:"date_joined"`
	Role       string `json:"role"`
}

func profileOf(u *models.User) UserProfile {
	return UserProfile{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Username:   u.Username,
		Email:      u.Email,
		DateJoined: u.CreatedAt.Format(time.RFC3339),
		Role:       string(u.Role()),
	}
}

// POST /api/auth/register
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Username == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı, email ve şifre zorunlu")
		}
		if body.Password != body.ConfirmPassword {
			return fiber.NewError(fiber.StatusBadRequest, "Şifreler eşleşmiyor")
		}

		role := models.UserRole(body.Role)
		if body.Role == "" {
			role = models.RoleCustomer
		}
		switch role {
		case models.RoleCustomer, models.RoleStaff, models.RoleAdmin:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol (customer|staff|admin)")
		}

		// Email / kullanıcı adı unique kontrolü
		var count int64
		database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu email ile kayıtlı bir kullanıcı zaten var")
		}
		database.DB.Model(&models.User{}).Where("username = ?", body.Username).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu kullanıcı adı zaten kullanılıyor")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		isStaff, isSuperuser := models.RoleFlags(role)
		user := models.User{
			FirstName:    body.FirstName,
			LastName:     body.LastName,
			Username:     body.Username,
			Email:        body.Email,
			PasswordHash: string(hash),
			IsStaff:      isStaff,
			IsSuperuser:  isSuperuser,
		}

		// Kullanıcı + (varsa) depo yetkisi tek transaction'da
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if role == models.RoleStaff && body.WarehouseID != nil {
				var wh models.Warehouse
				if err := tx.First(&wh, "id = ?", *body.WarehouseID).Error; err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Depo bulunamadı")
				}
				perm := models.StaffPermission{
					UserID:      user.ID,
					WarehouseID: wh.ID,
					IsPermitted: true,
				}
				if err := tx.Create(&perm).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Kullanıcı başarıyla kaydedildi",
		})
	}
}

// POST /api/auth/login
// Kullanıcı adı veya email kabul eder; hangisinin yanlış olduğunu söylemez.
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		identifier := strings.TrimSpace(body.UsernameOrEmail)
		if identifier == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı/email ve şifre zorunlu")
		}

		// Önce email olarak dene, bulunamazsa kullanıcı adı olarak ara
		var user models.User
		err := database.DB.Where("email = ?", strings.ToLower(identifier)).First(&user).Error
		if err != nil {
			err = database.DB.Where("username = ?", identifier).First(&user).Error
		}
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı/email veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı/email veya şifre hatalı")
		}

		token, err := GenerateToken(cfg, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		// Fırsattan istifade süresi geçmiş iptal kayıtlarını temizle
		PurgeExpiredTokens()

		return c.JSON(fiber.Map{
			"access_token": token,
			"token_type":   "bearer",
			"expires_in":   cfg.TokenTTL,
			"user":         profileOf(&user),
		})
	}
}

// POST /api/auth/logout
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		jti, _ := c.Locals(CtxTokenJTIKey).(string)
		if jti == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		// İptal kaydının ömrü token'ın kalan ömrü kadar yeter; kesin süreyi
		// bilmediğimiz durumda TTL kadar ileri bir tarih kullanılır.
		authHeader := c.Get("Authorization")
		expiresAt := time.Now().Add(10 * time.Hour)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 {
			if claims := parseClaimsUnverified(parts[1]); claims != nil && claims.ExpiresAt != nil {
				expiresAt = claims.ExpiresAt.Time
			}
		}

		if err := RevokeToken(jti, expiresAt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çıkış yapılamadı")
		}

		return c.JSON(fiber.Map{"message": "Çıkış yapıldı"})
	}
}

// parseClaimsUnverified: imza doğrulaması middleware'de zaten yapıldı,
// burada sadece exp alanı okunuyor.
func parseClaimsUnverified(tokenStr string) *JWTCustomClaims {
	claims := &JWTCustomClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil
	}
	return claims
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := CurrentUserID(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		response := fiber.Map{"user": profileOf(&user)}

		// Personel ise yetkili olduğu depoyu da ekle
		if user.IsStaff && !user.IsSuperuser {
			var perm models.StaffPermission
			if err := database.DB.Preload("Warehouse").Where("user_id = ?", user.ID).First(&perm).Error; err == nil {
				response["is_staff_permitted"] = perm.IsPermitted
				response["permitted_warehouse"] = fiber.Map{
					"id":       perm.Warehouse.ID,
					"name":     perm.Warehouse.Name,
					"location": perm.Warehouse.Location,
				}
			} else {
				response["is_staff_permitted"] = false
			}
		}

		return c.JSON(response)
	}
}

type UpdateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
}

// PUT /api/auth/me
func UpdateMeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := CurrentUserID(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		var body UpdateMeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Username != nil {
			username := strings.TrimSpace(*body.Username)
			if username == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı boş olamaz")
			}
			// Başka bir kullanıcıda aynı kullanıcı adı var mı?
			var count int64
			database.DB.Model(&models.User{}).
				Where("username = ? AND id <> ?", username, user.ID).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Bu kullanıcı adı zaten kullanılıyor")
			}
			user.Username = username
		}

		if body.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*body.Email))
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Email boş olamaz")
			}
			var count int64
			database.DB.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Bu email zaten kullanılıyor")
			}
			user.Email = email
		}

		if body.FirstName != nil {
			user.FirstName = strings.TrimSpace(*body.FirstName)
		}
		if body.LastName != nil {
			user.LastName = strings.TrimSpace(*body.LastName)
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		return c.JSON(profileOf(&user))
	}
}

type StaffResponse struct {
	UserProfile
	IsStaffPermitted   bool       `json:"is_staff_permitted"`
	PermittedWarehouse *fiber.Map `json:"permitted_warehouse"`
}

// GET /api/auth/staff (sadece admin)
func ListStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staff []models.User
		if err := database.DB.
			Where("is_staff = ? AND is_superuser = ?", true, false).
			Order("username asc").
			Find(&staff).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel listelenemedi")
		}

		res := make([]StaffResponse, 0, len(staff))
		for i := range staff {
			item := StaffResponse{UserProfile: profileOf(&staff[i])}
			var perm models.StaffPermission
			if err := database.DB.Preload("Warehouse").Where("user_id = ?", staff[i].ID).First(&perm).Error; err == nil {
				item.IsStaffPermitted = perm.IsPermitted
				item.PermittedWarehouse = &fiber.Map{
					"id":       perm.Warehouse.ID,
					"name":     perm.Warehouse.Name,
					"location": perm.Warehouse.Location,
				}
			}
			res = append(res, item)
		}
		return c.JSON(res)
	}
}

// GET /api/auth/customers (sadece admin)
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.User
		if err := database.DB.
			Where("is_staff = ? AND is_superuser = ?", false, false).
			Order("username asc").
			Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler listelenemedi")
		}

		res := make([]UserProfile, 0, len(customers))
		for i := range customers {
			res = append(res, profileOf(&customers[i]))
		}
		return c.JSON(res)
	}
}
