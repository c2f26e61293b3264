package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"warehouse-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN tanımlı değil, integration test atlanıyor")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("test veritabanına bağlanılamadı: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migration başarısız: %v", err)
	}
	if err := db.Exec(`TRUNCATE TABLE transaction_logs, wallets, notifications, reports,
		favorites, barcode_scannings, activities, order_details, orders,
		shipment_details, shipments, inventories, shelves, warehouses,
		products, suppliers, categories, staff_permissions, revoked_tokens, users
		CASCADE`).Error; err != nil {
		t.Fatalf("test verisi temizlenemedi: %v", err)
	}
	return db
}

// setupTestApp: main.go'daki auth rotalarının birebir küçük kopyası
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	database.DB = setupTestDB(t)
	cfg := testConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	api := app.Group("/api")
	api.Post("/auth/register", RegisterHandler(cfg))
	api.Post("/auth/login", LoginHandler(cfg))

	protected := api.Group("", JWTMiddleware(cfg))
	protected.Post("/auth/logout", LogoutHandler())
	protected.Get("/auth/me", MeHandler())

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, token string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("istek gövdesi oluşturulamadı: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	return res
}

func registerBody(email, username string) RegisterRequest {
	return RegisterRequest{
		FirstName: "Ayşe", LastName: "Yılmaz",
		Username: username, Email: email,
		Password: "gizli123", ConfirmPassword: "gizli123",
	}
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	app := setupTestApp(t)

	res := postJSON(t, app, "/api/auth/register", registerBody("ayse@mail.local", "ayse"), "")
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("ilk kayıt status = %d, istenen 201", res.StatusCode)
	}

	// Aynı email, farklı kullanıcı adı: reddedilmeli
	res = postJSON(t, app, "/api/auth/register", registerBody("ayse@mail.local", "ayse2"), "")
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("tekrar kayıt status = %d, istenen 400", res.StatusCode)
	}

	var count int64
	database.DB.Table("users").Where("email = ?", "ayse@mail.local").Count(&count)
	if count != 1 {
		t.Errorf("kullanıcı sayısı = %d, istenen 1", count)
	}
}

func TestLogin_Contract(t *testing.T) {
	app := setupTestApp(t)
	postJSON(t, app, "/api/auth/register", registerBody("ayse@mail.local", "ayse"), "")

	res := postJSON(t, app, "/api/auth/login", LoginRequest{
		UsernameOrEmail: "ayse@mail.local",
		Password:        "gizli123",
	}, "")
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("login status = %d, istenen 200", res.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
		User        struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("login cevabı çözümlenemedi: %v", err)
	}
	if body.AccessToken == "" {
		t.Error("access_token boş")
	}
	if body.TokenType != "bearer" {
		t.Errorf("token_type = %q, istenen \"bearer\"", body.TokenType)
	}
	if body.ExpiresIn != testConfig().TokenTTL {
		t.Errorf("expires_in = %d, istenen %d", body.ExpiresIn, testConfig().TokenTTL)
	}
	if body.User.Username != "ayse" || body.User.Role != "customer" {
		t.Errorf("user = %+v", body.User)
	}

	// Kullanıcı adıyla da giriş yapılabilmeli
	res = postJSON(t, app, "/api/auth/login", LoginRequest{
		UsernameOrEmail: "ayse",
		Password:        "gizli123",
	}, "")
	if res.StatusCode != fiber.StatusOK {
		t.Errorf("kullanıcı adıyla login status = %d, istenen 200", res.StatusCode)
	}

	// Yanlış şifre: hangisinin yanlış olduğunu söylemeyen 401
	res = postJSON(t, app, "/api/auth/login", LoginRequest{
		UsernameOrEmail: "ayse@mail.local",
		Password:        "yanlış",
	}, "")
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("yanlış şifre status = %d, istenen 401", res.StatusCode)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	app := setupTestApp(t)
	postJSON(t, app, "/api/auth/register", registerBody("ayse@mail.local", "ayse"), "")

	res := postJSON(t, app, "/api/auth/login", LoginRequest{
		UsernameOrEmail: "ayse",
		Password:        "gizli123",
	}, "")
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("login cevabı çözümlenemedi: %v", err)
	}

	// Token logout öncesi geçerli
	req := httptest.NewRequest(fiber.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.AccessToken)
	meRes, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("me isteği başarısız: %v", err)
	}
	if meRes.StatusCode != fiber.StatusOK {
		t.Fatalf("logout öncesi me status = %d, istenen 200", meRes.StatusCode)
	}

	res = postJSON(t, app, "/api/auth/logout", fiber.Map{}, body.AccessToken)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("logout status = %d, istenen 200", res.StatusCode)
	}

	// Aynı token artık reddedilmeli
	req = httptest.NewRequest(fiber.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.AccessToken)
	meRes, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("me isteği başarısız: %v", err)
	}
	if meRes.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("logout sonrası me status = %d, istenen 401", meRes.StatusCode)
	}
}
