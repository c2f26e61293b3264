package shipment

import (
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
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

// setupReceiveApp: receive endpoint'ini middleware'siz, locals'ı elle
// doldurarak ayağa kaldırır
func setupReceiveApp(t *testing.T, staffID uint) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, staffID)
		c.Locals(auth.CtxUserRoleKey, models.RoleStaff)
		return c.Next()
	})
	app.Post("/api/shipments/:id/receive", ReceiveShipmentHandler())
	return app
}

func TestReceiveShipment_OnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	database.DB = db

	staff := models.User{
		FirstName: "Ali", LastName: "Kaya",
		Username: "ali.kaya", Email: "ali@depo.local",
		PasswordHash: "x", IsStaff: true,
	}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("personel oluşturulamadı: %v", err)
	}
	cat := models.Category{Name: "İçecek"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("kategori oluşturulamadı: %v", err)
	}
	sup := models.Supplier{Name: "Anadolu Gıda"}
	if err := db.Create(&sup).Error; err != nil {
		t.Fatalf("tedarikçi oluşturulamadı: %v", err)
	}
	product := models.Product{
		Name:       "Elma Suyu 1L",
		CategoryID: cat.ID,
		SupplierID: sup.ID,
		Size:       decimal.RequireFromString("1.00"),
		Price:      decimal.RequireFromString("12.50"),
		Barcode:    "8690000000011",
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("ürün oluşturulamadı: %v", err)
	}
	shp := models.Shipment{
		SupplierID:  sup.ID,
		ArrivalDate: time.Now(),
		Status:      models.ShipmentPending,
		Details: []models.ShipmentDetail{
			{ProductID: product.ID, Quantity: 10, Status: models.ShipmentDetailPending},
		},
	}
	if err := db.Create(&shp).Error; err != nil {
		t.Fatalf("sevkiyat oluşturulamadı: %v", err)
	}

	app := setupReceiveApp(t, staff.ID)
	url := fmt.Sprintf("/api/shipments/%d/receive", shp.ID)

	req := httptest.NewRequest(fiber.MethodPost, url, nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("ilk teslim alma status = %d, istenen 200", res.StatusCode)
	}

	var got models.Shipment
	if err := db.First(&got, "id = ?", shp.ID).Error; err != nil {
		t.Fatalf("sevkiyat sorgusu başarısız: %v", err)
	}
	if got.Status != models.ShipmentReceived {
		t.Errorf("sevkiyat status = %q, istenen received", got.Status)
	}
	if got.ReceiveDate == nil {
		t.Error("receive_date set edilmemiş")
	}
	firstReceive := got.ReceiveDate

	// Aynı sevkiyat ikinci kez teslim alınamaz: 409, hiçbir şey değişmez
	req = httptest.NewRequest(fiber.MethodPost, url, nil)
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("tekrar teslim alma status = %d, istenen 409", res.StatusCode)
	}

	if err := db.First(&got, "id = ?", shp.ID).Error; err != nil {
		t.Fatalf("sevkiyat sorgusu başarısız: %v", err)
	}
	if got.ReceiveDate == nil || !got.ReceiveDate.Equal(*firstReceive) {
		t.Error("receive_date ikinci istekte değişmiş")
	}

	var activityCount int64
	if err := db.Model(&models.Activity{}).
		Where("activity_type = ?", models.ActivityReceive).
		Count(&activityCount).Error; err != nil {
		t.Fatalf("aktivite sorgusu başarısız: %v", err)
	}
	if activityCount != 1 {
		t.Errorf("receive aktivite kaydı = %d, istenen 1", activityCount)
	}
}
