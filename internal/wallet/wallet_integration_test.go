package wallet

import (
	"errors"
	"os"
	"testing"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

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

func seedCustomer(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	customer := models.User{
		FirstName: "Zeynep", LastName: "Demir",
		Username: "zeynep.demir", Email: "zeynep@mail.local",
		PasswordHash: "x",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("müşteri oluşturulamadı: %v", err)
	}
	return customer
}

func TestPurchase_NoOverdraft(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)

	// Bakiye 0 iken 50 TL harcama reddedilmeli
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := Purchase(tx, customer.ID, decimal.RequireFromString("50.00"), "Sipariş #1")
		return err
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("beklenen ErrInsufficientFunds, gelen: %v", err)
	}

	// Cüzdan otomatik oluştu ama bakiye 0 ve hareket kaydı yok
	var w models.Wallet
	if err := db.First(&w, "customer_id = ?", customer.ID).Error; err != nil {
		t.Fatalf("cüzdan sorgusu başarısız: %v", err)
	}
	if !w.Balance.IsZero() {
		t.Errorf("bakiye = %s, istenen 0", w.Balance)
	}
	var logs int64
	if err := db.Model(&models.TransactionLog{}).
		Where("customer_id = ?", customer.ID).
		Count(&logs).Error; err != nil {
		t.Fatalf("hareket sorgusu başarısız: %v", err)
	}
	if logs != 0 {
		t.Errorf("hareket kaydı = %d, istenen 0", logs)
	}
}

func TestDepositThenPurchase(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)
	fifty := decimal.RequireFromString("50.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := Deposit(tx, customer.ID, fifty, "Bakiye yükleme")
		return err
	})
	if err != nil {
		t.Fatalf("yükleme başarısız: %v", err)
	}

	var w *models.Wallet
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		w, txErr = Purchase(tx, customer.ID, fifty, "Sipariş #1")
		return txErr
	})
	if err != nil {
		t.Fatalf("harcama başarısız: %v", err)
	}
	if !w.Balance.IsZero() {
		t.Errorf("bakiye = %s, istenen 0", w.Balance)
	}

	// İki hareket kaydı ve replay bakiyesi cache ile aynı olmalı
	var logs []models.TransactionLog
	if err := db.Where("customer_id = ?", customer.ID).
		Order("id asc").Find(&logs).Error; err != nil {
		t.Fatalf("hareket sorgusu başarısız: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("hareket kaydı = %d, istenen 2", len(logs))
	}
	if logs[0].TransactionType != models.TransactionDeposit || logs[1].TransactionType != models.TransactionPurchase {
		t.Errorf("hareket tipleri = %s, %s", logs[0].TransactionType, logs[1].TransactionType)
	}
	if replay := models.ReplayBalance(logs); !replay.Equal(w.Balance) {
		t.Errorf("replay bakiyesi %s, cache %s", replay, w.Balance)
	}
}

func TestPurchase_ZeroAmountIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)

	// Bedava ürünlerden oluşan sipariş: tahsilat hatasız, hareket kaydı yok
	var w *models.Wallet
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		w, txErr = Purchase(tx, customer.ID, decimal.Zero, "Sipariş #1")
		return txErr
	})
	if err != nil {
		t.Fatalf("sıfır tutarlı harcama hata döndü: %v", err)
	}
	if !w.Balance.IsZero() {
		t.Errorf("bakiye = %s, istenen 0", w.Balance)
	}

	var logs int64
	if err := db.Model(&models.TransactionLog{}).
		Where("customer_id = ?", customer.ID).
		Count(&logs).Error; err != nil {
		t.Fatalf("hareket sorgusu başarısız: %v", err)
	}
	if logs != 0 {
		t.Errorf("hareket kaydı = %d, istenen 0", logs)
	}

	// Negatif tutar hâlâ reddedilmeli
	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := Purchase(tx, customer.ID, decimal.RequireFromString("-1.00"), "Sipariş #2")
		return err
	})
	if err == nil {
		t.Error("negatif tutara izin verildi")
	}
}

func TestRefund_RestoresBalance(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := Deposit(tx, customer.ID, decimal.RequireFromString("100.00"), "Bakiye yükleme"); err != nil {
			return err
		}
		if _, err := Purchase(tx, customer.ID, decimal.RequireFromString("35.25"), "Sipariş #2"); err != nil {
			return err
		}
		_, err := Refund(tx, customer.ID, decimal.RequireFromString("35.25"), "Sipariş #2 iptal")
		return err
	})
	if err != nil {
		t.Fatalf("işlem zinciri başarısız: %v", err)
	}

	var w models.Wallet
	if err := db.First(&w, "customer_id = ?", customer.ID).Error; err != nil {
		t.Fatalf("cüzdan sorgusu başarısız: %v", err)
	}
	if want := decimal.RequireFromString("100.00"); !w.Balance.Equal(want) {
		t.Errorf("bakiye = %s, istenen %s", w.Balance, want)
	}
}
