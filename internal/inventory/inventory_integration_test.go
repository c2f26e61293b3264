package inventory

import (
	"errors"
	"os"
	"testing"
	"time"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Integration testler canlı veritabanını korumak için ayrı bir test
// veritabanı ister; TEST_DATABASE_DSN tanımlı değilse atlanır.
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

type fixtures struct {
	product models.Product
	shelf   models.Shelf
}

func seedCatalog(t *testing.T, db *gorm.DB, capacity int) fixtures {
	t.Helper()

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
	wh := models.Warehouse{Name: "Merkez Depo", Location: "Ankara"}
	if err := db.Create(&wh).Error; err != nil {
		t.Fatalf("depo oluşturulamadı: %v", err)
	}
	shelf := models.Shelf{WarehouseID: wh.ID, Name: "A-01", Barcode: "RAF-A-01", Capacity: capacity}
	if err := db.Create(&shelf).Error; err != nil {
		t.Fatalf("raf oluşturulamadı: %v", err)
	}

	return fixtures{product: product, shelf: shelf}
}

func TestAddToShelf_CapacityEnforced(t *testing.T) {
	db := setupTestDB(t)
	fx := seedCatalog(t, db, 10)
	expiry := time.Now().AddDate(0, 6, 0)

	// Boş rafa 6 adet: başarılı
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := AddToShelf(tx, fx.product.ID, fx.shelf.ID, 6, expiry, 7)
		return err
	})
	if err != nil {
		t.Fatalf("ilk ekleme başarısız: %v", err)
	}

	// 5 adet daha kapasiteyi (10) aşar: tamamı reddedilmeli
	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := AddToShelf(tx, fx.product.ID, fx.shelf.ID, 5, expiry, 7)
		return err
	})
	if err == nil {
		t.Fatal("kapasite aşımına izin verildi")
	}
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("beklenen ErrCapacityExceeded, gelen: %v", err)
	}

	// Stok 6'da kalmalı, kısmi artış olmamalı
	load, err := ShelfLoad(db, fx.shelf.ID)
	if err != nil {
		t.Fatalf("raf doluluk sorgusu başarısız: %v", err)
	}
	if load != 6 {
		t.Errorf("raf doluluk = %d, istenen 6", load)
	}
}

func TestAddToShelf_MergesSameExpiry(t *testing.T) {
	db := setupTestDB(t)
	fx := seedCatalog(t, db, 100)
	expiry := time.Now().AddDate(0, 6, 0).Truncate(24 * time.Hour)

	for i := 0; i < 2; i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := AddToShelf(tx, fx.product.ID, fx.shelf.ID, 4, expiry, 7)
			return err
		})
		if err != nil {
			t.Fatalf("ekleme %d başarısız: %v", i+1, err)
		}
	}

	var rows []models.Inventory
	if err := db.Where("shelf_id = ?", fx.shelf.ID).Find(&rows).Error; err != nil {
		t.Fatalf("stok sorgusu başarısız: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("aynı ürün + aynı tarih tek satırda birleşmeli, satır sayısı: %d", len(rows))
	}
	if rows[0].Quantity != 8 {
		t.Errorf("miktar = %d, istenen 8", rows[0].Quantity)
	}
}

func TestRefreshStatuses_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	fx := seedCatalog(t, db, 100)

	// Kasten yanlış status ile üç kayıt
	rows := []models.Inventory{
		{ProductID: fx.product.ID, ShelfID: fx.shelf.ID, Quantity: 5,
			ExpiryDate: time.Now().AddDate(0, 0, -3), Status: models.InventoryAvailable},
		{ProductID: fx.product.ID, ShelfID: fx.shelf.ID, Quantity: 5,
			ExpiryDate: time.Now().AddDate(0, 0, 3), Status: models.InventoryAvailable},
		{ProductID: fx.product.ID, ShelfID: fx.shelf.ID, Quantity: 5,
			ExpiryDate: time.Now().AddDate(1, 0, 0), Status: models.InventoryExpired},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("stok kaydı oluşturulamadı: %v", err)
		}
	}

	updated, err := RefreshStatuses(db, 7)
	if err != nil {
		t.Fatalf("ilk refresh başarısız: %v", err)
	}
	if updated != 3 {
		t.Errorf("ilk refresh %d satır güncelledi, istenen 3", updated)
	}

	// İkinci çağrı hiçbir şey değiştirmemeli
	updated, err = RefreshStatuses(db, 7)
	if err != nil {
		t.Fatalf("ikinci refresh başarısız: %v", err)
	}
	if updated != 0 {
		t.Errorf("ikinci refresh %d satır güncelledi, 0 olmalı", updated)
	}

	var got []models.Inventory
	if err := db.Order("id asc").Find(&got).Error; err != nil {
		t.Fatalf("stok sorgusu başarısız: %v", err)
	}
	want := []models.InventoryStatus{models.InventoryExpired, models.InventoryNearlyExpiring, models.InventoryAvailable}
	for i := range got {
		if got[i].Status != want[i] {
			t.Errorf("satır %d status = %q, istenen %q", i, got[i].Status, want[i])
		}
	}
}
