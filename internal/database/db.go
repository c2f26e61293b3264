package database

import (
	"log"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate: tüm tabloları oluştur/güncelle. Test kurulumunda da kullanılıyor.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Warehouse{},
		&models.StaffPermission{},
		&models.Category{},
		&models.Supplier{},
		&models.Product{},
		&models.Shelf{},
		&models.Inventory{},
		&models.Shipment{},
		&models.ShipmentDetail{},
		&models.Order{},
		&models.OrderDetail{},
		&models.Activity{},
		&models.BarcodeScanning{},
		&models.Favorite{},
		&models.Report{},
		&models.Notification{},
		&models.Wallet{},
		&models.TransactionLog{},
		&models.RevokedToken{},
	)
}
