package models

import "time"

// Favorite: müşteri-ürün çifti başına tek kayıt
type Favorite struct {
	ID         uint    `gorm:"primaryKey"`
	CustomerID uint    `gorm:"uniqueIndex:idx_favorite_customer_product;not null"`
	Customer   User    `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	ProductID  uint    `gorm:"uniqueIndex:idx_favorite_customer_product;not null"`
	Product    Product `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
}
