package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:100;not null"`
	Description string          `gorm:"type:text"`
	CategoryID  uint            `gorm:"index;not null"`
	Category    Category        `gorm:"constraint:OnDelete:CASCADE"`
	SupplierID  uint            `gorm:"index;not null"`
	Supplier    Supplier        `gorm:"constraint:OnDelete:CASCADE"`
	Size        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Barcode     string          `gorm:"size:50;uniqueIndex;not null"`
	PhotoPath   string          `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
