package models

import "time"

type Supplier struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;not null"`
	ContactPerson string `gorm:"size:100"`
	Email         string `gorm:"size:100"`
	Phone         string `gorm:"size:20"`
	PhotoPath     string `gorm:"size:255"` // dosya yolu, upload bu servisin dışında
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
