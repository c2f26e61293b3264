package models

import "time"

type ReportType string

const (
	ReportSales     ReportType = "sales"
	ReportInventory ReportType = "inventory"
	ReportActivity  ReportType = "activity"
	ReportOther     ReportType = "other"
)

// Report: üretildiği andaki verinin snapshot'ı. Oluşturulduktan sonra değişmez.
type Report struct {
	ID         uint       `gorm:"primaryKey"`
	ReportType ReportType `gorm:"size:20;not null"`
	Data       string     `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
}
