package models

import "time"

type ShipmentStatus string

const (
	ShipmentPending  ShipmentStatus = "pending"
	ShipmentReceived ShipmentStatus = "received"
)

type ShipmentDetailStatus string

const (
	ShipmentDetailPending  ShipmentDetailStatus = "pending"
	ShipmentDetailReceived ShipmentDetailStatus = "received"
	ShipmentDetailPutAway  ShipmentDetailStatus = "put_away"
)

// Shipment: tedarikçiden gelen sevkiyat (birden fazla ürün satırı içerebilir)
type Shipment struct {
	ID          uint           `gorm:"primaryKey"`
	SupplierID  uint           `gorm:"index;not null"`
	Supplier    Supplier       `gorm:"constraint:OnDelete:CASCADE"`
	ArrivalDate time.Time      `gorm:"not null"`
	ReceiveDate *time.Time     // teslim alınana kadar boş
	Status      ShipmentStatus `gorm:"size:20;not null;default:pending"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Details []ShipmentDetail `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// ShipmentDetail: sevkiyat içindeki tek ürün satırı
type ShipmentDetail struct {
	ID         uint                 `gorm:"primaryKey"`
	ShipmentID uint                 `gorm:"index;not null"`
	ProductID  uint                 `gorm:"index;not null"`
	Product    Product              `gorm:"constraint:OnDelete:CASCADE"`
	Quantity   int                  `gorm:"not null"`
	Status     ShipmentDetailStatus `gorm:"size:20;not null;default:pending"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// shipmentDetailTransitions: satır bazında izin verilen geçişler (pending→received→put_away)
var shipmentDetailTransitions = map[ShipmentDetailStatus]ShipmentDetailStatus{
	ShipmentDetailPending:  ShipmentDetailReceived,
	ShipmentDetailReceived: ShipmentDetailPutAway,
}

func CanShipmentDetailTransition(from, to ShipmentDetailStatus) bool {
	return shipmentDetailTransitions[from] == to
}
