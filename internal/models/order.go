package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPicked    OrderStatus = "picked"
	OrderPacked    OrderStatus = "packed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderPriority string

const (
	PriorityHigh OrderPriority = "high"
	PriorityLow  OrderPriority = "low"
)

type Order struct {
	ID         uint            `gorm:"primaryKey"`
	CustomerID uint            `gorm:"index;not null"`
	Customer   User            `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Priority   OrderPriority   `gorm:"size:20;not null;default:low"`
	Status     OrderStatus     `gorm:"size:20;not null;default:pending"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Details []OrderDetail `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderDetail struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	ProductID uint            `gorm:"index;not null"`
	Product   Product         `gorm:"constraint:OnDelete:CASCADE"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"` // sipariş anındaki birim fiyat
	Status    OrderStatus     `gorm:"size:20;not null;default:pending"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineTotal: satır tutarı (birim fiyat × adet)
func (d *OrderDetail) LineTotal() decimal.Decimal {
	return d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// OrderTotal: sipariş tutarı her zaman satırlardan hesaplanır, asla elle yazılmaz
func OrderTotal(details []OrderDetail) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.LineTotal())
	}
	return total
}

// orderTransitions: izin verilen durum geçişleri. cancelled sadece teslimattan
// önce ulaşılabilir ve ulaşıldığında terminaldir.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderPicked, OrderCancelled},
	OrderPicked:  {OrderPacked, OrderCancelled},
	OrderPacked:  {OrderDelivered, OrderCancelled},
}

func CanOrderTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
