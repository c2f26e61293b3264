package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionPurchase TransactionType = "purchase"
	TransactionRefund   TransactionType = "refund"
)

// Wallet: müşteri cüzdanı. Balance cache'lenmiş değerdir; her zaman
// TransactionLog toplamına eşit olmalı ve sadece log satırıyla aynı
// transaction içinde güncellenmelidir.
type Wallet struct {
	ID         uint            `gorm:"primaryKey"`
	CustomerID uint            `gorm:"uniqueIndex;not null"`
	Customer   User            `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Balance    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TransactionLog: cüzdan hareketi. Sadece eklenir.
type TransactionLog struct {
	ID              uint            `gorm:"primaryKey"`
	CustomerID      uint            `gorm:"index;not null"`
	Customer        User            `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Amount          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	TransactionType TransactionType `gorm:"size:20;not null"`
	Description     string          `gorm:"type:text"`
	CreatedAt       time.Time
}

// SignedAmount: bakiyeye etkisi (deposit/refund artı, purchase eksi)
func (t *TransactionLog) SignedAmount() decimal.Decimal {
	if t.TransactionType == TransactionPurchase {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ReplayBalance: log kayıtlarından bakiyeyi yeniden hesapla. Cache'lenmiş
// Wallet.Balance ile her zaman aynı sonucu vermeli.
func ReplayBalance(logs []TransactionLog) decimal.Decimal {
	balance := decimal.Zero
	for i := range logs {
		balance = balance.Add(logs[i].SignedAmount())
	}
	return balance
}
