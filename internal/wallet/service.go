package wallet

import (
	"errors"
	"fmt"

	"warehouse-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInsufficientFunds = errors.New("yetersiz bakiye")

// getForUpdate: müşterinin cüzdanını kilitleyerek getirir, yoksa oluşturur.
// Bakiye sadece bu kilit altında, log satırıyla aynı transaction'da değişir.
func getForUpdate(tx *gorm.DB, customerID uint) (*models.Wallet, error) {
	var w models.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		w = models.Wallet{CustomerID: customerID, Balance: decimal.Zero}
		if err := tx.Create(&w).Error; err != nil {
			return nil, fmt.Errorf("cüzdan oluşturulamadı: %w", err)
		}
		return &w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cüzdan sorgusu başarısız: %w", err)
	}
	return &w, nil
}

func apply(tx *gorm.DB, customerID uint, amount decimal.Decimal, txType models.TransactionType, description string) (*models.Wallet, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("tutar negatif olamaz")
	}

	w, err := getForUpdate(tx, customerID)
	if err != nil {
		return nil, err
	}

	// Sıfır tutar bakiyeyi değiştirmez; hareket kaydı da açılmaz.
	// Bedava ürünlerden oluşan bir sipariş böyle tahsil edilir.
	if amount.IsZero() {
		return w, nil
	}

	entry := models.TransactionLog{
		CustomerID:      customerID,
		Amount:          amount,
		TransactionType: txType,
		Description:     description,
	}

	newBalance := w.Balance.Add(entry.SignedAmount())
	// Eksiye düşmeye izin yok; purchase bakiyeyi aşamaz
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("bakiye %s, istenen %s: %w", w.Balance, amount, ErrInsufficientFunds)
	}

	if err := tx.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("cüzdan hareketi yazılamadı: %w", err)
	}

	w.Balance = newBalance
	if err := tx.Save(w).Error; err != nil {
		return nil, fmt.Errorf("bakiye güncellenemedi: %w", err)
	}
	return w, nil
}

// Deposit: bakiye yükleme
func Deposit(tx *gorm.DB, customerID uint, amount decimal.Decimal, description string) (*models.Wallet, error) {
	return apply(tx, customerID, amount, models.TransactionDeposit, description)
}

// Purchase: sipariş tutarını bakiyeden düşer; yetmezse ErrInsufficientFunds
func Purchase(tx *gorm.DB, customerID uint, amount decimal.Decimal, description string) (*models.Wallet, error) {
	return apply(tx, customerID, amount, models.TransactionPurchase, description)
}

// Refund: iptal edilen siparişin tutarını iade eder
func Refund(tx *gorm.DB, customerID uint, amount decimal.Decimal, description string) (*models.Wallet, error) {
	return apply(tx, customerID, amount, models.TransactionRefund, description)
}
