package wallet

import (
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WalletResponse struct {
	ID         uint            `json:"id"`
	CustomerID uint            `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}

type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type TransactionResponse struct {
	ID              uint            `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	Description     string          `json:"description"`
	CreatedAt       string          `json:"created_at"`
}

// GET /api/wallet
// İlk erişimde cüzdan 0 bakiyeyle oluşturulur.
func GetWalletHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var w *models.Wallet
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			w, err = getForUpdate(tx, customerID)
			return err
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cüzdan bilgisi alınamadı")
		}

		return c.JSON(WalletResponse{ID: w.ID, CustomerID: w.CustomerID, Balance: w.Balance})
	}
}

// POST /api/wallet/deposit
func DepositHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body DepositRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if !body.Amount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
		}

		var w *models.Wallet
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			w, err = Deposit(tx, customerID, body.Amount, body.Description)
			return err
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bakiye yüklenemedi")
		}

		return c.JSON(WalletResponse{ID: w.ID, CustomerID: w.CustomerID, Balance: w.Balance})
	}
}

// GET /api/wallet/transactions
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var logs []models.TransactionLog
		if err := database.DB.
			Where("customer_id = ?", customerID).
			Order("created_at desc").
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cüzdan hareketleri listelenemedi")
		}

		res := make([]TransactionResponse, 0, len(logs))
		for _, l := range logs {
			res = append(res, TransactionResponse{
				ID:              l.ID,
				Amount:          l.Amount,
				TransactionType: string(l.TransactionType),
				Description:     l.Description,
				CreatedAt:       l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}
