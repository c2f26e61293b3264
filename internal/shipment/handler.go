package shipment

import (
	"errors"
	"fmt"
	"time"

	"warehouse-backend/internal/activity"
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/config"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/inventory"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateShipmentRequest struct {
	SupplierID  uint                    `json:"supplier_id"`
	ArrivalDate string                  `json:"arrival_date"` // "2025-12-09"
	Details     []ShipmentDetailRequest `json:"details"`
}

type ShipmentDetailRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type ShipmentResponse struct {
	ID          uint                     `json:"id"`
	SupplierID  uint                     `json:"supplier_id"`
	ArrivalDate string                   `json:"arrival_date"`
	ReceiveDate *string                  `json:"receive_date"`
	Status      string                   `json:"status"`
	Details     []ShipmentDetailResponse `json:"details"`
	CreatedAt   string                   `json:"created_at"`
}

type ShipmentDetailResponse struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
}

func shipmentResponse(s *models.Shipment) ShipmentResponse {
	var receiveDate *string
	if s.ReceiveDate != nil {
		d := s.ReceiveDate.Format("2006-01-02")
		receiveDate = &d
	}

	details := make([]ShipmentDetailResponse, 0, len(s.Details))
	for _, d := range s.Details {
		details = append(details, ShipmentDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: d.Product.Name,
			Quantity:    d.Quantity,
			Status:      string(d.Status),
		})
	}

	return ShipmentResponse{
		ID:          s.ID,
		SupplierID:  s.SupplierID,
		ArrivalDate: s.ArrivalDate.Format("2006-01-02"),
		ReceiveDate: receiveDate,
		Status:      string(s.Status),
		Details:     details,
		CreatedAt:   s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/shipments (staff/admin)
func CreateShipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateShipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if len(body.Details) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir ürün satırı eklenmelidir")
		}

		arrival, err := time.Parse("2006-01-02", body.ArrivalDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", body.SupplierID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		details := make([]models.ShipmentDetail, 0, len(body.Details))
		for _, d := range body.Details {
			if d.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Tüm satırlar için quantity 0'dan büyük olmalı")
			}
			var product models.Product
			if err := database.DB.First(&product, "id = ?", d.ProductID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Ürün bulunamadı: %d", d.ProductID))
			}
			details = append(details, models.ShipmentDetail{
				ProductID: d.ProductID,
				Quantity:  d.Quantity,
				Status:    models.ShipmentDetailPending,
			})
		}

		shipment := models.Shipment{
			SupplierID:  body.SupplierID,
			ArrivalDate: arrival,
			Status:      models.ShipmentPending,
			Details:     details,
		}
		if err := database.DB.Create(&shipment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat oluşturulamadı")
		}

		if err := database.DB.Preload("Product").
			Where("shipment_id = ?", shipment.ID).
			Find(&shipment.Details).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat satırları yüklenemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(shipmentResponse(&shipment))
	}
}

// GET /api/shipments?supplier_id=&status=
func ListShipmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Details.Product")
		if v := c.Query("supplier_id"); v != "" {
			dbq = dbq.Where("supplier_id = ?", v)
		}
		if v := c.Query("status"); v != "" {
			dbq = dbq.Where("status = ?", v)
		}

		var shipments []models.Shipment
		if err := dbq.Order("arrival_date DESC, created_at DESC").Find(&shipments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyatlar listelenemedi")
		}

		res := make([]ShipmentResponse, 0, len(shipments))
		for i := range shipments {
			res = append(res, shipmentResponse(&shipments[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/shipments/:id
func GetShipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Shipment
		if err := database.DB.Preload("Details.Product").
			First(&s, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sevkiyat bulunamadı")
		}
		return c.JSON(shipmentResponse(&s))
	}
}

// POST /api/shipments/:id/receive (staff/admin)
// pending→received; receive_date set edilir, bekleyen tüm satırlar received olur.
// Durum kontrolü kilit altında yapılır, aynı sevkiyat iki kez teslim alınamaz.
func ReceiveShipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		staffID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var shipment models.Shipment
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&shipment, "id = ?", c.Params("id")).Error; err != nil {
				return err
			}

			if shipment.Status != models.ShipmentPending {
				return fiber.NewError(fiber.StatusConflict, "Bu sevkiyat zaten teslim alınmış")
			}

			now := time.Now()
			shipment.Status = models.ShipmentReceived
			shipment.ReceiveDate = &now
			if err := tx.Save(&shipment).Error; err != nil {
				return fmt.Errorf("sevkiyat güncellenemedi: %w", err)
			}

			if err := tx.Where("shipment_id = ?", shipment.ID).
				Find(&shipment.Details).Error; err != nil {
				return fmt.Errorf("sevkiyat satırları okunamadı: %w", err)
			}

			for i := range shipment.Details {
				d := &shipment.Details[i]
				if !models.CanShipmentDetailTransition(d.Status, models.ShipmentDetailReceived) {
					continue
				}
				if err := tx.Model(&models.ShipmentDetail{}).
					Where("id = ?", d.ID).
					Update("status", models.ShipmentDetailReceived).Error; err != nil {
					return fmt.Errorf("sevkiyat satırı güncellenemedi: %w", err)
				}
			}

			desc := fmt.Sprintf("Sevkiyat #%d teslim alındı (%d satır)", shipment.ID, len(shipment.Details))
			return activity.Log(tx, staffID, models.ActivityReceive, desc)
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sevkiyat bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sevkiyat teslim alınamadı")
		}

		if err := database.DB.Preload("Details.Product").
			First(&shipment, "id = ?", shipment.ID).Error; err == nil {
			return c.JSON(shipmentResponse(&shipment))
		}
		return c.JSON(fiber.Map{"message": "Sevkiyat teslim alındı"})
	}
}

type PutAwayRequest struct {
	ShelfID      *uint  `json:"shelf_id"`
	ShelfBarcode string `json:"shelf_barcode"` // barkod okutarak raf seçimi
	ExpiryDate   string `json:"expiry_date"`   // "2026-01-31"
}

// POST /api/shipment-details/:id/put-away (staff/admin)
// received→put_away; hedef rafın stoğu kapasite kontrolüyle artırılır.
// Kapasite aşılırsa hiçbir şey yazılmaz, satır received'da kalır.
func PutAwayDetailHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		staffID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body PutAwayRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		expiry, err := time.Parse("2006-01-02", body.ExpiryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		// Raf id ile veya barkod okutarak seçilebilir
		var shelf models.Shelf
		switch {
		case body.ShelfID != nil:
			if err := database.DB.First(&shelf, "id = ?", *body.ShelfID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Raf bulunamadı")
			}
		case body.ShelfBarcode != "":
			if err := database.DB.Where("barcode = ?", body.ShelfBarcode).First(&shelf).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Raf bulunamadı")
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, "shelf_id veya shelf_barcode zorunlu")
		}

		var detail models.ShipmentDetail
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&detail, "id = ?", c.Params("id")).Error; err != nil {
				return err
			}

			if !models.CanShipmentDetailTransition(detail.Status, models.ShipmentDetailPutAway) {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Satır '%s' durumunda, rafa kaldırılamaz", detail.Status))
			}

			if _, err := inventory.AddToShelf(tx, detail.ProductID, shelf.ID, detail.Quantity, expiry, cfg.NearExpiryDays); err != nil {
				return err
			}

			detail.Status = models.ShipmentDetailPutAway
			if err := tx.Save(&detail).Error; err != nil {
				return fmt.Errorf("sevkiyat satırı güncellenemedi: %w", err)
			}

			desc := fmt.Sprintf("Sevkiyat satırı #%d rafa kaldırıldı (raf %s, %d adet)",
				detail.ID, shelf.Barcode, detail.Quantity)
			if err := activity.Log(tx, staffID, models.ActivityPutAway, desc); err != nil {
				return err
			}
			return activity.LogScan(tx, staffID, detail.ProductID, shelf.ID, models.ScanPutAway)
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			if errors.Is(err, inventory.ErrCapacityExceeded) {
				return fiber.NewError(fiber.StatusConflict, "Raf kapasitesi aşıldı")
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sevkiyat satırı bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Rafa kaldırma işlemi başarısız")
		}

		return c.JSON(fiber.Map{
			"message":   "Ürün rafa kaldırıldı",
			"detail_id": detail.ID,
			"shelf_id":  shelf.ID,
			"status":    detail.Status,
		})
	}
}
