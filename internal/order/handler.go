package order

import (
	"errors"
	"fmt"

	"warehouse-backend/internal/activity"
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/inventory"
	"warehouse-backend/internal/models"
	"warehouse-backend/internal/notification"
	"warehouse-backend/internal/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateOrderRequest struct {
	Priority string               `json:"priority"` // high | low (boşsa low)
	Details  []OrderDetailRequest `json:"details"`
}

type OrderDetailRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type OrderResponse struct {
	ID         uint                  `json:"id"`
	CustomerID uint                  `json:"customer_id"`
	TotalPrice decimal.Decimal       `json:"total_price"`
	Priority   string                `json:"priority"`
	Status     string                `json:"status"`
	Details    []OrderDetailResponse `json:"details"`
	CreatedAt  string                `json:"created_at"`
	UpdatedAt  string                `json:"updated_at"`
}

type OrderDetailResponse struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
}

func orderResponse(o *models.Order) OrderResponse {
	details := make([]OrderDetailResponse, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, OrderDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: d.Product.Name,
			Quantity:    d.Quantity,
			Price:       d.Price,
			Status:      string(d.Status),
		})
	}
	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		TotalPrice: o.TotalPrice,
		Priority:   string(o.Priority),
		Status:     string(o.Status),
		Details:    details,
		CreatedAt:  o.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:  o.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/orders (müşteri)
// Satır fiyatları sipariş anındaki ürün fiyatından alınır; toplam tutar
// cüzdandan aynı transaction içinde tahsil edilir. Bakiye yetmezse hiçbir
// kayıt oluşmaz.
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if len(body.Details) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir ürün eklenmelidir")
		}

		priority := models.OrderPriority(body.Priority)
		if body.Priority == "" {
			priority = models.PriorityLow
		}
		switch priority {
		case models.PriorityHigh, models.PriorityLow:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz öncelik (high|low)")
		}

		details := make([]models.OrderDetail, 0, len(body.Details))
		for _, d := range body.Details {
			if d.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Tüm satırlar için quantity 0'dan büyük olmalı")
			}
			var product models.Product
			if err := database.DB.First(&product, "id = ?", d.ProductID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Ürün bulunamadı: %d", d.ProductID))
			}
			details = append(details, models.OrderDetail{
				ProductID: d.ProductID,
				Quantity:  d.Quantity,
				Price:     product.Price,
				Status:    models.OrderPending,
			})
		}

		order := models.Order{
			CustomerID: customerID,
			TotalPrice: models.OrderTotal(details),
			Priority:   priority,
			Status:     models.OrderPending,
			Details:    details,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("sipariş oluşturulamadı: %w", err)
			}
			desc := fmt.Sprintf("Sipariş #%d", order.ID)
			if _, err := wallet.Purchase(tx, customerID, order.TotalPrice, desc); err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, wallet.ErrInsufficientFunds) {
				return fiber.NewError(fiber.StatusConflict, "Yetersiz bakiye")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş oluşturulamadı")
		}

		if err := database.DB.Preload("Product").
			Where("order_id = ?", order.ID).
			Find(&order.Details).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş satırları yüklenemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(orderResponse(&order))
	}
}

// GET /api/orders?status=
// Müşteri sadece kendi siparişlerini görür; personel ve admin hepsini görür.
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Preload("Details.Product")
		if auth.CurrentUserRole(c) == models.RoleCustomer {
			dbq = dbq.Where("customer_id = ?", userID)
		}
		if v := c.Query("status"); v != "" {
			dbq = dbq.Where("status = ?", v)
		}

		var orders []models.Order
		if err := dbq.
			Order("CASE priority WHEN 'high' THEN 0 ELSE 1 END, created_at DESC").
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		res := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			res = append(res, orderResponse(&orders[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var o models.Order
		if err := database.DB.Preload("Details.Product").
			First(&o, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if auth.CurrentUserRole(c) == models.RoleCustomer && o.CustomerID != userID {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		return c.JSON(orderResponse(&o))
	}
}

// POST /api/orders/:id/pick (staff/admin)
// Tüm satırlar için stok düşülür; herhangi biri karşılanamazsa işlem
// komple geri alınır, stok değişmez.
func PickOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		staffID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var order models.Order
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("Details").
				First(&order, "id = ?", c.Params("id")).Error; err != nil {
				return err
			}

			if !models.CanOrderTransition(order.Status, models.OrderPicked) {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Sipariş '%s' durumunda, toplanamaz", order.Status))
			}

			for i := range order.Details {
				if err := pickLine(tx, staffID, &order.Details[i]); err != nil {
					return err
				}
			}

			if err := setStatus(tx, &order, models.OrderPicked); err != nil {
				return err
			}
			if err := recomputeTotal(tx, order.ID); err != nil {
				return err
			}

			desc := fmt.Sprintf("Sipariş #%d toplandı (%d satır)", order.ID, len(order.Details))
			if err := activity.Log(tx, staffID, models.ActivityPick, desc); err != nil {
				return err
			}
			return notification.Notify(tx, order.CustomerID,
				fmt.Sprintf("Siparişiniz (#%d) toplandı", order.ID))
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			if errors.Is(err, ErrInsufficientInventory) {
				return fiber.NewError(fiber.StatusConflict, "Yetersiz stok")
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş toplanamadı")
		}

		return c.JSON(fiber.Map{"message": "Sipariş toplandı", "order_id": order.ID, "status": order.Status})
	}
}

// POST /api/orders/:id/pack (staff/admin), stok yan etkisi yok
func PackOrderHandler() fiber.Handler {
	return transitionHandler(models.OrderPacked, "paketlenemez", "Sipariş paketlendi", "Siparişiniz (#%d) paketlendi")
}

// POST /api/orders/:id/deliver (staff/admin), stok yan etkisi yok
func DeliverOrderHandler() fiber.Handler {
	return transitionHandler(models.OrderDelivered, "teslim edilemez", "Sipariş teslim edildi", "Siparişiniz (#%d) teslim edildi")
}

// transitionHandler: stok yan etkisi olmayan saf durum geçişleri (pack/deliver)
func transitionHandler(to models.OrderStatus, cantVerb, okMsg, notifyFmt string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		staffID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var order models.Order
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&order, "id = ?", c.Params("id")).Error; err != nil {
				return err
			}

			if !models.CanOrderTransition(order.Status, to) {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Sipariş '%s' durumunda, %s", order.Status, cantVerb))
			}

			if err := setStatus(tx, &order, to); err != nil {
				return err
			}
			if err := recomputeTotal(tx, order.ID); err != nil {
				return err
			}

			desc := fmt.Sprintf("%s: #%d", okMsg, order.ID)
			if err := activity.Log(tx, staffID, models.ActivityOther, desc); err != nil {
				return err
			}
			return notification.Notify(tx, order.CustomerID, fmt.Sprintf(notifyFmt, order.ID))
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
		}

		return c.JSON(fiber.Map{"message": okMsg, "order_id": order.ID, "status": order.Status})
	}
}

// POST /api/orders/:id/cancel
// Teslimattan önce her durumdan iptal edilebilir. Toplanmış satırlar raflara
// iade edilir, sipariş tutarı cüzdana geri yüklenir; hepsi tek transaction.
// cancelled terminaldir, ileri geçiş yoktur.
func CancelOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var order models.Order
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("Details").
				First(&order, "id = ?", c.Params("id")).Error; err != nil {
				return err
			}

			// Müşteri sadece kendi siparişini iptal edebilir
			if auth.CurrentUserRole(c) == models.RoleCustomer && order.CustomerID != userID {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}

			if !models.CanOrderTransition(order.Status, models.OrderCancelled) {
				return fiber.NewError(fiber.StatusConflict,
					fmt.Sprintf("Sipariş '%s' durumunda, iptal edilemez", order.Status))
			}

			// Toplanmış stok geri yazılır
			if order.Status == models.OrderPicked || order.Status == models.OrderPacked {
				for i := range order.Details {
					if err := restockLine(tx, &order.Details[i]); err != nil {
						return err
					}
				}
			}

			if err := setStatus(tx, &order, models.OrderCancelled); err != nil {
				return err
			}

			desc := fmt.Sprintf("Sipariş #%d iptali", order.ID)
			if _, err := wallet.Refund(tx, order.CustomerID, order.TotalPrice, desc); err != nil {
				return err
			}
			return notification.Notify(tx, order.CustomerID,
				fmt.Sprintf("Siparişiniz (#%d) iptal edildi, tutar cüzdanınıza iade edildi", order.ID))
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			if errors.Is(err, inventory.ErrCapacityExceeded) {
				return fiber.NewError(fiber.StatusConflict, "İade edilecek stok raflara sığmıyor")
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş iptal edilemedi")
		}

		return c.JSON(fiber.Map{"message": "Sipariş iptal edildi", "order_id": order.ID, "status": order.Status})
	}
}
