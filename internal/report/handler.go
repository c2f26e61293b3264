package report

import (
	"encoding/json"
	"time"

	"warehouse-backend/internal/database"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type GenerateReportRequest struct {
	ReportType string `json:"report_type"` // sales | inventory | activity
}

type ReportResponse struct {
	ID          uint            `json:"id"`
	ReportType  string          `json:"report_type"`
	GeneratedAt string          `json:"generated_at"`
	Data        json.RawMessage `json:"data"`
}

func reportResponse(r *models.Report) ReportResponse {
	return ReportResponse{
		ID:          r.ID,
		ReportType:  string(r.ReportType),
		GeneratedAt: r.CreatedAt.Format(time.RFC3339),
		Data:        json.RawMessage(r.Data),
	}
}

// POST /api/reports/generate (sadece admin)
// Üretilen rapor o anın snapshot'ıdır, sonradan değiştirilmez.
func GenerateReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GenerateReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var payload any
		var err error
		reportType := models.ReportType(body.ReportType)

		switch reportType {
		case models.ReportSales:
			payload, err = buildSalesReport()
		case models.ReportInventory:
			payload, err = buildInventoryReport()
		case models.ReportActivity:
			payload, err = buildActivityReport()
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rapor tipi (sales|inventory|activity)")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor verisi hesaplanamadı")
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor verisi yazılamadı")
		}

		r := models.Report{
			ReportType: reportType,
			Data:       string(data),
		}
		if err := database.DB.Create(&r).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(reportResponse(&r))
	}
}

// GET /api/reports?type=
func ListReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Report{})
		if v := c.Query("type"); v != "" {
			dbq = dbq.Where("report_type = ?", v)
		}

		var reports []models.Report
		if err := dbq.Order("created_at desc").Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raporlar listelenemedi")
		}

		res := make([]ReportResponse, 0, len(reports))
		for i := range reports {
			res = append(res, reportResponse(&reports[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/reports/:id
func GetReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var r models.Report
		if err := database.DB.First(&r, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
		}
		return c.JSON(reportResponse(&r))
	}
}

type salesReport struct {
	OrderCounts      map[string]int64 `json:"order_counts"`
	DeliveredRevenue decimal.Decimal  `json:"delivered_revenue"`
}

func buildSalesReport() (any, error) {
	rep := salesReport{OrderCounts: map[string]int64{}}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := database.DB.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, sc := range counts {
		rep.OrderCounts[sc.Status] = sc.Count
	}

	var revenue decimal.Decimal
	if err := database.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderDelivered).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	rep.DeliveredRevenue = revenue

	return rep, nil
}

type inventoryReportRow struct {
	WarehouseName string `json:"warehouse_name"`
	ShelfName     string `json:"shelf_name"`
	ShelfBarcode  string `json:"shelf_barcode"`
	Capacity      int    `json:"capacity"`
	TotalQuantity int    `json:"total_quantity"`
	ExpiringSoon  int    `json:"expiring_soon"`
	Expired       int    `json:"expired"`
}

func buildInventoryReport() (any, error) {
	var rows []inventoryReportRow
	err := database.DB.Model(&models.Shelf{}).
		Select(`warehouses.name as warehouse_name,
			shelves.name as shelf_name,
			shelves.barcode as shelf_barcode,
			shelves.capacity as capacity,
			COALESCE(SUM(inventories.quantity), 0) as total_quantity,
			COALESCE(SUM(CASE WHEN inventories.status = ? THEN inventories.quantity ELSE 0 END), 0) as expiring_soon,
			COALESCE(SUM(CASE WHEN inventories.status = ? THEN inventories.quantity ELSE 0 END), 0) as expired`,
			models.InventoryNearlyExpiring, models.InventoryExpired).
		Joins("JOIN warehouses ON warehouses.id = shelves.warehouse_id").
		Joins("LEFT JOIN inventories ON inventories.shelf_id = shelves.id").
		Group("warehouses.name, shelves.name, shelves.barcode, shelves.capacity").
		Order("warehouses.name, shelves.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return fiber.Map{"shelves": rows}, nil
}

func buildActivityReport() (any, error) {
	type typeCount struct {
		ActivityType string `json:"activity_type"`
		Count        int64  `json:"count"`
	}
	var counts []typeCount
	if err := database.DB.Model(&models.Activity{}).
		Select("activity_type, COUNT(*) as count").
		Group("activity_type").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return fiber.Map{"activity_counts": counts}, nil
}
