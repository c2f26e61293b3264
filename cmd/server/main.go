package main

import (
	"log"
	"strings"

	"warehouse-backend/internal/activity"
	"warehouse-backend/internal/auth"
	"warehouse-backend/internal/catalog"
	"warehouse-backend/internal/config"
	"warehouse-backend/internal/database"
	"warehouse-backend/internal/inventory"
	"warehouse-backend/internal/models"
	"warehouse-backend/internal/notification"
	"warehouse-backend/internal/order"
	"warehouse-backend/internal/report"
	"warehouse-backend/internal/shipment"
	"warehouse-backend/internal/storage"
	"warehouse-backend/internal/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Post("/auth/logout", auth.LogoutHandler())
	protected.Get("/auth/me", auth.MeHandler())
	protected.Put("/auth/me", auth.UpdateMeHandler())

	// Personel gerektiren route'lar
	staffOnly := auth.RequireRole(models.RoleStaff, models.RoleAdmin)
	adminOnly := auth.RequireRole(models.RoleAdmin)

	// Kullanıcı listeleri
	protected.Get("/auth/staff", adminOnly, auth.ListStaffHandler())
	protected.Get("/auth/customers", adminOnly, auth.ListCustomersHandler())

	// Kategori yönetimi
	protected.Get("/categories", catalog.ListCategoriesHandler())
	protected.Get("/categories/:id", catalog.GetCategoryHandler())
	protected.Post("/categories", staffOnly, catalog.CreateCategoryHandler())
	protected.Put("/categories/:id", staffOnly, catalog.UpdateCategoryHandler())
	protected.Delete("/categories/:id", adminOnly, catalog.DeleteCategoryHandler())

	// Tedarikçi yönetimi
	protected.Get("/suppliers", catalog.ListSuppliersHandler())
	protected.Get("/suppliers/:id", catalog.GetSupplierHandler())
	protected.Post("/suppliers", staffOnly, catalog.CreateSupplierHandler())
	protected.Put("/suppliers/:id", staffOnly, catalog.UpdateSupplierHandler())
	protected.Delete("/suppliers/:id", adminOnly, catalog.DeleteSupplierHandler())

	// Ürün yönetimi
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Get("/products/:id", catalog.GetProductHandler())
	protected.Post("/products", staffOnly, catalog.CreateProductHandler())
	protected.Put("/products/:id", staffOnly, catalog.UpdateProductHandler())
	protected.Delete("/products/:id", adminOnly, catalog.DeleteProductHandler())

	// Depo yönetimi
	protected.Get("/warehouses", storage.ListWarehousesHandler())
	protected.Get("/warehouses/:id", storage.GetWarehouseHandler())
	protected.Post("/warehouses", adminOnly, storage.CreateWarehouseHandler())
	protected.Put("/warehouses/:id", adminOnly, storage.UpdateWarehouseHandler())
	protected.Delete("/warehouses/:id", adminOnly, storage.DeleteWarehouseHandler())

	// Raf yönetimi
	protected.Get("/shelves", storage.ListShelvesHandler())
	protected.Get("/shelves/:id", storage.GetShelfHandler())
	protected.Post("/shelves", staffOnly, storage.CreateShelfHandler())
	protected.Put("/shelves/:id", staffOnly, storage.UpdateShelfHandler())
	protected.Delete("/shelves/:id", adminOnly, storage.DeleteShelfHandler())

	// Stok
	protected.Get("/inventories", inventory.ListInventoriesHandler())
	protected.Get("/inventories/:id", inventory.GetInventoryHandler())
	protected.Post("/inventories", staffOnly, inventory.AddInventoryHandler(cfg))
	protected.Post("/inventories/refresh-status", staffOnly, inventory.RefreshStatusHandler(cfg))
	protected.Delete("/inventories/:id", staffOnly, inventory.DeleteInventoryHandler())

	// Sevkiyat iş akışı
	protected.Post("/shipments", staffOnly, shipment.CreateShipmentHandler())
	protected.Get("/shipments", staffOnly, shipment.ListShipmentsHandler())
	protected.Get("/shipments/:id", staffOnly, shipment.GetShipmentHandler())
	protected.Post("/shipments/:id/receive", staffOnly, shipment.ReceiveShipmentHandler())
	protected.Post("/shipment-details/:id/put-away", staffOnly, shipment.PutAwayDetailHandler(cfg))

	// Sipariş iş akışı
	protected.Post("/orders", order.CreateOrderHandler())
	protected.Get("/orders", order.ListOrdersHandler())
	protected.Get("/orders/:id", order.GetOrderHandler())
	protected.Post("/orders/:id/pick", staffOnly, order.PickOrderHandler())
	protected.Post("/orders/:id/pack", staffOnly, order.PackOrderHandler())
	protected.Post("/orders/:id/deliver", staffOnly, order.DeliverOrderHandler())
	protected.Post("/orders/:id/cancel", order.CancelOrderHandler())

	// Favoriler
	protected.Get("/favorites", order.ListFavoritesHandler())
	protected.Post("/favorites/:productID", order.AddFavoriteHandler())
	protected.Delete("/favorites/:productID", order.RemoveFavoriteHandler())

	// Cüzdan
	protected.Get("/wallet", wallet.GetWalletHandler())
	protected.Post("/wallet/deposit", wallet.DepositHandler())
	protected.Get("/wallet/transactions", wallet.ListTransactionsHandler())

	// Aktivite ve barkod kayıtları
	protected.Get("/activities", staffOnly, activity.ListActivitiesHandler())
	protected.Get("/barcode-scans", staffOnly, activity.ListScansHandler())

	// Bildirimler
	protected.Get("/notifications", notification.ListNotificationsHandler())
	protected.Post("/notifications/:id/read", notification.MarkReadHandler())

	// Raporlama
	protected.Post("/reports/generate", adminOnly, report.GenerateReportHandler())
	protected.Get("/reports", adminOnly, report.ListReportsHandler())
	protected.Get("/reports/:id", adminOnly, report.GetReportHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
