// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/handlers"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/middleware"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

const version = "1.0.0"

func Initialize(cfg *config.Config, registry *services.Registry) *gin.Engine {
	// Initialize handlers
	userHandler := handlers.NewUserHandler(registry.Users)
	productHandler := handlers.NewProductHandler(registry.Products, registry.Storage)
	verificationHandler := handlers.NewVerificationHandler(registry.Products, registry.Certificates)
	orderHandler := handlers.NewOrderHandler(registry.Orders)
	hubHandler := handlers.NewHubHandler(registry.Hubs)
	inventoryHandler := handlers.NewInventoryHandler(registry.Inventory)
	paymentHandler := handlers.NewPaymentHandler(registry.Payments)
	tourHandler := handlers.NewTourHandler(registry.Tours)
	dashboardHandler := handlers.NewDashboardHandler(registry.Dashboards)
	reportHandler := handlers.NewReportHandler(registry.Reports)
	adminHandler := handlers.NewAdminHandler(registry.Admin, registry.Notifications)

	utils.SetIdentitySecret(cfg.Identity.SecretKey, cfg.Identity.Issuer)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit(cfg.RateLimit))
	r.Use(middleware.AuditLogMiddleware(registry.Admin))

	r.GET("/health", healthHandler(registry.Ledger))

	v1 := r.Group("/v1")
	{
		me := v1.Group("/me")
		me.Use(middleware.AuthRequired())
		{
			me.GET("", userHandler.GetMe)
			me.PUT("/profile", userHandler.SaveProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/:id/verify", middleware.OptionalAuth(), verificationHandler.VerifyProduct)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/mine", productHandler.GetMyProducts)
				protected.GET("/:id", productHandler.GetProduct)
				protected.GET("/:id/inventory", inventoryHandler.GetProductInventory)
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/certificate", verificationHandler.MintCertificate)
				protected.POST("/upload-images", middleware.UploadRateLimit(), productHandler.UploadProductImages)
			}
		}

		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", middleware.AdminRequired(), orderHandler.GetOrders)
			orders.GET("/mine", orderHandler.GetMyOrders)
			orders.GET("/artist", orderHandler.GetArtistOrders)
			orders.GET("/summary", orderHandler.GetOrderSummary)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("", orderHandler.PlaceOrder)
			orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		}

		hubs := v1.Group("/hubs")
		{
			hubs.GET("", middleware.OptionalAuth(), hubHandler.GetHubs)

			protected := hubs.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/mine", hubHandler.GetMyHubs)
				protected.POST("/apply", hubHandler.ApplyForHub)
				protected.PUT("/:id", hubHandler.UpdateHub)
				protected.POST("/:id/submit", hubHandler.SubmitHub)
				protected.GET("/:id/orders", orderHandler.GetHubOrders)
				protected.GET("/:id/inventory", inventoryHandler.GetHubInventory)
				protected.GET("/:id/inventory/summary", inventoryHandler.GetHubSummary)
				protected.GET("/:id/activity", inventoryHandler.GetHubActivity)
			}
		}

		inventory := v1.Group("/inventory")
		inventory.Use(middleware.AuthRequired())
		{
			inventory.GET("/matrix", inventoryHandler.GetMatrix)
			inventory.GET("/low-stock", inventoryHandler.GetLowStock)
			inventory.POST("/assign", inventoryHandler.AssignProduct)
			inventory.DELETE("/assign", inventoryHandler.RemoveProduct)
			inventory.PUT("/stock", inventoryHandler.UpdateStock)
			inventory.POST("/restock", inventoryHandler.BulkRestock)
			inventory.POST("/:id/restock", inventoryHandler.Restock)
		}

		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.GET("/mine", paymentHandler.GetMyPayments)
			payments.POST("/checkout", paymentHandler.Checkout)
		}

		tours := v1.Group("/tours")
		{
			tours.GET("", middleware.OptionalAuth(), tourHandler.GetTours)

			protected := tours.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/mine", tourHandler.GetMyTours)
				protected.GET("/summary", tourHandler.GetTourSummary)
				protected.POST("", tourHandler.CreateTour)
				protected.PUT("/:id", tourHandler.UpdateTour)
				protected.DELETE("/:id", tourHandler.DeleteTour)
			}
		}

		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.AuthRequired())
		{
			dashboard.GET("/artist", dashboardHandler.GetArtistDashboard)
			dashboard.GET("/buyer", dashboardHandler.GetBuyerDashboard)
			dashboard.GET("/hub/:id", dashboardHandler.GetHubDashboard)
		}

		reports := v1.Group("/reports")
		reports.Use(middleware.AuthRequired())
		{
			reports.GET("/orders", reportHandler.OrdersReport)
			reports.GET("/inventory", reportHandler.InventoryReport)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/overview", adminHandler.GetOverview)

			adminHubs := admin.Group("/hubs")
			{
				adminHubs.GET("", hubHandler.GetAdminHubs)
				adminHubs.PUT("/:id/:action", hubHandler.ModerateHub)
				adminHubs.DELETE("/:id", hubHandler.DeleteHub)
			}

			adminPayments := admin.Group("/payments")
			{
				adminPayments.GET("", paymentHandler.GetAllPayments)
				adminPayments.GET("/audit", paymentHandler.AuditPayments)
			}

			admin.GET("/stripe", paymentHandler.GetStripeStatus)
			admin.PUT("/stripe", paymentHandler.SetStripeConfiguration)

			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
			admin.GET("/notifications", adminHandler.GetNotifications)
			admin.PUT("/notifications/:id/read", adminHandler.MarkNotificationRead)
			admin.GET("/analytics", adminHandler.GetAnalytics)
		}
	}

	// Local blob storage
	if cfg.AWS.AccessKeyID == "" {
		r.Static("/uploads", cfg.Server.UploadDir)
	}

	return r
}

func healthHandler(client *ledger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := client.State()
		status := "healthy"
		if state != ledger.StateConnected {
			status = "degraded"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"ledger":  state,
			"version": version,
		})
	}
}
