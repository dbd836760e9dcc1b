// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trendora/storefront-api/internal/config"
	"github.com/trendora/storefront-api/internal/handlers"
	"github.com/trendora/storefront-api/internal/middleware"
	"github.com/trendora/storefront-api/internal/services"
	"github.com/trendora/storefront-api/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg, notificationService)
	catalogService := services.NewCatalogService(db)
	recommendService := services.NewRecommendService(db)
	cartService := services.NewCartService(services.NewGormCartStore(db))
	preferenceService := services.NewPreferenceService(db, cfg)
	orderService := services.NewOrderService(db, notificationService)
	paymentService := services.NewPaymentService(db, cfg, orderService)
	reviewService := services.NewReviewService(db)
	alertService := services.NewAlertService(db, notificationService)
	adminService := services.NewAdminService(db, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService, recommendService, reviewService)
	cartHandler := handlers.NewCartHandler(cartService, catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	alertHandler := handlers.NewAlertHandler(alertService)
	adminHandler := handlers.NewAdminHandler(adminService, catalogService, paymentService, alertService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
			auth.PUT("/me", middleware.AuthRequired(), authHandler.UpdateProfile)
		}

		// Catalog routes (public)
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.ListProducts)
			products.GET("/flash-sale", productHandler.GetFlashSaleProducts)
			products.POST("/recommend", productHandler.Recommend)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
			products.GET("/:id/reviews", productHandler.GetProductReviews)

			// Authenticated routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/:id/reviews", reviewHandler.CreateReview)
			}
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", productHandler.GetCategories)
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddToCart)
			cart.PUT("/items/:id", cartHandler.UpdateQuantity)
			cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		}

		// Checkout routes
		checkout := v1.Group("/checkout")
		checkout.Use(middleware.AuthRequired(), middleware.CheckoutRateLimit())
		{
			checkout.POST("/intent", paymentHandler.CreateCheckoutIntent)
			checkout.POST("/confirm", paymentHandler.ConfirmPayment)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// Wishlist routes
		wishlist := v1.Group("/wishlist")
		wishlist.Use(middleware.AuthRequired())
		{
			wishlist.GET("", preferenceHandler.GetWishlist)
			wishlist.POST("/toggle", preferenceHandler.ToggleWishlist)
			wishlist.DELETE("", preferenceHandler.ClearWishlist)
		}

		// Preference routes
		preferences := v1.Group("/preferences")
		preferences.Use(middleware.AuthRequired())
		{
			preferences.GET("/theme", preferenceHandler.GetTheme)
			preferences.PUT("/theme", preferenceHandler.SetTheme)
		}

		// Review routes
		reviews := v1.Group("/reviews")
		reviews.Use(middleware.AuthRequired())
		{
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}

		// Price alert routes
		alerts := v1.Group("/alerts")
		alerts.Use(middleware.AuthRequired())
		{
			alerts.GET("", alertHandler.GetAlerts)
			alerts.POST("", alertHandler.SetAlert)
			alerts.DELETE("/:productId", alertHandler.RemoveAlert)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.GetUsers)
				adminUsers.PUT("/:id/status", adminHandler.UpdateUserStatus)
			}

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", adminHandler.GetOrders)
				adminOrders.PUT("/:id/status", adminHandler.UpdateOrderStatus)
				adminOrders.POST("/:id/refund", adminHandler.RefundOrder)
			}

			adminProducts := admin.Group("/products")
			{
				adminProducts.POST("", adminHandler.CreateProduct)
				adminProducts.PUT("/:id", adminHandler.UpdateProduct)
				adminProducts.DELETE("/:id", adminHandler.DeleteProduct)
				adminProducts.POST("/upload-images", middleware.UploadRateLimit(), adminHandler.UploadProductImages)
			}

			adminNotifications := admin.Group("/notifications")
			{
				adminNotifications.GET("", adminHandler.GetNotifications)
				adminNotifications.PUT("/:id/read", adminHandler.MarkNotificationRead)
			}

			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
