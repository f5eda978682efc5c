// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/souqhub/souq-backend/internal/cache"
	"github.com/souqhub/souq-backend/internal/config"
	"github.com/souqhub/souq-backend/internal/handlers"
	"github.com/souqhub/souq-backend/internal/middleware"
	"github.com/souqhub/souq-backend/internal/services"
	"github.com/souqhub/souq-backend/internal/store"
	"github.com/souqhub/souq-backend/internal/store/fixture"
	"github.com/souqhub/souq-backend/internal/store/record"
	"github.com/souqhub/souq-backend/internal/utils"
)

// buildStore picks the backing source once at startup. Everything downstream
// talks to the same interface and cannot tell which one it got.
func buildStore(db *gorm.DB, cfg *config.Config) store.Store {
	if cfg.DataSource.UseMock() {
		latency := time.Duration(cfg.DataSource.MockLatencyMs) * time.Millisecond
		return fixture.New(latency)
	}

	var c cache.Cache
	if cfg.Redis.Enabled {
		client := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		c = cache.NewRedisCache(client)
	}
	return record.New(db, c)
}

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	dataStore := buildStore(db, cfg)
	timeout := time.Duration(cfg.DataSource.RequestTimeout) * time.Second

	// Services
	notificationService := services.NewNotificationService(cfg)
	storageService, _ := services.NewStorageService(cfg)
	adsService := services.NewAdsService(dataStore, timeout, cfg.Listings.ExpiryDays)
	categoriesService := services.NewCategoriesService(dataStore, timeout)
	authService := services.NewAuthService(dataStore, cfg.Auth, cfg.JWT, timeout)
	userService := services.NewUserService(dataStore, timeout)
	promotionService := services.NewPromotionService(dataStore, cfg.Payment, notificationService, timeout)
	adminService := services.NewAdminService(dataStore, categoriesService, notificationService, timeout)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, notificationService)
	listingHandler := handlers.NewListingHandler(adsService, storageService)
	categoryHandler := handlers.NewCategoryHandler(categoriesService)
	userHandler := handlers.NewUserHandler(userService, storageService)
	promotionHandler := handlers.NewPromotionHandler(promotionService)
	adminHandler := handlers.NewAdminHandler(adminService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(dataStore))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"data_source": cfg.DataSource.Mode,
		})
	})

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		listings := api.Group("/listings")
		{
			listings.GET("", listingHandler.GetListings)
			listings.GET("/:id", middleware.OptionalAuth(), listingHandler.GetListing)

			protected := listings.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", listingHandler.CreateListing)
				protected.PUT("/:id", listingHandler.UpdateListing)
				protected.DELETE("/:id", listingHandler.DeleteListing)
				protected.POST("/:id/favorite", listingHandler.ToggleFavorite)
				protected.POST("/:id/images", middleware.UploadRateLimit(), listingHandler.UploadImage)
			}
		}

		api.GET("/favorites", middleware.AuthRequired(), listingHandler.GetFavorites)

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
		}

		users := api.Group("/users")
		{
			users.GET("/:id", userHandler.GetPublicProfile)

			protected := users.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/profile", userHandler.GetProfile)
				protected.PUT("/profile", userHandler.UpdateProfile)
				protected.POST("/avatar", middleware.UploadRateLimit(), userHandler.UploadAvatar)
				protected.DELETE("/profile", userHandler.DeactivateAccount)
			}
		}

		promotions := api.Group("/promotions")
		promotions.Use(middleware.AuthRequired())
		{
			promotions.POST("", promotionHandler.CreateOrder)
			promotions.POST("/:id/confirm", promotionHandler.ConfirmOrder)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/listings/pending", adminHandler.GetPendingListings)
			admin.POST("/listings/:id/approve", adminHandler.ApproveListing)
			admin.POST("/listings/:id/reject", adminHandler.RejectListing)
			admin.POST("/categories", adminHandler.SaveCategory)
			admin.PUT("/users/:id/status", adminHandler.SetUserStatus)
		}
	}

	return r
}
