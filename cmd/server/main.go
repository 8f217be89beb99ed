package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dioprayoga/garasi/backend-go/internal/api"
	"github.com/dioprayoga/garasi/backend-go/internal/config"
	"github.com/dioprayoga/garasi/backend-go/internal/database"
	"github.com/dioprayoga/garasi/backend-go/internal/database/repository"
	"github.com/dioprayoga/garasi/backend-go/internal/database/service"
	"github.com/dioprayoga/garasi/backend-go/internal/gemini"
	"github.com/dioprayoga/garasi/backend-go/internal/googleauth"
	"github.com/dioprayoga/garasi/backend-go/internal/handler"
	"github.com/dioprayoga/garasi/backend-go/internal/logger"
	"github.com/dioprayoga/garasi/backend-go/internal/middleware"
	"github.com/dioprayoga/garasi/backend-go/internal/payment"
	"github.com/dioprayoga/garasi/backend-go/internal/storage"
	"github.com/dioprayoga/garasi/backend-go/internal/worker"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Garasi] Starting API server...",
		"environment", cfg.AppEnv,
		"port", cfg.ApiServicePort,
	)

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	carRepo := repository.NewCarRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// 5. Initialize Redis Client
	redisClient, err := database.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis for the inventory cache", "error", err)
		appLogger.Info("💡 Car listings will be served from Postgres only (no caching)")
		// Continue without Redis - listings still work from Postgres
	}
	defer func() {
		if redisClient != nil {
			redisClient.Close()
		}
	}()

	// 6. External integrations
	googleVerifier := googleauth.NewVerifier(cfg.GoogleClientID)

	uploader, err := storage.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "cars")
	if err != nil {
		appLogger.Warn("⚠️ Cloudinary not configured, image uploads disabled", "error", err)
	}

	stripeClient := payment.NewStripeClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	var ranker service.Ranker
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			appLogger.Warn("⚠️ Failed to initialize Gemini client, ranking falls back to price order", "error", err)
		} else {
			ranker = geminiClient
		}
	} else {
		appLogger.Info("💡 No Gemini API key configured, ranking falls back to price order")
	}

	// 7. Worker pool for webhook-triggered order records
	pool := worker.NewPool(appLogger)
	defer pool.Shutdown(10 * time.Second)

	// 8. Initialize Services
	authService := service.NewAuthService(userRepo, googleVerifier, cfg, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, redisClient, appLogger)
	carService := service.NewCarService(carRepo, categoryRepo, redisClient, uploader, appLogger)
	wishlistService := service.NewWishlistService(wishlistRepo, carRepo, appLogger)
	recommendationService := service.NewRecommendationService(carRepo, categoryRepo, ranker, cfg, appLogger)
	paymentService := service.NewPaymentService(carRepo, wishlistRepo, orderRepo, stripeClient, pool, cfg, appLogger)

	// 9. Rate Limiter for the AI endpoint
	rateLimiter, err := middleware.NewRateLimiter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	}
	defer rateLimiter.Close()

	// 10. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, appLogger)
	carHandler := handler.NewCarHandler(carService, cfg.MaxFileSize, appLogger)
	categoryHandler := handler.NewCategoryHandler(categoryService, appLogger)
	wishlistHandler := handler.NewWishlistHandler(wishlistService, appLogger)
	recommendationHandler := handler.NewRecommendationHandler(recommendationService, rateLimiter, appLogger)
	paymentHandler := handler.NewPaymentHandler(paymentService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	r := api.SetupRouter(authHandler, carHandler, categoryHandler, wishlistHandler, recommendationHandler, paymentHandler, authMiddleware)

	// 11. Start HTTP Server
	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	appLogger.Info("🌍 [Garasi] HTTP Server running...", "addr", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed", "error", err)
		os.Exit(1)
	}
}
