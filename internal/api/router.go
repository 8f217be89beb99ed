package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dioprayoga/garasi/backend-go/internal/handler"
	"github.com/dioprayoga/garasi/backend-go/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	carHandler *handler.CarHandler,
	categoryHandler *handler.CategoryHandler,
	wishlistHandler *handler.WishlistHandler,
	recommendationHandler *handler.RecommendationHandler,
	paymentHandler *handler.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Account routes (Public)
	userGroup := r.Group("/users")
	{
		userGroup.POST("/register", authHandler.Register)
		userGroup.POST("/login", authHandler.Login)
		userGroup.POST("/google-login", authHandler.GoogleLogin)
	}

	// Inventory routes; reads are public, writes require an admin role
	carGroup := r.Group("/cars")
	{
		carGroup.GET("", carHandler.List)
		carGroup.GET("/:carId", carHandler.GetByID)

		carAdmin := carGroup.Group("")
		carAdmin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			carAdmin.POST("", carHandler.Create)
			carAdmin.PUT("/:carId", carHandler.Update)
			carAdmin.PATCH("/:carId", carHandler.UploadImage)
			carAdmin.DELETE("/:carId", carHandler.Delete)
		}
	}

	categoryGroup := r.Group("/categories")
	{
		categoryGroup.GET("", categoryHandler.List)
		categoryGroup.GET("/:categoryId", categoryHandler.GetByID)

		categoryAdmin := categoryGroup.Group("")
		categoryAdmin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			categoryAdmin.POST("", categoryHandler.Create)
			categoryAdmin.PUT("/:categoryId", categoryHandler.Update)
			categoryAdmin.DELETE("/:categoryId", categoryHandler.Delete)
		}
	}

	// Wishlist routes (authenticated users)
	wishlistGroup := r.Group("/wishlists")
	wishlistGroup.Use(authMiddleware.RequireAuth())
	{
		wishlistGroup.GET("", wishlistHandler.List)
		wishlistGroup.POST("/:carId", wishlistHandler.Add)
		wishlistGroup.DELETE("/:itemId", wishlistHandler.Remove)
	}

	// AI recommendation (authenticated users, daily quota)
	aiGroup := r.Group("/ai")
	aiGroup.Use(authMiddleware.RequireAuth())
	{
		aiGroup.POST("/recommend", recommendationHandler.Recommend)
	}

	// Payment routes; webhook and redirect targets are unauthenticated
	paymentGroup := r.Group("/payment")
	{
		paymentGroup.GET("/success", paymentHandler.Success)
		paymentGroup.GET("/cancel", paymentHandler.Cancel)
		paymentGroup.POST("/webhook", paymentHandler.Webhook)

		paymentAuth := paymentGroup.Group("")
		paymentAuth.Use(authMiddleware.RequireAuth())
		{
			paymentAuth.POST("/create-checkout-session", paymentHandler.CreateCheckoutSession)
		}
	}

	return r
}
