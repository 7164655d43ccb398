package routes

import (
	"net/http"
	"time"

	"hairbook/handlers"
	"hairbook/middleware"
	"hairbook/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAccountRoutes registers authentication endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/accounts")
	{
		api.POST("/register", hb.RegisterAccountHandler)
		api.POST("/login", hb.AuthenticateHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.AccountRepo, ""))
		protected.DELETE("/revoke", hb.RevokeTokenHandler)
	}
}

// RegisterStylistRoutes registers profile management and discovery endpoints.
func RegisterStylistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stylists")
	{
		// Public endpoints.
		api.GET("/search", hb.SearchHandler)
		api.GET("/id/:id", hb.GetStylistHandler)
		api.GET("/id/:id/reviews", hb.ListStylistReviewsHandler)

		// Endpoints that modify profile data require a stylist account.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.AccountRepo, models.RoleStylist))
		protected.PUT("/profile", hb.UpsertProfileHandler)
		protected.GET("/profile", hb.GetOwnProfileHandler)
		protected.PATCH("/profile/pricing", hb.UpdatePricingHandler)
		protected.DELETE("/profile", hb.DeactivateHandler)
		protected.POST("/profile/portfolio", hb.UploadPortfolioHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		client := api.Group("")
		client.Use(middleware.JWTAuthMiddleware(hb.AccountRepo, models.RoleClient))
		client.POST("", hb.RequestBookingHandler)
		client.GET("/mine", hb.ListClientBookingsHandler)
		client.POST("/:id/cancel", hb.CancelHandler)
		client.POST("/:id/review", hb.CreateReviewHandler)

		stylist := api.Group("")
		stylist.Use(middleware.JWTAuthMiddleware(hb.AccountRepo, models.RoleStylist))
		stylist.GET("/incoming", hb.ListStylistBookingsHandler)
		stylist.POST("/:id/accept", hb.AcceptHandler)
		stylist.POST("/:id/reject", hb.RejectHandler)
		stylist.POST("/:id/complete", hb.CompleteHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Hairbook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAccountRoutes(r, hb)
	RegisterStylistRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
