package routes

import (
	"net/http"
	"time"

	userRepo "stayhub/database/repository/user"
	"stayhub/handlers"
	"stayhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and logout endpoints.
func RegisterAuthRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/auth")
	{
		api.POST("/register", handlers.RegisterHandler)
		api.POST("/login", handlers.LoginHandler)
		api.POST("/logout", middleware.AuthRequired(users), handlers.LogoutHandler)
	}
}

// RegisterUserRoutes registers profile and role-management endpoints.
func RegisterUserRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/users")
	{
		api.Use(middleware.AuthRequired(users))
		api.GET("/me", handlers.GetProfileHandler)
		api.PUT("/me", handlers.UpdateProfileHandler)
		api.PATCH("/me", handlers.UpdateProfileHandler)
		api.PUT("/:id/role", middleware.AdminRequired(), handlers.UpdateUserRoleHandler)
	}
}

// RegisterAccommodationRoutes registers the accommodation catalog.
// Listing and reads are public; mutations are admin only.
func RegisterAccommodationRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/accommodations")
	{
		api.GET("", handlers.ListAccommodationsHandler)
		api.GET("/:id", handlers.GetAccommodationHandler)

		admin := api.Group("")
		admin.Use(middleware.AuthRequired(users), middleware.AdminRequired())
		admin.POST("", handlers.CreateAccommodationHandler)
		admin.PUT("/:id", handlers.UpdateAccommodationHandler)
		admin.PATCH("/:id", handlers.UpdateAccommodationHandler)
		admin.DELETE("/:id", handlers.DeleteAccommodationHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/bookings")
	{
		api.Use(middleware.AuthRequired(users))
		api.POST("", handlers.CreateBookingHandler)
		api.GET("", middleware.AdminRequired(), handlers.ListBookingsHandler)
		api.GET("/my", handlers.MyBookingsHandler)
		api.GET("/:id", handlers.GetBookingHandler)
		api.PUT("/:id", handlers.UpdateBookingHandler)
		api.PATCH("/:id", handlers.UpdateBookingHandler)
		api.DELETE("/:id", handlers.CancelBookingHandler)
	}
}

// RegisterPaymentRoutes registers the checkout endpoints. The success
// and cancel callbacks are reached by redirect from the provider's
// hosted page, so they stay outside the auth group.
func RegisterPaymentRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/payments")
	{
		api.GET("/success", handlers.PaymentSuccessHandler)
		api.GET("/cancel", handlers.PaymentCancelHandler)

		protected := api.Group("")
		protected.Use(middleware.AuthRequired(users))
		protected.GET("", handlers.ListPaymentsHandler)
		protected.POST("", handlers.CreatePaymentHandler)
		protected.PUT("/renew/:paymentId", handlers.RenewPaymentHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, users userRepo.UserRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, users)
	RegisterUserRoutes(r, users)
	RegisterAccommodationRoutes(r, users)
	RegisterBookingRoutes(r, users)
	RegisterPaymentRoutes(r, users)
	RegisterHealthRoute(r)
}
