package routes

import (
	authapi "movie-explorer-api/internal/api/auth"
	billingapi "movie-explorer-api/internal/api/billing"
	moviesapi "movie-explorer-api/internal/api/movies"
	subscriptionsapi "movie-explorer-api/internal/api/subscriptions"
	usersapi "movie-explorer-api/internal/api/users"
	"movie-explorer-api/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public, with input sanitization
	public := r.Group("/api/v1")
	public.Use(middleware.SanitizeInputMiddleware())
	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	// Identity optional: non-premium movies are open to anonymous callers,
	// and the Stripe success/cancel redirects arrive without a bearer token.
	optional := r.Group("/api/v1")
	optional.Use(middleware.OptionalAuthMiddleware())
	optional.GET("/movies", moviesapi.ListMovies)
	optional.GET("/movies/:id", moviesapi.GetMovie)
	optional.GET("/subscription/success", subscriptionsapi.ConfirmCheckout)
	optional.GET("/subscription/cancel", subscriptionsapi.PaymentCancelled)

	// Authenticated
	auth := r.Group("/api/v1")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/current_user", usersapi.GetCurrentUser)
	auth.PUT("/update_device_token", usersapi.UpdateDeviceToken)
	auth.PUT("/toggle_notifications", usersapi.ToggleNotifications)
	auth.PUT("/update_profile_picture", usersapi.UpdateProfilePicture)
	auth.DELETE("/remove_profile_picture", usersapi.RemoveProfilePicture)

	auth.GET("/subscription", subscriptionsapi.GetSubscription)
	auth.GET("/subscription/status", subscriptionsapi.GetSubscriptionStatus)
	auth.POST("/subscription", subscriptionsapi.CreateCheckout)
	auth.DELETE("/subscription", subscriptionsapi.CancelSubscription)

	auth.GET("/payments", billingapi.GetPaymentHistory)

	// Supervisors manage the catalog
	supervisor := auth.Group("/")
	supervisor.Use(middleware.RequireRole("supervisor"))
	supervisor.POST("/movies", moviesapi.CreateMovie)
	supervisor.PUT("/movies/:id", moviesapi.UpdateMovie)
	supervisor.DELETE("/movies/:id", moviesapi.DeleteMovie)
}
