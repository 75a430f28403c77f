package routes

import (
	"net/http"
	"time"

	"wayfare/handlers"
	"wayfare/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers participant sign-up and sign-in.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.SignIn)
	}
}

// RegisterProviderRoutes registers profile, availability and review reads.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	api.Use(middleware.Auth())
	{
		api.POST("/profile", hb.Profile.Create)
		api.PATCH("/profile", hb.Profile.Update)
		api.PUT("/profile/enabled", hb.Profile.SetEnabled)
		api.DELETE("/profile", hb.Profile.Delete)
		api.POST("/profile/recompute-stats", hb.Stats.Recompute)

		api.GET("/:id/profile", hb.Profile.Get)
		api.GET("/:id/availability", hb.Booking.CheckAvailability)
		api.GET("/:id/reviews", hb.Review.ListForProvider)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.Auth())
	{
		api.POST("", hb.Booking.Request)
		api.GET("/requested", hb.Booking.ListAsRequester)
		api.GET("/inbound", hb.Booking.ListAsProvider)
		api.GET("/:id", hb.Booking.Get)
		api.POST("/:id/respond", hb.Booking.Respond)
		api.POST("/:id/cancel", hb.Booking.Cancel)
		api.POST("/:id/start", hb.Booking.Start)
		api.POST("/:id/complete", hb.Booking.Complete)
		api.POST("/:id/reviews", hb.Review.Submit)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes wires CORS and every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
