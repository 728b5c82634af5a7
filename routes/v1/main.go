package v1

import (
	"api/config"
	"api/handlers/auth"
	"api/handlers/puzzles"
	"api/handlers/submissions"
	"api/handlers/users"
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(config.APIRateLimit, config.APIRateBurst)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	auth.RegisterRoutes(v1)
	puzzles.RegisterRoutes(v1)
	submissions.RegisterRoutes(v1)
	users.RegisterRoutes(v1)
	RegisterSyncRoutes(v1)
	RegisterSwaggerRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
