package router

import (
	"github.com/gin-gonic/gin"

	"github.com/TheOneTrueGod/lomithBackend/internal/api"
	"github.com/TheOneTrueGod/lomithBackend/internal/middleware"
)

// Handlers bundles the API handlers mounted by SetupRouter. Image and
// Extract may be nil when their backing services are not configured;
// RateLimiter may be nil when Redis is not configured.
type Handlers struct {
	Auth        *api.AuthHandler
	Recipes     *api.RecipeHandler
	Integration *api.AIIntegrationHandler
	Extract     *api.ExtractHandler
	Image       *api.ImageHandler
	RateLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes.
func SetupRouter(h Handlers, validator middleware.TokenValidator, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	h.Auth.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		h.Recipes.RegisterRoutes(protected)
		h.Integration.RegisterRoutes(protected)

		if h.Image != nil {
			protected.POST("/recipes/image", h.Image.Upload)
		}

		if h.Extract != nil {
			extract := protected.Group("/ai")
			if h.RateLimiter != nil {
				extract.Use(h.RateLimiter.Middleware())
			}
			extract.POST("/extract-recipe", h.Extract.Extract)
		}
	}

	return router
}
