package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/smartchef/ai-service/internal/api"
	"github.com/smartchef/ai-service/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	chefHandler *api.ChefHandler,
	recipeHandler *api.RecipeHandler,
	jwtSecret string,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", api.HealthCheck)

	v1 := router.Group("/api/v1")
	chefHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1, middleware.ServiceAuth(jwtSecret))

	return router
}
