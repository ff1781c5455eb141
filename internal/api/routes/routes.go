// internal/api/routes/routes.go
package routes

import (
	"log"

	"careerbridge/internal/api/handlers"
	"careerbridge/internal/api/middleware"
	"careerbridge/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	//Create handlers
	userHandler := handlers.NewUserHandler(app.UserService, app.Validator)
	jobHandler := handlers.NewJobHandler(app.JobService, app.ApplicationService, app.Validator)
	applicationHandler := handlers.NewApplicationHandler(app.ApplicationService, app.Validator)
	uploadHandler := handlers.NewUploadHandler(app.ObjStore)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)
	authRateLimit := middleware.RateLimit(app.RateLimiter, app.Config.RateLimit.Requests, app.Config.RateLimit.Window)

	// --- Register Resource Routes ---
	RegisterUserRoutes(apiV1, userHandler, authMiddleware, authRateLimit)
	RegisterJobRoutes(apiV1, jobHandler, authMiddleware)
	RegisterApplicationRoutes(apiV1, applicationHandler, uploadHandler, authMiddleware)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)

	// --- Prometheus Metrics ---
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Println("Configuring Swagger UI handler")
	// Register the Swagger UI handler WITHOUT the explicit URL option.
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
