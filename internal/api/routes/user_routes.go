package routes

import (
	"careerbridge/internal/api/handlers"
	"careerbridge/internal/api/middleware"
	"careerbridge/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers all routes related to accounts and sessions.
// The auth endpoints are rate limited per client IP.
func RegisterUserRoutes(rg *gin.RouterGroup, userHandler handlers.UserHandlerInterface, authMiddleware, rateLimit gin.HandlerFunc) {
	// --- Authentication Routes ---
	auth := rg.Group("/auth")
	auth.Use(rateLimit)
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
		auth.POST("/refresh", userHandler.Refresh)
		auth.POST("/logout", userHandler.Logout)
	}

	users := rg.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("/me", userHandler.GetMe)
		users.PUT("/me", userHandler.UpdateMe)

		// Admin console operations
		admin := users.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("", userHandler.GetUsers)
			admin.POST("/employers", userHandler.CreateEmployer)
			admin.DELETE("/:id", userHandler.DeleteUser)
		}
	}
}
