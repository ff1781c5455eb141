// internal/api/routes/application_routes.go
package routes

import (
	"careerbridge/internal/api/handlers"
	"careerbridge/internal/api/middleware"
	"careerbridge/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers all routes related to applications
// and the resume upload endpoint.
func RegisterApplicationRoutes(
	rg *gin.RouterGroup,
	applicationHandler handlers.ApplicationHandlerInterface,
	uploadHandler handlers.UploadHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	applications := rg.Group("/applications")
	applications.Use(authMiddleware)
	{
		applications.POST("", middleware.RequireRoles(models.RoleStudent), applicationHandler.Apply)
		applications.GET("/my", middleware.RequireRoles(models.RoleStudent), applicationHandler.ListMyApplications)
		applications.GET("/my/job-ids", middleware.RequireRoles(models.RoleStudent), applicationHandler.ListMyAppliedJobIDs)
		applications.GET("/employer", middleware.RequireRoles(models.RoleEmployer), applicationHandler.ListEmployerApplications)
		applications.GET("", middleware.RequireRoles(models.RoleAdmin), applicationHandler.ListAllApplications)
		// Ownership (own application / own posting / admin) is checked in the service
		applications.GET("/:id", applicationHandler.GetApplicationByID)
		applications.PATCH("/:id/decision", middleware.RequireRoles(models.RoleEmployer, models.RoleAdmin), applicationHandler.DecideApplication)
	}

	uploads := rg.Group("/uploads")
	uploads.Use(authMiddleware)
	{
		uploads.POST("/resume", middleware.RequireRoles(models.RoleStudent), uploadHandler.UploadResume)
	}
}
