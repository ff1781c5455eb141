// internal/api/routes/job_routes.go
package routes

import (
	"careerbridge/internal/api/handlers"
	"careerbridge/internal/api/middleware"
	"careerbridge/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to job postings.
// Browsing approved postings is public; everything else is role gated.
func RegisterJobRoutes(
	rg *gin.RouterGroup, // Base group (e.g., /api/v1)
	jobHandler handlers.JobHandlerInterface, // Use interface
	authMiddleware gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	{
		// Public browse; optionalAuth lets logged-in students get applied badges
		jobs.GET("", optionalAuth(authMiddleware), jobHandler.ListApprovedJobs)
		jobs.GET("/:id", jobHandler.GetJobByID)

		authed := jobs.Group("")
		authed.Use(authMiddleware)
		{
			authed.POST("", middleware.RequireRoles(models.RoleEmployer), jobHandler.SubmitJob)
			authed.GET("/my", middleware.RequireRoles(models.RoleEmployer), jobHandler.ListMyJobs)
			authed.GET("/all", middleware.RequireRoles(models.RoleAdmin), jobHandler.ListAllJobs)
			authed.PATCH("/:id/approve", middleware.RequireRoles(models.RoleAdmin), jobHandler.ApproveJob)
			authed.PATCH("/:id/reject", middleware.RequireRoles(models.RoleAdmin), jobHandler.RejectJob)
			// Ownership (own posting or admin) is checked in the service
			authed.DELETE("/:id", middleware.RequireRoles(models.RoleEmployer, models.RoleAdmin), jobHandler.DeleteJob)
		}
	}
}

// optionalAuth runs the auth middleware only when a bearer token is present,
// so the public browse endpoint works both anonymous and logged in.
func optionalAuth(authMiddleware gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		authMiddleware(c)
	}
}
