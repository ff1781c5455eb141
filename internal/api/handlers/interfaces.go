// internal/api/handlers/interfaces.go
package handlers

import "github.com/gin-gonic/gin"

// UserHandlerInterface defines the methods needed by the user routes.
type UserHandlerInterface interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
	GetMe(c *gin.Context)
	UpdateMe(c *gin.Context)
	GetUsers(c *gin.Context)
	CreateEmployer(c *gin.Context)
	DeleteUser(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	SubmitJob(c *gin.Context)
	ListApprovedJobs(c *gin.Context)
	GetJobByID(c *gin.Context)
	ListMyJobs(c *gin.Context)
	ListAllJobs(c *gin.Context)
	ApproveJob(c *gin.Context)
	RejectJob(c *gin.Context)
	DeleteJob(c *gin.Context)
}

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	Apply(c *gin.Context)
	GetApplicationByID(c *gin.Context)
	ListMyApplications(c *gin.Context)
	ListMyAppliedJobIDs(c *gin.Context)
	ListEmployerApplications(c *gin.Context)
	ListAllApplications(c *gin.Context)
	DecideApplication(c *gin.Context)
}

// UploadHandlerInterface defines the methods needed by the upload routes.
type UploadHandlerInterface interface {
	UploadResume(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var _ UserHandlerInterface = (*UserHandler)(nil)
var _ JobHandlerInterface = (*JobHandler)(nil)
var _ ApplicationHandlerInterface = (*ApplicationHandler)(nil)
var _ UploadHandlerInterface = (*UploadHandler)(nil)
