package services

import (
	"context"

	"careerbridge/internal/models"
	"careerbridge/internal/transport/dto"

	"github.com/google/uuid"
)

// RefreshTokenStore issues, rotates and revokes opaque refresh tokens.
// Implemented by auth.RefreshStore on Redis.
type RefreshTokenStore interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Rotate(ctx context.Context, oldToken string) (uuid.UUID, string, error)
	Revoke(ctx context.Context, token string) error
}

// UserService defines the interface for account and session business logic.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, string, error) // Returns user, access and refresh tokens
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// CreateEmployerAccount is the admin console operation for provisioning
	// employer logins; there is no public employer sign-up path.
	CreateEmployerAccount(ctx context.Context, req *dto.CreateEmployerRequest) (*models.User, error)
}

// JobService defines the interface for job posting business logic.
type JobService interface {
	SubmitJob(ctx context.Context, req *dto.SubmitJobRequest) (*models.Job, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListApprovedJobs(ctx context.Context, req *dto.ListApprovedJobsRequest) ([]models.Job, error)
	ListJobsByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, error)
	ListAllJobs(ctx context.Context, req *dto.ListAllJobsRequest) ([]models.Job, error)
	ApproveJob(ctx context.Context, req *dto.ReviewJobRequest) (*models.Job, error)
	RejectJob(ctx context.Context, req *dto.ReviewJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error
}

// ApplicationService defines the interface for application business logic.
type ApplicationService interface {
	Apply(ctx context.Context, req *dto.ApplyRequest) (*models.Application, error)
	Decide(ctx context.Context, req *dto.DecideApplicationRequest) (*models.Application, error)
	GetByID(ctx context.Context, req *dto.GetApplicationRequest) (*models.JoinedApplication, error)
	ListForStudent(ctx context.Context, req *dto.ListApplicationsByStudentRequest) ([]models.JoinedApplication, error)
	ListForEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.JoinedApplication, error)
	ListAll(ctx context.Context, req *dto.ListAllApplicationsRequest) ([]models.JoinedApplication, error)
	// AppliedJobIDs backs the "already applied" badges on the browse view.
	AppliedJobIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
}
