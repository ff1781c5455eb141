package storage

import (
	"context"

	"careerbridge/internal/models"
	"careerbridge/internal/transport/dto"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, req *dto.SubmitJobRequest, requirements []string) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListApproved(ctx context.Context, req *dto.ListApprovedJobsRequest) ([]models.Job, error)
	ListByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, error)
	ListAll(ctx context.Context, req *dto.ListAllJobsRequest) ([]models.Job, error)
	// SetStatus records the review outcome (status, reviewer, timestamp).
	SetStatus(ctx context.Context, id uuid.UUID, status models.JobStatus, reviewedBy uuid.UUID) (*models.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	Create(ctx context.Context, rec *dto.CreateApplicationRecord) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	// GetByJobAndStudent returns ErrNotFound when the student has not
	// applied to the job; used for the duplicate-application pre-check.
	GetByJobAndStudent(ctx context.Context, jobID, studentID uuid.UUID) (*models.Application, error)
	ListByStudent(ctx context.Context, req *dto.ListApplicationsByStudentRequest) ([]models.Application, error)
	ListByEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.Application, error)
	ListAll(ctx context.Context, req *dto.ListAllApplicationsRequest) ([]models.Application, error)
	ListJobIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
	// SetStatus records the decision outcome (status, actor, timestamp).
	SetStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, decidedBy uuid.UUID) (*models.Application, error)
}
