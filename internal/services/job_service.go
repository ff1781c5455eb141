package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"careerbridge/internal/metrics"
	"careerbridge/internal/models"
	"careerbridge/internal/storage"
	"careerbridge/internal/transport/dto"

	"github.com/google/uuid"
)

type jobService struct {
	jobRepo storage.JobRepository
	metrics *metrics.Metrics // May be nil in tests
}

// NewJobService creates a new instance of JobService.
func NewJobService(jobRepo storage.JobRepository, m *metrics.Metrics) JobService {
	return &jobService{jobRepo: jobRepo, metrics: m}
}

func (s *jobService) SubmitJob(ctx context.Context, req *dto.SubmitJobRequest) (*models.Job, error) {
	requirements := models.SplitRequirements(req.Requirements)
	if len(requirements) == 0 {
		return nil, fmt.Errorf("%w: requirements must contain at least one non-empty line", ErrValidation)
	}

	job, err := s.jobRepo.Create(ctx, req, requirements)
	if err != nil {
		return nil, MapRepoError(err, "submitting job")
	}
	if s.metrics != nil {
		s.metrics.JobsSubmitted.Inc()
	}
	log.Printf("Job %s submitted by employer %s, awaiting review", job.ID, job.EmployerID)
	return job, nil
}

func (s *jobService) GetJobByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return job, err
}

func (s *jobService) ListApprovedJobs(ctx context.Context, req *dto.ListApprovedJobsRequest) ([]models.Job, error) {
	return s.jobRepo.ListApproved(ctx, req)
}

func (s *jobService) ListJobsByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, error) {
	return s.jobRepo.ListByEmployer(ctx, req)
}

func (s *jobService) ListAllJobs(ctx context.Context, req *dto.ListAllJobsRequest) ([]models.Job, error) {
	return s.jobRepo.ListAll(ctx, req)
}

func (s *jobService) ApproveJob(ctx context.Context, req *dto.ReviewJobRequest) (*models.Job, error) {
	return s.review(ctx, req, models.JobStatusApproved)
}

func (s *jobService) RejectJob(ctx context.Context, req *dto.ReviewJobRequest) (*models.Job, error) {
	return s.review(ctx, req, models.JobStatusRejected)
}

func (s *jobService) review(ctx context.Context, req *dto.ReviewJobRequest, target models.JobStatus) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, "fetching job for review")
	}

	// Repeating the same decision is a no-op; flipping a decision is not
	// allowed, the posting must be resubmitted.
	if job.Status == target {
		return job, nil
	}
	if job.Status != models.JobStatusPending {
		return nil, fmt.Errorf("%w: job is already %s", ErrInvalidState, job.Status)
	}

	updated, err := s.jobRepo.SetStatus(ctx, req.ID, target, req.AdminID)
	if err != nil {
		return nil, MapRepoError(err, "recording job review")
	}
	if s.metrics != nil {
		s.metrics.JobReviews.WithLabelValues(string(target)).Inc()
	}
	log.Printf("Job %s marked %s by admin %s", updated.ID, target, req.AdminID)
	return updated, nil
}

func (s *jobService) DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error {
	job, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return MapRepoError(err, "fetching job for delete")
	}

	if req.ActorRole != models.RoleAdmin && job.EmployerID != req.ActorID {
		return fmt.Errorf("%w: only the posting employer or an admin can delete a job", ErrForbidden)
	}

	if err := s.jobRepo.Delete(ctx, req.ID); err != nil {
		return MapRepoError(err, "deleting job")
	}
	log.Printf("Job %s deleted by %s (%s)", req.ID, req.ActorID, req.ActorRole)
	return nil
}
