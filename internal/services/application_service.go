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

type applicationService struct {
	appRepo  storage.ApplicationRepository
	jobRepo  storage.JobRepository
	userRepo storage.UserRepository
	metrics  *metrics.Metrics // May be nil in tests
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(appRepo storage.ApplicationRepository, jobRepo storage.JobRepository, userRepo storage.UserRepository, m *metrics.Metrics) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		metrics:  m,
	}
}

func (s *applicationService) Apply(ctx context.Context, req *dto.ApplyRequest) (*models.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: job not found", ErrNotFound)
		}
		return nil, MapRepoError(err, "fetching job for application")
	}

	// Only approved postings accept applications.
	if job.Status != models.JobStatusApproved {
		return nil, fmt.Errorf("%w: job is not open for applications", ErrInvalidState)
	}

	// Pre-check for a duplicate application. The unique index on
	// (job_id, student_id) backstops the race between check and insert.
	_, err = s.appRepo.GetByJobAndStudent(ctx, req.JobID, req.StudentID)
	if err == nil {
		return nil, fmt.Errorf("%w: you have already applied to this job", ErrConflict)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, MapRepoError(err, "checking for existing application")
	}

	rec := &dto.CreateApplicationRecord{
		JobID:        req.JobID,
		StudentID:    req.StudentID,
		EmployerID:   job.EmployerID,
		Resume:       req.Resume,
		CoverLetter:  req.CoverLetter,
		School:       req.School,
		Grade:        req.Grade,
		Availability: req.Availability,
		Experience:   req.Experience,
		References:   req.References,
	}

	app, err := s.appRepo.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: you have already applied to this job", ErrConflict)
		}
		return nil, MapRepoError(err, "creating application")
	}
	if s.metrics != nil {
		s.metrics.ApplicationsTotal.Inc()
	}
	log.Printf("Application %s submitted by student %s for job %s", app.ID, app.StudentID, app.JobID)
	return app, nil
}

func (s *applicationService) Decide(ctx context.Context, req *dto.DecideApplicationRequest) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, MapRepoError(err, "fetching application for decision")
	}

	if req.ActorRole != models.RoleAdmin && app.EmployerID != req.ActorID {
		return nil, fmt.Errorf("%w: only the posting employer or an admin can decide an application", ErrForbidden)
	}

	// Decisions are final; a decided application cannot be re-decided.
	if app.Status != models.ApplicationStatusPending {
		return nil, fmt.Errorf("%w: application is already %s", ErrInvalidState, app.Status)
	}

	updated, err := s.appRepo.SetStatus(ctx, req.ApplicationID, req.Decision, req.ActorID)
	if err != nil {
		return nil, MapRepoError(err, "recording application decision")
	}
	if s.metrics != nil {
		s.metrics.ApplicationDecisions.WithLabelValues(string(req.Decision)).Inc()
	}
	log.Printf("Application %s marked %s by %s (%s)", updated.ID, req.Decision, req.ActorID, req.ActorRole)
	return updated, nil
}

func (s *applicationService) GetByID(ctx context.Context, req *dto.GetApplicationRequest) (*models.JoinedApplication, error) {
	app, err := s.appRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, MapRepoError(err, "fetching application")
	}

	// Students see their own applications, employers the ones against their
	// postings, admins everything.
	switch req.ActorRole {
	case models.RoleAdmin:
	case models.RoleEmployer:
		if app.EmployerID != req.ActorID {
			return nil, fmt.Errorf("%w: application belongs to another employer", ErrForbidden)
		}
	default:
		if app.StudentID != req.ActorID {
			return nil, fmt.Errorf("%w: application belongs to another student", ErrForbidden)
		}
	}

	joined := s.joinApplications(ctx, []models.Application{*app})
	return &joined[0], nil
}

func (s *applicationService) ListForStudent(ctx context.Context, req *dto.ListApplicationsByStudentRequest) ([]models.JoinedApplication, error) {
	apps, err := s.appRepo.ListByStudent(ctx, req)
	if err != nil {
		return nil, MapRepoError(err, "listing student applications")
	}
	return s.joinApplications(ctx, apps), nil
}

func (s *applicationService) ListForEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.JoinedApplication, error) {
	apps, err := s.appRepo.ListByEmployer(ctx, req)
	if err != nil {
		return nil, MapRepoError(err, "listing employer applications")
	}
	return s.joinApplications(ctx, apps), nil
}

func (s *applicationService) ListAll(ctx context.Context, req *dto.ListAllApplicationsRequest) ([]models.JoinedApplication, error) {
	apps, err := s.appRepo.ListAll(ctx, req)
	if err != nil {
		return nil, MapRepoError(err, "listing applications")
	}
	return s.joinApplications(ctx, apps), nil
}

func (s *applicationService) AppliedJobIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.appRepo.ListJobIDsByStudent(ctx, studentID)
	if err != nil {
		return nil, MapRepoError(err, "listing applied job ids")
	}
	return ids, nil
}
