package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"careerbridge/internal/models"
	"careerbridge/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// joinConcurrency bounds the parallel job/user lookups per listing request.
const joinConcurrency = 8

// joinApplications attaches the referenced job and applicant to each
// application. Lookups for distinct ids run concurrently; a missing or
// failed lookup leaves the reference nil instead of failing the listing,
// so applications survive the deletion of their job or user.
func (s *applicationService) joinApplications(ctx context.Context, apps []models.Application) []models.JoinedApplication {
	jobIDs := make(map[uuid.UUID]struct{}, len(apps))
	studentIDs := make(map[uuid.UUID]struct{}, len(apps))
	for i := range apps {
		jobIDs[apps[i].JobID] = struct{}{}
		studentIDs[apps[i].StudentID] = struct{}{}
	}

	var mu sync.Mutex
	jobs := make(map[uuid.UUID]*models.JobRef, len(jobIDs))
	applicants := make(map[uuid.UUID]*models.ApplicantRef, len(studentIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(joinConcurrency)

	for id := range jobIDs {
		g.Go(func() error {
			job, err := s.jobRepo.GetByID(gctx, id)
			if err != nil {
				if !errors.Is(err, storage.ErrNotFound) {
					log.Printf("Join: failed to fetch job %s: %v", id, err)
				}
				return nil // Missing reference, listing continues
			}
			mu.Lock()
			jobs[id] = models.JobRefOf(job)
			mu.Unlock()
			return nil
		})
	}
	for id := range studentIDs {
		g.Go(func() error {
			user, err := s.userRepo.GetByID(gctx, id)
			if err != nil {
				if !errors.Is(err, storage.ErrNotFound) {
					log.Printf("Join: failed to fetch user %s: %v", id, err)
				}
				return nil
			}
			mu.Lock()
			applicants[id] = models.ApplicantRefOf(user)
			mu.Unlock()
			return nil
		})
	}

	// Goroutines never return errors, Wait only synchronizes.
	_ = g.Wait()

	joined := make([]models.JoinedApplication, len(apps))
	for i := range apps {
		joined[i] = models.JoinedApplication{
			Application: apps[i],
			Job:         jobs[apps[i].JobID],
			Applicant:   applicants[apps[i].StudentID],
		}
	}
	return joined
}
