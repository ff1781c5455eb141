package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_storage "careerbridge/internal/mocks"
	"careerbridge/internal/models"
	"careerbridge/internal/services"
	"careerbridge/internal/storage"
	"careerbridge/internal/transport/dto"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testEmployerID = uuid.New()
	testAdminID    = uuid.New()
	testJobID      = uuid.New()
)

func newJobService(t *testing.T) (services.JobService, *mock_storage.MockJobRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockJobRepo := mock_storage.NewMockJobRepository(ctrl)
	svc := services.NewJobService(mockJobRepo, nil)
	return svc, mockJobRepo
}

func pendingJob() *models.Job {
	return &models.Job{
		ID:           testJobID,
		Title:        "Software Intern",
		Company:      "Acme Corp",
		Location:     "Toronto",
		Description:  "Build things",
		Requirements: []string{"Friendly", "Punctual"},
		Salary:       "Student",
		Type:         "Internship",
		EmployerID:   testEmployerID,
		Status:       models.JobStatusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestJobService_SubmitJob(t *testing.T) {
	t.Run("Success - Splits Requirements Into Lines", func(t *testing.T) {
		svc, mockRepo := newJobService(t)

		req := &dto.SubmitJobRequest{
			Title:        "Software Intern",
			Company:      "Acme Corp",
			Location:     "Toronto",
			Type:         "Internship",
			Salary:       "Student",
			Description:  "Build things",
			Requirements: "Friendly\n\n  Punctual  \n",
			EmployerID:   testEmployerID,
		}

		mockRepo.EXPECT().Create(gomock.Any(), req, []string{"Friendly", "Punctual"}).Return(pendingJob(), nil).Times(1)

		job, err := svc.SubmitJob(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusPending, job.Status)
		assert.Equal(t, []string{"Friendly", "Punctual"}, job.Requirements)
	})

	t.Run("Validation - Blank Requirements", func(t *testing.T) {
		svc, _ := newJobService(t)

		req := &dto.SubmitJobRequest{
			Title:        "Software Intern",
			Company:      "Acme Corp",
			Location:     "Toronto",
			Type:         "Internship",
			Salary:       "Student",
			Description:  "Build things",
			Requirements: "  \n\n  ",
			EmployerID:   testEmployerID,
		}

		job, err := svc.SubmitJob(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrValidation))
		assert.Nil(t, job)
	})
}

func TestJobService_ApproveJob(t *testing.T) {
	req := &dto.ReviewJobRequest{ID: testJobID, AdminID: testAdminID}

	t.Run("Success - Pending To Approved", func(t *testing.T) {
		svc, mockRepo := newJobService(t)

		approved := pendingJob()
		approved.Status = models.JobStatusApproved
		now := time.Now()
		approved.ReviewedAt = &now
		approved.ReviewedBy = &testAdminID

		mockRepo.EXPECT().GetByID(gomock.Any(), testJobID).Return(pendingJob(), nil).Times(1)
		mockRepo.EXPECT().SetStatus(gomock.Any(), testJobID, models.JobStatusApproved, testAdminID).Return(approved, nil).Times(1)

		job, err := svc.ApproveJob(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusApproved, job.Status)
		require.NotNil(t, job.ReviewedBy)
		assert.Equal(t, testAdminID, *job.ReviewedBy)
		assert.NotNil(t, job.ReviewedAt)
	})

	t.Run("Idempotent - Already Approved", func(t *testing.T) {
		svc, mockRepo := newJobService(t)

		approved := pendingJob()
		approved.Status = models.JobStatusApproved

		// No SetStatus call expected; repeating the decision is a no-op
		mockRepo.EXPECT().GetByID(gomock.Any(), testJobID).Return(approved, nil).Times(1)

		job, err := svc.ApproveJob(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusApproved, job.Status)
	})

	t.Run("Invalid State - Already Rejected", func(t *testing.T) {
		svc, mockRepo := newJobService(t)

		rejected := pendingJob()
		rejected.Status = models.JobStatusRejected

		mockRepo.EXPECT().GetByID(gomock.Any(), testJobID).Return(rejected, nil).Times(1)

		job, err := svc.ApproveJob(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrInvalidState))
		assert.Nil(t, job)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, mockRepo := newJobService(t)

		mockRepo.EXPECT().GetByID(gomock.Any(), testJobID).Return(nil, storage.ErrNotFound).Times(1)

		job, err := svc.ApproveJob(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrNotFound))
		assert.Nil(t, job)
	})
}

func TestJobService_RejectJob(t *testing.T) {
	req := &dto.ReviewJobRequest{ID: testJobID, AdminID: testAdminID}

	t.Run("Success - Pending To Rejected", func(t *testing.T) {
		svc, mockRepo := newJobService(t)

		rejected := pendingJob()
		rejected.Status = models.JobStatusRejected

		mockRepo.EXPECT().GetByID(gomock.Any(), testJobID).Return(pendingJob(), nil).Times(1)
		mockRepo.EXPECT().SetStatus(gomock.Any(), testJobID, models.JobStatusRejected, testAdminID).Return(rejected, nil).Times(1)

		job, err := svc.RejectJob(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusRejected, job.Status)
	})

	t.Run("Invalid State - Already Approved", func(t *testing.T) {
		svc, mockRepo := newJobService(t)

		approved := pendingJob()
		approved.Status = models.JobStatusApproved

		mockRepo.EXPECT().GetByID(gomock.Any(), testJobID).Return(approved, nil).Times(1)

		job, err := svc.RejectJob(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrInvalidState))
		assert.Nil(t, job)
	})
}

func TestJobService_DeleteJob(t *testing.T) {
	t.Run("Success - Posting Employer", func(t *testing.T) {
		svc, mockRepo := newJobService(t)

		mockRepo.EXPECT().GetByID(gomock.Any(), testJobID).Return(pendingJob(), nil).Times(1)
		mockRepo.EXPECT().Delete(gomock.Any(), testJobID).Return(nil).Times(1)

		err := svc.DeleteJob(context.Background(), &dto.DeleteJobRequest{
			ID:        testJobID,
			ActorID:   testEmployerID,
			ActorRole: models.RoleEmployer,
		})
		require.NoError(t, err)
	})

	t.Run("Success - Admin Deletes Any Posting", func(t *testing.T) {
		svc, mockRepo := newJobService(t)

		mockRepo.EXPECT().GetByID(gomock.Any(), testJobID).Return(pendingJob(), nil).Times(1)
		mockRepo.EXPECT().Delete(gomock.Any(), testJobID).Return(nil).Times(1)

		err := svc.DeleteJob(context.Background(), &dto.DeleteJobRequest{
			ID:        testJobID,
			ActorID:   testAdminID,
			ActorRole: models.RoleAdmin,
		})
		require.NoError(t, err)
	})

	t.Run("Forbidden - Another Employer", func(t *testing.T) {
		svc, mockRepo := newJobService(t)

		mockRepo.EXPECT().GetByID(gomock.Any(), testJobID).Return(pendingJob(), nil).Times(1)

		err := svc.DeleteJob(context.Background(), &dto.DeleteJobRequest{
			ID:        testJobID,
			ActorID:   uuid.New(),
			ActorRole: models.RoleEmployer,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrForbidden))
	})
}

func TestJobService_ListApprovedJobs(t *testing.T) {
	svc, mockRepo := newJobService(t)

	req := &dto.ListApprovedJobsRequest{Search: "intern", Type: "Internship", Limit: 20}
	approved := pendingJob()
	approved.Status = models.JobStatusApproved

	mockRepo.EXPECT().ListApproved(gomock.Any(), req).Return([]models.Job{*approved}, nil).Times(1)

	jobs, err := svc.ListApprovedJobs(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusApproved, jobs[0].Status)
}
