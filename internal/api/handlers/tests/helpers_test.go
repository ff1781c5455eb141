package routes_test

import (
	"context"
	"testing"
	"time"

	"careerbridge/internal/auth"
	"careerbridge/internal/models"
	"careerbridge/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"careerbridge/internal/services"
)

const testSecret = "test-secret-key"

func generateTestToken(t *testing.T, userID uuid.UUID, role models.Role) string {
	t.Helper()
	token, err := auth.NewAccessToken(testSecret, 15*time.Minute, userID, role)
	require.NoError(t, err)
	return token
}

// --- Mock Services ---

// MockUserService is a mock type for the services.UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockUserService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockUserService) Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockUserService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockUserService) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) CreateEmployerAccount(ctx context.Context, req *dto.CreateEmployerRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

var _ services.UserService = (*MockUserService)(nil)

// MockJobService is a mock type for the services.JobService interface
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) SubmitJob(ctx context.Context, req *dto.SubmitJobRequest) (*models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) GetJobByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) ListApprovedJobs(ctx context.Context, req *dto.ListApprovedJobsRequest) ([]models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobService) ListJobsByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobService) ListAllJobs(ctx context.Context, req *dto.ListAllJobsRequest) ([]models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobService) ApproveJob(ctx context.Context, req *dto.ReviewJobRequest) (*models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) RejectJob(ctx context.Context, req *dto.ReviewJobRequest) (*models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

var _ services.JobService = (*MockJobService)(nil)

// MockApplicationService is a mock type for the services.ApplicationService interface
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Apply(ctx context.Context, req *dto.ApplyRequest) (*models.Application, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) Decide(ctx context.Context, req *dto.DecideApplicationRequest) (*models.Application, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) GetByID(ctx context.Context, req *dto.GetApplicationRequest) (*models.JoinedApplication, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JoinedApplication), args.Error(1)
}

func (m *MockApplicationService) ListForStudent(ctx context.Context, req *dto.ListApplicationsByStudentRequest) ([]models.JoinedApplication, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JoinedApplication), args.Error(1)
}

func (m *MockApplicationService) ListForEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.JoinedApplication, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JoinedApplication), args.Error(1)
}

func (m *MockApplicationService) ListAll(ctx context.Context, req *dto.ListAllApplicationsRequest) ([]models.JoinedApplication, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JoinedApplication), args.Error(1)
}

func (m *MockApplicationService) AppliedJobIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

var _ services.ApplicationService = (*MockApplicationService)(nil)
