package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"careerbridge/internal/auth"
	mock_storage "careerbridge/internal/mocks"
	"careerbridge/internal/models"
	"careerbridge/internal/services"
	"careerbridge/internal/storage"
	"careerbridge/internal/transport/dto"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtSecret = "test-secret-key"
	accessTTL = 15 * time.Minute
)

var (
	testUserID = uuid.New() // Use a consistent ID for predictable mocks/results
)

// Helper to create a pointer to a string
func ptr(s string) *string { return &s }

func newUserService(t *testing.T) (services.UserService, *mock_storage.MockUserRepository, *mock_storage.MockRefreshTokenStore) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockUserRepo := mock_storage.NewMockUserRepository(ctrl)
	mockTokens := mock_storage.NewMockRefreshTokenStore(ctrl)
	svc := services.NewUserService(mockUserRepo, mockTokens, jwtSecret, accessTTL)
	return svc, mockUserRepo, mockTokens
}

func TestUserService_Register(t *testing.T) {
	repoErrDbConnectionLost := errors.New("database connection lost")

	tests := []struct {
		name          string
		req           *dto.RegisterRequest
		mockSetup     func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore)
		expectedRole  models.Role
		expectedError error
		errorContains string
	}{
		{
			name: "Success - Student",
			req: &dto.RegisterRequest{
				Email:    "student@example.com",
				Password: "password123",
				Name:     "Test Student",
				Phone:    "555-0100",
				Role:     models.RoleStudent,
			},
			mockSetup: func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, user *models.User) (*models.User, error) {
						// The service hashes the password before the repo sees it
						assert.NotEqual(t, "password123", user.PasswordHash)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
						assert.Equal(t, models.RoleStudent, user.Role)
						return user, nil
					}).Times(1)
				tokens.EXPECT().Issue(gomock.Any(), gomock.Any()).Return("refresh-token", nil).Times(1)
			},
			expectedRole: models.RoleStudent,
		},
		{
			name: "Success - Employer With Company",
			req: &dto.RegisterRequest{
				Email:    "employer@example.com",
				Password: "password123",
				Name:     "Test Employer",
				Phone:    "555-0101",
				Role:     models.RoleEmployer,
				Company:  ptr("Acme Corp"),
			},
			mockSetup: func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, user *models.User) (*models.User, error) {
						return user, nil
					}).Times(1)
				tokens.EXPECT().Issue(gomock.Any(), gomock.Any()).Return("refresh-token", nil).Times(1)
			},
			expectedRole: models.RoleEmployer,
		},
		{
			name: "Validation - Employer Without Company",
			req: &dto.RegisterRequest{
				Email:    "employer@example.com",
				Password: "password123",
				Name:     "Test Employer",
				Phone:    "555-0101",
				Role:     models.RoleEmployer,
			},
			mockSetup:     func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore) {},
			expectedError: services.ErrValidation,
			errorContains: "company is required",
		},
		{
			name: "Validation - Admin Cannot Self-Register",
			req: &dto.RegisterRequest{
				Email:    "admin@example.com",
				Password: "password123",
				Name:     "Wannabe Admin",
				Phone:    "555-0102",
				Role:     models.RoleAdmin,
			},
			mockSetup:     func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore) {},
			expectedError: services.ErrValidation,
			errorContains: "cannot self-register",
		},
		{
			name: "Conflict - Duplicate Email",
			req: &dto.RegisterRequest{
				Email:    "student@example.com",
				Password: "password123",
				Name:     "Test Student",
				Phone:    "555-0100",
				Role:     models.RoleStudent,
			},
			mockSetup: func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateEmail).Times(1)
			},
			expectedError: services.ErrConflict,
		},
		{
			name: "Repository Error",
			req: &dto.RegisterRequest{
				Email:    "error@example.com",
				Password: "password123",
				Name:     "Error User",
				Phone:    "555-0103",
				Role:     models.RoleStudent,
			},
			mockSetup: func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, repoErrDbConnectionLost).Times(1)
			},
			expectedError: repoErrDbConnectionLost,
			errorContains: "internal error creating user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockTokens := newUserService(t)
			ctx := context.Background()
			tt.mockSetup(mockRepo, mockTokens)

			user, access, refresh, err := svc.Register(ctx, tt.req)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), "Expected error %v, got %v", tt.expectedError, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, user)
				assert.Empty(t, access)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.NotEmpty(t, access)
				assert.Equal(t, "refresh-token", refresh)
			}
		})
	}
}

func TestUserService_Register_NormalizesEmail(t *testing.T) {
	svc, mockRepo, mockTokens := newUserService(t)

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *models.User) (*models.User, error) {
			assert.Equal(t, "mixed@example.com", user.Email)
			return user, nil
		}).Times(1)
	mockTokens.EXPECT().Issue(gomock.Any(), gomock.Any()).Return("refresh-token", nil).Times(1)

	_, _, _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "  MiXeD@Example.COM ",
		Password: "password123",
		Name:     "Case Tester",
		Phone:    "555-0104",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)
}

func TestUserService_Login(t *testing.T) {
	correctPassword := "password123"
	correctHashedPassword, _ := bcrypt.GenerateFromPassword([]byte(correctPassword), bcrypt.DefaultCost)
	repoErrDbConnection := errors.New("db connection error")

	tests := []struct {
		name          string
		req           *dto.LoginRequest
		mockSetup     func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore)
		expectedError error
		errorContains string
	}{
		{
			name: "Success",
			req: &dto.LoginRequest{
				Email:    "test@example.com",
				Password: correctPassword,
			},
			mockSetup: func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore) {
				repo.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(&models.User{
					ID:           testUserID,
					Email:        "test@example.com",
					PasswordHash: string(correctHashedPassword),
					Name:         "Test User",
					Role:         models.RoleStudent,
				}, nil).Times(1)
				tokens.EXPECT().Issue(gomock.Any(), testUserID).Return("refresh-token", nil).Times(1)
			},
		},
		{
			name: "Invalid Password",
			req: &dto.LoginRequest{
				Email:    "test@example.com",
				Password: "wrongpassword",
			},
			mockSetup: func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore) {
				repo.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(&models.User{
					ID:           testUserID,
					Email:        "test@example.com",
					PasswordHash: string(correctHashedPassword),
					Role:         models.RoleStudent,
				}, nil).Times(1)
			},
			expectedError: services.ErrInvalidCredentials,
		},
		{
			name: "User Not Found",
			req: &dto.LoginRequest{
				Email:    "notfound@example.com",
				Password: "password123",
			},
			mockSetup: func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore) {
				repo.EXPECT().GetByEmail(gomock.Any(), "notfound@example.com").Return(nil, storage.ErrNotFound).Times(1)
			},
			expectedError: services.ErrInvalidCredentials,
		},
		{
			name: "Repository Error on GetByEmail",
			req: &dto.LoginRequest{
				Email:    "error@example.com",
				Password: "password123",
			},
			mockSetup: func(repo *mock_storage.MockUserRepository, tokens *mock_storage.MockRefreshTokenStore) {
				repo.EXPECT().GetByEmail(gomock.Any(), "error@example.com").Return(nil, repoErrDbConnection).Times(1)
			},
			expectedError: repoErrDbConnection,
			errorContains: "internal error during login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockTokens := newUserService(t)
			tt.mockSetup(mockRepo, mockTokens)

			user, access, refresh, err := svc.Login(context.Background(), tt.req)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), "Expected error %v, got %v", tt.expectedError, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, user)
				assert.Empty(t, access)
				assert.Empty(t, refresh)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, testUserID, user.ID)
				assert.NotEmpty(t, access)
				assert.Equal(t, "refresh-token", refresh)
			}
		})
	}
}

func TestUserService_Refresh(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mockRepo, mockTokens := newUserService(t)

		mockTokens.EXPECT().Rotate(gomock.Any(), "old-token").Return(testUserID, "new-token", nil).Times(1)
		mockRepo.EXPECT().GetByID(gomock.Any(), testUserID).Return(&models.User{
			ID:    testUserID,
			Email: "test@example.com",
			Role:  models.RoleEmployer,
		}, nil).Times(1)

		access, refresh, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "old-token"})
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.Equal(t, "new-token", refresh)
	})

	t.Run("Unknown Token", func(t *testing.T) {
		svc, _, mockTokens := newUserService(t)

		mockTokens.EXPECT().Rotate(gomock.Any(), "stale-token").Return(uuid.Nil, "", auth.ErrRefreshTokenNotFound).Times(1)

		access, refresh, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "stale-token"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
		assert.Empty(t, access)
		assert.Empty(t, refresh)
	})

	t.Run("Account Deleted Since Issue", func(t *testing.T) {
		svc, mockRepo, mockTokens := newUserService(t)

		mockTokens.EXPECT().Rotate(gomock.Any(), "orphan-token").Return(testUserID, "new-token", nil).Times(1)
		mockRepo.EXPECT().GetByID(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound).Times(1)

		_, _, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "orphan-token"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
	})
}

func TestUserService_Logout(t *testing.T) {
	svc, _, mockTokens := newUserService(t)

	mockTokens.EXPECT().Revoke(gomock.Any(), "some-token").Return(nil).Times(1)

	err := svc.Logout(context.Background(), &dto.LogoutRequest{RefreshToken: "some-token"})
	require.NoError(t, err)
}

func TestUserService_CreateEmployerAccount(t *testing.T) {
	adminID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, mockRepo, _ := newUserService(t)

		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, user *models.User) (*models.User, error) {
				assert.Equal(t, models.RoleEmployer, user.Role)
				require.NotNil(t, user.Company)
				assert.Equal(t, "Acme Corp", *user.Company)
				// Contact person takes precedence over the employer name
				assert.Equal(t, "Jordan Smith", user.Name)
				return user, nil
			}).Times(1)

		user, err := svc.CreateEmployerAccount(context.Background(), &dto.CreateEmployerRequest{
			Email:         "hr@acme.example",
			Password:      "password123",
			Company:       "Acme Corp",
			EmployerName:  "Acme HR",
			Phone:         "555-0200",
			ContactPerson: ptr("Jordan Smith"),
			CreatedBy:     adminID,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleEmployer, user.Role)
	})

	t.Run("Conflict - Duplicate Email", func(t *testing.T) {
		svc, mockRepo, _ := newUserService(t)

		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateEmail).Times(1)

		user, err := svc.CreateEmployerAccount(context.Background(), &dto.CreateEmployerRequest{
			Email:        "hr@acme.example",
			Password:     "password123",
			Company:      "Acme Corp",
			EmployerName: "Acme HR",
			Phone:        "555-0200",
			CreatedBy:    adminID,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrConflict))
		assert.Nil(t, user)
	})
}

func TestUserService_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mockRepo, _ := newUserService(t)

		mockRepo.EXPECT().GetByID(gomock.Any(), testUserID).Return(&models.User{
			ID:    testUserID,
			Email: "test@example.com",
		}, nil).Times(1)

		user, err := svc.GetByID(context.Background(), testUserID)
		require.NoError(t, err)
		assert.Equal(t, testUserID, user.ID)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, mockRepo, _ := newUserService(t)

		mockRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound).Times(1)

		user, err := svc.GetByID(context.Background(), uuid.New())
		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrNotFound))
		assert.Nil(t, user)
	})
}
