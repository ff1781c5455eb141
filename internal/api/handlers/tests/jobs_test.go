package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"careerbridge/internal/api/handlers"
	"careerbridge/internal/api/middleware"
	"careerbridge/internal/api/routes"
	"careerbridge/internal/models"
	"careerbridge/internal/services"
	"careerbridge/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockJobHandler is a mock implementation of JobHandlerInterface
type MockJobHandler struct {
	mock.Mock
}

func (m *MockJobHandler) SubmitJob(c *gin.Context)        { m.Called(c) }
func (m *MockJobHandler) ListApprovedJobs(c *gin.Context) { m.Called(c) }
func (m *MockJobHandler) GetJobByID(c *gin.Context)       { m.Called(c) }
func (m *MockJobHandler) ListMyJobs(c *gin.Context)       { m.Called(c) }
func (m *MockJobHandler) ListAllJobs(c *gin.Context)      { m.Called(c) }
func (m *MockJobHandler) ApproveJob(c *gin.Context)       { m.Called(c) }
func (m *MockJobHandler) RejectJob(c *gin.Context)        { m.Called(c) }
func (m *MockJobHandler) DeleteJob(c *gin.Context)        { m.Called(c) }

var _ handlers.JobHandlerInterface = (*MockJobHandler)(nil)

func setupJobRouter() (*gin.Engine, *MockJobService, *MockApplicationService) {
	gin.SetMode(gin.TestMode)
	mockJobs := new(MockJobService)
	mockApps := new(MockApplicationService)
	handler := handlers.NewJobHandler(mockJobs, mockApps, validator.New())
	router := gin.New()
	apiV1 := router.Group("/api/v1")
	routes.RegisterJobRoutes(apiV1, handler, middleware.JWTAuthMiddleware(testSecret))
	return router, mockJobs, mockApps
}

func approvedTestJob(employerID uuid.UUID) models.Job {
	return models.Job{
		ID:           uuid.New(),
		Title:        "Software Intern",
		Company:      "Acme Corp",
		Location:     "Toronto",
		Description:  "Build things",
		Requirements: []string{"Friendly", "Punctual"},
		Salary:       "Student",
		Type:         "Internship",
		EmployerID:   employerID,
		Status:       models.JobStatusApproved,
	}
}

func TestRegisterJobRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockHandler := new(MockJobHandler)
	router := gin.New()
	apiV1 := router.Group("/api/v1")
	noop := func(c *gin.Context) { c.Next() }

	routes.RegisterJobRoutes(apiV1, mockHandler, noop)

	expectedRoutes := []struct {
		Method string
		Path   string
	}{
		{http.MethodGet, "/api/v1/jobs"},
		{http.MethodGet, "/api/v1/jobs/:id"},
		{http.MethodPost, "/api/v1/jobs"},
		{http.MethodGet, "/api/v1/jobs/my"},
		{http.MethodGet, "/api/v1/jobs/all"},
		{http.MethodPatch, "/api/v1/jobs/:id/approve"},
		{http.MethodPatch, "/api/v1/jobs/:id/reject"},
		{http.MethodDelete, "/api/v1/jobs/:id"},
	}

	registeredRoutes := router.Routes()
	registeredMap := make(map[string]bool)
	for _, routeInfo := range registeredRoutes {
		registeredMap[routeInfo.Method+" "+routeInfo.Path] = true
	}

	assert.Len(t, registeredRoutes, len(expectedRoutes), "Number of registered routes should match expected")
	for _, expected := range expectedRoutes {
		assert.True(t, registeredMap[expected.Method+" "+expected.Path],
			"Expected route %s %s to be registered", expected.Method, expected.Path)
	}
}

func TestBrowseJobs(t *testing.T) {
	t.Run("Anonymous - No Badges", func(t *testing.T) {
		router, mockJobs, mockApps := setupJobRouter()

		jobs := []models.Job{approvedTestJob(uuid.New())}
		mockJobs.On("ListApprovedJobs", mock.Anything, mock.AnythingOfType("*dto.ListApprovedJobsRequest")).
			Return(jobs, nil).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp []dto.JobResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.False(t, resp[0].HasApplied)
		mockApps.AssertNotCalled(t, "AppliedJobIDs")
		mockJobs.AssertExpectations(t)
	})

	t.Run("Student - Applied Badge Set", func(t *testing.T) {
		router, mockJobs, mockApps := setupJobRouter()

		studentID := uuid.New()
		applied := approvedTestJob(uuid.New())
		other := approvedTestJob(uuid.New())
		mockJobs.On("ListApprovedJobs", mock.Anything, mock.AnythingOfType("*dto.ListApprovedJobsRequest")).
			Return([]models.Job{applied, other}, nil).Once()
		mockApps.On("AppliedJobIDs", mock.Anything, studentID).
			Return([]uuid.UUID{applied.ID}, nil).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
		request.Header.Set("Authorization", "Bearer "+generateTestToken(t, studentID, models.RoleStudent))
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp []dto.JobResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.True(t, resp[0].HasApplied)
		assert.False(t, resp[1].HasApplied)
		mockJobs.AssertExpectations(t)
		mockApps.AssertExpectations(t)
	})

	t.Run("Passes Filters Through", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		mockJobs.On("ListApprovedJobs", mock.Anything, mock.MatchedBy(func(req *dto.ListApprovedJobsRequest) bool {
			return req.Search == "intern" && req.Type == "Internship" && req.Limit == 10
		})).Return([]models.Job{}, nil).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/api/v1/jobs?search=intern&type=Internship&limit=10", nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		mockJobs.AssertExpectations(t)
	})
}

func TestSubmitJob(t *testing.T) {
	jobBody := func() []byte {
		body, _ := json.Marshal(gin.H{
			"title":        "Software Intern",
			"company":      "Acme Corp",
			"location":     "Toronto",
			"type":         "Internship",
			"salary":       "Student",
			"description":  "Build things",
			"requirements": "Friendly\nPunctual",
		})
		return body
	}

	t.Run("Success - Employer", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		employerID := uuid.New()
		submitted := approvedTestJob(employerID)
		submitted.Status = models.JobStatusPending
		mockJobs.On("SubmitJob", mock.Anything, mock.MatchedBy(func(req *dto.SubmitJobRequest) bool {
			return req.EmployerID == employerID
		})).Return(&submitted, nil).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(jobBody()))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Authorization", "Bearer "+generateTestToken(t, employerID, models.RoleEmployer))
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp dto.JobResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "pending", resp.Status)
		mockJobs.AssertExpectations(t)
	})

	t.Run("Forbidden - Student", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(jobBody()))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Authorization", "Bearer "+generateTestToken(t, uuid.New(), models.RoleStudent))
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		mockJobs.AssertNotCalled(t, "SubmitJob")
	})

	t.Run("Unauthorized - Anonymous", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(jobBody()))
		request.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockJobs.AssertNotCalled(t, "SubmitJob")
	})
}

func TestReviewJob(t *testing.T) {
	t.Run("Approve - Admin", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		adminID := uuid.New()
		job := approvedTestJob(uuid.New())
		mockJobs.On("ApproveJob", mock.Anything, mock.MatchedBy(func(req *dto.ReviewJobRequest) bool {
			return req.ID == job.ID && req.AdminID == adminID
		})).Return(&job, nil).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPatch, "/api/v1/jobs/"+job.ID.String()+"/approve", nil)
		request.Header.Set("Authorization", "Bearer "+generateTestToken(t, adminID, models.RoleAdmin))
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp dto.JobResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "approved", resp.Status)
		mockJobs.AssertExpectations(t)
	})

	t.Run("Reject - Already Approved Conflict", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		jobID := uuid.New()
		mockJobs.On("RejectJob", mock.Anything, mock.AnythingOfType("*dto.ReviewJobRequest")).
			Return(nil, fmt.Errorf("%w: job is already approved", services.ErrInvalidState)).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPatch, "/api/v1/jobs/"+jobID.String()+"/reject", nil)
		request.Header.Set("Authorization", "Bearer "+generateTestToken(t, uuid.New(), models.RoleAdmin))
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "already approved")
		mockJobs.AssertExpectations(t)
	})

	t.Run("Forbidden - Employer", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPatch, "/api/v1/jobs/"+uuid.NewString()+"/approve", nil)
		request.Header.Set("Authorization", "Bearer "+generateTestToken(t, uuid.New(), models.RoleEmployer))
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		mockJobs.AssertNotCalled(t, "ApproveJob")
	})

	t.Run("Bad Request - Invalid ID", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPatch, "/api/v1/jobs/not-a-uuid/approve", nil)
		request.Header.Set("Authorization", "Bearer "+generateTestToken(t, uuid.New(), models.RoleAdmin))
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockJobs.AssertNotCalled(t, "ApproveJob")
	})
}

func TestGetJobByID(t *testing.T) {
	t.Run("Success - Public", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		job := approvedTestJob(uuid.New())
		mockJobs.On("GetJobByID", mock.Anything, job.ID).Return(&job, nil).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/api/v1/jobs/"+job.ID.String(), nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp dto.JobResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, job.ID, resp.ID)
		mockJobs.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		jobID := uuid.New()
		mockJobs.On("GetJobByID", mock.Anything, jobID).
			Return(nil, fmt.Errorf("%w: job not found", services.ErrNotFound)).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/api/v1/jobs/"+jobID.String(), nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		mockJobs.AssertExpectations(t)
	})
}

func TestDeleteJob(t *testing.T) {
	t.Run("Success - Employer", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		employerID := uuid.New()
		jobID := uuid.New()
		mockJobs.On("DeleteJob", mock.Anything, mock.MatchedBy(func(req *dto.DeleteJobRequest) bool {
			return req.ID == jobID && req.ActorID == employerID && req.ActorRole == models.RoleEmployer
		})).Return(nil).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodDelete, "/api/v1/jobs/"+jobID.String(), nil)
		request.Header.Set("Authorization", "Bearer "+generateTestToken(t, employerID, models.RoleEmployer))
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		mockJobs.AssertExpectations(t)
	})

	t.Run("Forbidden - Student", func(t *testing.T) {
		router, mockJobs, _ := setupJobRouter()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodDelete, "/api/v1/jobs/"+uuid.NewString(), nil)
		request.Header.Set("Authorization", "Bearer "+generateTestToken(t, uuid.New(), models.RoleStudent))
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		mockJobs.AssertNotCalled(t, "DeleteJob")
	})
}
