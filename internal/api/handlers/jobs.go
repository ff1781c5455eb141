package handlers

import (
	"context"
	"log"
	"net/http"

	"careerbridge/internal/api/middleware"
	"careerbridge/internal/models"
	"careerbridge/internal/services"
	"careerbridge/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JobHandler holds dependencies for job posting operations.
type JobHandler struct {
	service    services.JobService
	appService services.ApplicationService // For the has-applied badges on browse
	validator  *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, appService services.ApplicationService, validate *validator.Validate) *JobHandler {
	return &JobHandler{
		service:    service,
		appService: appService,
		validator:  validate,
	}
}

// SubmitJob godoc
// @Summary      Submit a new job posting
// @Description  Creates a pending posting that becomes visible to students once an admin approves it. Employer ID is taken from auth context.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body      dto.SubmitJobRequest true "Job details (EmployerID ignored)"
// @Success      201 {object}  dto.JobResponse "Job submitted for review"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Employers only"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) SubmitJob(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SubmitJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	req.EmployerID = employerID

	job, err := h.service.SubmitJob(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "submitting job")
		return
	}

	c.JSON(http.StatusCreated, MapJobToResponse(job))
}

// ListApprovedJobs godoc
// @Summary      Browse approved jobs
// @Description  Lists approved postings with optional search and filters. When called by an authenticated student, each job carries a has_applied flag.
// @Tags         jobs
// @Produce      json
// @Param        search   query string false "Substring over title, company and description"
// @Param        type     query string false "Position type"
// @Param        location query string false "Location substring"
// @Param        salary   query string false "Salary bracket"
// @Param        limit    query int    false "Page size" default(20)
// @Param        offset   query int    false "Page offset" default(0)
// @Success      200 {array}   dto.JobResponse "Approved jobs"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid filters"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [get]
func (h *JobHandler) ListApprovedJobs(c *gin.Context) {
	var req dto.ListApprovedJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	jobs, err := h.service.ListApprovedJobs(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "listing approved jobs")
		return
	}

	// Browse is public; the applied badges only exist for logged-in students.
	applied := map[uuid.UUID]bool{}
	if studentID, err := middleware.GetUserIDFromContext(c); err == nil {
		if role, err := middleware.GetRoleFromContext(c); err == nil && role == models.RoleStudent {
			ids, err := h.appService.AppliedJobIDs(c.Request.Context(), studentID)
			if err != nil {
				log.Printf("Error fetching applied job ids for student %s: %v", studentID, err)
			}
			for _, id := range ids {
				applied[id] = true
			}
		}
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp := MapJobToResponse(&jobs[i])
		resp.HasApplied = applied[jobs[i].ID]
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, responses)
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Description  Retrieves details for a specific job posting.
// @Tags         jobs
// @Produce      json
// @Param        id path      string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Job details"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJobByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.service.GetJobByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetching job")
		return
	}

	c.JSON(http.StatusOK, MapJobToResponse(job))
}

// ListMyJobs godoc
// @Summary      List the employer's own postings
// @Description  Lists postings submitted by the authenticated employer, optionally filtered by status.
// @Tags         jobs
// @Produce      json
// @Param        status query string false "Filter by status (pending, approved, rejected)"
// @Param        limit  query int    false "Page size" default(20)
// @Param        offset query int    false "Page offset" default(0)
// @Success      200 {array}   dto.JobResponse "Employer's postings"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid filters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Employers only"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/my [get]
// @Security     BearerAuth
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListJobsByEmployerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.EmployerID = employerID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	jobs, err := h.service.ListJobsByEmployer(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "listing employer jobs")
		return
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, MapJobToResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ListAllJobs godoc
// @Summary      List all postings
// @Description  Admin console view of every posting in every status.
// @Tags         jobs
// @Produce      json
// @Param        status query string false "Filter by status (pending, approved, rejected)"
// @Param        limit  query int    false "Page size" default(50)
// @Param        offset query int    false "Page offset" default(0)
// @Success      200 {array}   dto.JobResponse "All postings"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid filters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Admins only"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/all [get]
// @Security     BearerAuth
func (h *JobHandler) ListAllJobs(c *gin.Context) {
	var req dto.ListAllJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	jobs, err := h.service.ListAllJobs(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "listing all jobs")
		return
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, MapJobToResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ApproveJob godoc
// @Summary      Approve a pending posting
// @Description  Marks a posting approved and records the reviewing admin. Approving an already approved posting is a no-op.
// @Tags         jobs
// @Produce      json
// @Param        id path      string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Posting approved"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Admins only"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      409 {object}  map[string]string "Conflict - Posting already rejected"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id}/approve [patch]
// @Security     BearerAuth
func (h *JobHandler) ApproveJob(c *gin.Context) {
	h.review(c, h.service.ApproveJob)
}

// RejectJob godoc
// @Summary      Reject a pending posting
// @Description  Marks a posting rejected and records the reviewing admin. Rejecting an already rejected posting is a no-op.
// @Tags         jobs
// @Produce      json
// @Param        id path      string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Posting rejected"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Admins only"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      409 {object}  map[string]string "Conflict - Posting already approved"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id}/reject [patch]
// @Security     BearerAuth
func (h *JobHandler) RejectJob(c *gin.Context) {
	h.review(c, h.service.RejectJob)
}

func (h *JobHandler) review(c *gin.Context, decide func(ctx context.Context, req *dto.ReviewJobRequest) (*models.Job, error)) {
	adminID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	req := dto.ReviewJobRequest{ID: id, AdminID: adminID}
	job, err := decide(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "reviewing job")
		return
	}

	c.JSON(http.StatusOK, MapJobToResponse(job))
}

// DeleteJob godoc
// @Summary      Delete a posting
// @Description  Removes a posting. Employers can delete their own postings, admins any. Applications referencing the job are kept.
// @Tags         jobs
// @Produce      json
// @Param        id path      string true "Job ID" Format(uuid)
// @Success      204 {object}  nil "Posting deleted"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the posting employer"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	actorRole, err := middleware.GetRoleFromContext(c)
	if err != nil {
		log.Printf("Error getting role from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	req := dto.DeleteJobRequest{ID: id, ActorID: actorID, ActorRole: actorRole}
	if err := h.service.DeleteJob(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err, "deleting job")
		return
	}

	c.Status(http.StatusNoContent)
}
