package handlers

import (
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

// ApplicationHandler holds dependencies for application operations.
type ApplicationHandler struct {
	service   services.ApplicationService
	validator *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate) *ApplicationHandler {
	return &ApplicationHandler{service: service, validator: validate}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submits an application to an approved posting. A student can apply to a job at most once. Student ID is taken from auth context.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application body dto.ApplyRequest true "Application details (StudentID ignored)"
// @Success      201 {object}  dto.ApplicationResponse "Application submitted"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Students only"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      409 {object}  map[string]string "Conflict - Already applied or job not open"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	studentID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	req.StudentID = studentID

	app, err := h.service.Apply(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "applying to job")
		return
	}

	c.JSON(http.StatusCreated, MapApplicationToResponse(app))
}

// GetApplicationByID godoc
// @Summary      Get an application by ID
// @Description  Retrieves one application with its joined job and applicant. Students see their own, employers the ones against their postings, admins everything.
// @Tags         applications
// @Produce      json
// @Param        id path      string true "Application ID" Format(uuid)
// @Success      200 {object}  dto.JoinedApplicationResponse "Application details"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplicationByID(c *gin.Context) {
	actorID, actorRole, ok := h.identity(c)
	if !ok {
		return
	}

	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	req := dto.GetApplicationRequest{ID: id, ActorID: actorID, ActorRole: actorRole}
	joined, err := h.service.GetByID(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "fetching application")
		return
	}

	c.JSON(http.StatusOK, MapJoinedApplicationToResponse(joined))
}

// ListMyApplications godoc
// @Summary      List the student's own applications
// @Description  Lists applications submitted by the authenticated student with their joined jobs. A null job means the posting was removed.
// @Tags         applications
// @Produce      json
// @Param        limit  query int false "Page size" default(20)
// @Param        offset query int false "Page offset" default(0)
// @Success      200 {array}   dto.JoinedApplicationResponse "Student's applications"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid filters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Students only"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications/my [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	studentID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListApplicationsByStudentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.StudentID = studentID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	joined, err := h.service.ListForStudent(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "listing student applications")
		return
	}

	c.JSON(http.StatusOK, mapJoinedList(joined))
}

// ListMyAppliedJobIDs godoc
// @Summary      List job IDs the student has applied to
// @Description  Returns the IDs of all jobs the authenticated student has applied to, for marking the browse view.
// @Tags         applications
// @Produce      json
// @Success      200 {array}   string "Applied job IDs"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Students only"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications/my/job-ids [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMyAppliedJobIDs(c *gin.Context) {
	studentID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ids, err := h.service.AppliedJobIDs(c.Request.Context(), studentID)
	if err != nil {
		respondServiceError(c, err, "listing applied job ids")
		return
	}

	c.JSON(http.StatusOK, ids)
}

// ListEmployerApplications godoc
// @Summary      List applications against the employer's postings
// @Description  Lists applications submitted to the authenticated employer's postings with joined jobs and applicants.
// @Tags         applications
// @Produce      json
// @Param        limit  query int false "Page size" default(20)
// @Param        offset query int false "Page offset" default(0)
// @Success      200 {array}   dto.JoinedApplicationResponse "Applications for the employer"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid filters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Employers only"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications/employer [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListEmployerApplications(c *gin.Context) {
	employerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListApplicationsByEmployerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.EmployerID = employerID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	joined, err := h.service.ListForEmployer(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "listing employer applications")
		return
	}

	c.JSON(http.StatusOK, mapJoinedList(joined))
}

// ListAllApplications godoc
// @Summary      List all applications
// @Description  Admin console view of every application, optionally filtered by status.
// @Tags         applications
// @Produce      json
// @Param        status query string false "Filter by status (pending, accepted, rejected)"
// @Param        limit  query int    false "Page size" default(50)
// @Param        offset query int    false "Page offset" default(0)
// @Success      200 {array}   dto.JoinedApplicationResponse "All applications"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid filters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Admins only"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListAllApplications(c *gin.Context) {
	var req dto.ListAllApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	joined, err := h.service.ListAll(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "listing applications")
		return
	}

	c.JSON(http.StatusOK, mapJoinedList(joined))
}

// DecideApplication godoc
// @Summary      Accept or reject an application
// @Description  Records a final decision on a pending application. Only the posting employer or an admin may decide; decided applications cannot be re-decided.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id       path string                       true "Application ID" Format(uuid)
// @Param        decision body dto.DecideApplicationRequest true "Decision (accepted or rejected)"
// @Success      200 {object}  dto.ApplicationResponse "Decision recorded"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the posting employer"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Failure      409 {object}  map[string]string "Conflict - Application already decided"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications/{id}/decision [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) DecideApplication(c *gin.Context) {
	actorID, actorRole, ok := h.identity(c)
	if !ok {
		return
	}

	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	var req dto.DecideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ApplicationID = id
	req.ActorID = actorID
	req.ActorRole = actorRole

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	app, err := h.service.Decide(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "deciding application")
		return
	}

	c.JSON(http.StatusOK, MapApplicationToResponse(app))
}

func (h *ApplicationHandler) identity(c *gin.Context) (uuid.UUID, models.Role, bool) {
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, "", false
	}
	actorRole, err := middleware.GetRoleFromContext(c)
	if err != nil {
		log.Printf("Error getting role from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, "", false
	}
	return actorID, actorRole, true
}

func mapJoinedList(joined []models.JoinedApplication) []dto.JoinedApplicationResponse {
	responses := make([]dto.JoinedApplicationResponse, 0, len(joined))
	for i := range joined {
		responses = append(responses, MapJoinedApplicationToResponse(&joined[i]))
	}
	return responses
}
