package dto

import (
	"time"

	"careerbridge/internal/models"

	"github.com/google/uuid"
)

// SubmitJobRequest defines the structure for an employer submitting a new
// posting. Requirements arrive as multi-line text and are split into a list
// at submission time.
type SubmitJobRequest struct {
	Title        string    `json:"title" validate:"required,max=150"`
	Company      string    `json:"company" validate:"required,max=150"`
	Location     string    `json:"location" validate:"required,max=150"`
	Type         string    `json:"type" validate:"required,oneof=Full-time Part-time Internship Contract Co-op 'Summer Job'"`
	Salary       string    `json:"salary" validate:"required,max=50"`
	Description  string    `json:"description" validate:"required"`
	Requirements string    `json:"requirements" validate:"required"`
	EmployerID   uuid.UUID `json:"-"` // Set internally by handler from auth context
}

// ListApprovedJobsRequest defines the browse filters for the student/public
// job listing. All filters are optional and combine with AND.
type ListApprovedJobsRequest struct {
	Search   string `form:"search" validate:"omitempty,max=150"`   // Substring over title/company/description
	Type     string `form:"type" validate:"omitempty,max=50"`      // Exact position type
	Location string `form:"location" validate:"omitempty,max=150"` // Substring match
	Salary   string `form:"salary" validate:"omitempty,max=50"`    // Exact bracket
	Limit    int    `form:"limit,default=20" validate:"omitempty,gte=0,lte=100"`
	Offset   int    `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ListJobsByEmployerRequest defines parameters for an employer listing
// their own postings.
type ListJobsByEmployerRequest struct {
	EmployerID uuid.UUID         `json:"-" validate:"required"` // Set internally by handler
	Status     *models.JobStatus `form:"status" validate:"omitempty,oneof=pending approved rejected"`
	Limit      int               `form:"limit,default=20" validate:"omitempty,gte=0,lte=100"`
	Offset     int               `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ListAllJobsRequest defines parameters for the admin console job list.
type ListAllJobsRequest struct {
	Status *models.JobStatus `form:"status" validate:"omitempty,oneof=pending approved rejected"`
	Limit  int               `form:"limit,default=50" validate:"omitempty,gte=0,lte=200"`
	Offset int               `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ReviewJobRequest carries an admin approve/reject action.
type ReviewJobRequest struct {
	ID      uuid.UUID `json:"-" validate:"required"`
	AdminID uuid.UUID `json:"-"` // Set from auth context
}

// DeleteJobRequest carries a job removal. Admins may delete any posting,
// employers only their own.
type DeleteJobRequest struct {
	ID        uuid.UUID   `json:"-" validate:"required"`
	ActorID   uuid.UUID   `json:"-"`
	ActorRole models.Role `json:"-"`
}

// JobResponse defines the standard job data returned to the client.
type JobResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Salary       string     `json:"salary"`
	Type         string     `json:"type"`
	EmployerID   uuid.UUID  `json:"employer_id"`
	Status       string     `json:"status"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy   *uuid.UUID `json:"reviewed_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	HasApplied   bool       `json:"has_applied,omitempty"` // Only populated on the student browse view
}
