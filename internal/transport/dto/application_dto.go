package dto

import (
	"time"

	"careerbridge/internal/models"

	"github.com/google/uuid"
)

// ApplyRequest defines the structure for a student applying to a job.
// The resume and cover letter are links (see the uploads endpoint); the
// remaining profile fields come from the long application form and are
// optional.
type ApplyRequest struct {
	JobID       uuid.UUID `json:"job_id" validate:"required"`
	Resume      string    `json:"resume" validate:"required,url"`
	CoverLetter *string   `json:"cover_letter,omitempty" validate:"omitempty,url"`

	School       *string `json:"school,omitempty" validate:"omitempty,max=150"`
	Grade        *string `json:"grade,omitempty" validate:"omitempty,max=50"`
	Availability *string `json:"availability,omitempty" validate:"omitempty,max=150"`
	Experience   *string `json:"experience,omitempty"`
	References   *string `json:"references,omitempty"`

	StudentID uuid.UUID `json:"-"` // Set internally by handler from auth context
}

// CreateApplicationRecord is the repository-level insert payload; the
// employer id has already been stamped from the job by the service.
type CreateApplicationRecord struct {
	JobID        uuid.UUID
	StudentID    uuid.UUID
	EmployerID   uuid.UUID
	Resume       string
	CoverLetter  *string
	School       *string
	Grade        *string
	Availability *string
	Experience   *string
	References   *string
}

// DecideApplicationRequest carries an accept/reject decision by the owning
// employer or an admin.
type DecideApplicationRequest struct {
	ApplicationID uuid.UUID                `json:"-" validate:"required"`
	Decision      models.ApplicationStatus `json:"decision" validate:"required,oneof=accepted rejected"`
	ActorID       uuid.UUID                `json:"-"` // Set from auth context
	ActorRole     models.Role              `json:"-"`
}

// GetApplicationRequest fetches one application with its joined references,
// subject to an ownership check.
type GetApplicationRequest struct {
	ID        uuid.UUID   `json:"-" validate:"required"`
	ActorID   uuid.UUID   `json:"-"`
	ActorRole models.Role `json:"-"`
}

// ListApplicationsByStudentRequest lists a student's own applications.
type ListApplicationsByStudentRequest struct {
	StudentID uuid.UUID `json:"-" validate:"required"`
	Limit     int       `form:"limit,default=20" validate:"omitempty,gte=0,lte=100"`
	Offset    int       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ListApplicationsByEmployerRequest lists applications submitted against an
// employer's postings.
type ListApplicationsByEmployerRequest struct {
	EmployerID uuid.UUID `json:"-" validate:"required"`
	Limit      int       `form:"limit,default=20" validate:"omitempty,gte=0,lte=100"`
	Offset     int       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ListAllApplicationsRequest is the admin console's unfiltered view.
type ListAllApplicationsRequest struct {
	Status *models.ApplicationStatus `form:"status" validate:"omitempty,oneof=pending accepted rejected"`
	Limit  int                       `form:"limit,default=50" validate:"omitempty,gte=0,lte=200"`
	Offset int                       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ApplicationResponse defines the application data returned to the client.
type ApplicationResponse struct {
	ID           uuid.UUID  `json:"id"`
	JobID        uuid.UUID  `json:"job_id"`
	StudentID    uuid.UUID  `json:"student_id"`
	EmployerID   uuid.UUID  `json:"employer_id"`
	Status       string     `json:"status"`
	Resume       string     `json:"resume"`
	CoverLetter  *string    `json:"cover_letter,omitempty"`
	School       *string    `json:"school,omitempty"`
	Grade        *string    `json:"grade,omitempty"`
	Availability *string    `json:"availability,omitempty"`
	Experience   *string    `json:"experience,omitempty"`
	References   *string    `json:"references,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	DecidedBy    *uuid.UUID `json:"decided_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// JoinedApplicationResponse is an application plus its read-joined job and
// applicant. Job and applicant are null when the referenced row is missing;
// clients render those as "no longer available".
type JoinedApplicationResponse struct {
	Application ApplicationResponse  `json:"application"`
	Job         *models.JobRef       `json:"job"`
	Applicant   *models.ApplicantRef `json:"applicant,omitempty"`
}
