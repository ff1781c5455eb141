package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- Role Enum ---
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployer Role = "employer"
	RoleStudent  Role = "student"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Role: value is not string or []byte")
		}
	}
	v := Role(strVal)
	switch v {
	case RoleAdmin, RoleEmployer, RoleStudent:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleStudent:
		return true
	}
	return false
}

// --- Job Status Enum ---
type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusApproved JobStatus = "approved"
	JobStatusRejected JobStatus = "rejected"
)

// Scan implements the sql.Scanner interface for JobStatus
func (js *JobStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan JobStatus: value is not string or []byte")
		}
	}
	v := JobStatus(strVal)
	switch v {
	case JobStatusPending, JobStatusApproved, JobStatusRejected:
		*js = v
		return nil
	default:
		return fmt.Errorf("invalid JobStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobStatus
func (js JobStatus) Value() (driver.Value, error) {
	return string(js), nil
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Scan implements the sql.Scanner interface for ApplicationStatus
func (as *ApplicationStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan ApplicationStatus: value is not string or []byte")
		}
	}
	v := ApplicationStatus(strVal)
	switch v {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		*as = v
		return nil
	default:
		return fmt.Errorf("invalid ApplicationStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (as ApplicationStatus) Value() (driver.Value, error) {
	return string(as), nil
}

// User represents an account in the system. Role is fixed at creation;
// no reassignment operation exists.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Phone        string    `json:"phone" db:"phone"`
	Role         Role      `json:"role" db:"role"`
	Company      *string   `json:"company,omitempty" db:"company"` // Employers only
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsEmployer reports whether the user has the employer role.
func (u *User) IsEmployer() bool { return u.Role == RoleEmployer }

// IsStudent reports whether the user has the student role.
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// Job represents a job posting submitted by an employer.
// It starts out pending and becomes visible to students once approved.
type Job struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Company      string     `json:"company" db:"company"`
	Location     string     `json:"location" db:"location"`
	Description  string     `json:"description" db:"description"`
	Requirements []string   `json:"requirements" db:"requirements"`
	Salary       string     `json:"salary" db:"salary"` // Experience/salary bracket shown in the browse filters
	Type         string     `json:"type" db:"type"`     // Position type (Full-time, Part-time, ...)
	EmployerID   uuid.UUID  `json:"employer_id" db:"employer_id"`
	Status       JobStatus  `json:"status" db:"status"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty" db:"reviewed_at"` // Set by admin approve/reject
	ReviewedBy   *uuid.UUID `json:"reviewed_by,omitempty" db:"reviewed_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Application represents a student's application to a single job.
// At most one application exists per (job, student) pair.
type Application struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	JobID       uuid.UUID         `json:"job_id" db:"job_id"`
	StudentID   uuid.UUID         `json:"student_id" db:"student_id"`
	EmployerID  uuid.UUID         `json:"employer_id" db:"employer_id"` // Stamped from the job at submission
	Status      ApplicationStatus `json:"status" db:"status"`
	Resume      string            `json:"resume" db:"resume"` // Link to the applicant's resume
	CoverLetter *string           `json:"cover_letter,omitempty" db:"cover_letter"`

	// Optional applicant profile fields from the long application form.
	School       *string `json:"school,omitempty" db:"school"`
	Grade        *string `json:"grade,omitempty" db:"grade"`
	Availability *string `json:"availability,omitempty" db:"availability"`
	Experience   *string `json:"experience,omitempty" db:"experience"`
	References   *string `json:"references,omitempty" db:"references"`

	DecidedAt *time.Time `json:"decided_at,omitempty" db:"decided_at"`
	DecidedBy *uuid.UUID `json:"decided_by,omitempty" db:"decided_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// JobRef is the subset of job fields attached to an application by the
// read-join. A nil JobRef means the referenced job no longer exists.
type JobRef struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	Type     string    `json:"type"`
	Salary   string    `json:"salary"`
}

// ApplicantRef is the subset of user fields attached to an application by
// the read-join. A nil ApplicantRef means the user document is missing.
type ApplicantRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

// JoinedApplication is an application augmented with its referenced job and
// applicant. Either reference may be nil when the target row is gone;
// listings render those as "unavailable" rather than failing.
type JoinedApplication struct {
	Application Application   `json:"application"`
	Job         *JobRef       `json:"job"`
	Applicant   *ApplicantRef `json:"applicant,omitempty"`
}

// SplitRequirements turns the multi-line requirements text from the posting
// form into a list, dropping blank lines.
func SplitRequirements(text string) []string {
	lines := strings.Split(text, "\n")
	reqs := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			reqs = append(reqs, trimmed)
		}
	}
	return reqs
}

// JobRefOf extracts the joined-job subset from a full job row.
func JobRefOf(j *Job) *JobRef {
	if j == nil {
		return nil
	}
	return &JobRef{
		ID:       j.ID,
		Title:    j.Title,
		Company:  j.Company,
		Location: j.Location,
		Type:     j.Type,
		Salary:   j.Salary,
	}
}

// ApplicantRefOf extracts the joined-applicant subset from a full user row.
func ApplicantRefOf(u *User) *ApplicantRef {
	if u == nil {
		return nil
	}
	return &ApplicantRef{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}
