package handlers

import (
	"fmt"

	"careerbridge/internal/models"
	"careerbridge/internal/transport/dto"

	"github.com/go-playground/validator/v10"
)

func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
		case "url":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid URL", fieldName)
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		}
	}
	return errorsMap
}

// MapUserToResponse converts a models.User to a dto.UserResponse
func MapUserToResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      user.Role,
		Company:   user.Company,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapUserToSessionResponse builds the login/register payload: user data,
// token pair and the role flags the frontend keys its views on.
func MapUserToSessionResponse(user *models.User, access, refresh string) dto.SessionResponse {
	return dto.SessionResponse{
		User:         MapUserToResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
		IsAdmin:      user.IsAdmin(),
		IsEmployer:   user.IsEmployer(),
		IsStudent:    user.IsStudent(),
	}
}

// MapJobToResponse converts a models.Job to a dto.JobResponse
func MapJobToResponse(job *models.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Description:  job.Description,
		Requirements: job.Requirements,
		Salary:       job.Salary,
		Type:         job.Type,
		EmployerID:   job.EmployerID,
		Status:       string(job.Status),
		ReviewedAt:   job.ReviewedAt,
		ReviewedBy:   job.ReviewedBy,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}

// MapApplicationToResponse converts a models.Application to a dto.ApplicationResponse
func MapApplicationToResponse(app *models.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:           app.ID,
		JobID:        app.JobID,
		StudentID:    app.StudentID,
		EmployerID:   app.EmployerID,
		Status:       string(app.Status),
		Resume:       app.Resume,
		CoverLetter:  app.CoverLetter,
		School:       app.School,
		Grade:        app.Grade,
		Availability: app.Availability,
		Experience:   app.Experience,
		References:   app.References,
		DecidedAt:    app.DecidedAt,
		DecidedBy:    app.DecidedBy,
		CreatedAt:    app.CreatedAt,
		UpdatedAt:    app.UpdatedAt,
	}
}

// MapJoinedApplicationToResponse converts a read-joined application. The
// job and applicant stay nil when their rows are gone.
func MapJoinedApplicationToResponse(joined *models.JoinedApplication) dto.JoinedApplicationResponse {
	return dto.JoinedApplicationResponse{
		Application: MapApplicationToResponse(&joined.Application),
		Job:         joined.Job,
		Applicant:   joined.Applicant,
	}
}
