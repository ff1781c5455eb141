package dto

import (
	"time"

	"careerbridge/internal/models"

	"github.com/google/uuid"
)

// RegisterRequest defines the structure for public account creation.
// Admin accounts cannot be self-registered.
type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Name     string      `json:"name" validate:"required,max=100"`
	Phone    string      `json:"phone" validate:"required,max=30"`
	Role     models.Role `json:"role" validate:"required,oneof=student employer"`
	Company  *string     `json:"company,omitempty" validate:"omitempty,max=100"` // Required when role=employer, checked in the service
}

// CreateEmployerRequest defines the structure for the admin console's
// "create employer account" form.
type CreateEmployerRequest struct {
	Email         string    `json:"email" validate:"required,email"`
	Password      string    `json:"password" validate:"required,min=8,max=72"`
	Company       string    `json:"company" validate:"required,max=100"`
	EmployerName  string    `json:"employer_name" validate:"required,max=100"`
	Phone         string    `json:"phone" validate:"required,max=30"`
	ContactPerson *string   `json:"contact_person,omitempty" validate:"omitempty,max=100"`
	CreatedBy     uuid.UUID `json:"-"` // Set from auth context
}

// LoginRequest defines the structure for credential verification.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest defines the structure for rotating a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest defines the structure for revoking a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UpdateUserRequest defines the structure for profile updates.
// Email and role are immutable.
type UpdateUserRequest struct {
	ID      uuid.UUID `json:"-" validate:"required"`
	Name    *string   `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone   *string   `json:"phone,omitempty" validate:"omitempty,max=30"`
	Company *string   `json:"company,omitempty" validate:"omitempty,max=100"`
}

// UserResponse defines the user data returned to clients.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Role      models.Role `json:"role"`
	Company   *string     `json:"company,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SessionResponse is returned by login and refresh: the capability flags are
// derived from the role, mutually exclusive, exactly one true.
type SessionResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	IsAdmin      bool         `json:"is_admin"`
	IsEmployer   bool         `json:"is_employer"`
	IsStudent    bool         `json:"is_student"`
}

// TokenPairResponse is returned by the refresh endpoint.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
