package handlers

import (
	"log"
	"net/http"

	"careerbridge/internal/api/middleware"
	"careerbridge/internal/services"
	"careerbridge/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UserHandler holds dependencies for account and session operations.
type UserHandler struct {
	service   services.UserService
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{service: service, validator: validate}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates a student or employer account and returns a session. Admin accounts cannot be self-registered.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user body      dto.RegisterRequest true  "Account details"
// @Success      201  {object}  dto.SessionResponse "Account created"
// @Failure      400  {object}  map[string]string "Bad Request - Invalid input"
// @Failure      409  {object}  map[string]string "Conflict - Email already registered"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	user, access, refresh, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "register")
		return
	}

	c.JSON(http.StatusCreated, MapUserToSessionResponse(user, access, refresh))
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a session with role flags and a token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body dto.LoginRequest true "Login credentials"
// @Success      200  {object}  dto.SessionResponse "Login successful"
// @Failure      400  {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401  {object}  map[string]string "Unauthorized - Invalid credentials"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	user, access, refresh, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, MapUserToSessionResponse(user, access, refresh))
}

// Refresh godoc
// @Summary      Refresh the session
// @Description  Rotates the refresh token and returns a new token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token body dto.RefreshRequest true "Refresh token"
// @Success      200  {object}  dto.TokenPairResponse "Tokens rotated"
// @Failure      400  {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401  {object}  map[string]string "Unauthorized - Unknown or expired refresh token"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /auth/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	access, refresh, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "refresh")
		return
	}

	c.JSON(http.StatusOK, dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the refresh token. The access token expires on its own.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token body dto.LogoutRequest true "Refresh token to revoke"
// @Success      204  {object}  nil "Logged out"
// @Failure      400  {object}  map[string]string "Bad Request - Invalid input"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	if err := h.service.Logout(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err, "logout")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMe godoc
// @Summary      Get the current user
// @Description  Returns the profile of the authenticated user.
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.UserResponse "Current user"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "fetching current user")
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateMe godoc
// @Summary      Update the current user's profile
// @Description  Updates name, phone or company. Email and role are immutable.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user body      dto.UpdateUserRequest true "Fields to update"
// @Success      200  {object}  dto.UserResponse "Profile updated"
// @Failure      400  {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /users/me [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "updating profile")
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// GetUsers godoc
// @Summary      List all users
// @Description  Admin console view of every registered account.
// @Tags         users
// @Produce      json
// @Success      200  {array}   dto.UserResponse "All users"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      403  {object}  map[string]string "Forbidden - Admins only"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, MapUserToResponse(&users[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateEmployer godoc
// @Summary      Create an employer account
// @Description  Admin console operation for provisioning employer logins; there is no public employer sign-up.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        employer body  dto.CreateEmployerRequest true "Employer account details"
// @Success      201  {object}  dto.UserResponse "Employer account created"
// @Failure      400  {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      403  {object}  map[string]string "Forbidden - Admins only"
// @Failure      409  {object}  map[string]string "Conflict - Email already registered"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /users/employers [post]
// @Security     BearerAuth
func (h *UserHandler) CreateEmployer(c *gin.Context) {
	adminID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateEmployerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.CreatedBy = adminID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	user, err := h.service.CreateEmployerAccount(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "creating employer account")
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// DeleteUser godoc
// @Summary      Delete a user by ID
// @Description  Removes an account. Admin console operation.
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID" Format(uuid)
// @Success      204  {object}  nil "User deleted"
// @Failure      400  {object}  map[string]string "Invalid ID format"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      403  {object}  map[string]string "Forbidden - Admins only"
// @Failure      404  {object}  map[string]string "User Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (h *UserHandler) DeleteUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "deleting user")
		return
	}

	c.Status(http.StatusNoContent)
}
