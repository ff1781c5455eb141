package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"careerbridge/internal/auth"
	"careerbridge/internal/models"
	"careerbridge/internal/storage"
	"careerbridge/internal/transport/dto"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	repo      storage.UserRepository
	refresh   RefreshTokenStore
	jwtSecret string
	accessTTL time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo storage.UserRepository, refresh RefreshTokenStore, jwtSecret string, accessTTL time.Duration) UserService {
	return &userService{
		repo:      repo,
		refresh:   refresh,
		jwtSecret: jwtSecret,
		accessTTL: accessTTL,
	}
}

func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, string, error) {
	// Self-registration is limited to students and employers; admin accounts
	// are seeded out of band.
	if req.Role != models.RoleStudent && req.Role != models.RoleEmployer {
		return nil, "", "", fmt.Errorf("%w: role %q cannot self-register", ErrValidation, req.Role)
	}
	if req.Role == models.RoleEmployer && (req.Company == nil || strings.TrimSpace(*req.Company) == "") {
		return nil, "", "", fmt.Errorf("%w: company is required for employer accounts", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("UserService: Error hashing password: %v", err)
		return nil, "", "", fmt.Errorf("internal error creating user: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
		Company:      req.Company,
		PasswordHash: string(hash),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) || errors.Is(err, storage.ErrConflict) {
			return nil, "", "", fmt.Errorf("%w: %w", ErrConflict, err)
		}
		log.Printf("UserService: Error creating user: %v", err)
		return nil, "", "", fmt.Errorf("internal error creating user: %w", err)
	}

	access, refresh, err := s.issueTokens(ctx, created)
	if err != nil {
		return nil, "", "", err
	}
	return created, access, refresh, nil
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Login attempt failed for email %s: user not found", req.Email)
			return nil, "", "", ErrInvalidCredentials // Use specific service error
		}
		log.Printf("Error fetching user by email %s during login: %v", req.Email, err)
		return nil, "", "", fmt.Errorf("internal error during login: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		log.Printf("Login attempt failed for email %s: invalid password", req.Email)
		return nil, "", "", ErrInvalidCredentials // Use specific service error
	}

	access, refresh, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *userService) Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error) {
	userID, newRefresh, err := s.refresh.Rotate(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			return "", "", ErrInvalidCredentials
		}
		log.Printf("Error rotating refresh token: %v", err)
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	// The role claim is re-read from the store so a token issued before any
	// account change carries current data.
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Account deleted since the token was issued.
			return "", "", ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	access, err := auth.NewAccessToken(s.jwtSecret, s.accessTTL, user.ID, user.Role)
	if err != nil {
		log.Printf("Error generating access token for user %s: %v", user.Email, err)
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return access, newRefresh, nil
}

func (s *userService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if err := s.refresh.Revoke(ctx, req.RefreshToken); err != nil {
		log.Printf("Error revoking refresh token: %v", err)
		return fmt.Errorf("internal error during logout: %w", err)
	}
	return nil
}

func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *userService) UpdateProfile(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, MapRepoError(err, "updating user profile")
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *userService) CreateEmployerAccount(ctx context.Context, req *dto.CreateEmployerRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("UserService: Error hashing password: %v", err)
		return nil, fmt.Errorf("internal error creating employer account: %w", err)
	}

	name := req.EmployerName
	if req.ContactPerson != nil && strings.TrimSpace(*req.ContactPerson) != "" {
		name = *req.ContactPerson
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         name,
		Phone:        req.Phone,
		Role:         models.RoleEmployer,
		Company:      &req.Company,
		PasswordHash: string(hash),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) || errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		log.Printf("UserService: Error creating employer account: %v", err)
		return nil, fmt.Errorf("internal error creating employer account: %w", err)
	}
	log.Printf("Employer account %s created by admin %s", created.Email, req.CreatedBy)
	return created, nil
}

func (s *userService) issueTokens(ctx context.Context, user *models.User) (string, string, error) {
	access, err := auth.NewAccessToken(s.jwtSecret, s.accessTTL, user.ID, user.Role)
	if err != nil {
		log.Printf("Error generating access token for user %s: %v", user.Email, err)
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.refresh.Issue(ctx, user.ID)
	if err != nil {
		log.Printf("Error issuing refresh token for user %s: %v", user.Email, err)
		return "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return access, refresh, nil
}
