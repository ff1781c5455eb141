package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"careerbridge/internal/models"
	"careerbridge/internal/storage"
	"careerbridge/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, name, phone, role, company, password_hash, created_at, updated_at`

// UserRepo implements the storage.UserRepository interface using PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// Compile-time check to ensure UserRepo implements UserRepository
var _ storage.UserRepository = (*UserRepo)(nil)

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Phone,
		&u.Role,
		&u.Company,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAll retrieves all users, newest first, for the admin console.
func (r *UserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Printf("Error querying all users: %v\n", err)
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		log.Printf("Error scanning users: %v\n", err)
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}

	if users == nil {
		users = []models.User{} // Return empty slice, not nil
	}

	return users, nil
}

// GetByID retrieves a single user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning user by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}

	return user, nil
}

// GetByEmail retrieves a single user by email (including the password hash,
// for credential verification).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE lower(email) = lower($1)`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning user by email %s: %v\n", email, err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// Create inserts a new user. The caller provides the bcrypt hash; the role
// is fixed from here on.
func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New() // Generate ID server-side
	}

	query := fmt.Sprintf(`
		INSERT INTO users (id, email, name, phone, role, company, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s
	`, userColumns)

	created, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Phone,
		user.Role,
		user.Company,
		user.PasswordHash,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			log.Printf("Error creating user: duplicate email %s\n", user.Email)
			return nil, storage.ErrDuplicateEmail
		}
		log.Printf("Error creating user: %v\n", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("User created successfully with ID: %s", created.ID)
	return created, nil
}

// Update modifies profile fields based on non-nil fields in the request DTO.
// Email and role are not updatable.
func (r *UserRepo) Update(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error) {
	var setClauses []string
	args := []interface{}{}
	argID := 1

	if req.Name != nil {
		args = append(args, *req.Name)
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		argID++
	}
	if req.Phone != nil {
		args = append(args, *req.Phone)
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", argID))
		argID++
	}
	if req.Company != nil {
		args = append(args, *req.Company)
		setClauses = append(setClauses, fmt.Sprintf("company = $%d", argID))
		argID++
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on user %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argID, userColumns)

	updated, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating user %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update user %s: %w", req.ID, err)
	}

	return updated, nil
}

// Delete removes a user by ID.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		log.Printf("Error deleting user %s: %v\n", id, err)
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	log.Printf("User deleted successfully: %s", id)
	return nil
}
