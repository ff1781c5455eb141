package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"careerbridge/internal/models"
	"careerbridge/internal/storage"
	"careerbridge/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, title, company, location, description, requirements, salary, type, employer_id, status, reviewed_at, reviewed_by, created_at, updated_at`

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Company,
		&j.Location,
		&j.Description,
		&j.Requirements,
		&j.Salary,
		&j.Type,
		&j.EmployerID,
		&j.Status,
		&j.ReviewedAt,
		&j.ReviewedBy,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create saves a new job posting in pending state.
func (r *JobRepo) Create(ctx context.Context, req *dto.SubmitJobRequest, requirements []string) (*models.Job, error) {
	query := fmt.Sprintf(`
		INSERT INTO jobs (id, title, company, location, description, requirements, salary, type, employer_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s
	`, jobColumns)

	created, err := scanJob(r.db.QueryRow(ctx, query,
		uuid.New(), // Generate ID server-side
		req.Title,
		req.Company,
		req.Location,
		req.Description,
		requirements,
		req.Salary,
		req.Type,
		req.EmployerID,
		models.JobStatusPending, // Default state
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			log.Printf("Error creating job: foreign key violation (employer_id: %s): %v\n", req.EmployerID, err)
			return nil, fmt.Errorf("failed to create job: invalid employer ID: %w", storage.ErrConflict)
		}
		log.Printf("Error creating job: %v\n", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Job created successfully with ID: %s", created.ID)
	return created, nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns)

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}

	return job, nil
}

// ListApproved retrieves approved jobs for the browse view, applying the
// optional search/type/location/salary filters in SQL.
func (r *JobRepo) ListApproved(ctx context.Context, req *dto.ListApprovedJobsRequest) ([]models.Job, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM jobs`, jobColumns)
	conditions := []string{"status = $1"}
	args := []interface{}{models.JobStatusApproved}

	if req.Search != "" {
		args = append(args, "%"+req.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR company ILIKE $%d OR description ILIKE $%d)", len(args), len(args), len(args)))
	}
	if req.Type != "" {
		args = append(args, req.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if req.Location != "" {
		args = append(args, "%"+req.Location+"%")
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if req.Salary != "" {
		args = append(args, req.Salary)
		conditions = append(conditions, fmt.Sprintf("salary = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying approved jobs: %v\n", err)
		return nil, fmt.Errorf("failed to query approved jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning approved jobs: %v\n", err)
		return nil, fmt.Errorf("failed to scan approved jobs: %w", err)
	}

	if jobs == nil {
		jobs = []models.Job{}
	}

	return jobs, nil
}

// ListByEmployer retrieves jobs posted by a specific employer.
func (r *JobRepo) ListByEmployer(ctx context.Context, req *dto.ListJobsByEmployerRequest) ([]models.Job, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM jobs`, jobColumns)
	conditions := []string{"employer_id = $1"}
	args := []interface{}{req.EmployerID}

	if req.Status != nil {
		args = append(args, *req.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying jobs by employer %s: %v\n", req.EmployerID, err)
		return nil, fmt.Errorf("failed to query jobs by employer: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning jobs by employer %s: %v\n", req.EmployerID, err)
		return nil, fmt.Errorf("failed to scan jobs by employer: %w", err)
	}

	if jobs == nil {
		jobs = []models.Job{}
	}

	return jobs, nil
}

// ListAll retrieves every job for the admin console, optionally filtered by
// status.
func (r *JobRepo) ListAll(ctx context.Context, req *dto.ListAllJobsRequest) ([]models.Job, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM jobs`, jobColumns)
	conditions := []string{}
	args := []interface{}{}

	if req.Status != nil {
		args = append(args, *req.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying all jobs: %v\n", err)
		return nil, fmt.Errorf("failed to query all jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning all jobs: %v\n", err)
		return nil, fmt.Errorf("failed to scan all jobs: %w", err)
	}

	if jobs == nil {
		jobs = []models.Job{}
	}

	return jobs, nil
}

// SetStatus records a review outcome on the job.
func (r *JobRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.JobStatus, reviewedBy uuid.UUID) (*models.Job, error) {
	query := fmt.Sprintf(`
		UPDATE jobs
		SET status = $1, reviewed_at = NOW(), reviewed_by = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING %s
	`, jobColumns)

	updated, err := scanJob(r.db.QueryRow(ctx, query, status, reviewedBy, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating job %s status to %s: %v\n", id, status, err)
		return nil, fmt.Errorf("failed to update job %s: %w", id, err)
	}

	log.Printf("Job %s status set to %s by %s", id, status, reviewedBy)
	return updated, nil
}

// Delete removes a job by its ID. Applications keep their job_id as a weak
// reference; the read-join substitutes a placeholder for the missing job.
func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM jobs WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		log.Printf("Error deleting job %s: %v\n", id, err)
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	log.Printf("Job deleted successfully: %s", id)
	return nil
}
