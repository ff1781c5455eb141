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

const applicationColumns = `id, job_id, student_id, employer_id, status, resume, cover_letter, school, grade, availability, experience, "references", decided_at, decided_by, created_at, updated_at`

// ApplicationRepo implements the storage.ApplicationRepository interface
// using PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.StudentID,
		&a.EmployerID,
		&a.Status,
		&a.Resume,
		&a.CoverLetter,
		&a.School,
		&a.Grade,
		&a.Availability,
		&a.Experience,
		&a.References,
		&a.DecidedAt,
		&a.DecidedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new pending application. The unique (job_id, student_id)
// index backstops the service-level duplicate pre-check.
func (r *ApplicationRepo) Create(ctx context.Context, rec *dto.CreateApplicationRecord) (*models.Application, error) {
	query := fmt.Sprintf(`
		INSERT INTO applications (id, job_id, student_id, employer_id, status, resume, cover_letter, school, grade, availability, experience, "references", created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING %s
	`, applicationColumns)

	created, err := scanApplication(r.db.QueryRow(ctx, query,
		uuid.New(),
		rec.JobID,
		rec.StudentID,
		rec.EmployerID,
		models.ApplicationStatusPending, // Default state
		rec.Resume,
		rec.CoverLetter,
		rec.School,
		rec.Grade,
		rec.Availability,
		rec.Experience,
		rec.References,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			log.Printf("Error creating application: student %s already applied to job %s\n", rec.StudentID, rec.JobID)
			return nil, fmt.Errorf("failed to create application: already applied: %w", storage.ErrConflict)
		}
		log.Printf("Error creating application: %v\n", err)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Printf("Application created successfully with ID: %s", created.ID)
	return created, nil
}

// GetByID retrieves a specific application by its ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1`, applicationColumns)

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning application by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get application by ID %s: %w", id, err)
	}

	return app, nil
}

// GetByJobAndStudent looks up an existing application for the duplicate
// pre-check. Returns storage.ErrNotFound when none exists.
func (r *ApplicationRepo) GetByJobAndStudent(ctx context.Context, jobID, studentID uuid.UUID) (*models.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE job_id = $1 AND student_id = $2`, applicationColumns)

	app, err := scanApplication(r.db.QueryRow(ctx, query, jobID, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning application for job %s / student %s: %v\n", jobID, studentID, err)
		return nil, fmt.Errorf("failed to get application by job and student: %w", err)
	}

	return app, nil
}

func (r *ApplicationRepo) list(ctx context.Context, operation, query string, args []interface{}) ([]models.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying applications (%s): %v\n", operation, err)
		return nil, fmt.Errorf("failed to query applications (%s): %w", operation, err)
	}
	defer rows.Close()

	apps, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		log.Printf("Error scanning applications (%s): %v\n", operation, err)
		return nil, fmt.Errorf("failed to scan applications (%s): %w", operation, err)
	}

	if apps == nil {
		apps = []models.Application{}
	}

	return apps, nil
}

// ListByStudent retrieves a student's applications, newest first.
func (r *ApplicationRepo) ListByStudent(ctx context.Context, req *dto.ListApplicationsByStudentRequest) ([]models.Application, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM applications`, applicationColumns)
	conditions := []string{"student_id = $1"}
	args := []interface{}{req.StudentID}

	query := buildListQuery(baseQuery, conditions, &args, req.Limit, req.Offset)
	return r.list(ctx, "by student", query, args)
}

// ListByEmployer retrieves applications submitted against an employer's
// postings, newest first.
func (r *ApplicationRepo) ListByEmployer(ctx context.Context, req *dto.ListApplicationsByEmployerRequest) ([]models.Application, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM applications`, applicationColumns)
	conditions := []string{"employer_id = $1"}
	args := []interface{}{req.EmployerID}

	query := buildListQuery(baseQuery, conditions, &args, req.Limit, req.Offset)
	return r.list(ctx, "by employer", query, args)
}

// ListAll retrieves every application for the admin console.
func (r *ApplicationRepo) ListAll(ctx context.Context, req *dto.ListAllApplicationsRequest) ([]models.Application, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM applications`, applicationColumns)
	conditions := []string{}
	args := []interface{}{}

	if req.Status != nil {
		args = append(args, *req.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := buildListQuery(baseQuery, conditions, &args, req.Limit, req.Offset)
	return r.list(ctx, "all", query, args)
}

// ListJobIDsByStudent returns the ids of jobs the student has applied to,
// powering the "applied" badge on the browse view.
func (r *ApplicationRepo) ListJobIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT job_id FROM applications WHERE student_id = $1`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		log.Printf("Error querying applied job ids for student %s: %v\n", studentID, err)
		return nil, fmt.Errorf("failed to query applied job ids: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan applied job ids: %w", err)
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}

// SetStatus records a decision outcome on the application.
func (r *ApplicationRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, decidedBy uuid.UUID) (*models.Application, error) {
	query := fmt.Sprintf(`
		UPDATE applications
		SET status = $1, decided_at = NOW(), decided_by = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING %s
	`, applicationColumns)

	updated, err := scanApplication(r.db.QueryRow(ctx, query, status, decidedBy, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating application %s status to %s: %v\n", id, status, err)
		return nil, fmt.Errorf("failed to update application %s: %w", id, err)
	}

	log.Printf("Application %s status set to %s by %s", id, status, decidedBy)
	return updated, nil
}
