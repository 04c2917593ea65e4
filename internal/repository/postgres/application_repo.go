package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `id, candidate_id, job_id, status, cover_letter, rejection_reason, reviewed_by,
	submitted_at, status_changed_at, reviewed_at, version`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.CandidateID, &a.JobID, &a.Status, &a.CoverLetter, &a.RejectionReason, &a.ReviewedBy,
		&a.SubmittedAt, &a.StatusChangedAt, &a.ReviewedAt, &a.Version,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Create inserts a new application. A live duplicate for the same candidate and job yields ErrConflict.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (candidate_id, job_id, status, cover_letter, submitted_at, version)
		VALUES ($1, $2, $3, $4, $5, 1)
		RETURNING id, version`

	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		app.CandidateID, app.JobID, app.Status, app.CoverLetter, app.SubmittedAt,
	).Scan(&app.ID, &app.Version)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := scanApplication(database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return app, err
}

func (r *applicationRepo) list(ctx context.Context, sql string, arg any) ([]domain.Application, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *app)
	}
	return applications, rows.Err()
}

// GetByJobID returns a job's applications in submission order
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY submitted_at, id`, jobID)
}

// GetByCandidateID returns a candidate's applications, newest first
func (r *applicationRepo) GetByCandidateID(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE candidate_id = $1 ORDER BY submitted_at DESC`, candidateID)
}

func (r *applicationRepo) ExistsActive(ctx context.Context, candidateID, jobID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND job_id = $2 AND status <> 'withdrawn')`
	var exists bool
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, candidateID, jobID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) CountByJobID(ctx context.Context, jobID int64) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&n)
	return n, err
}

// Save persists the mutable fields if the row still carries app.Version
func (r *applicationRepo) Save(ctx context.Context, app *domain.Application) error {
	query := `
		UPDATE applications SET
			status = $3, rejection_reason = $4, reviewed_by = $5,
			status_changed_at = $6, reviewed_at = $7, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version`
	q := database.Conn(ctx, r.db)
	err := q.QueryRow(ctx, query,
		app.ID, app.Version, app.Status, app.RejectionReason, app.ReviewedBy,
		app.StatusChangedAt, app.ReviewedAt,
	).Scan(&app.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return missingOrConflict(ctx, q, "applications", app.ID)
	}
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// missingOrConflict tells a deleted row apart from a stale version
func missingOrConflict(ctx context.Context, q database.Querier, table string, id int64) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}
