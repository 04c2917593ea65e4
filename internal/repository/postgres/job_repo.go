package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, company_id, COALESCE(recruiter_id, 0), title, description, location, salary,
	required_skills, experience_level, is_active, closing_date, posted_at, updated_at`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var skills []string
	err := row.Scan(
		&job.ID, &job.CompanyID, &job.RecruiterID, &job.Title, &job.Description, &job.Location, &job.Salary,
		pq.Array(&skills), &job.ExperienceLevel, &job.IsActive, &job.ClosingDate, &job.PostedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.RequiredSkills = skills
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (company_id, recruiter_id, title, description, location, salary, required_skills,
			experience_level, is_active, closing_date, posted_at, updated_at)
		VALUES ($1, NULLIF($2, 0), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	return database.Conn(ctx, r.db).QueryRow(ctx, query,
		job.CompanyID, job.RecruiterID, job.Title, job.Description, job.Location, job.Salary, pq.Array(job.RequiredSkills),
		job.ExperienceLevel, job.IsActive, job.ClosingDate, job.PostedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := scanJob(database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return job, err
}

func (r *jobRepo) query(ctx context.Context, sql string, args ...any) ([]domain.Job, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// FetchActive pages through active jobs, newest first
func (r *jobRepo) FetchActive(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	jobs, err := r.query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE is_active ORDER BY posted_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE is_active`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// FetchRecentOpen returns the newest jobs still accepting applications at now
func (r *jobRepo) FetchRecentOpen(ctx context.Context, now time.Time, limit int) ([]domain.Job, error) {
	return r.query(ctx, `
		SELECT `+jobColumns+` FROM jobs
		WHERE is_active AND (closing_date IS NULL OR closing_date > $1)
		ORDER BY posted_at DESC LIMIT $2`, now, limit)
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs SET title = $2, description = $3, location = $4, salary = $5, required_skills = $6,
			experience_level = $7, is_active = $8, closing_date = $9, updated_at = $10
		WHERE id = $1`
	tag, err := database.Conn(ctx, r.db).Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location, job.Salary, pq.Array(job.RequiredSkills),
		job.ExperienceLevel, job.IsActive, job.ClosingDate, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Deactivate(ctx context.Context, id int64) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `UPDATE jobs SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
