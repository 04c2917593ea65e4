package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const interviewColumns = `id, application_id, COALESCE(reviewer_id, 0), scheduled_at, duration_minutes, type, round, status,
	meeting_link, location, special_instructions, feedback, rating, created_at,
	completed_at, cancelled_at, cancellation_reason, version`

func scanInterview(row pgx.Row) (*domain.Interview, error) {
	var iv domain.Interview
	err := row.Scan(
		&iv.ID, &iv.ApplicationID, &iv.ReviewerID, &iv.ScheduledAt, &iv.DurationMinutes, &iv.Type, &iv.Round, &iv.Status,
		&iv.MeetingLink, &iv.Location, &iv.SpecialInstructions, &iv.Feedback, &iv.Rating, &iv.CreatedAt,
		&iv.CompletedAt, &iv.CancelledAt, &iv.CancellationReason, &iv.Version,
	)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *interviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	query := `
		INSERT INTO interviews (application_id, reviewer_id, scheduled_at, duration_minutes, type, round, status,
			meeting_link, location, special_instructions, created_at, version)
		VALUES ($1, NULLIF($2, 0), $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
		RETURNING id, version`
	return database.Conn(ctx, r.db).QueryRow(ctx, query,
		iv.ApplicationID, iv.ReviewerID, iv.ScheduledAt, iv.DurationMinutes, iv.Type, iv.Round, iv.Status,
		iv.MeetingLink, iv.Location, iv.SpecialInstructions, iv.CreatedAt,
	).Scan(&iv.ID, &iv.Version)
}

func (r *interviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	iv, err := scanInterview(database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return iv, err
}

func (r *interviewRepo) list(ctx context.Context, sql string, args ...any) ([]domain.Interview, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interviews := []domain.Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, *iv)
	}
	return interviews, rows.Err()
}

func (r *interviewRepo) GetByApplicationID(ctx context.Context, applicationID int64) ([]domain.Interview, error) {
	return r.list(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE application_id = $1 ORDER BY scheduled_at`, applicationID)
}

// GetByReviewerID lists a reviewer's interviews by start time, optionally filtered by status
func (r *interviewRepo) GetByReviewerID(ctx context.Context, reviewerID int64, status *domain.InterviewStatus) ([]domain.Interview, error) {
	if status != nil {
		return r.list(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE reviewer_id = $1 AND status = $2 ORDER BY scheduled_at`,
			reviewerID, *status)
	}
	return r.list(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE reviewer_id = $1 ORDER BY scheduled_at`, reviewerID)
}

// Save persists the mutable fields if the row still carries iv.Version
func (r *interviewRepo) Save(ctx context.Context, iv *domain.Interview) error {
	q := database.Conn(ctx, r.db)
	query := `
		UPDATE interviews SET
			scheduled_at = $3, duration_minutes = $4, status = $5, feedback = $6, rating = $7,
			completed_at = $8, cancelled_at = $9, cancellation_reason = $10, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version`
	err := q.QueryRow(ctx, query,
		iv.ID, iv.Version, iv.ScheduledAt, iv.DurationMinutes, iv.Status, iv.Feedback, iv.Rating,
		iv.CompletedAt, iv.CancelledAt, iv.CancellationReason,
	).Scan(&iv.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return missingOrConflict(ctx, q, "interviews", iv.ID)
	}
	return err
}
