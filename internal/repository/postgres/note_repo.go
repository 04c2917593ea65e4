package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type noteRepo struct {
	db *pgxpool.Pool
}

func NewNoteRepository(db *pgxpool.Pool) domain.NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, note *domain.RecruiterNote) error {
	query := `
		INSERT INTO recruiter_notes (application_id, reviewer_id, text, is_important, created_at)
		VALUES ($1, NULLIF($2, 0), $3, $4, $5)
		RETURNING id`
	return database.Conn(ctx, r.db).QueryRow(ctx, query,
		note.ApplicationID, note.ReviewerID, note.Text, note.IsImportant, note.CreatedAt,
	).Scan(&note.ID)
}

func (r *noteRepo) GetByID(ctx context.Context, id int64) (*domain.RecruiterNote, error) {
	query := `SELECT id, application_id, COALESCE(reviewer_id, 0), text, is_important, created_at, updated_at
		FROM recruiter_notes WHERE id = $1`
	var n domain.RecruiterNote
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&n.ID, &n.ApplicationID, &n.ReviewerID, &n.Text, &n.IsImportant, &n.CreatedAt, &n.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByApplicationID lists notes newest first
func (r *noteRepo) GetByApplicationID(ctx context.Context, applicationID int64) ([]domain.RecruiterNote, error) {
	query := `SELECT id, application_id, COALESCE(reviewer_id, 0), text, is_important, created_at, updated_at
		FROM recruiter_notes WHERE application_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.RecruiterNote{}
	for rows.Next() {
		var n domain.RecruiterNote
		if err := rows.Scan(&n.ID, &n.ApplicationID, &n.ReviewerID, &n.Text, &n.IsImportant, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *noteRepo) SetImportant(ctx context.Context, id int64, important bool, updatedAt time.Time) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE recruiter_notes SET is_important = $2, updated_at = $3 WHERE id = $1`, id, important, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
