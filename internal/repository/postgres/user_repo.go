package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, role, created_at, updated_at FROM users WHERE id = $1`
	var user domain.User
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type recruiterRepo struct {
	db *pgxpool.Pool
}

func NewRecruiterRepository(db *pgxpool.Pool) domain.RecruiterRepository {
	return &recruiterRepo{db: db}
}

func (r *recruiterRepo) GetByUserID(ctx context.Context, userID string) (*domain.Recruiter, error) {
	var rec domain.Recruiter
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT id, user_id, company_id, full_name, email FROM recruiters WHERE user_id = $1`, userID,
	).Scan(&rec.ID, &rec.UserID, &rec.CompanyID, &rec.FullName, &rec.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

type principalResolver struct {
	db         *pgxpool.Pool
	recruiters domain.RecruiterRepository
}

// NewPrincipalResolver maps an authenticated user to their candidate or recruiter ids
func NewPrincipalResolver(db *pgxpool.Pool) domain.PrincipalResolver {
	return &principalResolver{db: db, recruiters: NewRecruiterRepository(db)}
}

// Resolve leaves the ids zero when the user has no profile yet,
// so a fresh candidate can still create one.
func (r *principalResolver) Resolve(ctx context.Context, userID string, role domain.Role) (domain.Principal, error) {
	p := domain.Principal{UserID: userID, Role: role}
	q := database.Conn(ctx, r.db)

	switch role {
	case domain.RoleCandidate:
		err := q.QueryRow(ctx, `SELECT id FROM candidate_profiles WHERE user_id = $1 AND is_active`, userID).Scan(&p.CandidateID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("resolve candidate: %w", err)
		}
	case domain.RoleRecruiter, domain.RoleAdmin:
		rec, err := r.recruiters.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return p, fmt.Errorf("resolve recruiter: %w", err)
		}
		if rec != nil {
			p.RecruiterID, p.CompanyID = rec.ID, rec.CompanyID
		}
	}
	return p, nil
}
