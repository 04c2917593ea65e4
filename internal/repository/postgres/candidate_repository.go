package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `
	id, user_id, full_name, email, phone, date_of_birth, address, city, pincode,
	professional_summary, objective, has_resume, is_active, created_at, updated_at`

func scanCandidate(row pgx.Row) (*domain.CandidateProfile, error) {
	var p domain.CandidateProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Email, &p.Phone, &p.DateOfBirth, &p.Address, &p.City, &p.Pincode,
		&p.ProfessionalSummary, &p.Objective, &p.HasResume, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *candidateRepository) getOne(ctx context.Context, where string, arg any) (*domain.CandidateProfile, error) {
	q := database.Conn(ctx, r.db)
	p, err := scanCandidate(q.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadChildren(ctx, q, map[int64]*domain.CandidateProfile{p.ID: p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id int64) (*domain.CandidateProfile, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *candidateRepository) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	return r.getOne(ctx, "user_id = $1", userID)
}

// GetByIDs loads every listed profile with its skills, experiences and educations.
// Missing ids are absent from the map.
func (r *candidateRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.CandidateProfile, error) {
	out := make(map[int64]*domain.CandidateProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q := database.Conn(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		p, err := scanCandidate(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out[p.ID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadChildren(ctx, q, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *candidateRepository) loadChildren(ctx context.Context, q database.Querier, profiles map[int64]*domain.CandidateProfile) error {
	if len(profiles) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}

	// Skills
	rows, err := q.Query(ctx, `SELECT candidate_id, name, proficiency FROM candidate_skills WHERE candidate_id = ANY($1) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load skills: %w", err)
	}
	for rows.Next() {
		var cid int64
		var s domain.Skill
		if err := rows.Scan(&cid, &s.Name, &s.Proficiency); err != nil {
			rows.Close()
			return err
		}
		profiles[cid].Skills = append(profiles[cid].Skills, s)
	}
	rows.Close()

	// Experiences
	rows, err = q.Query(ctx, `
		SELECT candidate_id, id, title, company, description, start_date, end_date
		FROM candidate_experiences WHERE candidate_id = ANY($1) ORDER BY start_date DESC`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load experiences: %w", err)
	}
	for rows.Next() {
		var cid int64
		var e domain.Experience
		if err := rows.Scan(&cid, &e.ID, &e.Title, &e.Company, &e.Description, &e.StartDate, &e.EndDate); err != nil {
			rows.Close()
			return err
		}
		profiles[cid].Experiences = append(profiles[cid].Experiences, e)
	}
	rows.Close()

	// Educations
	rows, err = q.Query(ctx, `
		SELECT candidate_id, id, institution, degree, field_of_study, start_year, end_year
		FROM candidate_educations WHERE candidate_id = ANY($1) ORDER BY start_year DESC`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load educations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cid int64
		var e domain.Education
		if err := rows.Scan(&cid, &e.ID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartYear, &e.EndYear); err != nil {
			return err
		}
		profiles[cid].Educations = append(profiles[cid].Educations, e)
	}
	return rows.Err()
}

func (r *candidateRepository) Create(ctx context.Context, p *domain.CandidateProfile) error {
	q := database.Conn(ctx, r.db)
	query := `
		INSERT INTO candidate_profiles (
			user_id, full_name, email, phone, date_of_birth, address, city, pincode,
			professional_summary, objective, has_resume, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	err := q.QueryRow(ctx, query,
		p.UserID, p.FullName, p.Email, p.Phone, p.DateOfBirth, p.Address, p.City, p.Pincode,
		p.ProfessionalSummary, p.Objective, p.HasResume, p.IsActive, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return err
	}
	return r.replaceChildren(ctx, q, p)
}

// Update rewrites the profile row and replaces its owned collections
func (r *candidateRepository) Update(ctx context.Context, p *domain.CandidateProfile) error {
	q := database.Conn(ctx, r.db)
	query := `
		UPDATE candidate_profiles SET
			full_name = $2, email = $3, phone = $4, date_of_birth = $5, address = $6, city = $7,
			pincode = $8, professional_summary = $9, objective = $10, has_resume = $11, updated_at = $12
		WHERE id = $1`
	tag, err := q.Exec(ctx, query,
		p.ID, p.FullName, p.Email, p.Phone, p.DateOfBirth, p.Address, p.City,
		p.Pincode, p.ProfessionalSummary, p.Objective, p.HasResume, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.replaceChildren(ctx, q, p)
}

func (r *candidateRepository) replaceChildren(ctx context.Context, q database.Querier, p *domain.CandidateProfile) error {
	for _, table := range []string{"candidate_skills", "candidate_experiences", "candidate_educations"} {
		if _, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE candidate_id = $1`, p.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, s := range p.Skills {
		if _, err := q.Exec(ctx,
			`INSERT INTO candidate_skills (candidate_id, name, proficiency) VALUES ($1, $2, $3)`,
			p.ID, s.Name, s.Proficiency); err != nil {
			return fmt.Errorf("insert skill: %w", err)
		}
	}
	for i := range p.Experiences {
		e := &p.Experiences[i]
		if err := q.QueryRow(ctx, `
			INSERT INTO candidate_experiences (candidate_id, title, company, description, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			p.ID, e.Title, e.Company, e.Description, e.StartDate, e.EndDate).Scan(&e.ID); err != nil {
			return fmt.Errorf("insert experience: %w", err)
		}
	}
	for i := range p.Educations {
		e := &p.Educations[i]
		if err := q.QueryRow(ctx, `
			INSERT INTO candidate_educations (candidate_id, institution, degree, field_of_study, start_year, end_year)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			p.ID, e.Institution, e.Degree, e.FieldOfStudy, e.StartYear, e.EndYear).Scan(&e.ID); err != nil {
			return fmt.Errorf("insert education: %w", err)
		}
	}
	return nil
}

func (r *candidateRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE candidate_profiles SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
