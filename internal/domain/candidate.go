package domain

import (
	"context"
	"strings"
	"time"
)

// MinimumCandidateAge is the youngest age at which a profile may be created
const MinimumCandidateAge = 16

type CandidateProfile struct {
	ID                  int64        `json:"id"`
	UserID              string       `json:"user_id"`
	FullName            string       `json:"full_name" validate:"required,max=100,valid_name,no_emoji"`
	Email               string       `json:"email" validate:"required,email,max=255"`
	Phone               string       `json:"phone" validate:"omitempty,valid_phone"`
	DateOfBirth         *time.Time   `json:"date_of_birth,omitempty" validate:"omitempty,min_age16"`
	Address             string       `json:"address" validate:"max=200"`
	City                string       `json:"city" validate:"max=50"`
	Pincode             string       `json:"pincode" validate:"max=10"`
	ProfessionalSummary string       `json:"professional_summary" validate:"max=1000,no_emoji"`
	Objective           string       `json:"objective" validate:"max=500,no_emoji"`
	HasResume           bool         `json:"has_resume"`
	Skills              []Skill      `json:"skills" validate:"dive"`
	Experiences         []Experience `json:"experiences" validate:"dive"`
	Educations          []Education  `json:"educations" validate:"dive"`
	IsActive            bool         `json:"is_active"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// Skill is a (name, proficiency) pair owned by a profile
type Skill struct {
	Name        string `json:"name" validate:"required,max=100"`
	Proficiency string `json:"proficiency,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
}

type Experience struct {
	ID          int64      `json:"id,omitempty"`
	Title       string     `json:"title" validate:"required,max=100"`
	Company     string     `json:"company" validate:"required,max=100"`
	Description string     `json:"description,omitempty" validate:"max=2000"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty" validate:"omitempty,gtfield=StartDate"`
}

type Education struct {
	ID           int64  `json:"id,omitempty"`
	Institution  string `json:"institution" validate:"required,max=200"`
	Degree       string `json:"degree" validate:"required,max=100"`
	FieldOfStudy string `json:"field_of_study,omitempty" validate:"max=100"`
	StartYear    int    `json:"start_year" validate:"omitempty,min=1900"`
	EndYear      *int   `json:"end_year,omitempty"`
}

// AgeAt returns the age in whole years at now, and false when no birth date is recorded
func (p *CandidateProfile) AgeAt(now time.Time) (int, bool) {
	if p == nil || p.DateOfBirth == nil || p.DateOfBirth.IsZero() {
		return 0, false
	}
	dob := *p.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}

// TotalExperienceYears sums the whole years of every recorded experience.
// Open-ended experiences run until now.
func (p *CandidateProfile) TotalExperienceYears(now time.Time) int {
	if p == nil {
		return 0
	}
	total := 0
	for _, e := range p.Experiences {
		end := now
		if e.EndDate != nil {
			end = *e.EndDate
		}
		if years := end.Year() - e.StartDate.Year(); years > 0 {
			total += years
		}
	}
	return total
}

// SkillNames returns the skill names that are not blank
func (p *CandidateProfile) SkillNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if strings.TrimSpace(s.Name) != "" {
			names = append(names, s.Name)
		}
	}
	return names
}

// ProfileSummary is the scoring view returned alongside a profile
type ProfileSummary struct {
	Profile      *CandidateProfile `json:"profile"`
	Completeness int               `json:"completeness"`
	IsComplete   bool              `json:"is_complete"`
}

type CandidateRepository interface {
	GetByID(ctx context.Context, id int64) (*CandidateProfile, error)
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*CandidateProfile, error)
	Create(ctx context.Context, profile *CandidateProfile) error
	Update(ctx context.Context, profile *CandidateProfile) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type CandidateUsecase interface {
	CreateProfile(ctx context.Context, principal Principal, profile *CandidateProfile) (*ProfileSummary, error)
	GetProfile(ctx context.Context, principal Principal) (*ProfileSummary, error)
	UpdateProfile(ctx context.Context, principal Principal, profile *CandidateProfile) (*ProfileSummary, error)
	DeactivateProfile(ctx context.Context, principal Principal) error
	RecommendJobs(ctx context.Context, principal Principal) ([]JobMatchResult, error)
	MatchJob(ctx context.Context, principal Principal, jobID int64) (*JobMatchResult, error)
}
