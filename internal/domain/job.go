package domain

import (
	"context"
	"time"
)

// ExperienceLevel tier of a job posting
type ExperienceLevel string

const (
	ExperienceEntry    ExperienceLevel = "entry"
	ExperienceMid      ExperienceLevel = "mid"
	ExperienceSenior   ExperienceLevel = "senior"
	ExperienceDirector ExperienceLevel = "director"
)

func (l ExperienceLevel) IsValid() bool {
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceDirector:
		return true
	default:
		return false
	}
}

type Job struct {
	ID              int64           `json:"id"`
	CompanyID       int64           `json:"company_id"`
	RecruiterID     int64           `json:"recruiter_id"`
	Title           string          `json:"title" validate:"required,min=3,max=100"`
	Description     string          `json:"description" validate:"required"`
	Location        string          `json:"location" validate:"required,max=200"`
	Salary          *float64        `json:"salary,omitempty" validate:"omitempty,gte=0"`
	RequiredSkills  []string        `json:"required_skills" validate:"dive,required,max=100"`
	ExperienceLevel ExperienceLevel `json:"experience_level" validate:"required,oneof=entry mid senior director"`
	IsActive        bool            `json:"is_active"`
	ClosingDate     *time.Time      `json:"closing_date,omitempty"`
	PostedAt        time.Time       `json:"posted_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IsOpen reports whether the job accepts applications at now
func (j *Job) IsOpen(now time.Time) bool {
	if j == nil || !j.IsActive {
		return false
	}
	return j.ClosingDate == nil || j.ClosingDate.After(now)
}

// HasValidClosingDate checks that an active job does not close in the past
func (j *Job) HasValidClosingDate(now time.Time) bool {
	if !j.IsActive || j.ClosingDate == nil {
		return true
	}
	return j.ClosingDate.After(now)
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	FetchActive(ctx context.Context, limit, offset int) ([]Job, int64, error)
	FetchRecentOpen(ctx context.Context, now time.Time, limit int) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, principal Principal, job *Job) error
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListActiveJobs(ctx context.Context, page, pageSize int) (*PaginatedResult[Job], error)
	UpdateJob(ctx context.Context, principal Principal, job *Job) error
	// DeleteJob deactivates the job instead when applications exist
	DeleteJob(ctx context.Context, principal Principal, id int64) (deactivated bool, err error)
}
