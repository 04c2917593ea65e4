package domain

import (
	"context"
	"time"
)

// ApplicationStatus is the lifecycle status of an application
type ApplicationStatus string

// Application status constants
const (
	ApplicationStatusPending            ApplicationStatus = "pending"
	ApplicationStatusUnderReview        ApplicationStatus = "under_review"
	ApplicationStatusShortlisted        ApplicationStatus = "shortlisted"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusAccepted           ApplicationStatus = "accepted"
	ApplicationStatusHired              ApplicationStatus = "hired"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn          ApplicationStatus = "withdrawn"
)

// ApplicationStatuses lists every status in pipeline order
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusUnderReview,
	ApplicationStatusShortlisted,
	ApplicationStatusInterviewScheduled,
	ApplicationStatusAccepted,
	ApplicationStatusHired,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
}

func (s ApplicationStatus) IsValid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) String() string {
	return string(s)
}

// Application links one candidate to one job
type Application struct {
	ID              int64             `json:"id"`
	CandidateID     int64             `json:"candidate_id"`
	JobID           int64             `json:"job_id"`
	Status          ApplicationStatus `json:"status"`
	CoverLetter     *string           `json:"cover_letter,omitempty"`
	RejectionReason *string           `json:"rejection_reason,omitempty"`
	ReviewedBy      *int64            `json:"reviewed_by,omitempty"`
	SubmittedAt     time.Time         `json:"submitted_at"`
	StatusChangedAt *time.Time        `json:"status_changed_at,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty"`
	// Version guards update-if-unchanged writes
	Version int64 `json:"version"`
}

// ApplicationStats counts applications per status for dashboards
type ApplicationStats struct {
	Total    int                       `json:"total"`
	ByStatus map[ApplicationStatus]int `json:"by_status"`
}

// RankedApplicant is an application scored against its job
type RankedApplicant struct {
	Application   Application `json:"application"`
	CandidateName string      `json:"candidate_name"`
	MatchScore    int         `json:"match_score"`
	Completeness  int         `json:"completeness"`
}

// StatusChangeRequest carries the recruiter inputs of a status change
type StatusChangeRequest struct {
	Status          ApplicationStatus `json:"status" binding:"required"`
	RejectionReason string            `json:"rejection_reason" binding:"max=2000"`
	// Override allows an admin to revert or un-terminalize a status
	Override bool `json:"override"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByCandidateID(ctx context.Context, candidateID int64) ([]Application, error)
	// ExistsActive reports whether a non-withdrawn application exists for the pair
	ExistsActive(ctx context.Context, candidateID, jobID int64) (bool, error)
	CountByJobID(ctx context.Context, jobID int64) (int64, error)
	// Save writes app if its stored version still equals app.Version, then bumps it
	Save(ctx context.Context, app *Application) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, principal Principal, jobID int64, coverLetter string) (*Application, error)
	GetMyApplications(ctx context.Context, principal Principal) ([]Application, error)
	GetMyStats(ctx context.Context, principal Principal) (*ApplicationStats, error)
	Withdraw(ctx context.Context, principal Principal, applicationID int64) (*Application, error)

	// Recruiter operations
	RankApplicants(ctx context.Context, principal Principal, jobID int64) ([]RankedApplicant, error)
	GetJobStats(ctx context.Context, principal Principal, jobID int64) (*ApplicationStats, error)
	ChangeStatus(ctx context.Context, principal Principal, applicationID int64, req StatusChangeRequest) (*Application, error)
	ExportPipeline(ctx context.Context, principal Principal, jobID int64, format string) ([]byte, string, error)
}
