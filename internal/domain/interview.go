package domain

import (
	"context"
	"time"
)

type InterviewType string

const (
	InterviewTypePhone    InterviewType = "phone"
	InterviewTypeVideo    InterviewType = "video"
	InterviewTypeInPerson InterviewType = "in_person"
)

func (t InterviewType) IsValid() bool {
	switch t {
	case InterviewTypePhone, InterviewTypeVideo, InterviewTypeInPerson:
		return true
	default:
		return false
	}
}

type InterviewRound string

const (
	InterviewRoundScreening InterviewRound = "screening"
	InterviewRoundTechnical InterviewRound = "technical"
	InterviewRoundHR        InterviewRound = "hr"
	InterviewRoundFinal     InterviewRound = "final"
	InterviewRoundOther     InterviewRound = "other"
)

type InterviewStatus string

const (
	InterviewStatusScheduled   InterviewStatus = "scheduled"
	InterviewStatusCompleted   InterviewStatus = "completed"
	InterviewStatusCancelled   InterviewStatus = "cancelled"
	InterviewStatusRescheduled InterviewStatus = "rescheduled"
	InterviewStatusNoShow      InterviewStatus = "no_show"
)

func (s InterviewStatus) IsValid() bool {
	switch s {
	case InterviewStatusScheduled, InterviewStatusCompleted, InterviewStatusCancelled,
		InterviewStatusRescheduled, InterviewStatusNoShow:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the interview can no longer be cancelled or completed
func (s InterviewStatus) IsTerminal() bool {
	return s == InterviewStatusCompleted || s == InterviewStatusCancelled
}

type Interview struct {
	ID                  int64           `json:"id"`
	ApplicationID       int64           `json:"application_id"`
	ReviewerID          int64           `json:"reviewer_id"`
	ScheduledAt         time.Time       `json:"scheduled_at"`
	DurationMinutes     int             `json:"duration_minutes"`
	Type                InterviewType   `json:"type"`
	Round               InterviewRound  `json:"round"`
	Status              InterviewStatus `json:"status"`
	MeetingLink         *string         `json:"meeting_link,omitempty"`
	Location            *string         `json:"location,omitempty"`
	SpecialInstructions *string         `json:"special_instructions,omitempty"`
	Feedback            *string         `json:"feedback,omitempty"`
	Rating              *int            `json:"rating,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	CompletedAt         *time.Time      `json:"completed_at,omitempty"`
	CancelledAt         *time.Time      `json:"cancelled_at,omitempty"`
	CancellationReason  *string         `json:"cancellation_reason,omitempty"`
	Version             int64           `json:"version"`
}

// InterviewRequest is the input for scheduling an interview
type InterviewRequest struct {
	ScheduledAt         time.Time      `json:"scheduled_at" binding:"required"`
	DurationMinutes     int            `json:"duration_minutes"`
	Type                InterviewType  `json:"type" binding:"required,oneof=phone video in_person"`
	Round               InterviewRound `json:"round" binding:"omitempty,oneof=screening technical hr final other"`
	MeetingLink         string         `json:"meeting_link" binding:"max=500"`
	Location            string         `json:"location" binding:"max=500"`
	SpecialInstructions string         `json:"special_instructions" binding:"max=2000"`
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id int64) (*Interview, error)
	GetByApplicationID(ctx context.Context, applicationID int64) ([]Interview, error)
	GetByReviewerID(ctx context.Context, reviewerID int64, status *InterviewStatus) ([]Interview, error)
	// Save writes interview if its stored version still equals interview.Version, then bumps it
	Save(ctx context.Context, interview *Interview) error
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, principal Principal, applicationID int64, req InterviewRequest) (*Interview, error)
	Cancel(ctx context.Context, principal Principal, interviewID int64, reason string) (*Interview, error)
	Complete(ctx context.Context, principal Principal, interviewID int64, feedback string, rating *int) (*Interview, error)
	Reschedule(ctx context.Context, principal Principal, interviewID int64, scheduledAt time.Time, durationMinutes int) (*Interview, error)
	MarkNoShow(ctx context.Context, principal Principal, interviewID int64) (*Interview, error)
	ListMine(ctx context.Context, principal Principal, status *InterviewStatus) ([]Interview, error)
}
