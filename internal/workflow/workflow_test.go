package workflow_test

import (
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/workflow"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now       = time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	recruiter = domain.Principal{UserID: "rec-1", Role: domain.RoleRecruiter, RecruiterID: 7, CompanyID: 3}
	admin     = domain.Principal{UserID: "adm-1", Role: domain.RoleAdmin}
	candidate = domain.Principal{UserID: "cand-1", Role: domain.RoleCandidate, CandidateID: 42}
)

func app(status domain.ApplicationStatus) *domain.Application {
	return &domain.Application{ID: 1, CandidateID: 42, JobID: 9, Status: status, SubmittedAt: now.Add(-48 * time.Hour)}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.ApplicationStatus
		want     bool
	}{
		{domain.ApplicationStatusPending, domain.ApplicationStatusUnderReview, true},
		{domain.ApplicationStatusPending, domain.ApplicationStatusHired, true},
		{domain.ApplicationStatusShortlisted, domain.ApplicationStatusRejected, true},
		{domain.ApplicationStatusShortlisted, domain.ApplicationStatusPending, false},
		{domain.ApplicationStatusUnderReview, domain.ApplicationStatusUnderReview, false},
		{domain.ApplicationStatusPending, domain.ApplicationStatusWithdrawn, false},
		{domain.ApplicationStatusHired, domain.ApplicationStatusRejected, false},
		{domain.ApplicationStatusRejected, domain.ApplicationStatusUnderReview, false},
		{domain.ApplicationStatus("archived"), domain.ApplicationStatusUnderReview, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, workflow.CanTransition(tt.from, tt.to))
		})
	}

	assert.Empty(t, workflow.AllowedTransitions(domain.ApplicationStatusHired))
	assert.Equal(t,
		[]domain.ApplicationStatus{domain.ApplicationStatusHired, domain.ApplicationStatusRejected},
		workflow.AllowedTransitions(domain.ApplicationStatusAccepted))
}

func TestChangeStatus(t *testing.T) {
	t.Run("forward move stamps review metadata", func(t *testing.T) {
		a := app(domain.ApplicationStatusPending)
		err := workflow.ChangeStatus(a, workflow.StatusChange{To: domain.ApplicationStatusShortlisted}, recruiter, now)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusShortlisted, a.Status)
		require.NotNil(t, a.StatusChangedAt)
		assert.Equal(t, now, *a.StatusChangedAt)
		require.NotNil(t, a.ReviewedAt)
		require.NotNil(t, a.ReviewedBy)
		assert.Equal(t, int64(7), *a.ReviewedBy)
	})

	t.Run("rejection keeps the reason", func(t *testing.T) {
		a := app(domain.ApplicationStatusUnderReview)
		err := workflow.ChangeStatus(a, workflow.StatusChange{To: domain.ApplicationStatusRejected, RejectionReason: "Position filled"}, recruiter, now)
		require.NoError(t, err)
		require.NotNil(t, a.RejectionReason)
		assert.Equal(t, "Position filled", *a.RejectionReason)
	})

	t.Run("withdrawn application is terminal for every target", func(t *testing.T) {
		for _, to := range append(domain.ApplicationStatuses, domain.ApplicationStatus("bogus")) {
			a := app(domain.ApplicationStatusWithdrawn)
			err := workflow.ChangeStatus(a, workflow.StatusChange{To: to}, recruiter, now)
			assert.True(t, errors.Is(err, apperror.ErrAlreadyTerminal), "target %s", to)
			assert.Equal(t, domain.ApplicationStatusWithdrawn, a.Status)
			assert.Nil(t, a.StatusChangedAt)
		}
	})

	t.Run("backward move is an invalid transition", func(t *testing.T) {
		a := app(domain.ApplicationStatusShortlisted)
		err := workflow.ChangeStatus(a, workflow.StatusChange{To: domain.ApplicationStatusPending}, recruiter, now)
		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
		assert.Equal(t, domain.ApplicationStatusShortlisted, a.Status)
	})

	t.Run("recruiter cannot withdraw on behalf of a candidate", func(t *testing.T) {
		err := workflow.ChangeStatus(app(domain.ApplicationStatusPending), workflow.StatusChange{To: domain.ApplicationStatusWithdrawn}, recruiter, now)
		assert.True(t, errors.Is(err, apperror.ErrInvalidTransition))
	})

	t.Run("override is reserved for admins", func(t *testing.T) {
		a := app(domain.ApplicationStatusHired)
		err := workflow.ChangeStatus(a, workflow.StatusChange{To: domain.ApplicationStatusUnderReview, Override: true}, recruiter, now)
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

		err = workflow.ChangeStatus(a, workflow.StatusChange{To: domain.ApplicationStatusUnderReview, Override: true}, admin, now)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusUnderReview, a.Status)
		assert.Nil(t, a.ReviewedBy)
	})

	t.Run("reopening a rejected application drops the old reason", func(t *testing.T) {
		a := app(domain.ApplicationStatusShortlisted)
		require.NoError(t, workflow.ChangeStatus(a, workflow.StatusChange{To: domain.ApplicationStatusRejected, RejectionReason: "Position filled"}, recruiter, now))
		require.NotNil(t, a.RejectionReason)

		err := workflow.ChangeStatus(a, workflow.StatusChange{To: domain.ApplicationStatusShortlisted, Override: true}, admin, now)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusShortlisted, a.Status)
		assert.Nil(t, a.RejectionReason)
	})

	t.Run("nil application", func(t *testing.T) {
		err := workflow.ChangeStatus(nil, workflow.StatusChange{To: domain.ApplicationStatusUnderReview}, recruiter, now)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("owner withdraws", func(t *testing.T) {
		a := app(domain.ApplicationStatusShortlisted)
		require.NoError(t, workflow.Withdraw(a, candidate, now))
		assert.Equal(t, domain.ApplicationStatusWithdrawn, a.Status)
	})

	t.Run("another candidate is unauthorized", func(t *testing.T) {
		other := domain.Principal{Role: domain.RoleCandidate, CandidateID: 5}
		err := workflow.Withdraw(app(domain.ApplicationStatusPending), other, now)
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
	})

	t.Run("terminal application cannot be withdrawn", func(t *testing.T) {
		err := workflow.Withdraw(app(domain.ApplicationStatusHired), candidate, now)
		assert.True(t, errors.Is(err, apperror.ErrAlreadyTerminal))
	})
}

func videoRequest(at time.Time) domain.InterviewRequest {
	return domain.InterviewRequest{
		ScheduledAt:     at,
		DurationMinutes: 60,
		Type:            domain.InterviewTypeVideo,
		MeetingLink:     "https://meet.example.com/abc",
	}
}

func TestValidateAndCreate(t *testing.T) {
	t.Run("two hours ahead succeeds", func(t *testing.T) {
		a := app(domain.ApplicationStatusShortlisted)
		iv, err := workflow.ValidateAndCreate(a, videoRequest(now.Add(2*time.Hour)), recruiter, now)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusScheduled, iv.Status)
		assert.Equal(t, now, iv.CreatedAt)
		assert.Equal(t, domain.InterviewRoundScreening, iv.Round)
		assert.Equal(t, int64(7), iv.ReviewerID)
		assert.Equal(t, domain.ApplicationStatusInterviewScheduled, a.Status)
	})

	tests := []struct {
		name   string
		status domain.ApplicationStatus
		req    domain.InterviewRequest
		want   error
	}{
		{"thirty minutes ahead is too soon", domain.ApplicationStatusPending, videoRequest(now.Add(30 * time.Minute)), apperror.ErrTooSoon},
		{"exactly one hour ahead is too soon", domain.ApplicationStatusPending, videoRequest(now.Add(time.Hour)), apperror.ErrTooSoon},
		{"duration below 15", domain.ApplicationStatusPending, func() domain.InterviewRequest {
			r := videoRequest(now.Add(2 * time.Hour))
			r.DurationMinutes = 10
			return r
		}(), apperror.ErrInvalidDuration},
		{"missing duration", domain.ApplicationStatusPending, func() domain.InterviewRequest {
			r := videoRequest(now.Add(2 * time.Hour))
			r.DurationMinutes = 0
			return r
		}(), apperror.ErrInvalidDuration},
		{"duration above 480", domain.ApplicationStatusPending, func() domain.InterviewRequest {
			r := videoRequest(now.Add(2 * time.Hour))
			r.DurationMinutes = 481
			return r
		}(), apperror.ErrInvalidDuration},
		{"rejected application", domain.ApplicationStatusRejected, videoRequest(now.Add(2 * time.Hour)), apperror.ErrIneligibleApplicationState},
		{"hired application", domain.ApplicationStatusHired, videoRequest(now.Add(2 * time.Hour)), apperror.ErrIneligibleApplicationState},
		{"video without link", domain.ApplicationStatusPending, func() domain.InterviewRequest {
			r := videoRequest(now.Add(2 * time.Hour))
			r.MeetingLink = "  "
			return r
		}(), apperror.ErrMissingLocationInfo},
		{"in person without location", domain.ApplicationStatusPending, domain.InterviewRequest{
			ScheduledAt: now.Add(3 * time.Hour), DurationMinutes: 45, Type: domain.InterviewTypeInPerson,
		}, apperror.ErrMissingLocationInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := app(tt.status)
			iv, err := workflow.ValidateAndCreate(a, tt.req, recruiter, now)
			assert.Nil(t, iv)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, tt.status, a.Status)
		})
	}

	t.Run("booking on an accepted application is a system move to interview_scheduled", func(t *testing.T) {
		a := app(domain.ApplicationStatusAccepted)
		iv, err := workflow.ValidateAndCreate(a, videoRequest(now.Add(2*time.Hour)), recruiter, now)
		require.NoError(t, err)
		require.NotNil(t, iv)
		assert.Equal(t, domain.ApplicationStatusInterviewScheduled, a.Status)
		require.NotNil(t, a.StatusChangedAt)
		assert.Equal(t, now, *a.StatusChangedAt)
		// the recruiter path still refuses the same backward move
		assert.False(t, workflow.CanTransition(domain.ApplicationStatusAccepted, domain.ApplicationStatusInterviewScheduled))
	})

	t.Run("phone needs neither link nor location", func(t *testing.T) {
		req := domain.InterviewRequest{ScheduledAt: now.Add(2 * time.Hour), DurationMinutes: 15, Type: domain.InterviewTypePhone, Round: domain.InterviewRoundHR}
		iv, err := workflow.ValidateAndCreate(app(domain.ApplicationStatusPending), req, recruiter, now)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewRoundHR, iv.Round)
		assert.Nil(t, iv.MeetingLink)
	})
}

func scheduled() *domain.Interview {
	return &domain.Interview{ID: 3, ApplicationID: 1, ScheduledAt: now.Add(24 * time.Hour), DurationMinutes: 60, Status: domain.InterviewStatusScheduled}
}

func TestCancel(t *testing.T) {
	iv := scheduled()
	require.NoError(t, workflow.Cancel(iv, "Candidate asked to postpone", now))
	assert.Equal(t, domain.InterviewStatusCancelled, iv.Status)
	require.NotNil(t, iv.CancelledAt)
	first := *iv.CancelledAt

	err := workflow.Cancel(iv, "again", now.Add(time.Hour))
	assert.True(t, errors.Is(err, apperror.ErrAlreadyTerminal))
	assert.Equal(t, first, *iv.CancelledAt)
	assert.Equal(t, "Candidate asked to postpone", *iv.CancellationReason)
}

func TestComplete(t *testing.T) {
	t.Run("rating out of range", func(t *testing.T) {
		bad := 6
		iv := scheduled()
		err := workflow.Complete(iv, "ok", &bad, now)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Equal(t, domain.InterviewStatusScheduled, iv.Status)
	})

	t.Run("completes with optional rating", func(t *testing.T) {
		iv := scheduled()
		require.NoError(t, workflow.Complete(iv, "Strong system design", nil, now))
		assert.Equal(t, domain.InterviewStatusCompleted, iv.Status)
		assert.Nil(t, iv.Rating)
		require.NotNil(t, iv.CompletedAt)

		rating := 4
		err := workflow.Complete(iv, "", &rating, now)
		assert.True(t, errors.Is(err, apperror.ErrAlreadyTerminal))
	})

	t.Run("cancelled interview cannot be completed", func(t *testing.T) {
		iv := scheduled()
		require.NoError(t, workflow.Cancel(iv, "", now))
		assert.Nil(t, iv.CancellationReason)
		assert.True(t, errors.Is(workflow.Complete(iv, "", nil, now), apperror.ErrAlreadyTerminal))
	})
}

func TestRescheduleAndNoShow(t *testing.T) {
	t.Run("reschedule checks the new slot", func(t *testing.T) {
		iv := scheduled()
		err := workflow.Reschedule(iv, now.Add(10*time.Minute), 30, now)
		assert.True(t, errors.Is(err, apperror.ErrTooSoon))

		require.NoError(t, workflow.Reschedule(iv, now.Add(48*time.Hour), 0, now))
		assert.Equal(t, domain.InterviewStatusRescheduled, iv.Status)
		assert.Equal(t, 60, iv.DurationMinutes)
	})

	t.Run("no-show only after the start time", func(t *testing.T) {
		iv := scheduled()
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(workflow.MarkNoShow(iv, now)))

		require.NoError(t, workflow.MarkNoShow(iv, iv.ScheduledAt.Add(15*time.Minute)))
		assert.Equal(t, domain.InterviewStatusNoShow, iv.Status)
		assert.True(t, errors.Is(workflow.MarkNoShow(iv, iv.ScheduledAt.Add(time.Hour)), apperror.ErrInvalidTransition))
	})
}
