package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/logger"

	"github.com/google/uuid"
)

// Option customizes a usecase
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// repoErr converts a repository error into an AppError
func repoErr(err error, notFound string) error {
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, domain.ErrConflict):
		return apperror.Conflict("The record was changed by someone else, please retry")
	default:
		return apperror.Internal(err)
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// access resolves applications and jobs and checks company ownership
type access struct {
	apps  domain.ApplicationRepository
	jobs  domain.JobRepository
	audit *audit.Logger
}

func (a access) denied(ctx context.Context, p domain.Principal, entity string, id int64, msg string) error {
	a.audit.Log(ctx, audit.Event{
		Event:      audit.EventUnauthorizedAccess,
		ActorID:    p.UserID,
		ActorRole:  string(p.Role),
		EntityType: entity,
		EntityID:   id,
	})
	return apperror.Unauthorized(msg)
}

// job loads a job the principal may manage
func (a access) job(ctx context.Context, p domain.Principal, jobID int64) (*domain.Job, error) {
	if !p.IsAdmin() && !p.IsRecruiter() {
		return nil, a.denied(ctx, p, "job", jobID, "Only recruiters can manage jobs")
	}
	job, err := a.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	if !p.CanManageCompany(job.CompanyID) {
		return nil, a.denied(ctx, p, "job", jobID, "You can only manage your company's jobs")
	}
	return job, nil
}

// application loads an application whose job the principal may manage
func (a access) application(ctx context.Context, p domain.Principal, applicationID int64) (*domain.Application, *domain.Job, error) {
	if !p.IsAdmin() && !p.IsRecruiter() {
		return nil, nil, a.denied(ctx, p, "application", applicationID, "Only recruiters can review applications")
	}
	app, err := a.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, repoErr(err, "Application not found")
	}
	job, err := a.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, repoErr(err, "Job not found")
	}
	if !p.CanManageCompany(job.CompanyID) {
		return nil, nil, a.denied(ctx, p, "application", applicationID, "You can only review applications to your company's jobs")
	}
	return app, job, nil
}

// dispatcher delivers notifications after commit. Failures are logged and audited, never returned.
type dispatcher struct {
	notifier   domain.Notifier
	candidates domain.CandidateRepository
	audit      *audit.Logger
	now        func() time.Time
}

func (d dispatcher) send(ctx context.Context, kind domain.EventKind, app *domain.Application, job *domain.Job, iv *domain.Interview, reason string) {
	if d.notifier == nil {
		return
	}
	event := domain.NotificationEvent{
		ID:            uuid.NewString(),
		Kind:          kind,
		OccurredAt:    d.now(),
		ApplicationID: app.ID,
		CandidateID:   app.CandidateID,
		JobID:         app.JobID,
		Status:        app.Status,
		Interview:     iv,
		Reason:        reason,
	}
	if job != nil {
		event.JobTitle = job.Title
	}
	if c, err := d.candidates.GetByID(ctx, app.CandidateID); err == nil {
		event.CandidateEmail = c.Email
		event.CandidateName = c.FullName
	}

	if err := d.notifier.Notify(ctx, event); err != nil {
		logger.FromContext(ctx).Warn("notification failed", "event_id", event.ID, "kind", kind, "error", err)
		d.audit.Log(ctx, audit.Event{
			Event:      audit.EventNotificationFailed,
			EntityType: "application",
			EntityID:   app.ID,
			Details:    map[string]any{"kind": string(kind), "error": err.Error()},
		})
	}
}

func auditActor(p domain.Principal, event audit.EventType, entity string, id int64, details map[string]any) audit.Event {
	return audit.Event{
		Event:      event,
		ActorID:    p.UserID,
		ActorRole:  string(p.Role),
		EntityType: entity,
		EntityID:   id,
		Details:    details,
	}
}
