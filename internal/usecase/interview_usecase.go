package usecase

import (
	"context"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/workflow"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"
)

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	appRepo       domain.ApplicationRepository
	tx            domain.Transactor
	audit         *audit.Logger
	access        access
	events        dispatcher
	opts          options
}

func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	tx domain.Transactor,
	notifier domain.Notifier,
	auditLog *audit.Logger,
	opts ...Option,
) domain.InterviewUsecase {
	o := buildOptions(opts)
	return &interviewUsecase{
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
		tx:            tx,
		audit:         auditLog,
		access:        access{apps: appRepo, jobs: jobRepo, audit: auditLog},
		events:        dispatcher{notifier: notifier, candidates: candidateRepo, audit: auditLog, now: o.now},
		opts:          o,
	}
}

// Schedule books an interview and moves the application to interview_scheduled
func (u *interviewUsecase) Schedule(ctx context.Context, principal domain.Principal, applicationID int64, req domain.InterviewRequest) (*domain.Interview, error) {
	var iv *domain.Interview
	var app *domain.Application
	var job *domain.Job
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		// 1. Application must belong to the recruiter's company
		var err error
		app, job, err = u.access.application(ctx, principal, applicationID)
		if err != nil {
			return err
		}

		// 2. Slot and eligibility checks
		iv, err = workflow.ValidateAndCreate(app, req, principal, u.opts.now())
		if err != nil {
			return err
		}

		// 3. Persist both sides of the booking
		if err := u.interviewRepo.Create(ctx, iv); err != nil {
			return apperror.Internal(err)
		}
		if err := u.appRepo.Save(ctx, app); err != nil {
			return repoErr(err, "Application not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.Log(ctx, auditActor(principal, audit.EventInterviewScheduled, "interview", iv.ID, map[string]any{
		"application_id": app.ID,
		"scheduled_at":   iv.ScheduledAt,
		"type":           string(iv.Type),
	}))
	u.events.send(ctx, domain.EventInterviewScheduled, app, job, iv, "")
	return iv, nil
}

// mutate loads an interview under recruiter authorization, applies fn and saves it in one transaction
func (u *interviewUsecase) mutate(ctx context.Context, principal domain.Principal, interviewID int64, fn func(iv *domain.Interview, now time.Time) error) (*domain.Interview, *domain.Application, *domain.Job, error) {
	var iv *domain.Interview
	var app *domain.Application
	var job *domain.Job
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		iv, err = u.interviewRepo.GetByID(ctx, interviewID)
		if err != nil {
			return repoErr(err, "Interview not found")
		}
		app, job, err = u.access.application(ctx, principal, iv.ApplicationID)
		if err != nil {
			return err
		}
		if err := fn(iv, u.opts.now()); err != nil {
			return err
		}
		if err := u.interviewRepo.Save(ctx, iv); err != nil {
			return repoErr(err, "Interview not found")
		}
		return nil
	})
	return iv, app, job, err
}

func (u *interviewUsecase) Cancel(ctx context.Context, principal domain.Principal, interviewID int64, reason string) (*domain.Interview, error) {
	iv, app, job, err := u.mutate(ctx, principal, interviewID, func(iv *domain.Interview, now time.Time) error {
		return workflow.Cancel(iv, reason, now)
	})
	if err != nil {
		return nil, err
	}

	u.audit.Log(ctx, auditActor(principal, audit.EventInterviewCancelled, "interview", iv.ID, map[string]any{"reason": reason}))
	u.events.send(ctx, domain.EventInterviewCancelled, app, job, iv, reason)
	return iv, nil
}

func (u *interviewUsecase) Complete(ctx context.Context, principal domain.Principal, interviewID int64, feedback string, rating *int) (*domain.Interview, error) {
	iv, _, _, err := u.mutate(ctx, principal, interviewID, func(iv *domain.Interview, now time.Time) error {
		return workflow.Complete(iv, feedback, rating, now)
	})
	if err != nil {
		return nil, err
	}

	details := map[string]any{}
	if iv.Rating != nil {
		details["rating"] = *iv.Rating
	}
	u.audit.Log(ctx, auditActor(principal, audit.EventInterviewCompleted, "interview", iv.ID, details))
	return iv, nil
}

func (u *interviewUsecase) Reschedule(ctx context.Context, principal domain.Principal, interviewID int64, scheduledAt time.Time, durationMinutes int) (*domain.Interview, error) {
	var previous time.Time
	iv, app, job, err := u.mutate(ctx, principal, interviewID, func(iv *domain.Interview, now time.Time) error {
		previous = iv.ScheduledAt
		return workflow.Reschedule(iv, scheduledAt, durationMinutes, now)
	})
	if err != nil {
		return nil, err
	}

	u.audit.Log(ctx, auditActor(principal, audit.EventInterviewRescheduled, "interview", iv.ID, map[string]any{
		"from": previous,
		"to":   iv.ScheduledAt,
	}))
	u.events.send(ctx, domain.EventInterviewRescheduled, app, job, iv, "")
	return iv, nil
}

func (u *interviewUsecase) MarkNoShow(ctx context.Context, principal domain.Principal, interviewID int64) (*domain.Interview, error) {
	iv, _, _, err := u.mutate(ctx, principal, interviewID, workflow.MarkNoShow)
	if err != nil {
		return nil, err
	}
	u.audit.Log(ctx, auditActor(principal, audit.EventInterviewNoShow, "interview", iv.ID, nil))
	return iv, nil
}

// ListMine returns the interviews the calling recruiter conducts
func (u *interviewUsecase) ListMine(ctx context.Context, principal domain.Principal, status *domain.InterviewStatus) ([]domain.Interview, error) {
	if principal.RecruiterID == 0 || (!principal.IsRecruiter() && !principal.IsAdmin()) {
		return nil, apperror.Unauthorized("Only recruiters have interviews")
	}
	if status != nil && !status.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("Unknown interview status %q", *status))
	}
	interviews, err := u.interviewRepo.GetByReviewerID(ctx, principal.RecruiterID, status)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return interviews, nil
}
