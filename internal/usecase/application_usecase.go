package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/scoring"
	"go-jobboard-backend/internal/workflow"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	candidateRepo   domain.CandidateRepository
	tx              domain.Transactor
	audit           *audit.Logger
	access          access
	events          dispatcher
	matching        MatchingConfig
	opts            options
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	tx domain.Transactor,
	notifier domain.Notifier,
	auditLog *audit.Logger,
	matching MatchingConfig,
	opts ...Option,
) domain.ApplicationUsecase {
	o := buildOptions(opts)
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		candidateRepo:   candidateRepo,
		tx:              tx,
		audit:           auditLog,
		access:          access{apps: appRepo, jobs: jobRepo, audit: auditLog},
		events:          dispatcher{notifier: notifier, candidates: candidateRepo, audit: auditLog, now: o.now},
		matching:        matching.withDefaults(),
		opts:            o,
	}
}

// Apply submits the caller's application to an open job
func (uc *applicationUsecase) Apply(ctx context.Context, principal domain.Principal, jobID int64, coverLetter string) (*domain.Application, error) {
	if !principal.IsCandidate() {
		return nil, apperror.Unauthorized("Only candidates can apply to jobs")
	}
	now := uc.opts.now()

	// 1. Profile must be complete enough
	profile, err := uc.candidateRepo.GetByID(ctx, principal.CandidateID)
	if err != nil {
		return nil, repoErr(err, "Candidate profile not found")
	}
	if !profile.IsActive {
		return nil, apperror.NotFound("Candidate profile not found")
	}
	if !scoring.IsProfileComplete(profile, uc.matching.CompleteThreshold) {
		return nil, apperror.Validation("Complete your profile before applying")
	}

	// 2. Job must be open
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	if !job.IsOpen(now) {
		return nil, apperror.Validation("This job is no longer accepting applications")
	}

	// 3. Check for duplicate application
	exists, err := uc.applicationRepo.ExistsActive(ctx, principal.CandidateID, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	// 4. Create application, the unique index catches a concurrent duplicate
	app := &domain.Application{
		CandidateID: principal.CandidateID,
		JobID:       jobID,
		Status:      domain.ApplicationStatusPending,
		CoverLetter: optionalString(coverLetter),
		SubmittedAt: now,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	uc.events.send(ctx, domain.EventApplicationReceived, app, job, nil, "")
	return app, nil
}

func (uc *applicationUsecase) GetMyApplications(ctx context.Context, principal domain.Principal) ([]domain.Application, error) {
	if !principal.IsCandidate() {
		return nil, apperror.Unauthorized("Only candidates have applications")
	}
	apps, err := uc.applicationRepo.GetByCandidateID(ctx, principal.CandidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) GetMyStats(ctx context.Context, principal domain.Principal) (*domain.ApplicationStats, error) {
	apps, err := uc.GetMyApplications(ctx, principal)
	if err != nil {
		return nil, err
	}
	return countByStatus(apps), nil
}

func (uc *applicationUsecase) GetJobStats(ctx context.Context, principal domain.Principal, jobID int64) (*domain.ApplicationStats, error) {
	if _, err := uc.access.job(ctx, principal, jobID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return countByStatus(apps), nil
}

func countByStatus(apps []domain.Application) *domain.ApplicationStats {
	stats := &domain.ApplicationStats{
		Total:    len(apps),
		ByStatus: make(map[domain.ApplicationStatus]int, len(domain.ApplicationStatuses)),
	}
	for _, s := range domain.ApplicationStatuses {
		stats.ByStatus[s] = 0
	}
	for _, app := range apps {
		stats.ByStatus[app.Status]++
	}
	return stats
}

func (uc *applicationUsecase) Withdraw(ctx context.Context, principal domain.Principal, applicationID int64) (*domain.Application, error) {
	if !principal.IsCandidate() {
		return nil, apperror.Unauthorized("Only candidates can withdraw applications")
	}

	var app *domain.Application
	var from domain.ApplicationStatus
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		app, err = uc.applicationRepo.GetByID(ctx, applicationID)
		if err != nil {
			return repoErr(err, "Application not found")
		}
		from = app.Status
		if err := workflow.Withdraw(app, principal, uc.opts.now()); err != nil {
			return err
		}
		if err := uc.applicationRepo.Save(ctx, app); err != nil {
			return repoErr(err, "Application not found")
		}
		return nil
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindUnauthorized {
			uc.audit.Log(ctx, auditActor(principal, audit.EventUnauthorizedAccess, "application", applicationID, nil))
		}
		return nil, err
	}

	uc.audit.Log(ctx, auditActor(principal, audit.EventApplicationWithdrawn, "application", app.ID,
		map[string]any{"from": string(from)}))
	return app, nil
}

// RankApplicants returns the job's live applications ordered by match score
func (uc *applicationUsecase) RankApplicants(ctx context.Context, principal domain.Principal, jobID int64) ([]domain.RankedApplicant, error) {
	job, err := uc.access.job(ctx, principal, jobID)
	if err != nil {
		return nil, err
	}

	// 1. Applications in submission order, minus withdrawn ones
	all, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	apps := make([]domain.Application, 0, len(all))
	ids := make([]int64, 0, len(all))
	for _, app := range all {
		if app.Status == domain.ApplicationStatusWithdrawn {
			continue
		}
		apps = append(apps, app)
		ids = append(ids, app.CandidateID)
	}
	if len(apps) == 0 {
		return []domain.RankedApplicant{}, nil
	}

	// 2. Score against the candidates' profiles
	candidates, err := uc.candidateRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return scoring.RankCandidates(job, apps, candidates), nil
}

func (uc *applicationUsecase) ChangeStatus(ctx context.Context, principal domain.Principal, applicationID int64, req domain.StatusChangeRequest) (*domain.Application, error) {
	var app *domain.Application
	var job *domain.Job
	var from domain.ApplicationStatus
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		app, job, err = uc.access.application(ctx, principal, applicationID)
		if err != nil {
			return err
		}
		from = app.Status

		change := workflow.StatusChange{
			To:              req.Status,
			RejectionReason: req.RejectionReason,
			Override:        req.Override,
		}
		if err := workflow.ChangeStatus(app, change, principal, uc.opts.now()); err != nil {
			return err
		}
		if err := uc.applicationRepo.Save(ctx, app); err != nil {
			return repoErr(err, "Application not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Log(ctx, auditActor(principal, audit.EventStatusChanged, "application", app.ID, map[string]any{
		"from":     string(from),
		"to":       string(app.Status),
		"override": req.Override,
	}))
	uc.events.send(ctx, domain.EventStatusChanged, app, job, nil, req.RejectionReason)
	return app, nil
}
