package usecase

import (
	"context"
	"net/http"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"

	"github.com/go-playground/validator/v10"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	appRepo  domain.ApplicationRepository
	validate *validator.Validate
	access   access
	opts     options
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	appRepo domain.ApplicationRepository,
	validate *validator.Validate,
	auditLog *audit.Logger,
	opts ...Option,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		validate: validate,
		access:   access{apps: appRepo, jobs: jobRepo, audit: auditLog},
		opts:     buildOptions(opts),
	}
}

func (u *jobUsecase) check(job *domain.Job) error {
	if err := u.validate.Struct(job); err != nil {
		return apperror.New(http.StatusBadRequest, "Invalid job", err)
	}
	if !job.HasValidClosingDate(u.opts.now()) {
		return apperror.Validation("Closing date must be in the future for an active job")
	}
	return nil
}

func (u *jobUsecase) CreateJob(ctx context.Context, principal domain.Principal, job *domain.Job) error {
	// 1. Only recruiters post, always for their own company
	if !principal.IsRecruiter() {
		return apperror.Unauthorized("Only recruiters can post jobs")
	}
	job.CompanyID = principal.CompanyID
	job.RecruiterID = principal.RecruiterID

	// 2. Business validation
	if err := u.check(job); err != nil {
		return err
	}

	now := u.opts.now()
	job.PostedAt = now
	job.UpdatedAt = now
	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	return job, nil
}

func (u *jobUsecase) ListActiveJobs(ctx context.Context, page, pageSize int) (*domain.PaginatedResult[domain.Job], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := (page - 1) * pageSize

	jobs, total, err := u.jobRepo.FetchActive(ctx, pageSize, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(jobs, total, page, pageSize), nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, principal domain.Principal, job *domain.Job) error {
	existing, err := u.access.job(ctx, principal, job.ID)
	if err != nil {
		return err
	}

	// Ownership fields stay with the stored job
	job.CompanyID = existing.CompanyID
	job.RecruiterID = existing.RecruiterID
	job.PostedAt = existing.PostedAt

	if err := u.check(job); err != nil {
		return err
	}
	job.UpdatedAt = u.opts.now()
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return repoErr(err, "Job not found")
	}
	return nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, principal domain.Principal, id int64) (bool, error) {
	if _, err := u.access.job(ctx, principal, id); err != nil {
		return false, err
	}

	// Jobs with applications are kept for the candidates' history
	count, err := u.appRepo.CountByJobID(ctx, id)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if count > 0 {
		if err := u.jobRepo.Deactivate(ctx, id); err != nil {
			return false, repoErr(err, "Job not found")
		}
		return true, nil
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return false, repoErr(err, "Job not found")
	}
	return false, nil
}
