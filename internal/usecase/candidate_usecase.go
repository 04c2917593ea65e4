package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/scoring"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// MatchingConfig holds the scoring thresholds read from config
type MatchingConfig struct {
	MatchThreshold      int
	CompleteThreshold   int
	RecommendationLimit int
}

func (m MatchingConfig) withDefaults() MatchingConfig {
	if m.CompleteThreshold <= 0 {
		m.CompleteThreshold = scoring.DefaultCompleteThreshold
	}
	if m.RecommendationLimit <= 0 {
		m.RecommendationLimit = 6
	}
	return m
}

type candidateUsecase struct {
	repo     domain.CandidateRepository
	jobRepo  domain.JobRepository
	cache    domain.RecommendationCache
	validate *validator.Validate
	matching MatchingConfig
	opts     options
}

func NewCandidateUsecase(
	repo domain.CandidateRepository,
	jobRepo domain.JobRepository,
	cache domain.RecommendationCache,
	validate *validator.Validate,
	matching MatchingConfig,
	opts ...Option,
) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:     repo,
		jobRepo:  jobRepo,
		cache:    cache,
		validate: validate,
		matching: matching.withDefaults(),
		opts:     buildOptions(opts),
	}
}

func (u *candidateUsecase) summary(p *domain.CandidateProfile) *domain.ProfileSummary {
	score := scoring.ProfileCompleteness(p)
	return &domain.ProfileSummary{
		Profile:      p,
		Completeness: score,
		IsComplete:   score >= u.matching.CompleteThreshold,
	}
}

// own loads the caller's active profile
func (u *candidateUsecase) own(ctx context.Context, principal domain.Principal) (*domain.CandidateProfile, error) {
	if principal.UserID == "" {
		return nil, apperror.Unauthenticated("User not authenticated")
	}
	profile, err := u.repo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, repoErr(err, "Candidate profile not found")
	}
	if !profile.IsActive {
		return nil, apperror.NotFound("Candidate profile not found")
	}
	return profile, nil
}

func (u *candidateUsecase) CreateProfile(ctx context.Context, principal domain.Principal, profile *domain.CandidateProfile) (*domain.ProfileSummary, error) {
	if principal.UserID == "" || principal.Role != domain.RoleCandidate {
		return nil, apperror.Unauthorized("Only candidates can create a profile")
	}
	now := u.opts.now()

	// 1. Profile belongs to the caller
	profile.UserID = principal.UserID

	// 2. Field validation
	if err := u.validate.Struct(profile); err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Invalid profile", err)
	}

	// 3. Age check needs a birth date at creation
	age, ok := profile.AgeAt(now)
	if !ok {
		return nil, apperror.Validation("Date of birth is required")
	}
	if age < domain.MinimumCandidateAge {
		return nil, apperror.Validation(fmt.Sprintf("You must be at least %d years old", domain.MinimumCandidateAge))
	}

	// 4. One profile per user
	if _, err := u.repo.GetByUserID(ctx, principal.UserID); err == nil {
		return nil, apperror.Conflict("Candidate profile already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	profile.IsActive = true
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if err := u.repo.Create(ctx, profile); err != nil {
		return nil, repoErr(err, "Candidate profile not found")
	}
	return u.summary(profile), nil
}

func (u *candidateUsecase) GetProfile(ctx context.Context, principal domain.Principal) (*domain.ProfileSummary, error) {
	profile, err := u.own(ctx, principal)
	if err != nil {
		return nil, err
	}
	return u.summary(profile), nil
}

func (u *candidateUsecase) UpdateProfile(ctx context.Context, principal domain.Principal, profile *domain.CandidateProfile) (*domain.ProfileSummary, error) {
	existing, err := u.own(ctx, principal)
	if err != nil {
		return nil, err
	}

	// Identity fields are never taken from the request
	profile.ID = existing.ID
	profile.UserID = existing.UserID
	profile.IsActive = existing.IsActive
	profile.CreatedAt = existing.CreatedAt
	if profile.DateOfBirth == nil {
		profile.DateOfBirth = existing.DateOfBirth
	}

	if err := u.validate.Struct(profile); err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Invalid profile", err)
	}

	profile.UpdatedAt = u.opts.now()
	if err := u.repo.Update(ctx, profile); err != nil {
		return nil, repoErr(err, "Candidate profile not found")
	}

	if err := u.cache.Invalidate(ctx, profile.ID); err != nil {
		logger.FromContext(ctx).Warn("recommendation cache invalidate failed", "candidate_id", profile.ID, "error", err)
	}
	return u.summary(profile), nil
}

func (u *candidateUsecase) DeactivateProfile(ctx context.Context, principal domain.Principal) error {
	profile, err := u.own(ctx, principal)
	if err != nil {
		return err
	}
	if err := u.repo.SetActive(ctx, profile.ID, false); err != nil {
		return repoErr(err, "Candidate profile not found")
	}
	if err := u.cache.Invalidate(ctx, profile.ID); err != nil {
		logger.FromContext(ctx).Warn("recommendation cache invalidate failed", "candidate_id", profile.ID, "error", err)
	}
	return nil
}

// RecommendJobs scores the most recent open jobs for the caller
func (u *candidateUsecase) RecommendJobs(ctx context.Context, principal domain.Principal) ([]domain.JobMatchResult, error) {
	profile, err := u.own(ctx, principal)
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)

	// 1. Cache, failing open
	cached, hit, err := u.cache.Get(ctx, profile.ID)
	if err != nil {
		log.Warn("recommendation cache read failed", "candidate_id", profile.ID, "error", err)
	} else if hit {
		return cached, nil
	}

	// 2. Score the recent open jobs
	now := u.opts.now()
	jobs, err := u.jobRepo.FetchRecentOpen(ctx, now, u.matching.RecommendationLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	results := scoring.RecommendJobs(profile, jobs, scoring.RecommendOptions{
		Threshold: u.matching.MatchThreshold,
		Limit:     u.matching.RecommendationLimit,
		Now:       now,
	})

	// 3. Store
	if err := u.cache.Set(ctx, profile.ID, results); err != nil {
		log.Warn("recommendation cache write failed", "candidate_id", profile.ID, "error", err)
	}
	return results, nil
}

func (u *candidateUsecase) MatchJob(ctx context.Context, principal domain.Principal, jobID int64) (*domain.JobMatchResult, error) {
	profile, err := u.own(ctx, principal)
	if err != nil {
		return nil, err
	}
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	return &domain.JobMatchResult{Job: *job, MatchScore: scoring.JobMatch(profile, job)}, nil
}
