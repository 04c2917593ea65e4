package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCandidateUsecase(repo *MockCandidateRepo, jobs *MockJobRepo, cache *MockCache) domain.CandidateUsecase {
	return usecase.NewCandidateUsecase(repo, jobs, cache, validation.New(), usecase.MatchingConfig{
		MatchThreshold:      30,
		CompleteThreshold:   80,
		RecommendationLimit: 6,
	}, clock())
}

func TestCandidateUsecase_CreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active profile owned by the caller", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := newCandidateUsecase(repo, new(MockJobRepo), new(MockCache))

		profile := completeProfile(0)
		profile.UserID = "someone-else"
		repo.On("GetByUserID", ctx, candidate.UserID).Return(nil, domain.ErrNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.CandidateProfile")).Return(nil)

		summary, err := uc.CreateProfile(ctx, candidate, profile)
		require.NoError(t, err)
		assert.Equal(t, candidate.UserID, summary.Profile.UserID)
		assert.True(t, summary.Profile.IsActive)
		assert.Equal(t, 100, summary.Completeness)
		assert.True(t, summary.IsComplete)
		assert.Equal(t, fixedNow, summary.Profile.CreatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("rejects candidates younger than 16", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := newCandidateUsecase(repo, new(MockJobRepo), new(MockCache))

		profile := completeProfile(0)
		dob := fixedNow.AddDate(-15, 0, 0)
		profile.DateOfBirth = &dob

		_, err := uc.CreateProfile(ctx, candidate, profile)
		assert.ErrorIs(t, err, apperror.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("requires a birth date", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := newCandidateUsecase(repo, new(MockJobRepo), new(MockCache))

		profile := completeProfile(0)
		profile.DateOfBirth = nil

		_, err := uc.CreateProfile(ctx, candidate, profile)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("second profile conflicts", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := newCandidateUsecase(repo, new(MockJobRepo), new(MockCache))
		repo.On("GetByUserID", ctx, candidate.UserID).Return(completeProfile(7), nil)

		_, err := uc.CreateProfile(ctx, candidate, completeProfile(0))
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("recruiters cannot create candidate profiles", func(t *testing.T) {
		uc := newCandidateUsecase(new(MockCandidateRepo), new(MockJobRepo), new(MockCache))
		_, err := uc.CreateProfile(ctx, recruiter, completeProfile(0))
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestCandidateUsecase_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	cache := new(MockCache)
	uc := newCandidateUsecase(repo, new(MockJobRepo), cache)

	existing := completeProfile(7)
	repo.On("GetByUserID", ctx, candidate.UserID).Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.CandidateProfile")).Return(nil)
	cache.On("Invalidate", ctx, int64(7)).Return(errors.New("redis down"))

	update := completeProfile(0)
	update.UserID = "attacker"
	update.DateOfBirth = nil
	update.City = "Dallas"

	summary, err := uc.UpdateProfile(ctx, candidate, update)
	require.NoError(t, err)
	assert.Equal(t, int64(7), summary.Profile.ID)
	assert.Equal(t, candidate.UserID, summary.Profile.UserID)
	assert.Equal(t, existing.DateOfBirth, summary.Profile.DateOfBirth)
	assert.Equal(t, "Dallas", summary.Profile.City)
	cache.AssertExpectations(t)
}

func TestCandidateUsecase_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("inactive profile is not found", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := newCandidateUsecase(repo, new(MockJobRepo), new(MockCache))
		p := completeProfile(7)
		p.IsActive = false
		repo.On("GetByUserID", ctx, candidate.UserID).Return(p, nil)

		_, err := uc.GetProfile(ctx, candidate)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("incomplete profile is flagged", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := newCandidateUsecase(repo, new(MockJobRepo), new(MockCache))
		p := &domain.CandidateProfile{ID: 7, FullName: "Jordan Lee", Email: "jordan@example.com", IsActive: true}
		repo.On("GetByUserID", ctx, candidate.UserID).Return(p, nil)

		summary, err := uc.GetProfile(ctx, candidate)
		require.NoError(t, err)
		assert.Equal(t, 25, summary.Completeness)
		assert.False(t, summary.IsComplete)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		uc := newCandidateUsecase(new(MockCandidateRepo), new(MockJobRepo), new(MockCache))
		_, err := uc.GetProfile(ctx, domain.Principal{})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestCandidateUsecase_DeactivateProfile(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	cache := new(MockCache)
	uc := newCandidateUsecase(repo, new(MockJobRepo), cache)

	repo.On("GetByUserID", ctx, candidate.UserID).Return(completeProfile(7), nil)
	repo.On("SetActive", ctx, int64(7), false).Return(nil)
	cache.On("Invalidate", ctx, int64(7)).Return(nil)

	require.NoError(t, uc.DeactivateProfile(ctx, candidate))
	repo.AssertExpectations(t)
}

func TestCandidateUsecase_RecommendJobs(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips scoring", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		cache := new(MockCache)
		uc := newCandidateUsecase(repo, jobs, cache)

		cached := []domain.JobMatchResult{{Job: *openJob(1, 10), MatchScore: 95}}
		repo.On("GetByUserID", ctx, candidate.UserID).Return(completeProfile(7), nil)
		cache.On("Get", ctx, int64(7)).Return(cached, true, nil)

		results, err := uc.RecommendJobs(ctx, candidate)
		require.NoError(t, err)
		assert.Equal(t, cached, results)
		jobs.AssertNotCalled(t, "FetchRecentOpen", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache failure falls back to scoring", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		jobs := new(MockJobRepo)
		cache := new(MockCache)
		uc := newCandidateUsecase(repo, jobs, cache)

		strong := openJob(1, 10)
		remote := openJob(2, 10)
		remote.Location = "Remote"
		remote.RequiredSkills = nil
		weak := openJob(3, 10)
		weak.Location = "Berlin"
		weak.RequiredSkills = nil

		profile := completeProfile(7)
		profile.Experiences = nil
		profile.Educations = nil
		repo.On("GetByUserID", ctx, candidate.UserID).Return(profile, nil)
		cache.On("Get", ctx, int64(7)).Return(nil, false, errors.New("redis down"))
		jobs.On("FetchRecentOpen", ctx, fixedNow, 6).Return([]domain.Job{*weak, *remote, *strong}, nil)
		cache.On("Set", ctx, int64(7), mock.Anything).Return(errors.New("redis down"))

		results, err := uc.RecommendJobs(ctx, candidate)
		require.NoError(t, err)
		// strong: city 25 + Go and SQL 20; remote: 20 is at or below the threshold; weak: 0
		require.Len(t, results, 1)
		assert.Equal(t, int64(1), results[0].Job.ID)
		assert.Equal(t, 45, results[0].MatchScore)
	})
}

func TestCandidateUsecase_MatchJob(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	jobs := new(MockJobRepo)
	uc := newCandidateUsecase(repo, jobs, new(MockCache))

	repo.On("GetByUserID", ctx, candidate.UserID).Return(completeProfile(7), nil)
	jobs.On("GetByID", ctx, int64(1)).Return(openJob(1, 10), nil)
	jobs.On("GetByID", ctx, int64(2)).Return(nil, domain.ErrNotFound)

	result, err := uc.MatchJob(ctx, candidate, 1)
	require.NoError(t, err)
	// city 25 + Go and SQL 20 + experience 20 + education 15
	assert.Equal(t, 80, result.MatchScore)

	_, err = uc.MatchJob(ctx, candidate, 2)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestJobUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("create stamps company and rejects past closing date", func(t *testing.T) {
		jobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobs, new(MockApplicationRepo), validation.New(), audit.Nop(), clock())

		job := openJob(0, 0)
		past := fixedNow.Add(-time.Hour)
		job.ClosingDate = &past
		err := uc.CreateJob(ctx, recruiter, job)
		assert.ErrorIs(t, err, apperror.ErrValidation)

		job.ClosingDate = nil
		jobs.On("Create", ctx, job).Return(nil)
		require.NoError(t, uc.CreateJob(ctx, recruiter, job))
		assert.Equal(t, recruiter.CompanyID, job.CompanyID)
		assert.Equal(t, recruiter.RecruiterID, job.RecruiterID)
		assert.Equal(t, fixedNow, job.PostedAt)
	})

	t.Run("candidates cannot post jobs", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), new(MockApplicationRepo), validation.New(), audit.Nop(), clock())
		err := uc.CreateJob(ctx, candidate, openJob(0, 0))
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("delete deactivates when applications exist", func(t *testing.T) {
		jobs := new(MockJobRepo)
		apps := new(MockApplicationRepo)
		uc := usecase.NewJobUsecase(jobs, apps, validation.New(), audit.Nop(), clock())

		jobs.On("GetByID", ctx, int64(1)).Return(openJob(1, 10), nil)
		apps.On("CountByJobID", ctx, int64(1)).Return(int64(2), nil)
		jobs.On("Deactivate", ctx, int64(1)).Return(nil)

		deactivated, err := uc.DeleteJob(ctx, recruiter, 1)
		require.NoError(t, err)
		assert.True(t, deactivated)
		jobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete removes a job without applications", func(t *testing.T) {
		jobs := new(MockJobRepo)
		apps := new(MockApplicationRepo)
		uc := usecase.NewJobUsecase(jobs, apps, validation.New(), audit.Nop(), clock())

		jobs.On("GetByID", ctx, int64(1)).Return(openJob(1, 10), nil)
		apps.On("CountByJobID", ctx, int64(1)).Return(int64(0), nil)
		jobs.On("Delete", ctx, int64(1)).Return(nil)

		deactivated, err := uc.DeleteJob(ctx, recruiter, 1)
		require.NoError(t, err)
		assert.False(t, deactivated)
	})

	t.Run("other company's job is off limits", func(t *testing.T) {
		jobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobs, new(MockApplicationRepo), validation.New(), audit.Nop(), clock())
		jobs.On("GetByID", ctx, int64(1)).Return(openJob(1, 10), nil)

		_, err := uc.DeleteJob(ctx, outsider, 1)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)

		err = uc.UpdateJob(ctx, outsider, openJob(1, 99))
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("list clamps paging", func(t *testing.T) {
		jobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobs, new(MockApplicationRepo), validation.New(), audit.Nop(), clock())
		jobs.On("FetchActive", ctx, 10, 0).Return([]domain.Job{*openJob(1, 10)}, int64(11), nil)

		result, err := uc.ListActiveJobs(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 2, result.TotalPages)
	})
}
