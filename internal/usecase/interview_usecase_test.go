package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type interviewFixture struct {
	interviews *MockInterviewRepo
	apps       *MockApplicationRepo
	jobs       *MockJobRepo
	candidates *MockCandidateRepo
	notifier   *MockNotifier
	uc         domain.InterviewUsecase
}

func newInterviewFixture() *interviewFixture {
	f := &interviewFixture{
		interviews: new(MockInterviewRepo),
		apps:       new(MockApplicationRepo),
		jobs:       new(MockJobRepo),
		candidates: new(MockCandidateRepo),
		notifier:   new(MockNotifier),
	}
	f.uc = usecase.NewInterviewUsecase(f.interviews, f.apps, f.jobs, f.candidates, &passthroughTx{}, f.notifier, audit.Nop(), clock())
	f.candidates.On("GetByID", mock.Anything, int64(7)).Return(completeProfile(7), nil)
	return f
}

func (f *interviewFixture) withApplication(ctx context.Context, status domain.ApplicationStatus) *domain.Application {
	app := &domain.Application{ID: 5, CandidateID: 7, JobID: 1, Status: status, Version: 2}
	f.apps.On("GetByID", ctx, int64(5)).Return(app, nil)
	f.jobs.On("GetByID", ctx, int64(1)).Return(openJob(1, 10), nil)
	return app
}

func TestInterviewUsecase_Schedule(t *testing.T) {
	ctx := context.Background()
	req := domain.InterviewRequest{
		ScheduledAt:     fixedNow.Add(2 * time.Hour),
		DurationMinutes: 45,
		Type:            domain.InterviewTypeVideo,
		MeetingLink:     "https://meet.example.com/abc",
	}

	t.Run("books the interview and moves the application", func(t *testing.T) {
		f := newInterviewFixture()
		app := f.withApplication(ctx, domain.ApplicationStatusShortlisted)
		f.interviews.On("Create", ctx, mock.AnythingOfType("*domain.Interview")).Return(nil)
		f.apps.On("Save", ctx, app).Return(nil)
		f.notifier.On("Notify", ctx, mock.MatchedBy(func(e domain.NotificationEvent) bool {
			return e.Kind == domain.EventInterviewScheduled && e.Interview != nil
		})).Return(nil)

		iv, err := f.uc.Schedule(ctx, recruiter, 5, req)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusScheduled, iv.Status)
		assert.Equal(t, domain.InterviewRoundScreening, iv.Round)
		assert.Equal(t, recruiter.RecruiterID, iv.ReviewerID)
		assert.Equal(t, domain.ApplicationStatusInterviewScheduled, app.Status)
		f.apps.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("too soon persists nothing", func(t *testing.T) {
		f := newInterviewFixture()
		app := f.withApplication(ctx, domain.ApplicationStatusShortlisted)

		soon := req
		soon.ScheduledAt = fixedNow.Add(30 * time.Minute)
		_, err := f.uc.Schedule(ctx, recruiter, 5, soon)
		assert.ErrorIs(t, err, apperror.ErrTooSoon)
		assert.Equal(t, domain.ApplicationStatusShortlisted, app.Status)
		f.interviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.apps.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejected application is ineligible", func(t *testing.T) {
		f := newInterviewFixture()
		f.withApplication(ctx, domain.ApplicationStatusRejected)

		_, err := f.uc.Schedule(ctx, recruiter, 5, req)
		assert.ErrorIs(t, err, apperror.ErrIneligibleApplicationState)
	})

	t.Run("other company is unauthorized", func(t *testing.T) {
		f := newInterviewFixture()
		f.withApplication(ctx, domain.ApplicationStatusShortlisted)

		_, err := f.uc.Schedule(ctx, outsider, 5, req)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func scheduledInterview() *domain.Interview {
	return &domain.Interview{
		ID:              9,
		ApplicationID:   5,
		ReviewerID:      3,
		ScheduledAt:     fixedNow.Add(24 * time.Hour),
		DurationMinutes: 60,
		Type:            domain.InterviewTypePhone,
		Round:           domain.InterviewRoundScreening,
		Status:          domain.InterviewStatusScheduled,
		Version:         1,
	}
}

func TestInterviewUsecase_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newInterviewFixture()
	f.withApplication(ctx, domain.ApplicationStatusInterviewScheduled)
	iv := scheduledInterview()
	f.interviews.On("GetByID", ctx, int64(9)).Return(iv, nil)
	f.interviews.On("Save", ctx, iv).Return(nil).Once()
	f.notifier.On("Notify", ctx, mock.MatchedBy(func(e domain.NotificationEvent) bool {
		return e.Kind == domain.EventInterviewCancelled && e.Reason == "Position filled"
	})).Return(nil).Once()

	got, err := f.uc.Cancel(ctx, recruiter, 9, "Position filled")
	require.NoError(t, err)
	assert.Equal(t, domain.InterviewStatusCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.Equal(t, fixedNow, *got.CancelledAt)

	_, err = f.uc.Cancel(ctx, recruiter, 9, "again")
	assert.ErrorIs(t, err, apperror.ErrAlreadyTerminal)
	f.interviews.AssertNumberOfCalls(t, "Save", 1)
}

func TestInterviewUsecase_CompleteAndReschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("complete with rating", func(t *testing.T) {
		f := newInterviewFixture()
		f.withApplication(ctx, domain.ApplicationStatusInterviewScheduled)
		iv := scheduledInterview()
		f.interviews.On("GetByID", ctx, int64(9)).Return(iv, nil)
		f.interviews.On("Save", ctx, iv).Return(nil)

		rating := 4
		got, err := f.uc.Complete(ctx, recruiter, 9, "Strong Go skills", &rating)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusCompleted, got.Status)
		assert.Equal(t, 4, *got.Rating)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("reschedule notifies", func(t *testing.T) {
		f := newInterviewFixture()
		f.withApplication(ctx, domain.ApplicationStatusInterviewScheduled)
		iv := scheduledInterview()
		f.interviews.On("GetByID", ctx, int64(9)).Return(iv, nil)
		f.interviews.On("Save", ctx, iv).Return(nil)
		f.notifier.On("Notify", ctx, mock.MatchedBy(func(e domain.NotificationEvent) bool {
			return e.Kind == domain.EventInterviewRescheduled
		})).Return(nil)

		next := fixedNow.Add(72 * time.Hour)
		got, err := f.uc.Reschedule(ctx, recruiter, 9, next, 0)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusRescheduled, got.Status)
		assert.Equal(t, next, got.ScheduledAt)
		assert.Equal(t, 60, got.DurationMinutes)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		f := newInterviewFixture()
		f.withApplication(ctx, domain.ApplicationStatusInterviewScheduled)
		iv := scheduledInterview()
		f.interviews.On("GetByID", ctx, int64(9)).Return(iv, nil)
		f.interviews.On("Save", ctx, iv).Return(domain.ErrConflict)

		_, err := f.uc.Complete(ctx, recruiter, 9, "", nil)
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("no-show before start", func(t *testing.T) {
		f := newInterviewFixture()
		f.withApplication(ctx, domain.ApplicationStatusInterviewScheduled)
		f.interviews.On("GetByID", ctx, int64(9)).Return(scheduledInterview(), nil)

		_, err := f.uc.MarkNoShow(ctx, recruiter, 9)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})
}

func TestInterviewUsecase_ListMine(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by status", func(t *testing.T) {
		f := newInterviewFixture()
		status := domain.InterviewStatusScheduled
		f.interviews.On("GetByReviewerID", ctx, int64(3), &status).Return([]domain.Interview{*scheduledInterview()}, nil)

		got, err := f.uc.ListMine(ctx, recruiter, &status)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newInterviewFixture()
		status := domain.InterviewStatus("lost")
		_, err := f.uc.ListMine(ctx, recruiter, &status)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("candidates have no interviews to list", func(t *testing.T) {
		f := newInterviewFixture()
		_, err := f.uc.ListMine(ctx, candidate, nil)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestNoteUsecase(t *testing.T) {
	ctx := context.Background()

	newNotes := func() (*MockNoteRepo, *MockApplicationRepo, *MockJobRepo, domain.NoteUsecase) {
		notes := new(MockNoteRepo)
		apps := new(MockApplicationRepo)
		jobs := new(MockJobRepo)
		apps.On("GetByID", ctx, int64(5)).Return(&domain.Application{ID: 5, CandidateID: 7, JobID: 1}, nil)
		jobs.On("GetByID", ctx, int64(1)).Return(openJob(1, 10), nil)
		return notes, apps, jobs, usecase.NewNoteUsecase(notes, apps, jobs, audit.Nop(), clock())
	}

	t.Run("add trims and stamps", func(t *testing.T) {
		notes, _, _, uc := newNotes()
		notes.On("Create", ctx, mock.AnythingOfType("*domain.RecruiterNote")).Return(nil)

		note, err := uc.AddNote(ctx, recruiter, 5, "  Great culture fit  ", true)
		require.NoError(t, err)
		assert.Equal(t, "Great culture fit", note.Text)
		assert.Equal(t, recruiter.RecruiterID, note.ReviewerID)
		assert.True(t, note.IsImportant)
		assert.Equal(t, fixedNow, note.CreatedAt)
	})

	t.Run("blank text", func(t *testing.T) {
		_, _, _, uc := newNotes()
		_, err := uc.AddNote(ctx, recruiter, 5, "   ", false)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("outsider cannot read notes", func(t *testing.T) {
		_, _, _, uc := newNotes()
		_, err := uc.ListNotes(ctx, outsider, 5)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("toggle important", func(t *testing.T) {
		notes, _, _, uc := newNotes()
		notes.On("GetByID", ctx, int64(11)).Return(&domain.RecruiterNote{ID: 11, ApplicationID: 5}, nil)
		notes.On("SetImportant", ctx, int64(11), true, fixedNow).Return(nil)

		require.NoError(t, uc.SetImportant(ctx, recruiter, 11, true))
		notes.AssertExpectations(t)
	})
}
