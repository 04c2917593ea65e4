package v1_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go-jobboard-backend/internal/delivery/http/middleware"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInterviewUsecase struct {
	mock.Mock
}

func (m *MockInterviewUsecase) interview(args mock.Arguments) (*domain.Interview, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewUsecase) Schedule(ctx context.Context, p domain.Principal, applicationID int64, req domain.InterviewRequest) (*domain.Interview, error) {
	return m.interview(m.Called(ctx, p, applicationID, req))
}

func (m *MockInterviewUsecase) Cancel(ctx context.Context, p domain.Principal, interviewID int64, reason string) (*domain.Interview, error) {
	return m.interview(m.Called(ctx, p, interviewID, reason))
}

func (m *MockInterviewUsecase) Complete(ctx context.Context, p domain.Principal, interviewID int64, feedback string, rating *int) (*domain.Interview, error) {
	return m.interview(m.Called(ctx, p, interviewID, feedback, rating))
}

func (m *MockInterviewUsecase) Reschedule(ctx context.Context, p domain.Principal, interviewID int64, scheduledAt time.Time, durationMinutes int) (*domain.Interview, error) {
	return m.interview(m.Called(ctx, p, interviewID, scheduledAt, durationMinutes))
}

func (m *MockInterviewUsecase) MarkNoShow(ctx context.Context, p domain.Principal, interviewID int64) (*domain.Interview, error) {
	return m.interview(m.Called(ctx, p, interviewID))
}

func (m *MockInterviewUsecase) ListMine(ctx context.Context, p domain.Principal, status *domain.InterviewStatus) ([]domain.Interview, error) {
	args := m.Called(ctx, p, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func newInterviewServer(p domain.Principal, uc domain.InterviewUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	g := r.Group("/v1", func(c *gin.Context) {
		c.Set(string(domain.KeyPrincipal), p)
		c.Next()
	})
	v1.NewInterviewHandler(g, uc, nil)
	return r
}

func TestInterviewHandler_Schedule(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		uc := new(MockInterviewUsecase)
		uc.On("Schedule", mock.Anything, recruiter, int64(1), mock.MatchedBy(func(req domain.InterviewRequest) bool {
			return req.DurationMinutes == 30 && req.Type == domain.InterviewTypePhone
		})).Return(&domain.Interview{ID: 5, ApplicationID: 1, Status: domain.InterviewStatusScheduled}, nil)

		w, resp := do(newInterviewServer(recruiter, uc), http.MethodPost, "/v1/employers/applications/1/interviews",
			`{"scheduled_at":"2030-01-01T10:00:00Z","duration_minutes":30,"type":"phone"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, resp.Success)
		uc.AssertExpectations(t)
	})

	t.Run("omitted duration reaches the usecase and maps to 422", func(t *testing.T) {
		uc := new(MockInterviewUsecase)
		uc.On("Schedule", mock.Anything, recruiter, int64(1), mock.MatchedBy(func(req domain.InterviewRequest) bool {
			return req.DurationMinutes == 0
		})).Return(nil, apperror.InvalidDuration("Duration must be between 15 and 480 minutes"))

		w, resp := do(newInterviewServer(recruiter, uc), http.MethodPost, "/v1/employers/applications/1/interviews",
			`{"scheduled_at":"2030-01-01T10:00:00Z","type":"phone"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body, ok := resp.Error.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "invalid_duration", body["kind"])
		uc.AssertExpectations(t)
	})

	t.Run("missing type fails binding", func(t *testing.T) {
		uc := new(MockInterviewUsecase)
		w, resp := do(newInterviewServer(recruiter, uc), http.MethodPost, "/v1/employers/applications/1/interviews",
			`{"scheduled_at":"2030-01-01T10:00:00Z","duration_minutes":30}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body, ok := resp.Error.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "validation", body["kind"])
		uc.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
