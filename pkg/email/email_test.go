package email

import (
	"context"
	"net/smtp"
	"testing"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	link := "https://meet.example.com/xyz"
	event := domain.NotificationEvent{
		Kind:          domain.EventInterviewScheduled,
		CandidateName: "Jordan",
		JobTitle:      "Backend Engineer",
		Interview: &domain.Interview{
			ScheduledAt:     time.Date(2026, time.October, 20, 15, 0, 0, 0, time.UTC),
			DurationMinutes: 45,
			Type:            domain.InterviewTypeVideo,
			MeetingLink:     &link,
		},
	}

	subject, body, err := Render(event)
	require.NoError(t, err)
	assert.Equal(t, "Interview scheduled: Backend Engineer", subject)
	assert.Contains(t, body, "45 minutes")
	assert.Contains(t, body, link)

	_, _, err = Render(domain.NotificationEvent{Kind: "unknown"})
	assert.Error(t, err)
}

func TestNotify(t *testing.T) {
	svc := NewEmailService(&config.Config{
		SMTPHost:      "smtp.example.com",
		SMTPPort:      "587",
		SMTPUsername:  "user",
		SMTPPassword:  "pass",
		SMTPFromEmail: "noreply@example.com",
	})

	var gotTo []string
	var gotMsg string
	svc.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.example.com:587", addr)
		assert.Equal(t, "noreply@example.com", from)
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	err := svc.Notify(context.Background(), domain.NotificationEvent{
		Kind:           domain.EventStatusChanged,
		CandidateEmail: "jordan@example.com",
		JobTitle:       "Backend Engineer",
		Status:         domain.ApplicationStatusShortlisted,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"jordan@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Update on your application for Backend Engineer")
	assert.Contains(t, gotMsg, "shortlisted")

	t.Run("no recipient", func(t *testing.T) {
		err := svc.Notify(context.Background(), domain.NotificationEvent{Kind: domain.EventStatusChanged})
		assert.Error(t, err)
	})
}
