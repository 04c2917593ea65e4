package workflow

import (
	"fmt"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

const (
	MinLeadTime        = time.Hour
	MinDurationMinutes = 15
	MaxDurationMinutes = 480
)

// ValidateAndCreate checks a booking request against app and, on success,
// returns a scheduled interview and moves app to interview_scheduled.
// app is left untouched when validation fails.
func ValidateAndCreate(app *domain.Application, req domain.InterviewRequest, reviewer domain.Principal, now time.Time) (*domain.Interview, error) {
	if app == nil {
		return nil, apperror.NotFound("Application not found")
	}
	if err := checkSlot(req.ScheduledAt, req.DurationMinutes, now); err != nil {
		return nil, err
	}
	switch app.Status {
	case domain.ApplicationStatusRejected, domain.ApplicationStatusHired, domain.ApplicationStatusWithdrawn:
		return nil, apperror.IneligibleApplicationState(fmt.Sprintf("Cannot schedule an interview for a %s application", app.Status))
	}
	if !req.Type.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("Unknown interview type %q", req.Type))
	}

	location := optional(req.Location)
	link := optional(req.MeetingLink)
	if req.Type == domain.InterviewTypeInPerson && location == nil {
		return nil, apperror.MissingLocationInfo("In-person interviews require a location")
	}
	if req.Type == domain.InterviewTypeVideo && link == nil {
		return nil, apperror.MissingLocationInfo("Video interviews require a meeting link")
	}

	round := req.Round
	if round == "" {
		round = domain.InterviewRoundScreening
	}

	iv := &domain.Interview{
		ApplicationID:       app.ID,
		ReviewerID:          reviewer.RecruiterID,
		ScheduledAt:         req.ScheduledAt,
		DurationMinutes:     req.DurationMinutes,
		Type:                req.Type,
		Round:               round,
		Status:              domain.InterviewStatusScheduled,
		MeetingLink:         link,
		Location:            location,
		SpecialInstructions: optional(req.SpecialInstructions),
		CreatedAt:           now,
	}
	enterInterviewScheduled(app, now)
	return iv, nil
}

// Cancel marks the interview cancelled. A second call fails and keeps the
// original cancellation timestamp.
func Cancel(iv *domain.Interview, reason string, now time.Time) error {
	if iv == nil {
		return apperror.NotFound("Interview not found")
	}
	if iv.Status.IsTerminal() {
		return apperror.AlreadyTerminal(fmt.Sprintf("Interview is already %s", iv.Status))
	}
	iv.Status = domain.InterviewStatusCancelled
	iv.CancelledAt = &now
	iv.CancellationReason = optional(reason)
	return nil
}

// Complete records the outcome of an interview. rating is optional but must be 1..5 when given.
func Complete(iv *domain.Interview, feedback string, rating *int, now time.Time) error {
	if iv == nil {
		return apperror.NotFound("Interview not found")
	}
	if iv.Status.IsTerminal() {
		return apperror.AlreadyTerminal(fmt.Sprintf("Interview is already %s", iv.Status))
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return apperror.Validation("Rating must be between 1 and 5")
	}
	iv.Status = domain.InterviewStatusCompleted
	iv.CompletedAt = &now
	iv.Feedback = optional(feedback)
	if rating != nil {
		r := *rating
		iv.Rating = &r
	}
	return nil
}

// Reschedule moves the interview to a new slot under the same lead time and duration rules
func Reschedule(iv *domain.Interview, scheduledAt time.Time, durationMinutes int, now time.Time) error {
	if iv == nil {
		return apperror.NotFound("Interview not found")
	}
	if iv.Status.IsTerminal() {
		return apperror.AlreadyTerminal(fmt.Sprintf("Interview is already %s", iv.Status))
	}
	if durationMinutes == 0 {
		durationMinutes = iv.DurationMinutes
	}
	if err := checkSlot(scheduledAt, durationMinutes, now); err != nil {
		return err
	}
	iv.ScheduledAt = scheduledAt
	iv.DurationMinutes = durationMinutes
	iv.Status = domain.InterviewStatusRescheduled
	return nil
}

// MarkNoShow flags a booked interview whose start time has passed
func MarkNoShow(iv *domain.Interview, now time.Time) error {
	if iv == nil {
		return apperror.NotFound("Interview not found")
	}
	switch iv.Status {
	case domain.InterviewStatusScheduled, domain.InterviewStatusRescheduled:
	case domain.InterviewStatusCompleted, domain.InterviewStatusCancelled:
		return apperror.AlreadyTerminal(fmt.Sprintf("Interview is already %s", iv.Status))
	default:
		return apperror.InvalidTransition(fmt.Sprintf("Interview is already %s", iv.Status))
	}
	if now.Before(iv.ScheduledAt) {
		return apperror.Validation("Interview has not started yet")
	}
	iv.Status = domain.InterviewStatusNoShow
	return nil
}

func checkSlot(scheduledAt time.Time, durationMinutes int, now time.Time) error {
	if !scheduledAt.After(now.Add(MinLeadTime)) {
		return apperror.TooSoon("Interview must be scheduled at least one hour in advance")
	}
	if durationMinutes < MinDurationMinutes || durationMinutes > MaxDurationMinutes {
		return apperror.InvalidDuration(fmt.Sprintf("Duration must be between %d and %d minutes", MinDurationMinutes, MaxDurationMinutes))
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
