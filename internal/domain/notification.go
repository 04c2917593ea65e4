package domain

import (
	"context"
	"time"
)

// EventKind names a notification sent to a candidate
type EventKind string

const (
	EventApplicationReceived  EventKind = "application_received"
	EventStatusChanged        EventKind = "status_changed"
	EventInterviewScheduled   EventKind = "interview_scheduled"
	EventInterviewCancelled   EventKind = "interview_cancelled"
	EventInterviewRescheduled EventKind = "interview_rescheduled"
)

// NotificationEvent is the payload handed to a Notifier
type NotificationEvent struct {
	ID             string            `json:"id"`
	Kind           EventKind         `json:"kind"`
	OccurredAt     time.Time         `json:"occurred_at"`
	ApplicationID  int64             `json:"application_id"`
	CandidateID    int64             `json:"candidate_id"`
	CandidateEmail string            `json:"candidate_email,omitempty"`
	CandidateName  string            `json:"candidate_name,omitempty"`
	JobID          int64             `json:"job_id"`
	JobTitle       string            `json:"job_title,omitempty"`
	Status         ApplicationStatus `json:"status,omitempty"`
	Interview      *Interview        `json:"interview,omitempty"`
	Reason         string            `json:"reason,omitempty"`
}

// Notifier delivers events to candidates. Delivery is fire-and-forget:
// callers log returned errors and never roll back on them.
type Notifier interface {
	Notify(ctx context.Context, event NotificationEvent) error
}
