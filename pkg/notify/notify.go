// Package notify provides the non-email notification backends.
package notify

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
)

// LogNotifier writes events to the application log. Used when no broker or SMTP is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, event domain.NotificationEvent) error {
	logger.FromContext(ctx).Info("notification",
		"event_id", event.ID,
		"kind", event.Kind,
		"application_id", event.ApplicationID,
		"candidate_id", event.CandidateID,
		"status", event.Status,
	)
	return nil
}

// Multi fans an event out to every notifier and joins their errors
type Multi []domain.Notifier

func (m Multi) Notify(ctx context.Context, event domain.NotificationEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
