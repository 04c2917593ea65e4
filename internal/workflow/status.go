// Package workflow holds the application status state machine and the
// interview scheduling rules. Functions mutate the entities handed to them
// and never perform I/O; persistence and notification belong to the caller.
package workflow

import (
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

// pipelineRank orders the forward pipeline. Rejected and Withdrawn sit outside it.
var pipelineRank = map[domain.ApplicationStatus]int{
	domain.ApplicationStatusPending:            0,
	domain.ApplicationStatusUnderReview:        1,
	domain.ApplicationStatusShortlisted:        2,
	domain.ApplicationStatusInterviewScheduled: 3,
	domain.ApplicationStatusAccepted:           4,
	domain.ApplicationStatusHired:              5,
}

// IsTerminal reports whether no further status change is allowed without an override
func IsTerminal(s domain.ApplicationStatus) bool {
	switch s {
	case domain.ApplicationStatusWithdrawn, domain.ApplicationStatusHired, domain.ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a recruiter may move an application from one
// status to another without an administrative override.
func CanTransition(from, to domain.ApplicationStatus) bool {
	if !from.IsValid() || !to.IsValid() || IsTerminal(from) {
		return false
	}
	switch to {
	case domain.ApplicationStatusWithdrawn:
		return false
	case domain.ApplicationStatusRejected:
		return true
	}
	return pipelineRank[to] > pipelineRank[from]
}

// AllowedTransitions lists the recruiter targets reachable from s
func AllowedTransitions(s domain.ApplicationStatus) []domain.ApplicationStatus {
	var out []domain.ApplicationStatus
	for _, to := range domain.ApplicationStatuses {
		if CanTransition(s, to) {
			out = append(out, to)
		}
	}
	return out
}

// StatusChange describes a requested recruiter status change
type StatusChange struct {
	To              domain.ApplicationStatus
	RejectionReason string
	// Override lets an admin revert or un-terminalize
	Override bool
}

// ChangeStatus applies a recruiter-driven status change to app.
// On success it stamps StatusChangedAt, ReviewedAt and ReviewedBy.
func ChangeStatus(app *domain.Application, change StatusChange, reviewer domain.Principal, now time.Time) error {
	if app == nil {
		return apperror.NotFound("Application not found")
	}
	if !change.Override && IsTerminal(app.Status) {
		return apperror.AlreadyTerminal(fmt.Sprintf("Application is already %s", app.Status))
	}
	if !change.To.IsValid() {
		return apperror.InvalidTransition(fmt.Sprintf("Unknown application status %q", change.To))
	}
	if change.Override {
		if !reviewer.IsAdmin() {
			return apperror.Unauthorized("Only admins can override application status")
		}
	} else if !CanTransition(app.Status, change.To) {
		return apperror.InvalidTransition(fmt.Sprintf("Cannot move application from %s to %s", app.Status, change.To))
	}

	app.Status = change.To
	app.StatusChangedAt = &now
	app.ReviewedAt = &now
	if reviewer.RecruiterID != 0 {
		id := reviewer.RecruiterID
		app.ReviewedBy = &id
	}
	switch {
	case change.To != domain.ApplicationStatusRejected:
		app.RejectionReason = nil
	case change.RejectionReason != "":
		reason := change.RejectionReason
		app.RejectionReason = &reason
	}
	return nil
}

// Withdraw lets the owning candidate pull their application
func Withdraw(app *domain.Application, candidate domain.Principal, now time.Time) error {
	if app == nil {
		return apperror.NotFound("Application not found")
	}
	if !candidate.OwnsCandidate(app.CandidateID) {
		return apperror.Unauthorized("You can only withdraw your own applications")
	}
	if IsTerminal(app.Status) {
		return apperror.AlreadyTerminal(fmt.Sprintf("Application is already %s", app.Status))
	}
	app.Status = domain.ApplicationStatusWithdrawn
	app.StatusChangedAt = &now
	return nil
}

// enterInterviewScheduled is the system transition performed when an interview is booked
func enterInterviewScheduled(app *domain.Application, now time.Time) {
	app.Status = domain.ApplicationStatusInterviewScheduled
	app.StatusChangedAt = &now
}
