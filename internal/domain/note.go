package domain

import (
	"context"
	"time"
)

// RecruiterNote is a free-text annotation on an application
type RecruiterNote struct {
	ID            int64      `json:"id"`
	ApplicationID int64      `json:"application_id"`
	ReviewerID    int64      `json:"reviewer_id"`
	Text          string     `json:"text" validate:"required,min=1,max=5000"`
	IsImportant   bool       `json:"is_important"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type NoteRepository interface {
	Create(ctx context.Context, note *RecruiterNote) error
	GetByID(ctx context.Context, id int64) (*RecruiterNote, error)
	GetByApplicationID(ctx context.Context, applicationID int64) ([]RecruiterNote, error)
	SetImportant(ctx context.Context, id int64, important bool, updatedAt time.Time) error
}

type NoteUsecase interface {
	AddNote(ctx context.Context, principal Principal, applicationID int64, text string, important bool) (*RecruiterNote, error)
	ListNotes(ctx context.Context, principal Principal, applicationID int64) ([]RecruiterNote, error)
	SetImportant(ctx context.Context, principal Principal, noteID int64, important bool) error
}
