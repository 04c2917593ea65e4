package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"
)

const maxNoteLength = 5000

type noteUsecase struct {
	noteRepo domain.NoteRepository
	access   access
	opts     options
}

func NewNoteUsecase(
	noteRepo domain.NoteRepository,
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	auditLog *audit.Logger,
	opts ...Option,
) domain.NoteUsecase {
	return &noteUsecase{
		noteRepo: noteRepo,
		access:   access{apps: appRepo, jobs: jobRepo, audit: auditLog},
		opts:     buildOptions(opts),
	}
}

func (u *noteUsecase) AddNote(ctx context.Context, principal domain.Principal, applicationID int64, text string, important bool) (*domain.RecruiterNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.Validation("Note text is required")
	}
	if utf8.RuneCountInString(text) > maxNoteLength {
		return nil, apperror.Validation("Note text must be at most 5000 characters")
	}

	if _, _, err := u.access.application(ctx, principal, applicationID); err != nil {
		return nil, err
	}

	note := &domain.RecruiterNote{
		ApplicationID: applicationID,
		ReviewerID:    principal.RecruiterID,
		Text:          text,
		IsImportant:   important,
		CreatedAt:     u.opts.now(),
	}
	if err := u.noteRepo.Create(ctx, note); err != nil {
		return nil, apperror.Internal(err)
	}
	return note, nil
}

// ListNotes returns the application's notes, newest first
func (u *noteUsecase) ListNotes(ctx context.Context, principal domain.Principal, applicationID int64) ([]domain.RecruiterNote, error) {
	if _, _, err := u.access.application(ctx, principal, applicationID); err != nil {
		return nil, err
	}
	notes, err := u.noteRepo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return notes, nil
}

func (u *noteUsecase) SetImportant(ctx context.Context, principal domain.Principal, noteID int64, important bool) error {
	note, err := u.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return repoErr(err, "Note not found")
	}
	if _, _, err := u.access.application(ctx, principal, note.ApplicationID); err != nil {
		return err
	}
	if err := u.noteRepo.SetImportant(ctx, noteID, important, u.opts.now()); err != nil {
		return repoErr(err, "Note not found")
	}
	return nil
}
