package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

const noteExcerptLength = 200

type noteStore interface {
	Create(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, id string) (*models.Note, error)
	LockByID(ctx context.Context, id string) (*models.Note, error)
	List(ctx context.Context, caseID string, includeDeleted bool) ([]models.Note, error)
	UpdateContent(ctx context.Context, id, content, actor string, at time.Time) error
	SoftDelete(ctx context.Context, id, actor string, at time.Time) error
	SetPinned(ctx context.Context, id string, pinned bool) error
}

type caseLocker interface {
	FindByID(ctx context.Context, id string) (*models.Case, error)
	LockByID(ctx context.Context, id string) (*models.Case, error)
}

// NoteService manages case notes. Every change to a note appends one
// activity in the same transaction. Pinning a pinned note, or unpinning an
// unpinned one, changes nothing and logs nothing.
type NoteService struct {
	tx         txRunner
	notes      noteStore
	cases      caseLocker
	activities activityAppender
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewNoteService constructs the service.
func NewNoteService(tx txRunner, notes noteStore, cases caseLocker, activities activityAppender, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{
		tx:         tx,
		notes:      notes,
		cases:      cases,
		activities: activities,
		validator:  validate,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create adds a note to a case.
func (s *NoteService) Create(ctx context.Context, caseID string, req dto.NoteRequest, actor *models.JWTClaims) (*models.Note, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}
	content, err := s.content(req)
	if err != nil {
		return nil, err
	}

	note := &models.Note{CaseID: caseID, Content: content, CreatedBy: by}
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.cases.LockByID(ctx, caseID); err != nil {
			if isNotFound(err) {
				return appErrors.Clone(appErrors.ErrNotFound, "case not found")
			}
			return err
		}
		note.CreatedAt = s.now()
		if err := s.notes.Create(ctx, note); err != nil {
			return err
		}
		return s.activities.Append(ctx, &models.Activity{
			CaseID:       caseID,
			ActivityType: models.ActivityNoteAdded,
			Description:  "Note added",
			PerformedBy:  by,
			PerformedAt:  note.CreatedAt,
			NewValue:     strPtr(excerpt(content)),
		})
	})
	if err != nil {
		return nil, passThrough(err, "failed to add note")
	}
	return note, nil
}

// Get returns a note, including soft-deleted ones.
func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "note not found")
		}
		return nil, internalError(err, "failed to load note")
	}
	return note, nil
}

// List returns the notes of a case, pinned first then newest first.
func (s *NoteService) List(ctx context.Context, caseID string, includeDeleted bool) ([]models.Note, error) {
	if _, err := s.cases.FindByID(ctx, caseID); err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "case not found")
		}
		return nil, internalError(err, "failed to load case")
	}
	notes, err := s.notes.List(ctx, caseID, includeDeleted)
	if err != nil {
		return nil, internalError(err, "failed to list notes")
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// Edit replaces the content of a note. Creation fields are preserved.
func (s *NoteService) Edit(ctx context.Context, id string, req dto.NoteRequest, actor *models.JWTClaims) (*models.Note, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}
	content, err := s.content(req)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(ctx context.Context, note *models.Note, at time.Time) (*models.Activity, error) {
		previous := note.Content
		if err := s.notes.UpdateContent(ctx, note.ID, content, by, at); err != nil {
			return nil, err
		}
		note.Content, note.UpdatedBy, note.UpdatedAt = content, &by, &at
		return &models.Activity{
			ActivityType: models.ActivityNoteEdited,
			Description:  "Note edited",
			OldValue:     strPtr(excerpt(previous)),
			NewValue:     strPtr(excerpt(content)),
		}, nil
	}, by, "failed to edit note")
}

// Delete soft-deletes a note; it stays retrievable by id.
func (s *NoteService) Delete(ctx context.Context, id string, actor *models.JWTClaims) (*models.Note, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(ctx context.Context, note *models.Note, at time.Time) (*models.Activity, error) {
		if err := s.notes.SoftDelete(ctx, note.ID, by, at); err != nil {
			return nil, err
		}
		note.IsDeleted, note.DeletedBy, note.DeletedAt = true, &by, &at
		return &models.Activity{
			ActivityType: models.ActivityNoteEdited,
			Description:  "Note deleted",
			OldValue:     strPtr(excerpt(note.Content)),
			NewValue:     strPtr("deleted"),
		}, nil
	}, by, "failed to delete note")
}

// Pin moves a note to the top of listings.
func (s *NoteService) Pin(ctx context.Context, id string, actor *models.JWTClaims) (*models.Note, error) {
	return s.setPinned(ctx, id, true, actor)
}

// Unpin returns a note to chronological order.
func (s *NoteService) Unpin(ctx context.Context, id string, actor *models.JWTClaims) (*models.Note, error) {
	return s.setPinned(ctx, id, false, actor)
}

func (s *NoteService) setPinned(ctx context.Context, id string, pinned bool, actor *models.JWTClaims) (*models.Note, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(ctx context.Context, note *models.Note, at time.Time) (*models.Activity, error) {
		if note.IsPinned == pinned {
			return nil, nil
		}
		if err := s.notes.SetPinned(ctx, note.ID, pinned); err != nil {
			return nil, err
		}
		note.IsPinned = pinned
		activity := &models.Activity{
			ActivityType: models.ActivityNoteEdited,
			Description:  "Note pinned",
			OldValue:     strPtr("unpinned"),
			NewValue:     strPtr("pinned"),
		}
		if !pinned {
			activity.Description = "Note unpinned"
			activity.OldValue, activity.NewValue = activity.NewValue, activity.OldValue
		}
		return activity, nil
	}, by, "failed to pin note")
}

func (s *NoteService) content(req dto.NoteRequest) (string, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}
	return req.Content, nil
}

// mutate locks a live note, runs apply and appends the activity it returns.
func (s *NoteService) mutate(
	ctx context.Context,
	id string,
	apply func(ctx context.Context, note *models.Note, at time.Time) (*models.Activity, error),
	actor, failure string,
) (*models.Note, error) {
	var result *models.Note
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		note, err := s.notes.LockByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return appErrors.Clone(appErrors.ErrNotFound, "note not found")
			}
			return err
		}
		if note.IsDeleted {
			return appErrors.Clone(appErrors.ErrConflict, "note is deleted")
		}
		at := s.now()
		activity, err := apply(ctx, note, at)
		if err != nil {
			return err
		}
		if activity != nil {
			activity.CaseID = note.CaseID
			activity.PerformedBy = actor
			activity.PerformedAt = at
			if err := s.activities.Append(ctx, activity); err != nil {
				return err
			}
		}
		result = note
		return nil
	})
	if err != nil {
		return nil, passThrough(err, failure)
	}
	return result, nil
}

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= noteExcerptLength {
		return s
	}
	return string(runes[:noteExcerptLength]) + "..."
}
