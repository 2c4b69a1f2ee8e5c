package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/database"
)

// NoteRepository persists case notes. Rows are never removed.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository constructs the repository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

const noteColumns = `id, case_id, content, is_pinned, created_by, created_at, updated_by, updated_at, is_deleted, deleted_by, deleted_at`

// Create inserts a note.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO case_notes (id, case_id, content, is_pinned, created_by, created_at, is_deleted)
VALUES (:id, :case_id, :content, :is_pinned, :created_by, :created_at, :is_deleted)`
	if _, err := sqlx.NamedExecContext(ctx, database.Conn(ctx, r.db), query, note); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// FindByID loads a note whether or not it is deleted.
func (r *NoteRepository) FindByID(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &note, `SELECT `+noteColumns+` FROM case_notes WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("find note %s: %w", id, err)
	}
	return &note, nil
}

// LockByID loads a note with a row lock.
func (r *NoteRepository) LockByID(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &note, `SELECT `+noteColumns+` FROM case_notes WHERE id = $1 FOR UPDATE`, id); err != nil {
		return nil, fmt.Errorf("lock note %s: %w", id, err)
	}
	return &note, nil
}

// List returns the notes of a case, pinned first and then newest first.
func (r *NoteRepository) List(ctx context.Context, caseID string, includeDeleted bool) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM case_notes WHERE case_id = $1`
	if !includeDeleted {
		query += ` AND is_deleted = FALSE`
	}
	query += ` ORDER BY is_pinned DESC, created_at DESC, id DESC`

	var notes []models.Note
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &notes, query, caseID); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// UpdateContent replaces the content and stamps the editor.
func (r *NoteRepository) UpdateContent(ctx context.Context, id, content, actor string, at time.Time) error {
	const query = `UPDATE case_notes SET content = $1, updated_by = $2, updated_at = $3 WHERE id = $4`
	return r.exec(ctx, "update note", query, content, actor, at, id)
}

// SoftDelete flags a note as deleted.
func (r *NoteRepository) SoftDelete(ctx context.Context, id, actor string, at time.Time) error {
	const query = `UPDATE case_notes SET is_deleted = TRUE, deleted_by = $1, deleted_at = $2 WHERE id = $3`
	return r.exec(ctx, "delete note", query, actor, at, id)
}

// SetPinned pins or unpins a note.
func (r *NoteRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	const query = `UPDATE case_notes SET is_pinned = $1 WHERE id = $2`
	return r.exec(ctx, "pin note", query, pinned, id)
}

func (r *NoteRepository) exec(ctx context.Context, op, query string, args ...interface{}) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNoRowsAffected)
	}
	return nil
}
