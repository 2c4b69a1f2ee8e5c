package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/database"
)

// CaseRepository persists case dashboard entries.
type CaseRepository struct {
	db *sqlx.DB
}

// NewCaseRepository constructs the repository.
func NewCaseRepository(db *sqlx.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

const caseSelect = `
SELECT
	cd.id, cd.intake_id, i.client_name, cd.status, cd.status_changed_at, cd.status_changed_by,
	cd.assigned_attorney_ref, cd.assigned_at, cd.is_priority, cd.is_archived, cd.archived_at,
	cd.doc_gen_count, cd.last_doc_gen_at, cd.last_doc_gen_by, cd.docgen_loaded_at,
	cd.created_at, cd.updated_at
FROM case_dashboard cd
JOIN intakes i ON i.id = cd.intake_id`

// Create inserts the dashboard entry of a freshly submitted intake.
func (r *CaseRepository) Create(ctx context.Context, c *models.Case) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.StatusChangedAt.IsZero() {
		c.StatusChangedAt = c.CreatedAt
	}
	c.UpdatedAt = c.CreatedAt
	const query = `INSERT INTO case_dashboard (id, intake_id, status, status_changed_at, status_changed_by, is_priority, is_archived, doc_gen_count, created_at, updated_at)
VALUES (:id, :intake_id, :status, :status_changed_at, :status_changed_by, :is_priority, :is_archived, :doc_gen_count, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, database.Conn(ctx, r.db), query, c); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create case for intake %s: %w", c.IntakeID, ErrDuplicateKey)
		}
		return fmt.Errorf("create case: %w", err)
	}
	return nil
}

// FindByID loads a case.
func (r *CaseRepository) FindByID(ctx context.Context, id string) (*models.Case, error) {
	var c models.Case
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &c, caseSelect+` WHERE cd.id = $1`, id); err != nil {
		return nil, fmt.Errorf("find case %s: %w", id, err)
	}
	return &c, nil
}

// FindByIntakeID loads the case wrapping an intake.
func (r *CaseRepository) FindByIntakeID(ctx context.Context, intakeID string) (*models.Case, error) {
	var c models.Case
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &c, caseSelect+` WHERE cd.intake_id = $1`, intakeID); err != nil {
		return nil, fmt.Errorf("find case for intake %s: %w", intakeID, err)
	}
	return &c, nil
}

// LockByID loads a case and locks its row until the surrounding transaction ends.
func (r *CaseRepository) LockByID(ctx context.Context, id string) (*models.Case, error) {
	var c models.Case
	query := caseSelect + ` WHERE cd.id = $1 FOR UPDATE OF cd`
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &c, query, id); err != nil {
		return nil, fmt.Errorf("lock case %s: %w", id, err)
	}
	return &c, nil
}

// List returns a page of cases and the total number of matches.
func (r *CaseRepository) List(ctx context.Context, filter models.CaseFilter) ([]models.Case, int, error) {
	where := strings.Builder{}
	where.WriteString(" WHERE 1=1")
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&where, " AND cd.status = $%d", len(args))
	}
	if filter.AssignedTo != "" {
		args = append(args, filter.AssignedTo)
		fmt.Fprintf(&where, " AND cd.assigned_attorney_ref = $%d", len(args))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		fmt.Fprintf(&where, " AND cd.is_priority = $%d", len(args))
	}
	if filter.Archived != nil {
		args = append(args, *filter.Archived)
		fmt.Fprintf(&where, " AND cd.is_archived = $%d", len(args))
	}

	conn := database.Conn(ctx, r.db)
	var total int
	countQuery := `SELECT COUNT(*) FROM case_dashboard cd` + where.String()
	if err := sqlx.GetContext(ctx, conn, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count cases: %w", err)
	}

	page, size := filter.Page, filter.PageSize
	args = append(args, size, (page-1)*size)
	query := caseSelect + where.String() +
		fmt.Sprintf("\nORDER BY cd.is_priority DESC, cd.status_changed_at DESC, cd.id ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var cases []models.Case
	if err := sqlx.SelectContext(ctx, conn, &cases, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list cases: %w", err)
	}
	return cases, total, nil
}

// UpdateStatus writes a new status together with who changed it and when.
func (r *CaseRepository) UpdateStatus(ctx context.Context, id string, status models.CaseStatus, actor string, at time.Time) error {
	const query = `UPDATE case_dashboard SET status = $1, status_changed_at = $2, status_changed_by = $3, updated_at = $2 WHERE id = $4`
	return r.exec(ctx, "update case status", query, status, at, actor, id)
}

// MarkDocGenLoaded stamps the time a case was first loaded into document generation.
func (r *CaseRepository) MarkDocGenLoaded(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE case_dashboard SET docgen_loaded_at = COALESCE(docgen_loaded_at, $1), updated_at = $1 WHERE id = $2`
	return r.exec(ctx, "mark case loaded", query, at, id)
}

// RecordDocGeneration increments the generation counter.
func (r *CaseRepository) RecordDocGeneration(ctx context.Context, id, actor string, at time.Time) error {
	const query = `UPDATE case_dashboard SET doc_gen_count = doc_gen_count + 1, last_doc_gen_at = $1, last_doc_gen_by = $2, updated_at = $1 WHERE id = $3`
	return r.exec(ctx, "record document generation", query, at, actor, id)
}

// UpdateAssignment sets or clears the assigned attorney.
func (r *CaseRepository) UpdateAssignment(ctx context.Context, id string, attorneyRef *string, at time.Time) error {
	const query = `UPDATE case_dashboard SET assigned_attorney_ref = $1, assigned_at = $2, updated_at = $2 WHERE id = $3`
	return r.exec(ctx, "update case assignment", query, attorneyRef, at, id)
}

// UpdatePriority sets the priority flag.
func (r *CaseRepository) UpdatePriority(ctx context.Context, id string, priority bool, at time.Time) error {
	const query = `UPDATE case_dashboard SET is_priority = $1, updated_at = $2 WHERE id = $3`
	return r.exec(ctx, "update case priority", query, priority, at, id)
}

// UpdateArchived archives or restores a case.
func (r *CaseRepository) UpdateArchived(ctx context.Context, id string, archived bool, at time.Time) error {
	const query = `UPDATE case_dashboard SET is_archived = $1, archived_at = CASE WHEN $1 THEN $2::timestamptz ELSE NULL END, updated_at = $2 WHERE id = $3`
	return r.exec(ctx, "update case archive flag", query, archived, at, id)
}

func (r *CaseRepository) exec(ctx context.Context, op, query string, args ...interface{}) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNoRowsAffected)
	}
	return nil
}
