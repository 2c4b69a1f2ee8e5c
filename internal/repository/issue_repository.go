package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/database"
)

// IssueRepository persists issue selections and per-category metadata.
type IssueRepository struct {
	db *sqlx.DB
}

// NewIssueRepository constructs the repository.
func NewIssueRepository(db *sqlx.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// UpsertMetadata writes the metadata row of (intake, category). The caller
// is responsible for validating the category code first.
func (r *IssueRepository) UpsertMetadata(ctx context.Context, meta *models.IssueMetadata) error {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = time.Now().UTC()
	}
	if meta.Photos == nil {
		meta.Photos = pq.StringArray{}
	}
	const query = `INSERT INTO issue_metadata (id, intake_id, category_code, details, first_noticed, severity, repair_history, photos, updated_by, updated_at)
VALUES (:id, :intake_id, :category_code, :details, :first_noticed, :severity, :repair_history, :photos, :updated_by, :updated_at)
ON CONFLICT (intake_id, category_code) DO UPDATE SET
	details = EXCLUDED.details,
	first_noticed = EXCLUDED.first_noticed,
	severity = EXCLUDED.severity,
	repair_history = EXCLUDED.repair_history,
	photos = EXCLUDED.photos,
	updated_by = EXCLUDED.updated_by,
	updated_at = EXCLUDED.updated_at`
	if _, err := sqlx.NamedExecContext(ctx, database.Conn(ctx, r.db), query, meta); err != nil {
		return fmt.Errorf("upsert issue metadata: %w", err)
	}
	return nil
}

// ListMetadata returns the metadata rows of an intake ordered by category code.
func (r *IssueRepository) ListMetadata(ctx context.Context, intakeID string) ([]models.IssueMetadata, error) {
	const query = `SELECT id, intake_id, category_code, details, first_noticed, severity, repair_history, photos, updated_by, updated_at
FROM issue_metadata WHERE intake_id = $1 ORDER BY category_code ASC`
	var rows []models.IssueMetadata
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &rows, query, intakeID); err != nil {
		return nil, fmt.Errorf("list issue metadata: %w", err)
	}
	return rows, nil
}

// AddSelections links the intake to each option; existing links are kept.
func (r *IssueRepository) AddSelections(ctx context.Context, intakeID string, optionIDs []string) error {
	if len(optionIDs) == 0 {
		return nil
	}
	conn := database.Conn(ctx, r.db)
	now := time.Now().UTC()
	const query = `INSERT INTO issue_selections (id, intake_id, option_id, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (intake_id, option_id) DO NOTHING`
	for _, optionID := range optionIDs {
		if _, err := conn.ExecContext(ctx, query, uuid.NewString(), intakeID, optionID, now); err != nil {
			return fmt.Errorf("insert issue selection: %w", err)
		}
	}
	return nil
}

// ListSelections returns the selections of an intake with option and category codes.
func (r *IssueRepository) ListSelections(ctx context.Context, intakeID string) ([]models.IssueSelection, error) {
	const query = `
SELECT s.id, s.intake_id, s.option_id, o.code AS option_code, c.code AS category_code, s.created_at
FROM issue_selections s
JOIN issue_options o ON o.id = s.option_id
JOIN issue_categories c ON c.id = o.category_id
WHERE s.intake_id = $1
ORDER BY c.display_order ASC, o.display_order ASC`
	var rows []models.IssueSelection
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &rows, query, intakeID); err != nil {
		return nil, fmt.Errorf("list issue selections: %w", err)
	}
	return rows, nil
}
