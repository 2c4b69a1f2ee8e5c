package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/database"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

// Reference kinds reported when a taxonomy row cannot be deleted.
const (
	ReferenceIssueSelection = "issue_selection"
	ReferenceIssueMetadata  = "issue_metadata"
)

// TaxonomyRepository persists issue categories and options.
type TaxonomyRepository struct {
	db *sqlx.DB
}

// NewTaxonomyRepository constructs the repository.
func NewTaxonomyRepository(db *sqlx.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

const categoryColumns = `id, code, name, display_order, is_active, created_at`

// ListCategories returns categories ordered by display order.
func (r *TaxonomyRepository) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM issue_categories`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY display_order ASC, code ASC`

	var categories []models.Category
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// LockActiveCategories reads the active categories with FOR SHARE so a
// concurrent delete of any of them waits for the caller's transaction.
func (r *TaxonomyRepository) LockActiveCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM issue_categories WHERE is_active = TRUE
ORDER BY display_order ASC, code ASC FOR SHARE`

	var categories []models.Category
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &categories, query); err != nil {
		return nil, fmt.Errorf("lock active categories: %w", err)
	}
	return categories, nil
}

// FindCategoryByCode looks up a category by exact code. sql.ErrNoRows is
// returned (wrapped) when it does not exist.
func (r *TaxonomyRepository) FindCategoryByCode(ctx context.Context, code string) (*models.Category, error) {
	return r.findCategory(ctx, code, false)
}

// LockCategoryByCode is FindCategoryByCode with a row lock; it must run inside a transaction.
func (r *TaxonomyRepository) LockCategoryByCode(ctx context.Context, code string) (*models.Category, error) {
	return r.findCategory(ctx, code, true)
}

func (r *TaxonomyRepository) findCategory(ctx context.Context, code string, lock bool) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM issue_categories WHERE code = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	var category models.Category
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &category, query, code); err != nil {
		return nil, fmt.Errorf("find category %s: %w", code, err)
	}
	return &category, nil
}

const optionSelect = `
SELECT o.id, o.category_id, c.code AS category_code, o.code, o.name, o.display_order, o.created_at
FROM issue_options o
JOIN issue_categories c ON c.id = o.category_id`

// ListOptions returns the options of a category ordered by display order.
func (r *TaxonomyRepository) ListOptions(ctx context.Context, categoryCode string) ([]models.Option, error) {
	query := optionSelect + `
WHERE c.code = $1
ORDER BY o.display_order ASC, o.code ASC`

	var options []models.Option
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &options, query, categoryCode); err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	return options, nil
}

// ListActiveOptions returns the options of every active category.
func (r *TaxonomyRepository) ListActiveOptions(ctx context.Context) ([]models.Option, error) {
	query := optionSelect + `
WHERE c.is_active = TRUE
ORDER BY c.display_order ASC, c.code ASC, o.display_order ASC, o.code ASC`

	var options []models.Option
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &options, query); err != nil {
		return nil, fmt.Errorf("list active options: %w", err)
	}
	return options, nil
}

// LockOption looks up an option by category and code with a row lock.
func (r *TaxonomyRepository) LockOption(ctx context.Context, categoryCode, code string) (*models.Option, error) {
	query := optionSelect + `
WHERE c.code = $1 AND o.code = $2
FOR UPDATE OF o`

	var option models.Option
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &option, query, categoryCode, code); err != nil {
		return nil, fmt.Errorf("find option %s/%s: %w", categoryCode, code, err)
	}
	return &option, nil
}

// CreateCategory inserts a category. ErrDuplicateKey is returned when the code exists.
func (r *TaxonomyRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO issue_categories (id, code, name, display_order, is_active, created_at)
VALUES (:id, :code, :name, :display_order, :is_active, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, database.Conn(ctx, r.db), query, category); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create category %s: %w", category.Code, ErrDuplicateKey)
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// CreateOption inserts an option. ErrDuplicateKey is returned when the code
// already exists within the category.
func (r *TaxonomyRepository) CreateOption(ctx context.Context, option *models.Option) error {
	if option.ID == "" {
		option.ID = uuid.NewString()
	}
	if option.CreatedAt.IsZero() {
		option.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO issue_options (id, category_id, code, name, display_order, created_at)
VALUES (:id, :category_id, :code, :name, :display_order, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, database.Conn(ctx, r.db), query, option); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create option %s: %w", option.Code, ErrDuplicateKey)
		}
		return fmt.Errorf("create option: %w", err)
	}
	return nil
}

type referenceRow struct {
	IntakeID string `db:"intake_id"`
}

// CategoryReferences lists intake rows that reference the category, either
// through metadata or through selections of one of its options.
func (r *TaxonomyRepository) CategoryReferences(ctx context.Context, categoryID, categoryCode string) ([]appErrors.Reference, error) {
	const metadataQuery = `SELECT intake_id FROM issue_metadata WHERE category_code = $1 ORDER BY intake_id`
	metadata, err := r.references(ctx, ReferenceIssueMetadata, metadataQuery, categoryCode)
	if err != nil {
		return nil, err
	}
	const selectionQuery = `
SELECT s.intake_id
FROM issue_selections s
JOIN issue_options o ON o.id = s.option_id
WHERE o.category_id = $1
ORDER BY s.intake_id`
	selections, err := r.references(ctx, ReferenceIssueSelection, selectionQuery, categoryID)
	if err != nil {
		return nil, err
	}
	return compactReferences(selections, metadata), nil
}

// OptionReferences lists intake rows that selected the option.
func (r *TaxonomyRepository) OptionReferences(ctx context.Context, optionID string) ([]appErrors.Reference, error) {
	const query = `SELECT intake_id FROM issue_selections WHERE option_id = $1 ORDER BY intake_id`
	selections, err := r.references(ctx, ReferenceIssueSelection, query, optionID)
	if err != nil {
		return nil, err
	}
	return compactReferences(selections), nil
}

func (r *TaxonomyRepository) references(ctx context.Context, kind, query string, arg string) (appErrors.Reference, error) {
	var rows []referenceRow
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &rows, query, arg); err != nil {
		return appErrors.Reference{}, fmt.Errorf("count %s references: %w", kind, err)
	}
	ref := appErrors.Reference{Kind: kind, Count: len(rows), IntakeIDs: make([]string, 0, len(rows))}
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.IntakeID]; ok {
			continue
		}
		seen[row.IntakeID] = struct{}{}
		ref.IntakeIDs = append(ref.IntakeIDs, row.IntakeID)
	}
	return ref, nil
}

func compactReferences(refs ...appErrors.Reference) []appErrors.Reference {
	out := make([]appErrors.Reference, 0, len(refs))
	for _, ref := range refs {
		if ref.Count > 0 {
			out = append(out, ref)
		}
	}
	return out
}

// DeleteCategory removes a category and its options.
func (r *TaxonomyRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	conn := database.Conn(ctx, r.db)
	if _, err := conn.ExecContext(ctx, `DELETE FROM issue_options WHERE category_id = $1`, categoryID); err != nil {
		return fmt.Errorf("delete category options: %w", err)
	}
	if _, err := conn.ExecContext(ctx, `DELETE FROM issue_categories WHERE id = $1`, categoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// DeleteOption removes a single option.
func (r *TaxonomyRepository) DeleteOption(ctx context.Context, optionID string) error {
	if _, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM issue_options WHERE id = $1`, optionID); err != nil {
		return fmt.Errorf("delete option: %w", err)
	}
	return nil
}
