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

// IntakeRepository persists submitted intake forms.
type IntakeRepository struct {
	db *sqlx.DB
}

// NewIntakeRepository constructs the repository.
func NewIntakeRepository(db *sqlx.DB) *IntakeRepository {
	return &IntakeRepository{db: db}
}

// Create inserts the intake, filling id and submission time when unset.
func (r *IntakeRepository) Create(ctx context.Context, intake *models.Intake) error {
	if intake.ID == "" {
		intake.ID = uuid.NewString()
	}
	if intake.SubmittedAt.IsZero() {
		intake.SubmittedAt = time.Now().UTC()
	}
	const query = `INSERT INTO intakes (id, client_name, client_email, client_phone, property_address, schema_version, payload, submitted_by, submitted_at)
VALUES (:id, :client_name, :client_email, :client_phone, :property_address, :schema_version, :payload, :submitted_by, :submitted_at)`
	if _, err := sqlx.NamedExecContext(ctx, database.Conn(ctx, r.db), query, intake); err != nil {
		return fmt.Errorf("create intake: %w", err)
	}
	return nil
}

// FindByID loads an intake.
func (r *IntakeRepository) FindByID(ctx context.Context, id string) (*models.Intake, error) {
	const query = `SELECT id, client_name, client_email, client_phone, property_address, schema_version, payload, submitted_by, submitted_at
FROM intakes WHERE id = $1`
	var intake models.Intake
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), &intake, query, id); err != nil {
		return nil, fmt.Errorf("find intake %s: %w", id, err)
	}
	return &intake, nil
}
