package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/database"
)

// ActivityRepository appends to and reads the case audit trail. It exposes
// no update or delete operations.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append inserts one activity row.
func (r *ActivityRepository) Append(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.PerformedAt.IsZero() {
		activity.PerformedAt = time.Now().UTC()
	}
	const query = `INSERT INTO case_activities (id, case_id, activity_type, description, performed_by, performed_at, old_value, new_value)
VALUES (:id, :case_id, :activity_type, :description, :performed_by, :performed_at, :old_value, :new_value)`
	if _, err := sqlx.NamedExecContext(ctx, database.Conn(ctx, r.db), query, activity); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

// List returns activities ascending by performed_at. Since and After only
// move the lower bound, so a feed pages forward in the same order.
func (r *ActivityRepository) List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT id, case_id, activity_type, description, performed_by, performed_at, old_value, new_value
FROM case_activities WHERE 1=1`)
	args := []interface{}{}
	if filter.CaseID != "" {
		args = append(args, filter.CaseID)
		fmt.Fprintf(&query, " AND case_id = $%d", len(args))
	}
	if len(filter.Types) > 0 {
		types := make(pq.StringArray, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		args = append(args, types)
		fmt.Fprintf(&query, " AND activity_type = ANY($%d)", len(args))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		fmt.Fprintf(&query, " AND performed_at >= $%d", len(args))
	}
	if filter.After != nil {
		args = append(args, filter.After.PerformedAt, filter.After.ID)
		fmt.Fprintf(&query, " AND (performed_at, id) > ($%d, $%d)", len(args)-1, len(args))
	}
	query.WriteString("\nORDER BY performed_at ASC, id ASC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}

	var activities []models.Activity
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &activities, query.String(), args...); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}
