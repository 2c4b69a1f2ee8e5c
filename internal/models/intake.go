package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Intake is a submitted client intake form. Payload keeps the raw
// per-category field bags exactly as submitted.
type Intake struct {
	ID              string         `db:"id" json:"id"`
	ClientName      string         `db:"client_name" json:"client_name"`
	ClientEmail     *string        `db:"client_email" json:"client_email,omitempty"`
	ClientPhone     *string        `db:"client_phone" json:"client_phone,omitempty"`
	PropertyAddress *string        `db:"property_address" json:"property_address,omitempty"`
	SchemaVersion   string         `db:"schema_version" json:"schema_version"`
	Payload         types.JSONText `db:"payload" json:"payload"`
	SubmittedBy     string         `db:"submitted_by" json:"submitted_by"`
	SubmittedAt     time.Time      `db:"submitted_at" json:"submitted_at"`
}

// IssueSelection links an intake to one taxonomy option.
type IssueSelection struct {
	ID           string    `db:"id" json:"id"`
	IntakeID     string    `db:"intake_id" json:"intake_id"`
	OptionID     string    `db:"option_id" json:"option_id"`
	OptionCode   string    `db:"option_code" json:"option_code"`
	CategoryCode string    `db:"category_code" json:"category_code"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IssueMetadata holds the free-text details of one category of an intake.
// CategoryCode is stored by value and validated on every write.
type IssueMetadata struct {
	ID            string         `db:"id" json:"id"`
	IntakeID      string         `db:"intake_id" json:"intake_id"`
	CategoryCode  string         `db:"category_code" json:"category_code"`
	Details       string         `db:"details" json:"details"`
	FirstNoticed  string         `db:"first_noticed" json:"first_noticed"`
	Severity      string         `db:"severity" json:"severity"`
	RepairHistory string         `db:"repair_history" json:"repair_history"`
	Photos        pq.StringArray `db:"photos" json:"photos"`
	UpdatedBy     string         `db:"updated_by" json:"updated_by"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
