package dto

import "github.com/noah-isme/legal-intake-api/internal/models"

// SubmitIntakeRequest is the client intake form. Issues holds one schemaless
// field bag per category code.
type SubmitIntakeRequest struct {
	ClientName      string                            `json:"client_name" validate:"required,max=255"`
	ClientEmail     *string                           `json:"client_email" validate:"omitempty,email"`
	ClientPhone     *string                           `json:"client_phone" validate:"omitempty,max=32"`
	PropertyAddress *string                           `json:"property_address" validate:"omitempty,max=512"`
	SchemaVersion   string                            `json:"schema_version" validate:"omitempty,schema_version"`
	Issues          map[string]map[string]interface{} `json:"issues" validate:"required"`
}

// SaveIssueMetadataRequest replaces the metadata row of one category.
type SaveIssueMetadataRequest struct {
	Details       string   `json:"details" validate:"max=10000"`
	FirstNoticed  string   `json:"first_noticed" validate:"max=255"`
	Severity      string   `json:"severity" validate:"omitempty,severity"`
	RepairHistory string   `json:"repair_history" validate:"max=10000"`
	Photos        []string `json:"photos" validate:"omitempty,dive,required"`
}

// IntakeDetail aggregates an intake with its issue rows and case entry.
type IntakeDetail struct {
	Intake     models.Intake           `json:"intake"`
	Case       *models.Case            `json:"case,omitempty"`
	Metadata   []models.IssueMetadata  `json:"metadata"`
	Selections []models.IssueSelection `json:"selections"`
}
