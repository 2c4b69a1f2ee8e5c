package dto

import (
	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/docgen"
)

// DocGenPreview is the protected document-generation input for an intake
// together with the diagnostics collected while building it.
type DocGenPreview struct {
	IntakeID      string              `json:"intake_id"`
	SchemaVersion string              `json:"schema_version"`
	Output        docgen.Output       `json:"output"`
	Resolutions   []docgen.Resolution `json:"resolutions"`
	Warnings      []docgen.Warning    `json:"warnings"`
}

// DocGenTransition reports a workflow event triggered by document generation.
type DocGenTransition struct {
	Case    *models.Case   `json:"case"`
	Changed bool           `json:"changed"`
	Preview *DocGenPreview `json:"preview,omitempty"`
}
