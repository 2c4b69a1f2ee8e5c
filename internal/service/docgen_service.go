package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/docgen"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type intakeReader interface {
	FindByID(ctx context.Context, id string) (*models.Intake, error)
}

type metadataLister interface {
	ListMetadata(ctx context.Context, intakeID string) ([]models.IssueMetadata, error)
}

type docGenWorkflow interface {
	Get(ctx context.Context, id string) (*models.Case, error)
	LoadIntoDocGen(ctx context.Context, id string, actor *models.JWTClaims) (*models.Case, bool, error)
	MarkGenerated(ctx context.Context, id string, actor *models.JWTClaims) (*models.Case, error)
}

// DocGenService bridges stored intakes to the document generator: it
// builds the protected input and drives the related workflow events.
type DocGenService struct {
	intakes  intakeReader
	issues   metadataLister
	taxonomy activeOptionsProvider
	cases    docGenWorkflow
	resolver *docgen.Resolver
	schema   docgen.Schema
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewDocGenService constructs the service over the protected schema.
func NewDocGenService(intakes intakeReader, issues metadataLister, taxonomy activeOptionsProvider, cases docGenWorkflow, metrics *MetricsService, logger *zap.Logger) *DocGenService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocGenService{
		intakes:  intakes,
		issues:   issues,
		taxonomy: taxonomy,
		cases:    cases,
		resolver: docgen.NewResolver(nil),
		schema:   docgen.ProtectedSchema(),
		metrics:  metrics,
		logger:   logger,
	}
}

// Preview resolves and maps an intake without changing any state. Stored
// issue metadata takes precedence over the free text in the original
// payload, since staff may have corrected it after submission.
func (s *DocGenService) Preview(ctx context.Context, intakeID string) (*dto.DocGenPreview, error) {
	intake, err := s.intakes.FindByID(ctx, intakeID)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "intake not found")
		}
		return nil, internalError(err, "failed to load intake")
	}

	version, err := docgen.ParseSchemaVersion(intake.SchemaVersion)
	if err != nil {
		return nil, internalError(err, "intake has an unknown schema version")
	}

	var payload docgen.Intake
	if len(intake.Payload) > 0 {
		if err := json.Unmarshal(intake.Payload, &payload); err != nil {
			return nil, internalError(err, "failed to decode intake payload")
		}
	}

	options, err := s.taxonomy.ActiveOptions(ctx)
	if err != nil {
		return nil, err
	}
	taxonomy := DocGenOptions(options)

	stored, err := s.issues.ListMetadata(ctx, intakeID)
	if err != nil {
		return nil, internalError(err, "failed to load issue metadata")
	}

	resolutions := s.resolver.ResolveAll(version, payload, taxonomy)
	applyStoredMetadata(resolutions, stored)

	logger := s.logger.With(zap.String("intake_id", intakeID))
	unmatched := 0
	for _, res := range resolutions {
		for _, entry := range res.Unmatched {
			logger.Warn("intake entry matched no option", zap.String("category", res.Category), zap.String("entry", entry))
		}
		unmatched += len(res.Unmatched)
	}

	result := docgen.NewMapperWithSchema(s.schema, logger).Map(resolutions, taxonomy)
	for _, w := range result.Warnings {
		s.metrics.RecordMappingWarning(w.Reason)
	}
	s.metrics.RecordUnmatchedEntries(unmatched)

	return &dto.DocGenPreview{
		IntakeID:      intakeID,
		SchemaVersion: version.String(),
		Output:        result.Output,
		Resolutions:   resolutions,
		Warnings:      result.Warnings,
	}, nil
}

// LoadIntoDocGen builds the preview for the case's intake and applies the
// "load into document generation" workflow event.
func (s *DocGenService) LoadIntoDocGen(ctx context.Context, caseID string, actor *models.JWTClaims) (*dto.DocGenTransition, error) {
	c, err := s.cases.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	preview, err := s.Preview(ctx, c.IntakeID)
	if err != nil {
		return nil, err
	}
	updated, changed, err := s.cases.LoadIntoDocGen(ctx, caseID, actor)
	if err != nil {
		return nil, err
	}
	return &dto.DocGenTransition{Case: updated, Changed: changed, Preview: preview}, nil
}

// MarkGenerated applies the "documents generated" workflow event.
func (s *DocGenService) MarkGenerated(ctx context.Context, caseID string, actor *models.JWTClaims) (*dto.DocGenTransition, error) {
	updated, err := s.cases.MarkGenerated(ctx, caseID, actor)
	if err != nil {
		return nil, err
	}
	return &dto.DocGenTransition{Case: updated, Changed: true}, nil
}

func applyStoredMetadata(resolutions []docgen.Resolution, stored []models.IssueMetadata) {
	byCategory := make(map[string]models.IssueMetadata, len(stored))
	for _, meta := range stored {
		byCategory[meta.CategoryCode] = meta
	}
	for i := range resolutions {
		meta, ok := byCategory[resolutions[i].Category]
		if !ok {
			continue
		}
		photos := []string(meta.Photos)
		if photos == nil {
			photos = []string{}
		}
		resolutions[i].Metadata = &docgen.Metadata{
			Details:       meta.Details,
			FirstNoticed:  meta.FirstNoticed,
			Severity:      meta.Severity,
			RepairHistory: meta.RepairHistory,
			Photos:        photos,
		}
		resolutions[i].Signals.Details = meta.Details != ""
		resolutions[i].HasIssue = resolutions[i].Signals.Flag || resolutions[i].Signals.Array || resolutions[i].Signals.Details
	}
}
