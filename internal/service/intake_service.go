package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/docgen"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type intakeStore interface {
	Create(ctx context.Context, intake *models.Intake) error
	FindByID(ctx context.Context, id string) (*models.Intake, error)
}

type issueStore interface {
	UpsertMetadata(ctx context.Context, meta *models.IssueMetadata) error
	ListMetadata(ctx context.Context, intakeID string) ([]models.IssueMetadata, error)
	AddSelections(ctx context.Context, intakeID string, optionIDs []string) error
	ListSelections(ctx context.Context, intakeID string) ([]models.IssueSelection, error)
}

type caseCreator interface {
	Create(ctx context.Context, c *models.Case) error
	FindByIntakeID(ctx context.Context, intakeID string) (*models.Case, error)
}

type activeOptionsProvider interface {
	ActiveOptions(ctx context.Context) (map[string][]models.Option, error)
}

type categoryChecker interface {
	Validate(ctx context.Context, code string) error
	ValidateAll(ctx context.Context, codes []string) error
}

// IntakeServiceDeps groups the collaborators of IntakeService.
type IntakeServiceDeps struct {
	Tx            txRunner
	Intakes       intakeStore
	Issues        issueStore
	Cases         caseCreator
	Activities    activityAppender
	Taxonomy      activeOptionsProvider
	Categories    categoryChecker
	Resolver      *docgen.Resolver
	Metrics       *MetricsService
	DefaultSchema string
}

// IntakeService stores submitted intakes and their per-category issue data.
type IntakeService struct {
	deps      IntakeServiceDeps
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeServiceDeps, validate *validator.Validate, logger *zap.Logger) *IntakeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Resolver == nil {
		deps.Resolver = docgen.NewResolver(nil)
	}
	return &IntakeService{deps: deps, validator: validate, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Submit stores an intake. The category check, the intake row, its issue
// metadata and selections, the case entry and its "created" activity all
// run in one transaction.
func (s *IntakeService) Submit(ctx context.Context, req dto.SubmitIntakeRequest, actor *models.JWTClaims) (*dto.IntakeDetail, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}
	req.ClientName = strings.TrimSpace(req.ClientName)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid intake payload")
	}

	versionName := req.SchemaVersion
	if versionName == "" {
		versionName = s.deps.DefaultSchema
	}
	version, err := docgen.ParseSchemaVersion(versionName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schema version")
	}

	codes := make([]string, 0, len(req.Issues))
	for code := range req.Issues {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	payload, err := json.Marshal(req.Issues)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "intake issues are not valid JSON")
	}

	now := s.now()
	intake := &models.Intake{
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		PropertyAddress: req.PropertyAddress,
		SchemaVersion:   version.String(),
		Payload:         types.JSONText(payload),
		SubmittedBy:     by,
		SubmittedAt:     now,
	}
	detail := &dto.IntakeDetail{Metadata: []models.IssueMetadata{}, Selections: []models.IssueSelection{}}
	var resolutions []docgen.Resolution

	err = s.deps.Tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.deps.Categories.ValidateAll(ctx, codes); err != nil {
			return err
		}
		options, err := s.deps.Taxonomy.ActiveOptions(ctx)
		if err != nil {
			return err
		}
		resolutions, err = s.resolve(version, codes, req.Issues, options)
		if err != nil {
			return err
		}

		if err := s.deps.Intakes.Create(ctx, intake); err != nil {
			return err
		}
		for _, res := range resolutions {
			if res.Metadata != nil {
				meta := &models.IssueMetadata{
					IntakeID:      intake.ID,
					CategoryCode:  res.Category,
					Details:       res.Metadata.Details,
					FirstNoticed:  res.Metadata.FirstNoticed,
					Severity:      res.Metadata.Severity,
					RepairHistory: res.Metadata.RepairHistory,
					Photos:        pq.StringArray(res.Metadata.Photos),
					UpdatedBy:     by,
					UpdatedAt:     now,
				}
				if err := s.deps.Issues.UpsertMetadata(ctx, meta); err != nil {
					return err
				}
				detail.Metadata = append(detail.Metadata, *meta)
			}
			if ids := optionIDs(options[res.Category], res.MatchedOptions); len(ids) > 0 {
				if err := s.deps.Issues.AddSelections(ctx, intake.ID, ids); err != nil {
					return err
				}
			}
		}

		entry := &models.Case{
			IntakeID:        intake.ID,
			ClientName:      intake.ClientName,
			Status:          models.CaseStatusNew,
			StatusChangedAt: now,
			StatusChangedBy: by,
			CreatedAt:       now,
		}
		if err := s.deps.Cases.Create(ctx, entry); err != nil {
			return err
		}
		if err := s.deps.Activities.Append(ctx, &models.Activity{
			CaseID:       entry.ID,
			ActivityType: models.ActivityCreated,
			Description:  "Case created from intake submission",
			PerformedBy:  by,
			PerformedAt:  now,
			NewValue:     strPtr(string(models.CaseStatusNew)),
		}); err != nil {
			return err
		}
		detail.Case = entry

		selections, err := s.deps.Issues.ListSelections(ctx, intake.ID)
		if err != nil {
			return err
		}
		if selections != nil {
			detail.Selections = selections
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err, "failed to submit intake")
	}
	detail.Intake = *intake

	unmatched := 0
	for _, res := range resolutions {
		for _, entry := range res.Unmatched {
			s.logger.Warn("intake entry matched no option",
				zap.String("intake_id", intake.ID), zap.String("category", res.Category), zap.String("entry", entry))
		}
		unmatched += len(res.Unmatched)
	}
	s.deps.Metrics.RecordUnmatchedEntries(unmatched)
	s.logger.Info("intake submitted",
		zap.String("intake_id", intake.ID), zap.String("case_id", detail.Case.ID), zap.Int("categories", len(codes)))
	return detail, nil
}

func (s *IntakeService) resolve(version docgen.SchemaVersion, codes []string, issues map[string]map[string]interface{}, options map[string][]models.Option) ([]docgen.Resolution, error) {
	resolverOptions := DocGenOptions(options)
	resolutions := make([]docgen.Resolution, 0, len(codes))
	for _, code := range codes {
		res := s.deps.Resolver.Resolve(version, code, docgen.FieldBag(issues[code]), resolverOptions[code])
		if res.Metadata != nil {
			severity, ok := docgen.NormalizeSeverity(res.Metadata.Severity)
			if !ok {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid severity %q for category %s (valid values: %s)",
					res.Metadata.Severity, code, strings.Join(docgen.Severities(), ", ")))
			}
			res.Metadata.Severity = severity
		}
		resolutions = append(resolutions, res)
	}
	return resolutions, nil
}

// Get returns an intake with its issue rows and case entry.
func (s *IntakeService) Get(ctx context.Context, id string) (*dto.IntakeDetail, error) {
	intake, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	metadata, err := s.deps.Issues.ListMetadata(ctx, id)
	if err != nil {
		return nil, internalError(err, "failed to load issue metadata")
	}
	selections, err := s.deps.Issues.ListSelections(ctx, id)
	if err != nil {
		return nil, internalError(err, "failed to load issue selections")
	}
	detail := &dto.IntakeDetail{Intake: *intake, Metadata: metadata, Selections: selections}
	if detail.Metadata == nil {
		detail.Metadata = []models.IssueMetadata{}
	}
	if detail.Selections == nil {
		detail.Selections = []models.IssueSelection{}
	}
	c, err := s.deps.Cases.FindByIntakeID(ctx, id)
	switch {
	case err == nil:
		detail.Case = c
	case !isNotFound(err):
		return nil, internalError(err, "failed to load case")
	}
	return detail, nil
}

// SaveIssueMetadata replaces the metadata of one category. The category
// code is checked against the live active set in the same transaction as
// the write.
func (s *IntakeService) SaveIssueMetadata(ctx context.Context, intakeID, categoryCode string, req dto.SaveIssueMetadataRequest, actor *models.JWTClaims) (*models.IssueMetadata, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}
	var meta *models.IssueMetadata
	err = s.deps.Tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.deps.Categories.Validate(ctx, categoryCode); err != nil {
			return err
		}
		if err := s.validator.Struct(req); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid issue metadata payload")
		}
		if _, err := s.load(ctx, intakeID); err != nil {
			return err
		}

		severity, _ := docgen.NormalizeSeverity(req.Severity)
		meta = &models.IssueMetadata{
			IntakeID:      intakeID,
			CategoryCode:  categoryCode,
			Details:       strings.TrimSpace(req.Details),
			FirstNoticed:  strings.TrimSpace(req.FirstNoticed),
			Severity:      severity,
			RepairHistory: strings.TrimSpace(req.RepairHistory),
			Photos:        pq.StringArray(req.Photos),
			UpdatedBy:     by,
			UpdatedAt:     s.now(),
		}
		return s.deps.Issues.UpsertMetadata(ctx, meta)
	})
	if err != nil {
		return nil, passThrough(err, "failed to save issue metadata")
	}
	return meta, nil
}

// ListSelections returns the options linked to an intake.
func (s *IntakeService) ListSelections(ctx context.Context, intakeID string) ([]models.IssueSelection, error) {
	if _, err := s.load(ctx, intakeID); err != nil {
		return nil, err
	}
	selections, err := s.deps.Issues.ListSelections(ctx, intakeID)
	if err != nil {
		return nil, internalError(err, "failed to load issue selections")
	}
	if selections == nil {
		selections = []models.IssueSelection{}
	}
	return selections, nil
}

func (s *IntakeService) load(ctx context.Context, id string) (*models.Intake, error) {
	intake, err := s.deps.Intakes.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "intake not found")
		}
		return nil, internalError(err, "failed to load intake")
	}
	return intake, nil
}

func optionIDs(options []models.Option, codes []string) []string {
	ids := make([]string, 0, len(codes))
	for _, code := range codes {
		for _, option := range options {
			if option.Code == code {
				ids = append(ids, option.ID)
				break
			}
		}
	}
	return ids
}
