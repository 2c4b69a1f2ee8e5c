package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/legal-intake-api/internal/models"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
	"github.com/noah-isme/legal-intake-api/pkg/export"
)

const (
	defaultActivityLimit = 200
	maxActivityLimit     = 1000
)

type activityLister interface {
	List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error)
}

type caseFinder interface {
	Get(ctx context.Context, id string) (*models.Case, error)
}

// ActivityService reads the append-only activity log. It has no write
// methods: entries are appended only by the services that mutate cases.
type ActivityService struct {
	activities activityLister
	cases      caseFinder
}

// NewActivityService constructs the service.
func NewActivityService(activities activityLister, cases caseFinder) *ActivityService {
	return &ActivityService{activities: activities, cases: cases}
}

// ListForCase returns the trail of one case ascending by performed_at.
func (s *ActivityService) ListForCase(ctx context.Context, caseID string, types []string) ([]models.Activity, error) {
	if _, err := s.cases.Get(ctx, caseID); err != nil {
		return nil, err
	}
	parsed, err := parseActivityTypes(types)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, models.ActivityFilter{CaseID: caseID, Types: parsed})
}

// ActivityFeedQuery selects a page of the cross-case feed.
type ActivityFeedQuery struct {
	Types []string
	Limit int
	Since *time.Time
	// Cursor is the NextCursor of the previous page.
	Cursor string
}

// ActivityFeed is one ascending page of the cross-case feed. NextCursor is
// empty when the page was not full.
type ActivityFeed struct {
	Activities []models.Activity
	NextCursor string
}

// List returns activities across cases. The limit defaults to 200 and is
// capped at 1000. Readers reach recent entries by passing Since or by
// following NextCursor; the order stays ascending either way.
func (s *ActivityService) List(ctx context.Context, query ActivityFeedQuery) (*ActivityFeed, error) {
	parsed, err := parseActivityTypes(query.Types)
	if err != nil {
		return nil, err
	}
	filter := models.ActivityFilter{Types: parsed, Since: query.Since, Limit: query.Limit}
	if filter.Limit <= 0 {
		filter.Limit = defaultActivityLimit
	}
	if filter.Limit > maxActivityLimit {
		filter.Limit = maxActivityLimit
	}
	if query.Cursor != "" {
		if filter.After, err = decodeActivityCursor(query.Cursor); err != nil {
			return nil, err
		}
	}

	activities, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	feed := &ActivityFeed{Activities: activities}
	if len(activities) == filter.Limit {
		feed.NextCursor = encodeActivityCursor(activities[len(activities)-1])
	}
	return feed, nil
}

func encodeActivityCursor(last models.Activity) string {
	raw := last.PerformedAt.UTC().Format(time.RFC3339Nano) + "|" + last.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeActivityCursor(cursor string) (*models.ActivityCursor, error) {
	invalid := appErrors.Clone(appErrors.ErrValidation, "cursor is not valid")
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, invalid
	}
	at, id, found := strings.Cut(string(raw), "|")
	if !found || id == "" {
		return nil, invalid
	}
	performedAt, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return nil, invalid
	}
	return &models.ActivityCursor{PerformedAt: performedAt, ID: id}, nil
}

func (s *ActivityService) list(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error) {
	activities, err := s.activities.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list activities")
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	return activities, nil
}

func parseActivityTypes(raw []string) ([]models.ActivityType, error) {
	var out []models.ActivityType
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			t := models.ActivityType(part)
			if !t.Valid() {
				invalid := appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown activity type %q", part))
				invalid.Details = appErrors.InvalidValueError{InvalidValue: part, ValidValues: models.ActivityTypes()}
				return nil, invalid
			}
			out = append(out, t)
		}
	}
	return out, nil
}

// ActivityExportConfig gates trail exports.
type ActivityExportConfig struct {
	Enabled bool
	MaxRows int
}

// ExportFile is a rendered export ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ActivityExportService renders a case's activity trail as CSV or PDF.
type ActivityExportService struct {
	activities activityLister
	cases      caseFinder
	cfg        ActivityExportConfig
	logger     *zap.Logger
	now        func() time.Time
}

// NewActivityExportService constructs the service.
func NewActivityExportService(activities activityLister, cases caseFinder, cfg ActivityExportConfig, logger *zap.Logger) *ActivityExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	return &ActivityExportService{activities: activities, cases: cases, cfg: cfg, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Export renders the full trail of a case. Trails longer than MaxRows are
// refused rather than truncated.
func (s *ActivityExportService) Export(ctx context.Context, caseID, format string) (*ExportFile, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "activity export is disabled")
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	c, err := s.cases.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	activities, err := s.activities.List(ctx, models.ActivityFilter{CaseID: caseID, Limit: s.cfg.MaxRows + 1})
	if err != nil {
		return nil, internalError(err, "failed to list activities")
	}
	if len(activities) > s.cfg.MaxRows {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf("activity trail exceeds %d rows", s.cfg.MaxRows))
	}

	data, err := export.RendererFor(f).Render(activityDataset(c, activities))
	if err != nil {
		return nil, internalError(err, "failed to render activity export")
	}
	s.logger.Info("activity trail exported",
		zap.String("case_id", caseID), zap.String("format", string(f)), zap.Int("rows", len(activities)))
	return &ExportFile{
		Filename:    fmt.Sprintf("case-%s-activity-%s%s", caseID, s.now().Format("20060102"), f.Extension()),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

func activityDataset(c *models.Case, activities []models.Activity) export.Dataset {
	rows := make([][]string, len(activities))
	for i, a := range activities {
		rows[i] = []string{
			a.PerformedAt.UTC().Format(time.RFC3339),
			string(a.ActivityType),
			a.PerformedBy,
			deref(a.OldValue),
			deref(a.NewValue),
			a.Description,
		}
	}
	title := "Case " + c.ID + " activity"
	if c.ClientName != "" {
		title += " (" + c.ClientName + ")"
	}
	return export.Dataset{
		Title:   title,
		Headers: []string{"performed_at", "activity_type", "performed_by", "old_value", "new_value", "description"},
		Widths:  []float64{1.4, 1.1, 1, 1, 1, 3},
		Rows:    rows,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
