package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type caseStore interface {
	FindByID(ctx context.Context, id string) (*models.Case, error)
	LockByID(ctx context.Context, id string) (*models.Case, error)
	List(ctx context.Context, filter models.CaseFilter) ([]models.Case, int, error)
	UpdateStatus(ctx context.Context, id string, status models.CaseStatus, actor string, at time.Time) error
	MarkDocGenLoaded(ctx context.Context, id string, at time.Time) error
	RecordDocGeneration(ctx context.Context, id, actor string, at time.Time) error
	UpdateAssignment(ctx context.Context, id string, attorneyRef *string, at time.Time) error
	UpdatePriority(ctx context.Context, id string, priority bool, at time.Time) error
	UpdateArchived(ctx context.Context, id string, archived bool, at time.Time) error
}

// CaseService is the case workflow engine. Every mutation locks the case
// row, applies the change and appends exactly one activity inside a single
// transaction; old values always come from the locked row.
type CaseService struct {
	tx         txRunner
	cases      caseStore
	activities activityAppender
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewCaseService constructs the service.
func NewCaseService(tx txRunner, cases caseStore, activities activityAppender, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CaseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CaseService{
		tx:         tx,
		cases:      cases,
		activities: activities,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Get returns a case.
func (s *CaseService) Get(ctx context.Context, id string) (*models.Case, error) {
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "case not found")
		}
		return nil, internalError(err, "failed to load case")
	}
	return c, nil
}

// List returns a page of the case dashboard.
func (s *CaseService) List(ctx context.Context, filter models.CaseFilter) ([]models.Case, *models.Pagination, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, appErrors.NewInvalidStateError(string(filter.Status), models.CaseStatuses())
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	cases, total, err := s.cases.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list cases")
	}
	if cases == nil {
		cases = []models.Case{}
	}
	return cases, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// ChangeStatus moves a case to any enumerated status. Unknown statuses are
// rejected with *errors.InvalidStateError before anything is written.
func (s *CaseService) ChangeStatus(ctx context.Context, id string, req dto.ChangeStatusRequest, actor *models.JWTClaims) (*models.Case, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}
	target := models.CaseStatus(strings.TrimSpace(req.Status))
	if !target.Valid() {
		return nil, appErrors.NewInvalidStateError(req.Status, models.CaseStatuses())
	}

	var from models.CaseStatus
	updated, err := s.mutate(ctx, id, func(ctx context.Context, c *models.Case, at time.Time) (*models.Activity, error) {
		from = c.Status
		if err := s.cases.UpdateStatus(ctx, c.ID, target, by, at); err != nil {
			return nil, err
		}
		c.Status, c.StatusChangedAt, c.StatusChangedBy = target, at, by
		return &models.Activity{
			ActivityType: models.ActivityStatusChanged,
			Description:  fmt.Sprintf("Status changed from %s to %s", from, target),
			OldValue:     strPtr(string(from)),
			NewValue:     strPtr(string(target)),
		}, nil
	}, by, "failed to change case status")
	if err != nil {
		return nil, err
	}
	s.metrics.RecordTransition(from, target)
	s.logger.Info("case status changed", zap.String("case_id", id), zap.String("from", string(from)), zap.String("to", string(target)), zap.String("actor_id", by))
	return updated, nil
}

// LoadIntoDocGen applies the "load into document generation" event: a new
// case moves to in_review; any other status is left untouched and no
// activity is recorded. The boolean reports whether the case changed.
func (s *CaseService) LoadIntoDocGen(ctx context.Context, id string, actor *models.JWTClaims) (*models.Case, bool, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, false, err
	}

	var from models.CaseStatus
	changed := false
	updated, err := s.mutate(ctx, id, func(ctx context.Context, c *models.Case, at time.Time) (*models.Activity, error) {
		from = c.Status
		target, ok := models.DocGenLoadTarget(c.Status)
		if !ok {
			return nil, nil
		}
		if err := s.cases.UpdateStatus(ctx, c.ID, target, by, at); err != nil {
			return nil, err
		}
		if err := s.cases.MarkDocGenLoaded(ctx, c.ID, at); err != nil {
			return nil, err
		}
		changed = true
		c.Status, c.StatusChangedAt, c.StatusChangedBy = target, at, by
		if c.DocGenLoadedAt == nil {
			c.DocGenLoadedAt = &at
		}
		return &models.Activity{
			ActivityType: models.ActivityStatusChanged,
			Description:  fmt.Sprintf("Loaded into document generation; status changed from %s to %s", from, target),
			OldValue:     strPtr(string(from)),
			NewValue:     strPtr(string(target)),
		}, nil
	}, by, "failed to load case into document generation")
	if err != nil {
		return nil, false, err
	}
	if changed {
		s.metrics.RecordTransition(from, updated.Status)
	}
	return updated, changed, nil
}

// MarkGenerated applies the "documents generated" event: status becomes
// docs_generated and the generation counter is incremented.
func (s *CaseService) MarkGenerated(ctx context.Context, id string, actor *models.JWTClaims) (*models.Case, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}

	var from models.CaseStatus
	updated, err := s.mutate(ctx, id, func(ctx context.Context, c *models.Case, at time.Time) (*models.Activity, error) {
		from = c.Status
		if c.Status != models.CaseStatusDocsGenerated {
			if err := s.cases.UpdateStatus(ctx, c.ID, models.CaseStatusDocsGenerated, by, at); err != nil {
				return nil, err
			}
			c.Status, c.StatusChangedAt, c.StatusChangedBy = models.CaseStatusDocsGenerated, at, by
		}
		if err := s.cases.RecordDocGeneration(ctx, c.ID, by, at); err != nil {
			return nil, err
		}
		c.DocGenCount++
		c.LastDocGenAt, c.LastDocGenBy = &at, &by
		return &models.Activity{
			ActivityType: models.ActivityDocGenerated,
			Description:  fmt.Sprintf("Documents generated (run %d)", c.DocGenCount),
			OldValue:     strPtr(string(from)),
			NewValue:     strPtr(string(models.CaseStatusDocsGenerated)),
		}, nil
	}, by, "failed to record document generation")
	if err != nil {
		return nil, err
	}
	if from != models.CaseStatusDocsGenerated {
		s.metrics.RecordTransition(from, models.CaseStatusDocsGenerated)
	}
	return updated, nil
}

// Assign sets or clears the responsible attorney.
func (s *CaseService) Assign(ctx context.Context, id string, req dto.AssignCaseRequest, actor *models.JWTClaims) (*models.Case, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}
	if req.AttorneyRef != nil {
		trimmed := strings.TrimSpace(*req.AttorneyRef)
		if trimmed == "" {
			req.AttorneyRef = nil
		} else {
			req.AttorneyRef = &trimmed
		}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	return s.mutate(ctx, id, func(ctx context.Context, c *models.Case, at time.Time) (*models.Activity, error) {
		previous := c.AssignedAttorneyRef
		if err := s.cases.UpdateAssignment(ctx, c.ID, req.AttorneyRef, at); err != nil {
			return nil, err
		}
		c.AssignedAttorneyRef, c.AssignedAt = req.AttorneyRef, &at
		description := "Attorney unassigned"
		if req.AttorneyRef != nil {
			description = "Assigned to " + *req.AttorneyRef
		}
		return &models.Activity{
			ActivityType: models.ActivityAssigned,
			Description:  description,
			OldValue:     previous,
			NewValue:     req.AttorneyRef,
		}, nil
	}, by, "failed to assign case")
}

// SetPriority flags or unflags a case as priority.
func (s *CaseService) SetPriority(ctx context.Context, id string, req dto.SetPriorityRequest, actor *models.JWTClaims) (*models.Case, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid priority payload")
	}
	priority := *req.IsPriority

	return s.mutate(ctx, id, func(ctx context.Context, c *models.Case, at time.Time) (*models.Activity, error) {
		previous := c.IsPriority
		if err := s.cases.UpdatePriority(ctx, c.ID, priority, at); err != nil {
			return nil, err
		}
		c.IsPriority = priority
		description := "Priority flag removed"
		if priority {
			description = "Marked as priority"
		}
		return &models.Activity{
			ActivityType: models.ActivityPriorityChanged,
			Description:  description,
			OldValue:     strPtr(strconv.FormatBool(previous)),
			NewValue:     strPtr(strconv.FormatBool(priority)),
		}, nil
	}, by, "failed to update case priority")
}

// Archive hides a case from the default dashboard. Archiving an archived
// case is a conflict.
func (s *CaseService) Archive(ctx context.Context, id string, actor *models.JWTClaims) (*models.Case, error) {
	return s.setArchived(ctx, id, true, actor)
}

// Unarchive restores an archived case.
func (s *CaseService) Unarchive(ctx context.Context, id string, actor *models.JWTClaims) (*models.Case, error) {
	return s.setArchived(ctx, id, false, actor)
}

func (s *CaseService) setArchived(ctx context.Context, id string, archived bool, actor *models.JWTClaims) (*models.Case, error) {
	by, err := actorID(actor)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(ctx context.Context, c *models.Case, at time.Time) (*models.Activity, error) {
		if c.IsArchived == archived {
			if archived {
				return nil, appErrors.Clone(appErrors.ErrConflict, "case is already archived")
			}
			return nil, appErrors.Clone(appErrors.ErrConflict, "case is not archived")
		}
		if err := s.cases.UpdateArchived(ctx, c.ID, archived, at); err != nil {
			return nil, err
		}
		c.IsArchived = archived
		activity := &models.Activity{ActivityType: models.ActivityUnarchived, Description: "Case restored from archive"}
		c.ArchivedAt = nil
		if archived {
			c.ArchivedAt = &at
			activity = &models.Activity{ActivityType: models.ActivityArchived, Description: "Case archived"}
		}
		activity.OldValue = strPtr(strconv.FormatBool(!archived))
		activity.NewValue = strPtr(strconv.FormatBool(archived))
		return activity, nil
	}, by, "failed to update case archive flag")
}

// mutate runs apply against the locked case inside one transaction and
// appends the activity it returns. A nil activity means apply made no change.
func (s *CaseService) mutate(
	ctx context.Context,
	id string,
	apply func(ctx context.Context, c *models.Case, at time.Time) (*models.Activity, error),
	actor, failure string,
) (*models.Case, error) {
	var result *models.Case
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.cases.LockByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return appErrors.Clone(appErrors.ErrNotFound, "case not found")
			}
			return err
		}
		at := s.now()
		activity, err := apply(ctx, c, at)
		if err != nil {
			return err
		}
		if activity != nil {
			activity.CaseID = c.ID
			activity.PerformedBy = actor
			activity.PerformedAt = at
			if err := s.activities.Append(ctx, activity); err != nil {
				return err
			}
			c.UpdatedAt = at
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, passThrough(err, failure)
	}
	return result, nil
}
