package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/internal/repository"
	"github.com/noah-isme/legal-intake-api/pkg/cache"
	"github.com/noah-isme/legal-intake-api/pkg/docgen"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type taxonomyStore interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	FindCategoryByCode(ctx context.Context, code string) (*models.Category, error)
	LockCategoryByCode(ctx context.Context, code string) (*models.Category, error)
	ListOptions(ctx context.Context, categoryCode string) ([]models.Option, error)
	ListActiveOptions(ctx context.Context) ([]models.Option, error)
	LockOption(ctx context.Context, categoryCode, code string) (*models.Option, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	CreateOption(ctx context.Context, option *models.Option) error
	CategoryReferences(ctx context.Context, categoryID, categoryCode string) ([]appErrors.Reference, error)
	OptionReferences(ctx context.Context, optionID string) ([]appErrors.Reference, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	DeleteOption(ctx context.Context, optionID string) error
}

var (
	taxonomyCachePattern     = cache.Key("taxonomy", "*")
	activeCategoriesCacheKey = cache.Key("taxonomy", "categories", "active")
	activeOptionsCacheKey    = cache.Key("taxonomy", "options", "active")
)

// TaxonomyService exposes the issue taxonomy. Reads of the active set are
// cached; every write invalidates the cache.
type TaxonomyService struct {
	repo      taxonomyStore
	tx        txRunner
	cache     *CacheService
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaxonomyService constructs the service. cache may be nil.
func NewTaxonomyService(repo taxonomyStore, tx txRunner, cacheSvc *CacheService, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *TaxonomyService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaxonomyService{repo: repo, tx: tx, cache: cacheSvc, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// ListCategories returns categories ordered by display order.
func (s *TaxonomyService) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	if activeOnly {
		var cached []models.Category
		if s.cache.Get(ctx, activeCategoriesCacheKey, &cached) {
			return cached, nil
		}
	}
	categories, err := s.repo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, internalError(err, "failed to list categories")
	}
	if categories == nil {
		categories = []models.Category{}
	}
	if activeOnly {
		s.cache.Set(ctx, activeCategoriesCacheKey, categories, s.cacheTTL)
	}
	return categories, nil
}

// GetCategory returns a category with its options.
func (s *TaxonomyService) GetCategory(ctx context.Context, code string) (*dto.CategoryWithOptions, error) {
	category, err := s.repo.FindCategoryByCode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
		}
		return nil, internalError(err, "failed to load category")
	}
	options, err := s.repo.ListOptions(ctx, code)
	if err != nil {
		return nil, internalError(err, "failed to list options")
	}
	if options == nil {
		options = []models.Option{}
	}
	return &dto.CategoryWithOptions{Category: *category, Options: options}, nil
}

// ListOptions returns the options of a category ordered by display order.
func (s *TaxonomyService) ListOptions(ctx context.Context, code string) ([]models.Option, error) {
	detail, err := s.GetCategory(ctx, code)
	if err != nil {
		return nil, err
	}
	return detail.Options, nil
}

// ActiveOptions returns the options of every active category keyed by
// category code. Active categories without options map to an empty list.
func (s *TaxonomyService) ActiveOptions(ctx context.Context) (map[string][]models.Option, error) {
	var cached map[string][]models.Option
	if s.cache.Get(ctx, activeOptionsCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.ListCategories(ctx, true)
	if err != nil {
		return nil, err
	}
	options, err := s.repo.ListActiveOptions(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list options")
	}
	byCategory := make(map[string][]models.Option, len(categories))
	for _, category := range categories {
		byCategory[category.Code] = []models.Option{}
	}
	for _, option := range options {
		if _, ok := byCategory[option.CategoryCode]; ok {
			byCategory[option.CategoryCode] = append(byCategory[option.CategoryCode], option)
		}
	}
	s.cache.Set(ctx, activeOptionsCacheKey, byCategory, s.cacheTTL)
	return byCategory, nil
}

// CreateCategory inserts a new category.
func (s *TaxonomyService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category payload")
	}
	category := &models.Category{
		Code:         req.Code,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("category %q already exists", req.Code))
		}
		return nil, internalError(err, "failed to create category")
	}
	s.cache.Invalidate(ctx, taxonomyCachePattern)
	s.logger.Info("taxonomy category created", zap.String("category", category.Code))
	return category, nil
}

// CreateOption inserts a new option under an existing category.
func (s *TaxonomyService) CreateOption(ctx context.Context, req dto.CreateOptionRequest) (*models.Option, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid option payload")
	}
	category, err := s.repo.FindCategoryByCode(ctx, req.CategoryCode)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
		}
		return nil, internalError(err, "failed to load category")
	}
	option := &models.Option{
		CategoryID:   category.ID,
		CategoryCode: category.Code,
		Code:         req.Code,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.repo.CreateOption(ctx, option); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("option %q already exists in %q", req.Code, req.CategoryCode))
		}
		return nil, internalError(err, "failed to create option")
	}
	s.cache.Invalidate(ctx, taxonomyCachePattern)
	s.logger.Info("taxonomy option created", zap.String("category", category.Code), zap.String("option", option.Code))
	return option, nil
}

// DeleteCategory removes an unreferenced category together with its
// options. A referenced category yields *errors.ReferentialIntegrityError
// and nothing is deleted.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, code string) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		category, err := s.repo.LockCategoryByCode(ctx, code)
		if err != nil {
			if isNotFound(err) {
				return appErrors.Clone(appErrors.ErrNotFound, "category not found")
			}
			return err
		}
		refs, err := s.repo.CategoryReferences(ctx, category.ID, category.Code)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return &appErrors.ReferentialIntegrityError{Entity: "category", Code: code, References: refs}
		}
		return s.repo.DeleteCategory(ctx, category.ID)
	})
	if err != nil {
		s.logDeleteFailure("category", code, err)
		return passThrough(err, "failed to delete category")
	}
	s.cache.Invalidate(ctx, taxonomyCachePattern)
	return nil
}

// DeleteOption removes an unreferenced option.
func (s *TaxonomyService) DeleteOption(ctx context.Context, categoryCode, code string) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		option, err := s.repo.LockOption(ctx, categoryCode, code)
		if err != nil {
			if isNotFound(err) {
				return appErrors.Clone(appErrors.ErrNotFound, "option not found")
			}
			return err
		}
		refs, err := s.repo.OptionReferences(ctx, option.ID)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return &appErrors.ReferentialIntegrityError{Entity: "option", Code: categoryCode + "/" + code, References: refs}
		}
		return s.repo.DeleteOption(ctx, option.ID)
	})
	if err != nil {
		s.logDeleteFailure("option", categoryCode+"/"+code, err)
		return passThrough(err, "failed to delete option")
	}
	s.cache.Invalidate(ctx, taxonomyCachePattern)
	return nil
}

func (s *TaxonomyService) logDeleteFailure(entity, code string, err error) {
	var refErr *appErrors.ReferentialIntegrityError
	if errors.As(err, &refErr) {
		s.logger.Warn("taxonomy delete blocked by references",
			zap.String("entity", entity), zap.String("code", code), zap.Any("references", refErr.References))
	}
}

// DocGenOptions converts the active options into the resolver's option view.
func DocGenOptions(byCategory map[string][]models.Option) map[string][]docgen.Option {
	out := make(map[string][]docgen.Option, len(byCategory))
	for code, options := range byCategory {
		converted := make([]docgen.Option, len(options))
		for i, option := range options {
			converted[i] = docgen.Option{Code: option.Code, Name: option.Name}
		}
		out[code] = converted
	}
	return out
}
