package service

import (
	"context"

	"github.com/noah-isme/legal-intake-api/internal/models"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type activeCategoryLister interface {
	LockActiveCategories(ctx context.Context) ([]models.Category, error)
}

// CategoryValidator guards every issue metadata write against unknown
// category codes. It always reads the live category list so the reported
// valid set matches the store at the time of the check. Called inside the
// writing transaction, the share lock it takes keeps the checked categories
// from being deleted until that transaction ends.
type CategoryValidator struct {
	categories activeCategoryLister
}

// NewCategoryValidator constructs the validator.
func NewCategoryValidator(categories activeCategoryLister) *CategoryValidator {
	return &CategoryValidator{categories: categories}
}

// Validate returns an *errors.InvalidCategoryError when code is not an active category.
func (v *CategoryValidator) Validate(ctx context.Context, code string) error {
	return v.ValidateAll(ctx, []string{code})
}

// ValidateAll checks several codes against one read of the active list and
// reports the first offending code.
func (v *CategoryValidator) ValidateAll(ctx context.Context, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	categories, err := v.categories.LockActiveCategories(ctx)
	if err != nil {
		return internalError(err, "failed to load categories")
	}
	active := make(map[string]struct{}, len(categories))
	valid := make([]string, 0, len(categories))
	for _, category := range categories {
		active[category.Code] = struct{}{}
		valid = append(valid, category.Code)
	}
	for _, code := range codes {
		if _, ok := active[code]; !ok {
			return appErrors.NewInvalidCategoryError(code, valid)
		}
	}
	return nil
}
