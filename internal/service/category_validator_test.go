package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/legal-intake-api/internal/models"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type categoryListerStub struct {
	categories []models.Category
	err        error
	calls      int

	inTx       func() bool
	lockedInTx []bool
}

func (s *categoryListerStub) LockActiveCategories(ctx context.Context) ([]models.Category, error) {
	s.calls++
	if s.inTx != nil {
		s.lockedInTx = append(s.lockedInTx, s.inTx())
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func activeCategories() *categoryListerStub {
	return &categoryListerStub{categories: []models.Category{
		{Code: "vermin", IsActive: true},
		{Code: "insects", IsActive: true},
		{Code: "legacyHeating", IsActive: false},
		{Code: "mold", IsActive: true},
	}}
}

func TestCategoryValidatorAcceptsActiveCode(t *testing.T) {
	v := NewCategoryValidator(activeCategories())
	assert.NoError(t, v.Validate(context.Background(), "mold"))
}

func TestCategoryValidatorRejectsUnknownAndInactive(t *testing.T) {
	v := NewCategoryValidator(activeCategories())

	for _, code := range []string{"vermn", "legacyHeating", ""} {
		err := v.Validate(context.Background(), code)
		var catErr *appErrors.InvalidCategoryError
		require.True(t, errors.As(err, &catErr), code)
		assert.Equal(t, code, catErr.InvalidValue)
		assert.Equal(t, []string{"vermin", "insects", "mold"}, catErr.ValidValues)
	}
}

func TestCategoryValidatorValidateAllReadsOnce(t *testing.T) {
	lister := activeCategories()
	v := NewCategoryValidator(lister)

	require.NoError(t, v.ValidateAll(context.Background(), []string{"vermin", "insects"}))
	assert.Equal(t, 1, lister.calls)

	err := v.ValidateAll(context.Background(), []string{"vermin", "plumbin"})
	var catErr *appErrors.InvalidCategoryError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, "plumbin", catErr.InvalidValue)

	require.NoError(t, v.ValidateAll(context.Background(), nil))
	assert.Equal(t, 2, lister.calls)
}

func TestCategoryValidatorStoreFailure(t *testing.T) {
	v := NewCategoryValidator(&categoryListerStub{err: errors.New("db down")})
	err := v.Validate(context.Background(), "vermin")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}
