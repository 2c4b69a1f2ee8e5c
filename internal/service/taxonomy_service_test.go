package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/internal/repository"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type memoryCache map[string][]byte

func (c memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c[key] = raw
	return nil
}

func (c memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c {
		if strings.HasPrefix(key, prefix) {
			delete(c, key)
		}
	}
	return nil
}

type taxonomyStoreStub struct {
	categories []models.Category
	options    []models.Option
	references []appErrors.Reference
	createErr  error

	listCalls int
	deleted   []string
}

func (s *taxonomyStoreStub) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	s.listCalls++
	out := []models.Category{}
	for _, c := range s.categories {
		if !activeOnly || c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *taxonomyStoreStub) FindCategoryByCode(ctx context.Context, code string) (*models.Category, error) {
	for _, c := range s.categories {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *taxonomyStoreStub) LockCategoryByCode(ctx context.Context, code string) (*models.Category, error) {
	return s.FindCategoryByCode(ctx, code)
}

func (s *taxonomyStoreStub) ListOptions(ctx context.Context, categoryCode string) ([]models.Option, error) {
	var out []models.Option
	for _, o := range s.options {
		if o.CategoryCode == categoryCode {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *taxonomyStoreStub) ListActiveOptions(ctx context.Context) ([]models.Option, error) {
	return s.options, nil
}

func (s *taxonomyStoreStub) LockOption(ctx context.Context, categoryCode, code string) (*models.Option, error) {
	for _, o := range s.options {
		if o.CategoryCode == categoryCode && o.Code == code {
			return &o, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *taxonomyStoreStub) CreateCategory(ctx context.Context, category *models.Category) error {
	if s.createErr != nil {
		return s.createErr
	}
	category.ID = "cat-" + category.Code
	s.categories = append(s.categories, *category)
	return nil
}

func (s *taxonomyStoreStub) CreateOption(ctx context.Context, option *models.Option) error {
	if s.createErr != nil {
		return s.createErr
	}
	option.ID = "opt-" + option.Code
	s.options = append(s.options, *option)
	return nil
}

func (s *taxonomyStoreStub) CategoryReferences(ctx context.Context, categoryID, categoryCode string) ([]appErrors.Reference, error) {
	return s.references, nil
}

func (s *taxonomyStoreStub) OptionReferences(ctx context.Context, optionID string) ([]appErrors.Reference, error) {
	return s.references, nil
}

func (s *taxonomyStoreStub) DeleteCategory(ctx context.Context, categoryID string) error {
	s.deleted = append(s.deleted, categoryID)
	return nil
}

func (s *taxonomyStoreStub) DeleteOption(ctx context.Context, optionID string) error {
	s.deleted = append(s.deleted, optionID)
	return nil
}

func newTaxonomyFixture() (*TaxonomyService, *taxonomyStoreStub) {
	store := &taxonomyStoreStub{
		categories: []models.Category{
			{ID: "cat-vermin", Code: "vermin", Name: "Vermin", IsActive: true},
			{ID: "cat-pets", Code: "pets", Name: "Pets", IsActive: false},
		},
		options: []models.Option{
			{ID: "opt-RatsMice", CategoryID: "cat-vermin", CategoryCode: "vermin", Code: "RatsMice", Name: "Rats / Mice"},
		},
	}
	cacheSvc := NewCacheService(memoryCache{}, nil, time.Minute, zap.NewNop(), true)
	return NewTaxonomyService(store, passthroughTx{}, cacheSvc, time.Minute, nil, zap.NewNop()), store
}

func TestTaxonomyServiceCachesActiveCategoriesUntilWrite(t *testing.T) {
	svc, store := newTaxonomyFixture()
	ctx := context.Background()

	first, err := svc.ListCategories(ctx, true)
	require.NoError(t, err)
	require.Len(t, first, 1)
	_, err = svc.ListCategories(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, store.listCalls)

	_, err = svc.CreateCategory(ctx, dto.CreateCategoryRequest{Code: "insects", Name: "Insects"})
	require.NoError(t, err)

	after, err := svc.ListCategories(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
	assert.Len(t, after, 2)
}

func TestTaxonomyServiceActiveOptionsIncludesEmptyCategories(t *testing.T) {
	svc, _ := newTaxonomyFixture()
	_, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Code: "mold", Name: "Mold"})
	require.NoError(t, err)

	byCategory, err := svc.ActiveOptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, byCategory["vermin"], 1)
	assert.Empty(t, byCategory["mold"])
	_, inactive := byCategory["pets"]
	assert.False(t, inactive)
}

func TestTaxonomyServiceCreateDuplicateConflicts(t *testing.T) {
	svc, store := newTaxonomyFixture()
	store.createErr = repository.ErrDuplicateKey

	_, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Code: "vermin", Name: "Vermin"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)

	_, err = svc.CreateOption(context.Background(), dto.CreateOptionRequest{CategoryCode: "vermin", Code: "RatsMice", Name: "Rats"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)
}

func TestTaxonomyServiceCreateOptionUnknownCategory(t *testing.T) {
	svc, _ := newTaxonomyFixture()
	_, err := svc.CreateOption(context.Background(), dto.CreateOptionRequest{CategoryCode: "ghosts", Code: "Poltergeist", Name: "Poltergeist"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestTaxonomyServiceDeleteReferencedCategoryFails(t *testing.T) {
	svc, store := newTaxonomyFixture()
	store.references = []appErrors.Reference{{Kind: "issue_selections", Count: 2, IntakeIDs: []string{"i-1", "i-2"}}}

	err := svc.DeleteCategory(context.Background(), "vermin")
	require.Error(t, err)
	var refErr *appErrors.ReferentialIntegrityError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "category", refErr.Entity)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)
	assert.Empty(t, store.deleted)
}

func TestTaxonomyServiceDeleteUnreferencedOption(t *testing.T) {
	svc, store := newTaxonomyFixture()
	require.NoError(t, svc.DeleteOption(context.Background(), "vermin", "RatsMice"))
	assert.Equal(t, []string{"opt-RatsMice"}, store.deleted)

	err := svc.DeleteOption(context.Background(), "vermin", "Bats")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestTaxonomyServiceDeleteReferencedOptionFails(t *testing.T) {
	svc, store := newTaxonomyFixture()
	store.references = []appErrors.Reference{{Kind: "issue_selections", Count: 1, IntakeIDs: []string{"i-1"}}}

	err := svc.DeleteOption(context.Background(), "vermin", "RatsMice")
	require.Error(t, err)
	var refErr *appErrors.ReferentialIntegrityError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "option", refErr.Entity)
	assert.Equal(t, "vermin/RatsMice", refErr.Code)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)
	assert.Empty(t, store.deleted)
}

func TestTaxonomyServiceDeleteUnreferencedCategory(t *testing.T) {
	svc, store := newTaxonomyFixture()
	ctx := context.Background()

	_, err := svc.ListCategories(ctx, true)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(ctx, "vermin"))
	assert.Equal(t, []string{"cat-vermin"}, store.deleted)

	_, err = svc.ListCategories(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)

	err = svc.DeleteCategory(ctx, "ghosts")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
