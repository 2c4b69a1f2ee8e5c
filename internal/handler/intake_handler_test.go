package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type intakeServiceMock struct {
	lastSubmit   dto.SubmitIntakeRequest
	lastCategory string
	lastActor    *models.JWTClaims
	detail       *dto.IntakeDetail
	err          error
	called       bool
}

func (m *intakeServiceMock) Submit(ctx context.Context, req dto.SubmitIntakeRequest, actor *models.JWTClaims) (*dto.IntakeDetail, error) {
	m.called = true
	m.lastSubmit = req
	m.lastActor = actor
	return m.detail, m.err
}

func (m *intakeServiceMock) Get(ctx context.Context, id string) (*dto.IntakeDetail, error) {
	return m.detail, m.err
}

func (m *intakeServiceMock) SaveIssueMetadata(ctx context.Context, intakeID, categoryCode string, req dto.SaveIssueMetadataRequest, actor *models.JWTClaims) (*models.IssueMetadata, error) {
	m.called = true
	m.lastCategory = categoryCode
	if m.err != nil {
		return nil, m.err
	}
	return &models.IssueMetadata{IntakeID: intakeID, CategoryCode: categoryCode, Severity: req.Severity}, nil
}

func (m *intakeServiceMock) ListSelections(ctx context.Context, intakeID string) ([]models.IssueSelection, error) {
	return []models.IssueSelection{}, m.err
}

func TestIntakeHandlerSubmit(t *testing.T) {
	svc := &intakeServiceMock{detail: &dto.IntakeDetail{
		Intake: models.Intake{ID: "intake-1"},
		Case:   &models.Case{ID: "case-1", Status: models.CaseStatusNew},
	}}
	handler := NewIntakeHandler(svc)

	body := `{"client_name":"Ana","issues":{"vermin":{"pestRats":true,"pestDetails":"droppings in kitchen"}}}`
	c, w := newTestContext(t, http.MethodPost, "/intakes", body)
	handler.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Ana", svc.lastSubmit.ClientName)
	assert.Equal(t, true, svc.lastSubmit.Issues["vermin"]["pestRats"])
	assert.Equal(t, "staff-1", svc.lastActor.Subject)
}

func TestIntakeHandlerSubmitInvalidJSON(t *testing.T) {
	svc := &intakeServiceMock{}
	handler := NewIntakeHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/intakes", `{"client_name":`)
	handler.Submit(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.called)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestIntakeHandlerSaveIssueMetadataUnknownCategory(t *testing.T) {
	svc := &intakeServiceMock{err: appErrors.NewInvalidCategoryError("rodents", []string{"vermin", "insects", "mold"})}
	handler := NewIntakeHandler(svc)

	c, w := newTestContext(t, http.MethodPut, "/intakes/intake-1/issues/rodents", `{"details":"rats"}`,
		gin.Param{Key: "id", Value: "intake-1"}, gin.Param{Key: "category", Value: "rodents"})
	handler.SaveIssueMetadata(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "rodents", svc.lastCategory)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CATEGORY", env.Error.Code)
	assert.JSONEq(t, `{"invalidValue":"rodents","validValues":["vermin","insects","mold"]}`, string(env.Error.Details))
}

func TestIntakeHandlerGetNotFound(t *testing.T) {
	handler := NewIntakeHandler(&intakeServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "intake not found")})

	c, w := newTestContext(t, http.MethodGet, "/intakes/missing", nil, gin.Param{Key: "id", Value: "missing"})
	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
