package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/legal-intake-api/internal/middleware"
	"github.com/noah-isme/legal-intake-api/internal/models"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type rejectingVerifier struct{}

func (rejectingVerifier) ValidateToken(string) (*models.JWTClaims, error) {
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

func newRouter(cases caseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, "/api/v1", Handlers{
		Taxonomy: NewTaxonomyHandler(&taxonomyServiceMock{}),
		Intake:   NewIntakeHandler(&intakeServiceMock{}),
		DocGen:   NewDocGenHandler(&docGenServiceMock{}),
		Case:     NewCaseHandler(cases),
		Activity: NewActivityHandler(&activityServiceMock{}, &activityExporterMock{}),
		Note:     NewNoteHandler(&noteServiceMock{}),
		Metrics:  NewMetricsHandler(nil, nil),
	}, middleware.JWT(rejectingVerifier{}))
	return r
}

func TestRegisterRoutesExposesCaseWorkflow(t *testing.T) {
	r := newRouter(&caseServiceMock{})

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"GET /api/v1/taxonomy/categories",
		"DELETE /api/v1/taxonomy/categories/:code/options/:option",
		"POST /api/v1/intakes",
		"PUT /api/v1/intakes/:id/issues/:category",
		"GET /api/v1/intakes/:id/docgen",
		"POST /api/v1/cases/:id/status",
		"POST /api/v1/cases/:id/docgen/generated",
		"GET /api/v1/cases/:id/activities/export",
		"GET /api/v1/activities",
		"PATCH /api/v1/notes/:id",
		"POST /api/v1/notes/:id/unpin",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestRegisterRoutesRequiresToken(t *testing.T) {
	svc := &caseServiceMock{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.called)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
