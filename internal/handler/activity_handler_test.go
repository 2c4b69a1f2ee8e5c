package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/internal/service"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type activityServiceMock struct {
	lastCase  string
	lastTypes []string
	lastQuery service.ActivityFeedQuery
	feed      *service.ActivityFeed
	err       error
}

func (m *activityServiceMock) ListForCase(ctx context.Context, caseID string, types []string) ([]models.Activity, error) {
	m.lastCase = caseID
	m.lastTypes = types
	return []models.Activity{{ID: "act-1", CaseID: caseID, ActivityType: models.ActivityCreated}}, m.err
}

func (m *activityServiceMock) List(ctx context.Context, query service.ActivityFeedQuery) (*service.ActivityFeed, error) {
	m.lastQuery = query
	if m.feed != nil {
		return m.feed, m.err
	}
	return &service.ActivityFeed{Activities: []models.Activity{}}, m.err
}

type activityExporterMock struct {
	lastFormat string
	file       *service.ExportFile
	err        error
}

func (m *activityExporterMock) Export(ctx context.Context, caseID, format string) (*service.ExportFile, error) {
	m.lastFormat = format
	return m.file, m.err
}

func TestActivityHandlerListForCasePassesTypes(t *testing.T) {
	svc := &activityServiceMock{}
	handler := NewActivityHandler(svc, &activityExporterMock{})

	c, w := newTestContext(t, http.MethodGet, "/cases/case-1/activities?type=statusChanged&type=noteAdded,noteEdited", nil,
		gin.Param{Key: "id", Value: "case-1"})
	handler.ListForCase(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "case-1", svc.lastCase)
	assert.Equal(t, []string{"statusChanged", "noteAdded,noteEdited"}, svc.lastTypes)
}

func TestActivityHandlerListLimit(t *testing.T) {
	svc := &activityServiceMock{}
	handler := NewActivityHandler(svc, &activityExporterMock{})

	c, w := newTestContext(t, http.MethodGet, "/activities?limit=50", nil)
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, svc.lastQuery.Limit)

	c, w = newTestContext(t, http.MethodGet, "/activities?limit=ten", nil)
	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivityHandlerListSinceAndCursor(t *testing.T) {
	svc := &activityServiceMock{feed: &service.ActivityFeed{
		Activities: []models.Activity{{ID: "act-9", CaseID: "case-3", ActivityType: models.ActivityNoteAdded}},
		NextCursor: "next-page",
	}}
	handler := NewActivityHandler(svc, &activityExporterMock{})

	c, w := newTestContext(t, http.MethodGet, "/activities?since=2026-03-01T09:00:00Z&cursor=abc", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastQuery.Since)
	assert.True(t, svc.lastQuery.Since.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "abc", svc.lastQuery.Cursor)

	var body struct {
		Data []models.Activity      `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "next-page", body.Meta["next_cursor"])
}

func TestActivityHandlerListRejectsBadSince(t *testing.T) {
	svc := &activityServiceMock{}
	handler := NewActivityHandler(svc, &activityExporterMock{})

	c, w := newTestContext(t, http.MethodGet, "/activities?since=yesterday", nil)
	handler.List(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.lastQuery.Since)
}

func TestActivityHandlerExportStreamsFile(t *testing.T) {
	exporter := &activityExporterMock{file: &service.ExportFile{
		Filename:    "case-case-1-activity-20240101.csv",
		ContentType: "text/csv",
		Data:        []byte("performed_at,activity_type\n"),
	}}
	handler := NewActivityHandler(&activityServiceMock{}, exporter)

	c, w := newTestContext(t, http.MethodGet, "/cases/case-1/activities/export", nil, gin.Param{Key: "id", Value: "case-1"})
	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", exporter.lastFormat)
	assert.Equal(t, `attachment; filename="case-case-1-activity-20240101.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "performed_at,activity_type\n", w.Body.String())
}

func TestActivityHandlerExportDisabled(t *testing.T) {
	exporter := &activityExporterMock{err: appErrors.Clone(appErrors.ErrPreconditionFailed, "activity export is disabled")}
	handler := NewActivityHandler(&activityServiceMock{}, exporter)

	c, w := newTestContext(t, http.MethodGet, "/cases/case-1/activities/export?format=pdf", nil, gin.Param{Key: "id", Value: "case-1"})
	handler.Export(c)

	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Equal(t, "pdf", exporter.lastFormat)
}
