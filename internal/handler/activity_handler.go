package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/internal/service"
	"github.com/noah-isme/legal-intake-api/pkg/response"
)

type activityService interface {
	ListForCase(ctx context.Context, caseID string, types []string) ([]models.Activity, error)
	List(ctx context.Context, query service.ActivityFeedQuery) (*service.ActivityFeed, error)
}

type activityExporter interface {
	Export(ctx context.Context, caseID, format string) (*service.ExportFile, error)
}

// ActivityHandler serves the read-only activity log.
type ActivityHandler struct {
	service  activityService
	exporter activityExporter
}

// NewActivityHandler builds a new handler.
func NewActivityHandler(service activityService, exporter activityExporter) *ActivityHandler {
	return &ActivityHandler{service: service, exporter: exporter}
}

// ListForCase godoc
// @Summary List the activity trail of a case
// @Description Entries are ordered by performed_at ascending. Repeat type or pass a comma separated list to filter.
// @Tags Activities
// @Produce json
// @Param id path string true "Case ID"
// @Param type query []string false "Activity types" collectionFormat(multi)
// @Success 200 {object} response.Envelope
// @Router /cases/{id}/activities [get]
func (h *ActivityHandler) ListForCase(c *gin.Context) {
	activities, err := h.service.ListForCase(c.Request.Context(), c.Param("id"), c.QueryArray("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activities, nil)
}

// List godoc
// @Summary List activities across cases
// @Tags Activities
// @Produce json
// @Param type query []string false "Activity types" collectionFormat(multi)
// @Param limit query int false "Maximum entries (default 200, max 1000)"
// @Param since query string false "RFC3339 instant; only entries performed at or after it"
// @Param cursor query string false "meta.next_cursor of the previous page"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	query := service.ActivityFeedQuery{Types: c.QueryArray("type"), Cursor: c.Query("cursor")}
	var err error
	if query.Limit, err = queryInt(c, "limit"); err != nil {
		response.Error(c, err)
		return
	}
	if query.Since, err = queryTime(c, "since"); err != nil {
		response.Error(c, err)
		return
	}
	feed, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if feed.NextCursor != "" {
		meta = map[string]interface{}{"next_cursor": feed.NextCursor}
	}
	response.JSON(c, http.StatusOK, feed.Activities, nil, meta)
}

// Export godoc
// @Summary Download the activity trail of a case
// @Tags Activities
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Case ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 412 {object} response.Envelope "Export disabled or trail too long"
// @Router /cases/{id}/activities/export [get]
func (h *ActivityHandler) Export(c *gin.Context) {
	file, err := h.exporter.Export(c.Request.Context(), c.Param("id"), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
