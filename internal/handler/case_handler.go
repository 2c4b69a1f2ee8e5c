package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/response"
)

type caseService interface {
	Get(ctx context.Context, id string) (*models.Case, error)
	List(ctx context.Context, filter models.CaseFilter) ([]models.Case, *models.Pagination, error)
	ChangeStatus(ctx context.Context, id string, req dto.ChangeStatusRequest, actor *models.JWTClaims) (*models.Case, error)
	Assign(ctx context.Context, id string, req dto.AssignCaseRequest, actor *models.JWTClaims) (*models.Case, error)
	SetPriority(ctx context.Context, id string, req dto.SetPriorityRequest, actor *models.JWTClaims) (*models.Case, error)
	Archive(ctx context.Context, id string, actor *models.JWTClaims) (*models.Case, error)
	Unarchive(ctx context.Context, id string, actor *models.JWTClaims) (*models.Case, error)
}

// CaseHandler exposes the case dashboard and its workflow operations.
type CaseHandler struct {
	service caseService
}

// NewCaseHandler builds a new handler.
func NewCaseHandler(service caseService) *CaseHandler {
	return &CaseHandler{service: service}
}

// List godoc
// @Summary List cases
// @Tags Cases
// @Produce json
// @Param status query string false "Workflow status"
// @Param assignedTo query string false "Attorney reference"
// @Param priority query bool false "Priority flag"
// @Param archived query bool false "Archived flag"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size (max 100)"
// @Success 200 {object} response.Envelope
// @Router /cases [get]
func (h *CaseHandler) List(c *gin.Context) {
	filter := models.CaseFilter{
		Status:     models.CaseStatus(strings.TrimSpace(c.Query("status"))),
		AssignedTo: strings.TrimSpace(c.Query("assignedTo")),
	}
	var err error
	if filter.Priority, err = queryBool(c, "priority"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.Archived, err = queryBool(c, "archived"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.Page, err = queryInt(c, "page"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.PageSize, err = queryInt(c, "pageSize"); err != nil {
		response.Error(c, err)
		return
	}

	cases, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cases, pagination)
}

// Get godoc
// @Summary Get a case
// @Tags Cases
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /cases/{id} [get]
func (h *CaseHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ChangeStatus godoc
// @Summary Change the workflow status of a case
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param payload body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Unknown status"
// @Router /cases/{id}/status [post]
func (h *CaseHandler) ChangeStatus(c *gin.Context) {
	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid status payload"))
		return
	}
	result, err := h.service.ChangeStatus(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Assign godoc
// @Summary Assign or unassign the responsible attorney
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param payload body dto.AssignCaseRequest true "Attorney reference, null to unassign"
// @Success 200 {object} response.Envelope
// @Router /cases/{id}/assign [post]
func (h *CaseHandler) Assign(c *gin.Context) {
	var req dto.AssignCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid assignment payload"))
		return
	}
	result, err := h.service.Assign(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SetPriority godoc
// @Summary Flag or unflag a case as priority
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param payload body dto.SetPriorityRequest true "Priority flag"
// @Success 200 {object} response.Envelope
// @Router /cases/{id}/priority [post]
func (h *CaseHandler) SetPriority(c *gin.Context) {
	var req dto.SetPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid priority payload"))
		return
	}
	result, err := h.service.SetPriority(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Archive godoc
// @Summary Archive a case
// @Tags Cases
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Already archived"
// @Router /cases/{id}/archive [post]
func (h *CaseHandler) Archive(c *gin.Context) {
	result, err := h.service.Archive(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Unarchive godoc
// @Summary Return an archived case to the dashboard
// @Tags Cases
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Not archived"
// @Router /cases/{id}/unarchive [post]
func (h *CaseHandler) Unarchive(c *gin.Context) {
	result, err := h.service.Unarchive(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
