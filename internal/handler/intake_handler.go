package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/response"
)

type intakeService interface {
	Submit(ctx context.Context, req dto.SubmitIntakeRequest, actor *models.JWTClaims) (*dto.IntakeDetail, error)
	Get(ctx context.Context, id string) (*dto.IntakeDetail, error)
	SaveIssueMetadata(ctx context.Context, intakeID, categoryCode string, req dto.SaveIssueMetadataRequest, actor *models.JWTClaims) (*models.IssueMetadata, error)
	ListSelections(ctx context.Context, intakeID string) ([]models.IssueSelection, error)
}

// IntakeHandler accepts and serves client intakes.
type IntakeHandler struct {
	service intakeService
}

// NewIntakeHandler builds a new handler.
func NewIntakeHandler(service intakeService) *IntakeHandler {
	return &IntakeHandler{service: service}
}

// Submit godoc
// @Summary Submit a client intake
// @Description Stores the intake, its per-category issue data and opens a case in status new.
// @Tags Intakes
// @Accept json
// @Produce json
// @Param payload body dto.SubmitIntakeRequest true "Intake payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Validation or unknown category"
// @Router /intakes [post]
func (h *IntakeHandler) Submit(c *gin.Context) {
	var req dto.SubmitIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid intake payload"))
		return
	}
	detail, err := h.service.Submit(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

// Get godoc
// @Summary Get an intake with its issue data
// @Tags Intakes
// @Produce json
// @Param id path string true "Intake ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /intakes/{id} [get]
func (h *IntakeHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// ListSelections godoc
// @Summary List the options selected on an intake
// @Tags Intakes
// @Produce json
// @Param id path string true "Intake ID"
// @Success 200 {object} response.Envelope
// @Router /intakes/{id}/selections [get]
func (h *IntakeHandler) ListSelections(c *gin.Context) {
	selections, err := h.service.ListSelections(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selections, nil)
}

// SaveIssueMetadata godoc
// @Summary Replace the issue metadata of one category
// @Tags Intakes
// @Accept json
// @Produce json
// @Param id path string true "Intake ID"
// @Param category path string true "Category code"
// @Param payload body dto.SaveIssueMetadataRequest true "Metadata payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Unknown category"
// @Router /intakes/{id}/issues/{category} [put]
func (h *IntakeHandler) SaveIssueMetadata(c *gin.Context) {
	var req dto.SaveIssueMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid issue metadata payload"))
		return
	}
	meta, err := h.service.SaveIssueMetadata(c.Request.Context(), c.Param("id"), c.Param("category"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meta, nil)
}
