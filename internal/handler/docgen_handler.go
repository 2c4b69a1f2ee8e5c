package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/response"
)

type docGenService interface {
	Preview(ctx context.Context, intakeID string) (*dto.DocGenPreview, error)
	LoadIntoDocGen(ctx context.Context, caseID string, actor *models.JWTClaims) (*dto.DocGenTransition, error)
	MarkGenerated(ctx context.Context, caseID string, actor *models.JWTClaims) (*dto.DocGenTransition, error)
}

// DocGenHandler serves document-generation input and its workflow events.
type DocGenHandler struct {
	service docGenService
}

// NewDocGenHandler builds a new handler.
func NewDocGenHandler(service docGenService) *DocGenHandler {
	return &DocGenHandler{service: service}
}

// Preview godoc
// @Summary Build the document-generation input for an intake
// @Description Read-only. Returns the protected output keys plus resolution diagnostics and mapping warnings.
// @Tags DocGen
// @Produce json
// @Param id path string true "Intake ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /intakes/{id}/docgen [get]
func (h *DocGenHandler) Preview(c *gin.Context) {
	preview, err := h.service.Preview(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preview, nil)
}

// Load godoc
// @Summary Load a case into document generation
// @Tags DocGen
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.Envelope
// @Router /cases/{id}/docgen/load [post]
func (h *DocGenHandler) Load(c *gin.Context) {
	result, err := h.service.LoadIntoDocGen(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Generated godoc
// @Summary Record that documents were generated for a case
// @Tags DocGen
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.Envelope
// @Router /cases/{id}/docgen/generated [post]
func (h *DocGenHandler) Generated(c *gin.Context) {
	result, err := h.service.MarkGenerated(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
