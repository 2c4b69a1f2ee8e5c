package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/response"
)

type noteService interface {
	Create(ctx context.Context, caseID string, req dto.NoteRequest, actor *models.JWTClaims) (*models.Note, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	List(ctx context.Context, caseID string, includeDeleted bool) ([]models.Note, error)
	Edit(ctx context.Context, id string, req dto.NoteRequest, actor *models.JWTClaims) (*models.Note, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) (*models.Note, error)
	Pin(ctx context.Context, id string, actor *models.JWTClaims) (*models.Note, error)
	Unpin(ctx context.Context, id string, actor *models.JWTClaims) (*models.Note, error)
}

// NoteHandler manages case notes.
type NoteHandler struct {
	service noteService
}

// NewNoteHandler builds a new handler.
func NewNoteHandler(service noteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List godoc
// @Summary List the notes of a case
// @Description Pinned notes first, then newest first.
// @Tags Notes
// @Produce json
// @Param id path string true "Case ID"
// @Param includeDeleted query bool false "Include soft-deleted notes"
// @Success 200 {object} response.Envelope
// @Router /cases/{id}/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	includeDeleted, err := queryBool(c, "includeDeleted")
	if err != nil {
		response.Error(c, err)
		return
	}
	notes, err := h.service.List(c.Request.Context(), c.Param("id"), includeDeleted != nil && *includeDeleted)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes, nil)
}

// Create godoc
// @Summary Add a note to a case
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param payload body dto.NoteRequest true "Note payload"
// @Success 201 {object} response.Envelope
// @Router /cases/{id}/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid note payload"))
		return
	}
	note, err := h.service.Create(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// Get godoc
// @Summary Get a note
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} response.Envelope
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note, nil)
}

// Edit godoc
// @Summary Edit the content of a note
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param payload body dto.NoteRequest true "Note payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Note is deleted"
// @Router /notes/{id} [patch]
func (h *NoteHandler) Edit(c *gin.Context) {
	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid note payload"))
		return
	}
	note, err := h.service.Edit(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note, nil)
}

// Delete godoc
// @Summary Soft-delete a note
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} response.Envelope
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	note, err := h.service.Delete(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note, nil)
}

// Pin godoc
// @Summary Pin a note
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} response.Envelope
// @Router /notes/{id}/pin [post]
func (h *NoteHandler) Pin(c *gin.Context) {
	note, err := h.service.Pin(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note, nil)
}

// Unpin godoc
// @Summary Unpin a note
// @Tags Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} response.Envelope
// @Router /notes/{id}/unpin [post]
func (h *NoteHandler) Unpin(c *gin.Context) {
	note, err := h.service.Unpin(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, note, nil)
}
