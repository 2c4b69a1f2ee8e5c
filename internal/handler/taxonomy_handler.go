package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	"github.com/noah-isme/legal-intake-api/pkg/response"
)

type taxonomyService interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	GetCategory(ctx context.Context, code string) (*dto.CategoryWithOptions, error)
	ListOptions(ctx context.Context, code string) ([]models.Option, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error)
	CreateOption(ctx context.Context, req dto.CreateOptionRequest) (*models.Option, error)
	DeleteCategory(ctx context.Context, code string) error
	DeleteOption(ctx context.Context, categoryCode, code string) error
}

// TaxonomyHandler exposes the issue taxonomy.
type TaxonomyHandler struct {
	service taxonomyService
}

// NewTaxonomyHandler builds a new handler.
func NewTaxonomyHandler(service taxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: service}
}

// ListCategories godoc
// @Summary List issue categories
// @Tags Taxonomy
// @Produce json
// @Param active query bool false "Only active categories (default true)"
// @Success 200 {object} response.Envelope
// @Router /taxonomy/categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	active, err := queryBool(c, "active")
	if err != nil {
		response.Error(c, err)
		return
	}
	activeOnly := active == nil || *active
	categories, err := h.service.ListCategories(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, nil)
}

// GetCategory godoc
// @Summary Get a category with its options
// @Tags Taxonomy
// @Produce json
// @Param code path string true "Category code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /taxonomy/categories/{code} [get]
func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	category, err := h.service.GetCategory(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category, nil)
}

// ListOptions godoc
// @Summary List the options of a category
// @Tags Taxonomy
// @Produce json
// @Param code path string true "Category code"
// @Success 200 {object} response.Envelope
// @Router /taxonomy/categories/{code}/options [get]
func (h *TaxonomyHandler) ListOptions(c *gin.Context) {
	options, err := h.service.ListOptions(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// CreateCategory godoc
// @Summary Create an issue category
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param payload body dto.CreateCategoryRequest true "Category payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /taxonomy/categories [post]
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid category payload"))
		return
	}
	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// CreateOption godoc
// @Summary Create an option under a category
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param payload body dto.CreateOptionRequest true "Option payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /taxonomy/options [post]
func (h *TaxonomyHandler) CreateOption(c *gin.Context) {
	var req dto.CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err, "invalid option payload"))
		return
	}
	option, err := h.service.CreateOption(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, option)
}

// DeleteCategory godoc
// @Summary Delete an unreferenced category
// @Tags Taxonomy
// @Param code path string true "Category code"
// @Success 204
// @Failure 409 {object} response.Envelope "Category is referenced by intake data"
// @Router /taxonomy/categories/{code} [delete]
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteOption godoc
// @Summary Delete an unreferenced option
// @Tags Taxonomy
// @Param code path string true "Category code"
// @Param option path string true "Option code"
// @Success 204
// @Failure 409 {object} response.Envelope "Option is referenced by intake data"
// @Router /taxonomy/categories/{code}/options/{option} [delete]
func (h *TaxonomyHandler) DeleteOption(c *gin.Context) {
	if err := h.service.DeleteOption(c.Request.Context(), c.Param("code"), c.Param("option")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
