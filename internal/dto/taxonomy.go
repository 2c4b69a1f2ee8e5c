package dto

import "github.com/noah-isme/legal-intake-api/internal/models"

// CreateCategoryRequest inserts a new issue category.
type CreateCategoryRequest struct {
	Code         string `json:"code" validate:"required,alphanum,max=64"`
	Name         string `json:"name" validate:"required,max=255"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	IsActive     *bool  `json:"is_active"`
}

// CreateOptionRequest inserts a new option under an existing category.
type CreateOptionRequest struct {
	CategoryCode string `json:"category_code" validate:"required"`
	Code         string `json:"code" validate:"required,alphanum,max=64"`
	Name         string `json:"name" validate:"required,max=255"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

// CategoryWithOptions is the detail view of a category.
type CategoryWithOptions struct {
	models.Category
	Options []models.Option `json:"options"`
}
