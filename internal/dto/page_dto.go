package dto

import (
	"time"

	"github.com/appdotbuilder/canossa-info-system/internal/models"
)

// PageContentCreateRequest is the payload of createPageContent.
type PageContentCreateRequest struct {
	PageSlug        string         `json:"page_slug" validate:"required,min=1,max=100,slug"`
	Title           string         `json:"title" validate:"required,min=1,max=200"`
	Content         string         `json:"content" validate:"required,min=1"`
	MetaDescription NullableString `json:"meta_description"`
	IsPublished     *bool          `json:"is_published"`
}

// PageContentUpdateRequest is a sparse update. PageSlug is accepted on the
// wire but never applied: slugs are stable URLs.
type PageContentUpdateRequest struct {
	ID              uint           `json:"id" validate:"required"`
	PageSlug        *string        `json:"page_slug"`
	Title           *string        `json:"title" validate:"omitempty,min=1,max=200"`
	Content         *string        `json:"content" validate:"omitempty,min=1"`
	MetaDescription NullableString `json:"meta_description"`
	IsPublished     *bool          `json:"is_published"`
}

// PageBySlugRequest is the input of getPageContent.
type PageBySlugRequest struct {
	Slug string `json:"slug" validate:"required,min=1"`
}

// PageContentResponse is the wire shape of a page.
type PageContentResponse struct {
	ID              uint      `json:"id"`
	PageSlug        string    `json:"page_slug"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	MetaDescription *string   `json:"meta_description"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewPageContentResponse converts a model into its DTO.
func NewPageContentResponse(model models.PageContent) PageContentResponse {
	return PageContentResponse{
		ID:              model.ID,
		PageSlug:        model.PageSlug,
		Title:           model.Title,
		Content:         model.Content,
		MetaDescription: model.MetaDescription,
		IsPublished:     model.IsPublished,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
