package dto

import (
	"time"

	"github.com/appdotbuilder/canossa-info-system/internal/models"
)

// CampusActivityCreateRequest is the payload of createCampusActivity.
type CampusActivityCreateRequest struct {
	Title        string         `json:"title" validate:"required,min=1,max=200"`
	Description  string         `json:"description" validate:"required,min=1"`
	Content      string         `json:"content" validate:"required,min=1"`
	ImageURL     NullableString `json:"image_url" validate:"omitnil,url"`
	ActivityDate FlexibleTime   `json:"activity_date" validate:"required"`
	IsFeatured   *bool          `json:"is_featured"`
	IsPublished  *bool          `json:"is_published"`
}

// CampusActivityUpdateRequest is a sparse update; nil pointers and unset
// nullable fields leave the stored value untouched.
type CampusActivityUpdateRequest struct {
	ID           uint           `json:"id" validate:"required"`
	Title        *string        `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string        `json:"description" validate:"omitempty,min=1"`
	Content      *string        `json:"content" validate:"omitempty,min=1"`
	ImageURL     NullableString `json:"image_url" validate:"omitnil,url"`
	ActivityDate *FlexibleTime  `json:"activity_date" validate:"omitempty"`
	IsFeatured   *bool          `json:"is_featured"`
	IsPublished  *bool          `json:"is_published"`
}

// CampusActivityDeleteRequest identifies the activity to remove.
type CampusActivityDeleteRequest struct {
	ID uint `json:"id" validate:"required"`
}

// DeleteResult reports whether a row was actually removed.
type DeleteResult struct {
	Success bool `json:"success"`
}

// CampusActivityResponse is the wire shape of a campus activity.
type CampusActivityResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Content      string    `json:"content"`
	ImageURL     *string   `json:"image_url"`
	ActivityDate time.Time `json:"activity_date"`
	IsFeatured   bool      `json:"is_featured"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCampusActivityResponse converts a model into its DTO.
func NewCampusActivityResponse(model models.CampusActivity) CampusActivityResponse {
	return CampusActivityResponse{
		ID:           model.ID,
		Title:        model.Title,
		Description:  model.Description,
		Content:      model.Content,
		ImageURL:     model.ImageURL,
		ActivityDate: model.ActivityDate,
		IsFeatured:   model.IsFeatured,
		IsPublished:  model.IsPublished,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewCampusActivityResponses converts a slice of models, never returning nil.
func NewCampusActivityResponses(items []models.CampusActivity) []CampusActivityResponse {
	responses := make([]CampusActivityResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewCampusActivityResponse(item))
	}
	return responses
}
