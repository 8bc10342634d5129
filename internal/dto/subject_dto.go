package dto

import (
	"time"

	"github.com/studentresult/srms-api/internal/models"
)

// SubjectCreateRequest describes the payload for adding a subject.
type SubjectCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty"`
	Code        string `json:"code" validate:"omitempty,max=20"`
}

// SubjectUpdateRequest describes the payload for updating a subject.
type SubjectUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	Code        *string `json:"code" validate:"omitempty,max=20"`
	IsActive    *bool   `json:"is_active"`
}

// SubjectResponse is the serialized representation returned to API clients.
type SubjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSubjectResponse converts a model into a DTO.
func NewSubjectResponse(model models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Code:        model.Code,
		IsActive:    model.IsActive,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewSubjectResponseSlice converts a slice of models into DTOs.
func NewSubjectResponseSlice(subjects []models.Subject) []SubjectResponse {
	responses := make([]SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		responses = append(responses, NewSubjectResponse(subject))
	}

	return responses
}
