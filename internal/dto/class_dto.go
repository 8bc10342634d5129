package dto

import (
	"time"

	"github.com/studentresult/srms-api/internal/models"
)

// ClassCreateRequest describes the payload for adding a school class.
type ClassCreateRequest struct {
	ClassName   string `json:"class_name" validate:"required,max=50"`
	ClassNumber int    `json:"class_number" validate:"required,gt=0"`
	MaxCapacity int    `json:"max_capacity" validate:"required,gt=0"`
	SubjectList string `json:"subject_list" validate:"omitempty"`
}

// ClassUpdateRequest describes the payload for updating a school class.
type ClassUpdateRequest struct {
	ClassName   *string `json:"class_name" validate:"omitempty,max=50"`
	ClassNumber *int    `json:"class_number" validate:"omitempty,gt=0"`
	MaxCapacity *int    `json:"max_capacity" validate:"omitempty,gt=0"`
	SubjectList *string `json:"subject_list"`
	IsActive    *bool   `json:"is_active"`
}

// ClassResponse is the serialized representation returned to API clients.
type ClassResponse struct {
	ID          uint      `json:"id"`
	ClassName   string    `json:"class_name"`
	ClassNumber int       `json:"class_number"`
	MaxCapacity int       `json:"max_capacity"`
	IsActive    bool      `json:"is_active"`
	SubjectList string    `json:"subject_list"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewClassResponse converts a model into a DTO.
func NewClassResponse(model models.SchoolClass) ClassResponse {
	return ClassResponse{
		ID:          model.ID,
		ClassName:   model.ClassName,
		ClassNumber: model.ClassNumber,
		MaxCapacity: model.MaxCapacity,
		IsActive:    model.IsActive,
		SubjectList: model.SubjectList,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewClassResponseSlice converts a slice of models into DTOs.
func NewClassResponseSlice(classes []models.SchoolClass) []ClassResponse {
	responses := make([]ClassResponse, 0, len(classes))
	for _, class := range classes {
		responses = append(responses, NewClassResponse(class))
	}

	return responses
}
