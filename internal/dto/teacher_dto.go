package dto

import (
	"time"

	"github.com/studentresult/srms-api/internal/models"
)

// TeacherCreateRequest describes the payload for adding a teacher. The login
// password is generated server-side and must not be supplied.
type TeacherCreateRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Subjects   string `json:"subjects" validate:"omitempty,max=500"`
	Experience int    `json:"experience" validate:"omitempty,gte=0"`
}

// TeacherUpdateRequest describes the payload for updating a teacher. A
// password is only changed when explicitly provided.
type TeacherUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Password   *string `json:"password" validate:"omitempty,min=4,max=255"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Subjects   *string `json:"subjects" validate:"omitempty,max=500"`
	Experience *int    `json:"experience" validate:"omitempty,gte=0"`
	IsActive   *bool   `json:"is_active"`
}

// TeacherResponse is the serialized representation returned to API clients.
type TeacherResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Phone      string    `json:"phone"`
	Subjects   string    `json:"subjects"`
	Experience int       `json:"experience"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewTeacherResponse converts a model into a DTO.
func NewTeacherResponse(model models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:         model.ID,
		Name:       model.Name,
		Email:      model.Email,
		Password:   model.Password,
		Phone:      model.Phone,
		Subjects:   model.Subjects,
		Experience: model.Experience,
		IsActive:   model.IsActive,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// NewTeacherResponseSlice converts a slice of models into DTOs.
func NewTeacherResponseSlice(teachers []models.Teacher) []TeacherResponse {
	responses := make([]TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		responses = append(responses, NewTeacherResponse(teacher))
	}

	return responses
}
