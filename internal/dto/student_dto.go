package dto

import (
	"time"

	"github.com/studentresult/srms-api/internal/models"
)

// StudentCreateRequest describes the payload for registering a student.
type StudentCreateRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	ClassName string `json:"class_name" validate:"required,max=50"`
	RollNo    string `json:"roll_no" validate:"required,max=20"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	DOB       string `json:"dob" validate:"omitempty,max=100"`
}

// StudentUpdateRequest describes the payload for updating a student.
type StudentUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email     *string `json:"email" validate:"omitempty,email"`
	ClassName *string `json:"class_name" validate:"omitempty,max=50"`
	RollNo    *string `json:"roll_no" validate:"omitempty,max=20"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	DOB       *string `json:"dob" validate:"omitempty,max=100"`
	IsActive  *bool   `json:"is_active"`
}

// StudentResponse is the serialized representation returned to API clients.
type StudentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ClassName string    `json:"class_name"`
	RollNo    string    `json:"roll_no"`
	Phone     string    `json:"phone"`
	DOB       string    `json:"dob"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		ClassName: model.ClassName,
		RollNo:    model.RollNo,
		Phone:     model.Phone,
		DOB:       model.DOB,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}

	return responses
}
