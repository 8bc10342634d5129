package dto

import (
	"time"

	"github.com/studentresult/srms-api/internal/models"
)

// MarksCreateRequest describes the payload for recording marks. Term and year
// default server-side when omitted.
type MarksCreateRequest struct {
	StudentID     uint   `json:"student_id" validate:"required,gt=0"`
	SubjectID     uint   `json:"subject_id" validate:"required,gt=0"`
	MarksObtained int    `json:"marks_obtained" validate:"gte=0"`
	MaxMarks      *int   `json:"max_marks" validate:"omitempty,gt=0"`
	Term          string `json:"term" validate:"omitempty,max=50"`
	Year          int    `json:"year" validate:"omitempty,gt=0"`
}

// MarksUpdateRequest describes the payload for correcting an existing marks row.
type MarksUpdateRequest struct {
	MarksObtained *int    `json:"marks_obtained" validate:"omitempty,gte=0"`
	MaxMarks      *int    `json:"max_marks" validate:"omitempty,gt=0"`
	Term          *string `json:"term" validate:"omitempty,max=50"`
	Year          *int    `json:"year" validate:"omitempty,gt=0"`
}

// MarksResponse is the serialized representation returned to API clients.
// Student and subject names are denormalized for display.
type MarksResponse struct {
	ID                 uint      `json:"id"`
	StudentID          uint      `json:"student_id"`
	StudentName        string    `json:"student_name"`
	SubjectID          uint      `json:"subject_id"`
	SubjectName        string    `json:"subject_name"`
	MarksObtained      int       `json:"marks_obtained"`
	MaxMarks           int       `json:"max_marks"`
	Term               string    `json:"term"`
	Year               int       `json:"year"`
	IsRecheckRequested bool      `json:"is_recheck_requested"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewMarksResponse converts a model into a DTO.
func NewMarksResponse(model models.Marks) MarksResponse {
	return MarksResponse{
		ID:                 model.ID,
		StudentID:          model.StudentID,
		StudentName:        model.Student.Name,
		SubjectID:          model.SubjectID,
		SubjectName:        model.Subject.Name,
		MarksObtained:      model.MarksObtained,
		MaxMarks:           model.MaxMarks,
		Term:               model.Term,
		Year:               model.Year,
		IsRecheckRequested: model.IsRecheckRequested,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

// NewMarksResponseSlice converts a slice of models into DTOs.
func NewMarksResponseSlice(marks []models.Marks) []MarksResponse {
	responses := make([]MarksResponse, 0, len(marks))
	for _, mark := range marks {
		responses = append(responses, NewMarksResponse(mark))
	}

	return responses
}

// MarksStatisticsResponse aggregates a student's results.
type MarksStatisticsResponse struct {
	StudentID    uint    `json:"student_id"`
	StudentName  string  `json:"student_name"`
	SubjectCount int     `json:"subject_count"`
	TotalMarks   int     `json:"total_marks"`
	Percentage   float64 `json:"percentage"`
	Average      float64 `json:"average"`
	Grade        string  `json:"grade"`
	Status       string  `json:"status"`
}
