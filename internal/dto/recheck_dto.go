package dto

import (
	"time"

	"github.com/studentresult/srms-api/internal/models"
)

// RecheckCreateRequest describes the payload a student submits to request a
// re-evaluation of one marks row.
type RecheckCreateRequest struct {
	StudentID uint   `json:"student_id" validate:"required,gt=0"`
	MarksID   uint   `json:"marks_id" validate:"required,gt=0"`
	Subject   string `json:"subject" validate:"required,max=100"`
	Reason    string `json:"reason" validate:"required"`
}

// RecheckNotesRequest carries updated admin notes for a recheck request.
type RecheckNotesRequest struct {
	AdminNotes string `json:"admin_notes" validate:"required"`
}

// RecheckResponse is the serialized representation returned to API clients.
type RecheckResponse struct {
	ID          uint       `json:"id"`
	StudentID   uint       `json:"student_id"`
	StudentName string     `json:"student_name"`
	MarksID     uint       `json:"marks_id"`
	Subject     string     `json:"subject"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	RequestDate time.Time  `json:"request_date"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	AdminNotes  string     `json:"admin_notes"`
}

// NewRecheckResponse converts a model into a DTO.
func NewRecheckResponse(model models.RecheckRequest) RecheckResponse {
	return RecheckResponse{
		ID:          model.ID,
		StudentID:   model.StudentID,
		StudentName: model.Student.Name,
		MarksID:     model.MarksID,
		Subject:     model.Subject,
		Reason:      model.Reason,
		Status:      string(model.Status),
		RequestDate: model.RequestDate,
		ResolvedAt:  model.ResolvedAt,
		AdminNotes:  model.AdminNotes,
	}
}

// NewRecheckResponseSlice converts a slice of models into DTOs.
func NewRecheckResponseSlice(requests []models.RecheckRequest) []RecheckResponse {
	responses := make([]RecheckResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, NewRecheckResponse(request))
	}

	return responses
}
