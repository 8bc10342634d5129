package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/dto"
	"github.com/studentresult/srms-api/internal/models"
	"github.com/studentresult/srms-api/internal/repository"
)

// Sentinel errors raised by the recheck service.
var (
	ErrRecheckNotFound    = errors.New("recheck request not found")
	ErrSubjectRequired    = errors.New("subject must not be empty")
	ErrReasonTooShort     = errors.New("reason must be at least 10 characters")
	ErrInvalidTransition  = errors.New("recheck request is already resolved")
	ErrInvalidStatusValue = errors.New("invalid recheck status")
)

// minReasonLength is measured on the trimmed reason text.
const minReasonLength = 10

// RecheckService exposes recheck-request use cases.
type RecheckService interface {
	List(ctx context.Context) ([]dto.RecheckResponse, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dto.RecheckResponse, error)
	ListByStatus(ctx context.Context, status string) ([]dto.RecheckResponse, error)
	Get(ctx context.Context, id uint) (dto.RecheckResponse, error)
	Create(ctx context.Context, payload dto.RecheckCreateRequest) (dto.RecheckResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string) (dto.RecheckResponse, error)
	UpdateNotes(ctx context.Context, id uint, payload dto.RecheckNotesRequest) (dto.RecheckResponse, error)
	Delete(ctx context.Context, id uint) error
}

type recheckService struct {
	repo      repository.RecheckRepository
	students  repository.StudentRepository
	marks     repository.MarksRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewRecheckService builds a new recheck service.
func NewRecheckService(repo repository.RecheckRepository, students repository.StudentRepository, marks repository.MarksRepository, validate *validator.Validate, logger zerolog.Logger) RecheckService {
	return &recheckService{
		repo:      repo,
		students:  students,
		marks:     marks,
		validator: validate,
		logger:    logger.With().Str("component", "recheck_service").Logger(),
		now:       time.Now,
	}
}

func (s *recheckService) List(ctx context.Context) ([]dto.RecheckResponse, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewRecheckResponseSlice(requests), nil
}

func (s *recheckService) ListByStudent(ctx context.Context, studentID uint) ([]dto.RecheckResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	requests, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewRecheckResponseSlice(requests), nil
}

func (s *recheckService) ListByStatus(ctx context.Context, status string) ([]dto.RecheckResponse, error) {
	parsed, err := models.ParseRecheckStatus(status)
	if err != nil {
		return nil, ErrInvalidStatusValue
	}

	requests, err := s.repo.ListByStatus(ctx, parsed)
	if err != nil {
		return nil, err
	}

	return dto.NewRecheckResponseSlice(requests), nil
}

func (s *recheckService) Get(ctx context.Context, id uint) (dto.RecheckResponse, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RecheckResponse{}, ErrRecheckNotFound
		}
		return dto.RecheckResponse{}, err
	}

	return dto.NewRecheckResponse(request), nil
}

// Create validates the request, verifies the referenced student and marks row
// exist, and stores a PENDING request stamped with the server clock.
func (s *recheckService) Create(ctx context.Context, payload dto.RecheckCreateRequest) (dto.RecheckResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RecheckResponse{}, err
	}

	subject := strings.TrimSpace(payload.Subject)
	if subject == "" {
		return dto.RecheckResponse{}, ErrSubjectRequired
	}

	reason := strings.TrimSpace(payload.Reason)
	if len(reason) < minReasonLength {
		return dto.RecheckResponse{}, ErrReasonTooShort
	}

	student, err := s.students.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RecheckResponse{}, ErrStudentNotFound
		}
		return dto.RecheckResponse{}, err
	}

	if _, err := s.marks.GetByID(ctx, payload.MarksID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RecheckResponse{}, ErrMarksNotFound
		}
		return dto.RecheckResponse{}, err
	}

	request := models.RecheckRequest{
		StudentID:   student.ID,
		Student:     student,
		MarksID:     payload.MarksID,
		Subject:     subject,
		Reason:      reason,
		Status:      models.RecheckStatusPending,
		RequestDate: s.now(),
	}

	if err := s.repo.Create(ctx, &request); err != nil {
		return dto.RecheckResponse{}, err
	}

	s.logger.Info().
		Uint("recheck_id", request.ID).
		Uint("student_id", student.ID).
		Uint("marks_id", request.MarksID).
		Msg("recheck request created")

	return dto.NewRecheckResponse(request), nil
}

// UpdateStatus transitions a PENDING request to a terminal state and stamps
// the resolution time. Resolved requests cannot change state again and
// PENDING is never re-entered.
func (s *recheckService) UpdateStatus(ctx context.Context, id uint, status string) (dto.RecheckResponse, error) {
	parsed, err := models.ParseRecheckStatus(status)
	if err != nil {
		return dto.RecheckResponse{}, ErrInvalidStatusValue
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RecheckResponse{}, ErrRecheckNotFound
		}
		return dto.RecheckResponse{}, err
	}

	if request.Status != models.RecheckStatusPending || parsed == models.RecheckStatusPending {
		return dto.RecheckResponse{}, ErrInvalidTransition
	}

	resolvedAt := s.now()
	request.Status = parsed
	request.ResolvedAt = &resolvedAt

	if err := s.repo.Update(ctx, &request); err != nil {
		return dto.RecheckResponse{}, err
	}

	s.logger.Info().
		Uint("recheck_id", request.ID).
		Str("status", string(parsed)).
		Msg("recheck request resolved")

	return dto.NewRecheckResponse(request), nil
}

func (s *recheckService) UpdateNotes(ctx context.Context, id uint, payload dto.RecheckNotesRequest) (dto.RecheckResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RecheckResponse{}, err
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RecheckResponse{}, ErrRecheckNotFound
		}
		return dto.RecheckResponse{}, err
	}

	request.AdminNotes = strings.TrimSpace(payload.AdminNotes)
	if err := s.repo.Update(ctx, &request); err != nil {
		return dto.RecheckResponse{}, err
	}

	return dto.NewRecheckResponse(request), nil
}

func (s *recheckService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecheckNotFound
		}
		return err
	}

	s.logger.Info().Uint("recheck_id", id).Msg("recheck request deleted")
	return nil
}
