package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/dto"
	"github.com/studentresult/srms-api/internal/models"
	"github.com/studentresult/srms-api/internal/repository"
)

// Sentinel errors raised by the student service.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrDuplicateEmail  = errors.New("email already in use")
	ErrDuplicateRollNo = errors.New("roll number already in use")
)

// StudentService exposes student management use cases.
type StudentService interface {
	List(ctx context.Context) ([]dto.StudentResponse, error)
	ListActive(ctx context.Context) ([]dto.StudentResponse, error)
	ListByClass(ctx context.Context, className string) ([]dto.StudentResponse, error)
	Search(ctx context.Context, term string) ([]dto.StudentResponse, error)
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	GetByRollNo(ctx context.Context, rollNo string) (dto.StudentResponse, error)
	Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error)
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService builds a new student service.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) ListActive(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) ListByClass(ctx context.Context, className string) ([]dto.StudentResponse, error) {
	students, err := s.repo.ListByClass(ctx, strings.TrimSpace(className))
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) Search(ctx context.Context, term string) ([]dto.StudentResponse, error) {
	students, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) GetByRollNo(ctx context.Context, rollNo string) (dto.StudentResponse, error) {
	student, err := s.repo.GetByRollNo(ctx, strings.TrimSpace(rollNo))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	email := strings.TrimSpace(payload.Email)
	rollNo := strings.TrimSpace(payload.RollNo)

	if taken, err := s.repo.ExistsByEmail(ctx, email, 0); err != nil {
		return dto.StudentResponse{}, err
	} else if taken {
		return dto.StudentResponse{}, ErrDuplicateEmail
	}

	if taken, err := s.repo.ExistsByRollNo(ctx, rollNo, 0); err != nil {
		return dto.StudentResponse{}, err
	} else if taken {
		return dto.StudentResponse{}, ErrDuplicateRollNo
	}

	student := models.Student{
		Name:      strings.TrimSpace(payload.Name),
		Email:     email,
		ClassName: strings.TrimSpace(payload.ClassName),
		RollNo:    rollNo,
		Phone:     strings.TrimSpace(payload.Phone),
		DOB:       models.NormalizeDOB(strings.TrimSpace(payload.DOB)),
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Str("roll_no", student.RollNo).Msg("student created")

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	if payload.Email != nil {
		email := strings.TrimSpace(*payload.Email)
		if taken, err := s.repo.ExistsByEmail(ctx, email, id); err != nil {
			return dto.StudentResponse{}, err
		} else if taken {
			return dto.StudentResponse{}, ErrDuplicateEmail
		}
		student.Email = email
	}

	if payload.RollNo != nil {
		rollNo := strings.TrimSpace(*payload.RollNo)
		if taken, err := s.repo.ExistsByRollNo(ctx, rollNo, id); err != nil {
			return dto.StudentResponse{}, err
		} else if taken {
			return dto.StudentResponse{}, ErrDuplicateRollNo
		}
		student.RollNo = rollNo
	}

	if payload.Name != nil {
		student.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.ClassName != nil {
		student.ClassName = strings.TrimSpace(*payload.ClassName)
	}
	if payload.Phone != nil {
		student.Phone = strings.TrimSpace(*payload.Phone)
	}
	if payload.DOB != nil {
		student.DOB = models.NormalizeDOB(strings.TrimSpace(*payload.DOB))
	}
	if payload.IsActive != nil {
		student.IsActive = *payload.IsActive
	}

	if err := s.repo.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student updated")

	return dto.NewStudentResponse(student), nil
}

// Deactivate soft-deletes the student by flipping the active flag.
func (s *studentService) Deactivate(ctx context.Context, id uint) error {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	student.IsActive = false
	if err := s.repo.Update(ctx, &student); err != nil {
		return err
	}

	s.logger.Info().Uint("student_id", id).Msg("student deactivated")
	return nil
}

// Delete removes the student row permanently.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	s.logger.Info().Uint("student_id", id).Msg("student permanently deleted")
	return nil
}
