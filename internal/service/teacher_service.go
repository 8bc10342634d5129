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

// ErrTeacherNotFound indicates the requested teacher does not exist.
var ErrTeacherNotFound = errors.New("teacher not found")

// TeacherService exposes teacher management use cases.
type TeacherService interface {
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	ListActive(ctx context.Context) ([]dto.TeacherResponse, error)
	ListBySubject(ctx context.Context, subject string) ([]dto.TeacherResponse, error)
	Search(ctx context.Context, term string) ([]dto.TeacherResponse, error)
	Get(ctx context.Context, id uint) (dto.TeacherResponse, error)
	GetByEmail(ctx context.Context, email string) (dto.TeacherResponse, error)
	Create(ctx context.Context, payload dto.TeacherCreateRequest) (dto.TeacherResponse, error)
	Update(ctx context.Context, id uint, payload dto.TeacherUpdateRequest) (dto.TeacherResponse, error)
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type teacherService struct {
	repo      repository.TeacherRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTeacherService builds a new teacher service.
func NewTeacherService(repo repository.TeacherRepository, validate *validator.Validate, logger zerolog.Logger) TeacherService {
	return &teacherService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) ListActive(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) ListBySubject(ctx context.Context, subject string) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.ListBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) Search(ctx context.Context, term string) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) Get(ctx context.Context, id uint) (dto.TeacherResponse, error) {
	teacher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}

	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) GetByEmail(ctx context.Context, email string) (dto.TeacherResponse, error) {
	teacher, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}

	return dto.NewTeacherResponse(teacher), nil
}

// Create registers a teacher and assigns the system-generated login password.
// The password stays as generated until a later update explicitly replaces it.
func (s *teacherService) Create(ctx context.Context, payload dto.TeacherCreateRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeacherResponse{}, err
	}

	email := strings.TrimSpace(payload.Email)
	if taken, err := s.repo.ExistsByEmail(ctx, email, 0); err != nil {
		return dto.TeacherResponse{}, err
	} else if taken {
		return dto.TeacherResponse{}, ErrDuplicateEmail
	}

	name := strings.TrimSpace(payload.Name)
	phone := strings.TrimSpace(payload.Phone)

	teacher := models.Teacher{
		Name:       name,
		Email:      email,
		Password:   models.GenerateTeacherPassword(name, phone),
		Phone:      phone,
		Subjects:   strings.TrimSpace(payload.Subjects),
		Experience: payload.Experience,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, &teacher); err != nil {
		return dto.TeacherResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher created with generated password")

	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) Update(ctx context.Context, id uint, payload dto.TeacherUpdateRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}

	if payload.Email != nil {
		email := strings.TrimSpace(*payload.Email)
		if taken, err := s.repo.ExistsByEmail(ctx, email, id); err != nil {
			return dto.TeacherResponse{}, err
		} else if taken {
			return dto.TeacherResponse{}, ErrDuplicateEmail
		}
		teacher.Email = email
	}

	if payload.Name != nil {
		teacher.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Password != nil {
		teacher.Password = *payload.Password
	}
	if payload.Phone != nil {
		teacher.Phone = strings.TrimSpace(*payload.Phone)
	}
	if payload.Subjects != nil {
		teacher.Subjects = strings.TrimSpace(*payload.Subjects)
	}
	if payload.Experience != nil {
		teacher.Experience = *payload.Experience
	}
	if payload.IsActive != nil {
		teacher.IsActive = *payload.IsActive
	}

	if err := s.repo.Update(ctx, &teacher); err != nil {
		return dto.TeacherResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher updated")

	return dto.NewTeacherResponse(teacher), nil
}

// Deactivate soft-deletes the teacher by flipping the active flag.
func (s *teacherService) Deactivate(ctx context.Context, id uint) error {
	teacher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}

	teacher.IsActive = false
	if err := s.repo.Update(ctx, &teacher); err != nil {
		return err
	}

	s.logger.Info().Uint("teacher_id", id).Msg("teacher deactivated")
	return nil
}

// Delete removes the teacher row permanently.
func (s *teacherService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}

	s.logger.Info().Uint("teacher_id", id).Msg("teacher permanently deleted")
	return nil
}
