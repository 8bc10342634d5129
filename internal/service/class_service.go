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

// Sentinel errors raised by the class service.
var (
	ErrClassNotFound      = errors.New("class not found")
	ErrDuplicateClassName = errors.New("class name already in use")
)

// ClassService exposes school-class management use cases.
type ClassService interface {
	List(ctx context.Context) ([]dto.ClassResponse, error)
	ListActive(ctx context.Context) ([]dto.ClassResponse, error)
	ListByNumber(ctx context.Context, classNumber int) ([]dto.ClassResponse, error)
	Get(ctx context.Context, id uint) (dto.ClassResponse, error)
	GetByName(ctx context.Context, className string) (dto.ClassResponse, error)
	Create(ctx context.Context, payload dto.ClassCreateRequest) (dto.ClassResponse, error)
	Update(ctx context.Context, id uint, payload dto.ClassUpdateRequest) (dto.ClassResponse, error)
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type classService struct {
	repo      repository.ClassRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewClassService builds a new class service.
func NewClassService(repo repository.ClassRepository, validate *validator.Validate, logger zerolog.Logger) ClassService {
	return &classService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) List(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewClassResponseSlice(classes), nil
}

func (s *classService) ListActive(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewClassResponseSlice(classes), nil
}

func (s *classService) ListByNumber(ctx context.Context, classNumber int) ([]dto.ClassResponse, error) {
	classes, err := s.repo.ListByNumber(ctx, classNumber)
	if err != nil {
		return nil, err
	}

	return dto.NewClassResponseSlice(classes), nil
}

func (s *classService) Get(ctx context.Context, id uint) (dto.ClassResponse, error) {
	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class), nil
}

func (s *classService) GetByName(ctx context.Context, className string) (dto.ClassResponse, error) {
	class, err := s.repo.GetByName(ctx, className)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class), nil
}

func (s *classService) Create(ctx context.Context, payload dto.ClassCreateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	className := strings.TrimSpace(payload.ClassName)
	if taken, err := s.repo.ExistsByName(ctx, className, 0); err != nil {
		return dto.ClassResponse{}, err
	} else if taken {
		return dto.ClassResponse{}, ErrDuplicateClassName
	}

	class := models.SchoolClass{
		ClassName:   className,
		ClassNumber: payload.ClassNumber,
		MaxCapacity: payload.MaxCapacity,
		SubjectList: strings.TrimSpace(payload.SubjectList),
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Uint("class_id", class.ID).Str("class_name", class.ClassName).Msg("class created")

	return dto.NewClassResponse(class), nil
}

func (s *classService) Update(ctx context.Context, id uint, payload dto.ClassUpdateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	if payload.ClassName != nil {
		className := strings.TrimSpace(*payload.ClassName)
		if taken, err := s.repo.ExistsByName(ctx, className, id); err != nil {
			return dto.ClassResponse{}, err
		} else if taken {
			return dto.ClassResponse{}, ErrDuplicateClassName
		}
		class.ClassName = className
	}

	if payload.ClassNumber != nil {
		class.ClassNumber = *payload.ClassNumber
	}
	if payload.MaxCapacity != nil {
		class.MaxCapacity = *payload.MaxCapacity
	}
	if payload.SubjectList != nil {
		class.SubjectList = strings.TrimSpace(*payload.SubjectList)
	}
	if payload.IsActive != nil {
		class.IsActive = *payload.IsActive
	}

	if err := s.repo.Update(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Uint("class_id", class.ID).Msg("class updated")

	return dto.NewClassResponse(class), nil
}

// Deactivate soft-deletes the class by flipping the active flag.
func (s *classService) Deactivate(ctx context.Context, id uint) error {
	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	class.IsActive = false
	if err := s.repo.Update(ctx, &class); err != nil {
		return err
	}

	s.logger.Info().Uint("class_id", id).Msg("class deactivated")
	return nil
}

// Delete removes the class row permanently.
func (s *classService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	s.logger.Info().Uint("class_id", id).Msg("class permanently deleted")
	return nil
}
