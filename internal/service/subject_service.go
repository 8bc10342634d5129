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

// ErrSubjectNotFound indicates the requested subject does not exist.
var ErrSubjectNotFound = errors.New("subject not found")

// SubjectService exposes subject management use cases.
type SubjectService interface {
	List(ctx context.Context) ([]dto.SubjectResponse, error)
	ListActive(ctx context.Context) ([]dto.SubjectResponse, error)
	ListByClass(ctx context.Context, className string) ([]dto.SubjectResponse, error)
	Search(ctx context.Context, term string) ([]dto.SubjectResponse, error)
	Get(ctx context.Context, id uint) (dto.SubjectResponse, error)
	GetByName(ctx context.Context, name string) (dto.SubjectResponse, error)
	GetByCode(ctx context.Context, code string) (dto.SubjectResponse, error)
	Create(ctx context.Context, payload dto.SubjectCreateRequest) (dto.SubjectResponse, error)
	Update(ctx context.Context, id uint, payload dto.SubjectUpdateRequest) (dto.SubjectResponse, error)
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type subjectService struct {
	repo      repository.SubjectRepository
	classes   repository.ClassRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubjectService builds a new subject service.
func NewSubjectService(repo repository.SubjectRepository, classes repository.ClassRepository, validate *validator.Validate, logger zerolog.Logger) SubjectService {
	return &subjectService{
		repo:      repo,
		classes:   classes,
		validator: validate,
		logger:    logger.With().Str("component", "subject_service").Logger(),
	}
}

func (s *subjectService) List(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewSubjectResponseSlice(subjects), nil
}

func (s *subjectService) ListActive(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewSubjectResponseSlice(subjects), nil
}

// ListByClass resolves the class by name and returns the subjects named in its
// comma-separated subject list.
func (s *subjectService) ListByClass(ctx context.Context, className string) ([]dto.SubjectResponse, error) {
	class, err := s.classes.GetByName(ctx, className)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	wanted := map[string]bool{}
	for _, name := range strings.Split(class.SubjectList, ",") {
		if trimmed := strings.ToLower(strings.TrimSpace(name)); trimmed != "" {
			wanted[trimmed] = true
		}
	}

	subjects, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Subject, 0, len(subjects))
	for _, subject := range subjects {
		if wanted[strings.ToLower(subject.Name)] {
			matched = append(matched, subject)
		}
	}

	return dto.NewSubjectResponseSlice(matched), nil
}

func (s *subjectService) Search(ctx context.Context, term string) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	return dto.NewSubjectResponseSlice(subjects), nil
}

func (s *subjectService) Get(ctx context.Context, id uint) (dto.SubjectResponse, error) {
	subject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubjectResponse{}, ErrSubjectNotFound
		}
		return dto.SubjectResponse{}, err
	}

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) GetByName(ctx context.Context, name string) (dto.SubjectResponse, error) {
	subject, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubjectResponse{}, ErrSubjectNotFound
		}
		return dto.SubjectResponse{}, err
	}

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) GetByCode(ctx context.Context, code string) (dto.SubjectResponse, error) {
	subject, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubjectResponse{}, ErrSubjectNotFound
		}
		return dto.SubjectResponse{}, err
	}

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) Create(ctx context.Context, payload dto.SubjectCreateRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject := models.Subject{
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		Code:        strings.TrimSpace(payload.Code),
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}

	s.logger.Info().Uint("subject_id", subject.ID).Msg("subject created")

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) Update(ctx context.Context, id uint, payload dto.SubjectUpdateRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubjectResponse{}, ErrSubjectNotFound
		}
		return dto.SubjectResponse{}, err
	}

	if payload.Name != nil {
		subject.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Description != nil {
		subject.Description = strings.TrimSpace(*payload.Description)
	}
	if payload.Code != nil {
		subject.Code = strings.TrimSpace(*payload.Code)
	}
	if payload.IsActive != nil {
		subject.IsActive = *payload.IsActive
	}

	if err := s.repo.Update(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}

	s.logger.Info().Uint("subject_id", subject.ID).Msg("subject updated")

	return dto.NewSubjectResponse(subject), nil
}

// Deactivate soft-deletes the subject by flipping the active flag.
func (s *subjectService) Deactivate(ctx context.Context, id uint) error {
	subject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	subject.IsActive = false
	if err := s.repo.Update(ctx, &subject); err != nil {
		return err
	}

	s.logger.Info().Uint("subject_id", id).Msg("subject deactivated")
	return nil
}

// Delete removes the subject row permanently.
func (s *subjectService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	s.logger.Info().Uint("subject_id", id).Msg("subject permanently deleted")
	return nil
}
