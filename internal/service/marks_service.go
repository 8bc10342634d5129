package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/dto"
	"github.com/studentresult/srms-api/internal/models"
	"github.com/studentresult/srms-api/internal/repository"
)

// Sentinel errors raised by the marks service.
var (
	ErrMarksNotFound  = errors.New("marks not found")
	ErrDuplicateMarks = errors.New("marks already added for this subject, term and year")
	ErrMarksExceedMax = errors.New("marks obtained exceed max marks")
)

// MarksService exposes marks recording and statistics use cases.
type MarksService interface {
	List(ctx context.Context) ([]dto.MarksResponse, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dto.MarksResponse, error)
	ListByClass(ctx context.Context, className string) ([]dto.MarksResponse, error)
	ListByStudentTermYear(ctx context.Context, studentID uint, term string, year int) ([]dto.MarksResponse, error)
	Get(ctx context.Context, id uint) (dto.MarksResponse, error)
	Create(ctx context.Context, payload dto.MarksCreateRequest) (dto.MarksResponse, error)
	Update(ctx context.Context, id uint, payload dto.MarksUpdateRequest) (dto.MarksResponse, error)
	SetRecheckRequested(ctx context.Context, id uint, requested bool) (dto.MarksResponse, error)
	Delete(ctx context.Context, id uint) error
	Statistics(ctx context.Context, studentID uint) (dto.MarksStatisticsResponse, error)
}

type marksService struct {
	repo      repository.MarksRepository
	students  repository.StudentRepository
	subjects  repository.SubjectRepository
	validator *validator.Validate
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    zerolog.Logger
	term      string
	year      int
	now       func() time.Time
}

// NewMarksService builds a new marks service. defaultTerm and defaultYear fill
// omitted term/year values on create; a defaultYear of zero means the current
// year. cache may be nil, in which case statistics are always recomputed.
func NewMarksService(repo repository.MarksRepository, students repository.StudentRepository, subjects repository.SubjectRepository, validate *validator.Validate, cache *redis.Client, cacheTTL time.Duration, defaultTerm string, defaultYear int, logger zerolog.Logger) MarksService {
	if defaultTerm == "" {
		defaultTerm = "Term 1"
	}

	return &marksService{
		repo:      repo,
		students:  students,
		subjects:  subjects,
		validator: validate,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger.With().Str("component", "marks_service").Logger(),
		term:      defaultTerm,
		year:      defaultYear,
		now:       time.Now,
	}
}

func (s *marksService) List(ctx context.Context) ([]dto.MarksResponse, error) {
	marks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewMarksResponseSlice(marks), nil
}

func (s *marksService) ListByStudent(ctx context.Context, studentID uint) ([]dto.MarksResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	marks, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewMarksResponseSlice(marks), nil
}

func (s *marksService) ListByClass(ctx context.Context, className string) ([]dto.MarksResponse, error) {
	marks, err := s.repo.ListByClass(ctx, strings.TrimSpace(className))
	if err != nil {
		return nil, err
	}

	return dto.NewMarksResponseSlice(marks), nil
}

func (s *marksService) ListByStudentTermYear(ctx context.Context, studentID uint, term string, year int) ([]dto.MarksResponse, error) {
	marks, err := s.repo.ListByStudentTermYear(ctx, studentID, term, year)
	if err != nil {
		return nil, err
	}

	return dto.NewMarksResponseSlice(marks), nil
}

func (s *marksService) Get(ctx context.Context, id uint) (dto.MarksResponse, error) {
	mark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MarksResponse{}, ErrMarksNotFound
		}
		return dto.MarksResponse{}, err
	}

	return dto.NewMarksResponse(mark), nil
}

// Create records a marks row after verifying the student and subject exist
// and no row exists yet for the same (student, subject, term, year) tuple.
func (s *marksService) Create(ctx context.Context, payload dto.MarksCreateRequest) (dto.MarksResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MarksResponse{}, err
	}

	student, err := s.students.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MarksResponse{}, ErrStudentNotFound
		}
		return dto.MarksResponse{}, err
	}

	subject, err := s.subjects.GetByID(ctx, payload.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MarksResponse{}, ErrSubjectNotFound
		}
		return dto.MarksResponse{}, err
	}

	term := strings.TrimSpace(payload.Term)
	if term == "" {
		term = s.term
	}

	year := payload.Year
	if year == 0 {
		year = s.defaultYear()
	}

	maxMarks := 100
	if payload.MaxMarks != nil {
		maxMarks = *payload.MaxMarks
	}

	if payload.MarksObtained > maxMarks {
		return dto.MarksResponse{}, fmt.Errorf("%w: %d > %d", ErrMarksExceedMax, payload.MarksObtained, maxMarks)
	}

	mark := models.Marks{
		StudentID:     student.ID,
		Student:       student,
		SubjectID:     subject.ID,
		Subject:       subject,
		MarksObtained: payload.MarksObtained,
		MaxMarks:      maxMarks,
		Term:          term,
		Year:          year,
	}

	if err := s.repo.CreateUnique(ctx, &mark); err != nil {
		if errors.Is(err, repository.ErrDuplicateMarks) {
			s.logger.Warn().
				Uint("student_id", student.ID).
				Uint("subject_id", subject.ID).
				Str("term", term).
				Int("year", year).
				Msg("duplicate marks rejected")
			return dto.MarksResponse{}, ErrDuplicateMarks
		}
		return dto.MarksResponse{}, err
	}

	s.invalidateStats(ctx, student.ID)
	s.logger.Info().Uint("marks_id", mark.ID).Uint("student_id", student.ID).Msg("marks recorded")

	return dto.NewMarksResponse(mark), nil
}

func (s *marksService) Update(ctx context.Context, id uint, payload dto.MarksUpdateRequest) (dto.MarksResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MarksResponse{}, err
	}

	mark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MarksResponse{}, ErrMarksNotFound
		}
		return dto.MarksResponse{}, err
	}

	if payload.MarksObtained != nil {
		mark.MarksObtained = *payload.MarksObtained
	}
	if payload.MaxMarks != nil {
		mark.MaxMarks = *payload.MaxMarks
	}
	if payload.Term != nil {
		mark.Term = strings.TrimSpace(*payload.Term)
	}
	if payload.Year != nil {
		mark.Year = *payload.Year
	}

	if mark.MarksObtained > mark.MaxMarks {
		return dto.MarksResponse{}, fmt.Errorf("%w: %d > %d", ErrMarksExceedMax, mark.MarksObtained, mark.MaxMarks)
	}

	if err := s.repo.Update(ctx, &mark); err != nil {
		return dto.MarksResponse{}, err
	}

	s.invalidateStats(ctx, mark.StudentID)
	s.logger.Info().Uint("marks_id", mark.ID).Msg("marks updated")

	return dto.NewMarksResponse(mark), nil
}

// SetRecheckRequested flips the recheck-requested flag on a marks row.
func (s *marksService) SetRecheckRequested(ctx context.Context, id uint, requested bool) (dto.MarksResponse, error) {
	mark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MarksResponse{}, ErrMarksNotFound
		}
		return dto.MarksResponse{}, err
	}

	mark.IsRecheckRequested = requested
	if err := s.repo.Update(ctx, &mark); err != nil {
		return dto.MarksResponse{}, err
	}

	return dto.NewMarksResponse(mark), nil
}

// Delete removes the marks row together with all recheck requests that
// reference it.
func (s *marksService) Delete(ctx context.Context, id uint) error {
	mark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMarksNotFound
		}
		return err
	}

	recheckCount, err := s.repo.DeleteWithRechecks(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMarksNotFound
		}
		return err
	}

	s.invalidateStats(ctx, mark.StudentID)
	s.logger.Info().
		Uint("marks_id", id).
		Int64("rechecks_deleted", recheckCount).
		Msg("marks deleted with cascading rechecks")

	return nil
}

// Statistics aggregates a student's marks into total, percentage, average,
// grade and pass status. Results are cached per student when a cache client
// is configured.
func (s *marksService) Statistics(ctx context.Context, studentID uint) (dto.MarksStatisticsResponse, error) {
	cacheKey := fmt.Sprintf("stats:student:%d", studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.MarksStatisticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("statistics cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read statistics cache")
		}
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MarksStatisticsResponse{}, ErrStudentNotFound
		}
		return dto.MarksStatisticsResponse{}, err
	}

	marks, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.MarksStatisticsResponse{}, err
	}

	response := buildStatistics(student, marks)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store statistics cache")
			}
		}
	}

	return response, nil
}

func buildStatistics(student models.Student, marks []models.Marks) dto.MarksStatisticsResponse {
	var totalObtained, totalMax int
	for _, mark := range marks {
		totalObtained += mark.MarksObtained
		totalMax += mark.MaxMarks
	}

	var percentage, average float64
	if len(marks) > 0 {
		average = float64(totalObtained) / float64(len(marks))
	}
	if totalMax > 0 {
		percentage = float64(totalObtained) * 100 / float64(totalMax)
	}

	return dto.MarksStatisticsResponse{
		StudentID:    student.ID,
		StudentName:  student.Name,
		SubjectCount: len(marks),
		TotalMarks:   totalObtained,
		Percentage:   roundTwo(percentage),
		Average:      roundTwo(average),
		Grade:        models.Grade(percentage),
		Status:       models.PassStatus(percentage),
	}
}

func roundTwo(value float64) float64 {
	return math.Round(value*100) / 100
}

func (s *marksService) defaultYear() int {
	if s.year > 0 {
		return s.year
	}
	return s.now().Year()
}

func (s *marksService) invalidateStats(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}

	cacheKey := fmt.Sprintf("stats:student:%d", studentID)
	if err := s.cache.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to invalidate statistics cache")
	}
}
