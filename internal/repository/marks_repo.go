package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/models"
)

// ErrDuplicateMarks signals that a marks row already exists for the same
// (student, subject, term, year) tuple.
var ErrDuplicateMarks = errors.New("marks already recorded for student, subject, term and year")

// MarksRepository defines persistence operations for marks rows.
type MarksRepository interface {
	List(ctx context.Context) ([]models.Marks, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Marks, error)
	ListByClass(ctx context.Context, className string) ([]models.Marks, error)
	ListByStudentTermYear(ctx context.Context, studentID uint, term string, year int) ([]models.Marks, error)
	GetByID(ctx context.Context, id uint) (models.Marks, error)
	CreateUnique(ctx context.Context, mark *models.Marks) error
	Update(ctx context.Context, mark *models.Marks) error
	DeleteWithRechecks(ctx context.Context, id uint) (int64, error)
}

type marksRepository struct {
	db *gorm.DB
}

// NewMarksRepository instantiates a GORM-backed repository.
func NewMarksRepository(db *gorm.DB) MarksRepository {
	return &marksRepository{db: db}
}

func (r *marksRepository) List(ctx context.Context) ([]models.Marks, error) {
	var marks []models.Marks
	if err := r.db.WithContext(ctx).
		Preload("Student").Preload("Subject").
		Order("year DESC, term ASC").
		Find(&marks).Error; err != nil {
		return nil, err
	}

	return marks, nil
}

func (r *marksRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Marks, error) {
	var marks []models.Marks
	if err := r.db.WithContext(ctx).
		Preload("Student").Preload("Subject").
		Where("student_id = ?", studentID).
		Order("year DESC, term ASC").
		Find(&marks).Error; err != nil {
		return nil, err
	}

	return marks, nil
}

func (r *marksRepository) ListByClass(ctx context.Context, className string) ([]models.Marks, error) {
	var marks []models.Marks
	if err := r.db.WithContext(ctx).
		Preload("Student").Preload("Subject").
		Joins("JOIN students ON students.id = marks.student_id").
		Where("students.class_name = ?", className).
		Order("marks.student_id ASC").
		Find(&marks).Error; err != nil {
		return nil, err
	}

	return marks, nil
}

func (r *marksRepository) ListByStudentTermYear(ctx context.Context, studentID uint, term string, year int) ([]models.Marks, error) {
	var marks []models.Marks
	if err := r.db.WithContext(ctx).
		Preload("Student").Preload("Subject").
		Where("student_id = ? AND term = ? AND year = ?", studentID, term, year).
		Find(&marks).Error; err != nil {
		return nil, err
	}

	return marks, nil
}

func (r *marksRepository) GetByID(ctx context.Context, id uint) (models.Marks, error) {
	var mark models.Marks
	if err := r.db.WithContext(ctx).
		Preload("Student").Preload("Subject").
		First(&mark, id).Error; err != nil {
		return models.Marks{}, err
	}

	return mark, nil
}

// CreateUnique inserts the marks row only when no row exists yet for the same
// (student, subject, term, year) tuple. Check and insert run in one
// transaction so concurrent requests cannot both pass the check.
func (r *marksRepository) CreateUnique(ctx context.Context, mark *models.Marks) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Marks{}).
			Where("student_id = ? AND subject_id = ? AND term = ? AND year = ?",
				mark.StudentID, mark.SubjectID, mark.Term, mark.Year).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return ErrDuplicateMarks
		}

		return tx.Create(mark).Error
	})
}

func (r *marksRepository) Update(ctx context.Context, mark *models.Marks) error {
	return r.db.WithContext(ctx).Save(mark).Error
}

// DeleteWithRechecks removes the marks row and every recheck request that
// references it inside one transaction, returning the number of recheck rows
// deleted.
func (r *marksRepository) DeleteWithRechecks(ctx context.Context, id uint) (int64, error) {
	var recheckCount int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mark models.Marks
		if err := tx.First(&mark, id).Error; err != nil {
			return err
		}

		result := tx.Where("marks_id = ?", id).Delete(&models.RecheckRequest{})
		if result.Error != nil {
			return result.Error
		}
		recheckCount = result.RowsAffected

		return tx.Delete(&models.Marks{}, id).Error
	})
	if err != nil {
		return 0, err
	}

	return recheckCount, nil
}
