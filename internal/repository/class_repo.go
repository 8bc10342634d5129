package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/models"
)

// ClassRepository defines persistence operations for school classes.
type ClassRepository interface {
	List(ctx context.Context) ([]models.SchoolClass, error)
	ListActive(ctx context.Context) ([]models.SchoolClass, error)
	ListByNumber(ctx context.Context, classNumber int) ([]models.SchoolClass, error)
	GetByID(ctx context.Context, id uint) (models.SchoolClass, error)
	GetByName(ctx context.Context, className string) (models.SchoolClass, error)
	ExistsByName(ctx context.Context, className string, excludeID uint) (bool, error)
	Create(ctx context.Context, class *models.SchoolClass) error
	Update(ctx context.Context, class *models.SchoolClass) error
	Delete(ctx context.Context, id uint) error
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository instantiates a GORM-backed repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) List(ctx context.Context) ([]models.SchoolClass, error) {
	var classes []models.SchoolClass
	if err := r.db.WithContext(ctx).Order("class_number ASC, class_name ASC").Find(&classes).Error; err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *classRepository) ListActive(ctx context.Context) ([]models.SchoolClass, error) {
	var classes []models.SchoolClass
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("class_number ASC, class_name ASC").
		Find(&classes).Error; err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *classRepository) ListByNumber(ctx context.Context, classNumber int) ([]models.SchoolClass, error) {
	var classes []models.SchoolClass
	if err := r.db.WithContext(ctx).
		Where("class_number = ?", classNumber).
		Order("class_name ASC").
		Find(&classes).Error; err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (models.SchoolClass, error) {
	var class models.SchoolClass
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return models.SchoolClass{}, err
	}

	return class, nil
}

func (r *classRepository) GetByName(ctx context.Context, className string) (models.SchoolClass, error) {
	var class models.SchoolClass
	if err := r.db.WithContext(ctx).
		Where("LOWER(class_name) = ?", strings.ToLower(strings.TrimSpace(className))).
		First(&class).Error; err != nil {
		return models.SchoolClass{}, err
	}

	return class, nil
}

func (r *classRepository) ExistsByName(ctx context.Context, className string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SchoolClass{}).
		Where("LOWER(class_name) = ?", strings.ToLower(strings.TrimSpace(className)))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *classRepository) Create(ctx context.Context, class *models.SchoolClass) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) Update(ctx context.Context, class *models.SchoolClass) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.SchoolClass{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
