package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/models"
)

// RecheckRepository defines persistence operations for recheck requests.
type RecheckRepository interface {
	List(ctx context.Context) ([]models.RecheckRequest, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.RecheckRequest, error)
	ListByStatus(ctx context.Context, status models.RecheckStatus) ([]models.RecheckRequest, error)
	GetByID(ctx context.Context, id uint) (models.RecheckRequest, error)
	Create(ctx context.Context, request *models.RecheckRequest) error
	Update(ctx context.Context, request *models.RecheckRequest) error
	Delete(ctx context.Context, id uint) error
}

type recheckRepository struct {
	db *gorm.DB
}

// NewRecheckRepository instantiates a GORM-backed repository.
func NewRecheckRepository(db *gorm.DB) RecheckRepository {
	return &recheckRepository{db: db}
}

func (r *recheckRepository) List(ctx context.Context) ([]models.RecheckRequest, error) {
	var requests []models.RecheckRequest
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Order("request_date DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *recheckRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.RecheckRequest, error) {
	var requests []models.RecheckRequest
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("student_id = ?", studentID).
		Order("request_date DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *recheckRepository) ListByStatus(ctx context.Context, status models.RecheckStatus) ([]models.RecheckRequest, error) {
	var requests []models.RecheckRequest
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("status = ?", status).
		Order("request_date DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *recheckRepository) GetByID(ctx context.Context, id uint) (models.RecheckRequest, error) {
	var request models.RecheckRequest
	if err := r.db.WithContext(ctx).
		Preload("Student").
		First(&request, id).Error; err != nil {
		return models.RecheckRequest{}, err
	}

	return request, nil
}

func (r *recheckRepository) Create(ctx context.Context, request *models.RecheckRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *recheckRepository) Update(ctx context.Context, request *models.RecheckRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *recheckRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.RecheckRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
