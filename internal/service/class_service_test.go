package service

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/dto"
	"github.com/studentresult/srms-api/internal/models"
)

type memoryClassRepo struct {
	classes map[uint]models.SchoolClass
	nextID  uint
}

func newMemoryClassRepo() *memoryClassRepo {
	return &memoryClassRepo{classes: make(map[uint]models.SchoolClass), nextID: 1}
}

func (m *memoryClassRepo) List(ctx context.Context) ([]models.SchoolClass, error) {
	results := make([]models.SchoolClass, 0, len(m.classes))
	for _, class := range m.classes {
		results = append(results, class)
	}
	return results, nil
}

func (m *memoryClassRepo) ListActive(ctx context.Context) ([]models.SchoolClass, error) {
	results := make([]models.SchoolClass, 0)
	for _, class := range m.classes {
		if class.IsActive {
			results = append(results, class)
		}
	}
	return results, nil
}

func (m *memoryClassRepo) ListByNumber(ctx context.Context, classNumber int) ([]models.SchoolClass, error) {
	results := make([]models.SchoolClass, 0)
	for _, class := range m.classes {
		if class.ClassNumber == classNumber {
			results = append(results, class)
		}
	}
	return results, nil
}

func (m *memoryClassRepo) GetByID(ctx context.Context, id uint) (models.SchoolClass, error) {
	class, ok := m.classes[id]
	if !ok {
		return models.SchoolClass{}, gorm.ErrRecordNotFound
	}
	return class, nil
}

func (m *memoryClassRepo) GetByName(ctx context.Context, className string) (models.SchoolClass, error) {
	for _, class := range m.classes {
		if strings.EqualFold(class.ClassName, className) {
			return class, nil
		}
	}
	return models.SchoolClass{}, gorm.ErrRecordNotFound
}

func (m *memoryClassRepo) ExistsByName(ctx context.Context, className string, excludeID uint) (bool, error) {
	for _, class := range m.classes {
		if class.ID != excludeID && strings.EqualFold(class.ClassName, className) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryClassRepo) Create(ctx context.Context, class *models.SchoolClass) error {
	class.ID = m.nextID
	m.classes[m.nextID] = *class
	m.nextID++
	return nil
}

func (m *memoryClassRepo) Update(ctx context.Context, class *models.SchoolClass) error {
	if _, ok := m.classes[class.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.classes[class.ID] = *class
	return nil
}

func (m *memoryClassRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.classes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.classes, id)
	return nil
}

func TestClassServiceCreateRejectsDuplicateName(t *testing.T) {
	repo := newMemoryClassRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewClassService(repo, validate, testLogger())

	payload := dto.ClassCreateRequest{
		ClassName:   "Class 10A",
		ClassNumber: 10,
		MaxCapacity: 40,
		SubjectList: "Mathematics, Physics, Chemistry",
	}

	created, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	require.True(t, created.IsActive)

	_, err = svc.Create(context.Background(), payload)
	require.ErrorIs(t, err, ErrDuplicateClassName)
}

func TestClassServiceUpdateRejectsRenameCollision(t *testing.T) {
	repo := newMemoryClassRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewClassService(repo, validate, testLogger())

	first, err := svc.Create(context.Background(), dto.ClassCreateRequest{ClassName: "Class 10A", ClassNumber: 10, MaxCapacity: 40})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.ClassCreateRequest{ClassName: "Class 10B", ClassNumber: 10, MaxCapacity: 40})
	require.NoError(t, err)

	name := "Class 10B"
	_, err = svc.Update(context.Background(), first.ID, dto.ClassUpdateRequest{ClassName: &name})
	require.ErrorIs(t, err, ErrDuplicateClassName)

	// Renaming to its own current name is allowed.
	own := "Class 10A"
	_, err = svc.Update(context.Background(), first.ID, dto.ClassUpdateRequest{ClassName: &own})
	require.NoError(t, err)
}

func TestClassServiceGetMissing(t *testing.T) {
	repo := newMemoryClassRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewClassService(repo, validate, testLogger())

	_, err := svc.Get(context.Background(), 3)
	require.ErrorIs(t, err, ErrClassNotFound)
}
