package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type memoryStudentRepo struct {
	students map[uint]models.Student
	nextID   uint
}

func newMemoryStudentRepo() *memoryStudentRepo {
	return &memoryStudentRepo{students: make(map[uint]models.Student), nextID: 1}
}

func (m *memoryStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	results := make([]models.Student, 0, len(m.students))
	for _, student := range m.students {
		results = append(results, student)
	}
	return results, nil
}

func (m *memoryStudentRepo) ListActive(ctx context.Context) ([]models.Student, error) {
	results := make([]models.Student, 0, len(m.students))
	for _, student := range m.students {
		if student.IsActive {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) ListByClass(ctx context.Context, className string) ([]models.Student, error) {
	results := make([]models.Student, 0)
	for _, student := range m.students {
		if student.ClassName == className {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) Search(ctx context.Context, term string) ([]models.Student, error) {
	needle := strings.ToLower(term)
	results := make([]models.Student, 0)
	for _, student := range m.students {
		if strings.Contains(strings.ToLower(student.Name), needle) ||
			strings.Contains(strings.ToLower(student.Email), needle) {
			results = append(results, student)
		}
	}
	return results, nil
}

func (m *memoryStudentRepo) GetByID(ctx context.Context, id uint) (models.Student, error) {
	student, ok := m.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (m *memoryStudentRepo) GetByEmail(ctx context.Context, email string) (models.Student, error) {
	for _, student := range m.students {
		if strings.EqualFold(student.Email, email) {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (m *memoryStudentRepo) GetByRollNo(ctx context.Context, rollNo string) (models.Student, error) {
	for _, student := range m.students {
		if student.RollNo == rollNo {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (m *memoryStudentRepo) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	for _, student := range m.students {
		if student.ID != excludeID && strings.EqualFold(student.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStudentRepo) ExistsByRollNo(ctx context.Context, rollNo string, excludeID uint) (bool, error) {
	for _, student := range m.students {
		if student.ID != excludeID && student.RollNo == rollNo {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = m.nextID
	student.CreatedAt = time.Now()
	student.UpdatedAt = time.Now()
	m.students[m.nextID] = *student
	m.nextID++
	return nil
}

func (m *memoryStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	student.UpdatedAt = time.Now()
	m.students[student.ID] = *student
	return nil
}

func (m *memoryStudentRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.students[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.students, id)
	return nil
}

type memoryTeacherRepo struct {
	teachers map[uint]models.Teacher
	nextID   uint
}

func newMemoryTeacherRepo() *memoryTeacherRepo {
	return &memoryTeacherRepo{teachers: make(map[uint]models.Teacher), nextID: 1}
}

func (m *memoryTeacherRepo) List(ctx context.Context) ([]models.Teacher, error) {
	results := make([]models.Teacher, 0, len(m.teachers))
	for _, teacher := range m.teachers {
		results = append(results, teacher)
	}
	return results, nil
}

func (m *memoryTeacherRepo) ListActive(ctx context.Context) ([]models.Teacher, error) {
	results := make([]models.Teacher, 0)
	for _, teacher := range m.teachers {
		if teacher.IsActive {
			results = append(results, teacher)
		}
	}
	return results, nil
}

func (m *memoryTeacherRepo) ListBySubject(ctx context.Context, subject string) ([]models.Teacher, error) {
	needle := strings.ToLower(subject)
	results := make([]models.Teacher, 0)
	for _, teacher := range m.teachers {
		if strings.Contains(strings.ToLower(teacher.Subjects), needle) {
			results = append(results, teacher)
		}
	}
	return results, nil
}

func (m *memoryTeacherRepo) Search(ctx context.Context, term string) ([]models.Teacher, error) {
	needle := strings.ToLower(term)
	results := make([]models.Teacher, 0)
	for _, teacher := range m.teachers {
		if strings.Contains(strings.ToLower(teacher.Name), needle) {
			results = append(results, teacher)
		}
	}
	return results, nil
}

func (m *memoryTeacherRepo) GetByID(ctx context.Context, id uint) (models.Teacher, error) {
	teacher, ok := m.teachers[id]
	if !ok {
		return models.Teacher{}, gorm.ErrRecordNotFound
	}
	return teacher, nil
}

func (m *memoryTeacherRepo) GetByEmail(ctx context.Context, email string) (models.Teacher, error) {
	for _, teacher := range m.teachers {
		if strings.EqualFold(teacher.Email, email) {
			return teacher, nil
		}
	}
	return models.Teacher{}, gorm.ErrRecordNotFound
}

func (m *memoryTeacherRepo) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	for _, teacher := range m.teachers {
		if teacher.ID != excludeID && strings.EqualFold(teacher.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	teacher.ID = m.nextID
	teacher.CreatedAt = time.Now()
	teacher.UpdatedAt = time.Now()
	m.teachers[m.nextID] = *teacher
	m.nextID++
	return nil
}

func (m *memoryTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	if _, ok := m.teachers[teacher.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	teacher.UpdatedAt = time.Now()
	m.teachers[teacher.ID] = *teacher
	return nil
}

func (m *memoryTeacherRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.teachers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.teachers, id)
	return nil
}

type memorySubjectRepo struct {
	subjects map[uint]models.Subject
	nextID   uint
}

func newMemorySubjectRepo() *memorySubjectRepo {
	return &memorySubjectRepo{subjects: make(map[uint]models.Subject), nextID: 1}
}

func (m *memorySubjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	results := make([]models.Subject, 0, len(m.subjects))
	for _, subject := range m.subjects {
		results = append(results, subject)
	}
	return results, nil
}

func (m *memorySubjectRepo) ListActive(ctx context.Context) ([]models.Subject, error) {
	results := make([]models.Subject, 0)
	for _, subject := range m.subjects {
		if subject.IsActive {
			results = append(results, subject)
		}
	}
	return results, nil
}

func (m *memorySubjectRepo) Search(ctx context.Context, term string) ([]models.Subject, error) {
	needle := strings.ToLower(term)
	results := make([]models.Subject, 0)
	for _, subject := range m.subjects {
		if strings.Contains(strings.ToLower(subject.Name), needle) {
			results = append(results, subject)
		}
	}
	return results, nil
}

func (m *memorySubjectRepo) GetByID(ctx context.Context, id uint) (models.Subject, error) {
	subject, ok := m.subjects[id]
	if !ok {
		return models.Subject{}, gorm.ErrRecordNotFound
	}
	return subject, nil
}

func (m *memorySubjectRepo) GetByName(ctx context.Context, name string) (models.Subject, error) {
	for _, subject := range m.subjects {
		if strings.EqualFold(subject.Name, name) {
			return subject, nil
		}
	}
	return models.Subject{}, gorm.ErrRecordNotFound
}

func (m *memorySubjectRepo) GetByCode(ctx context.Context, code string) (models.Subject, error) {
	for _, subject := range m.subjects {
		if strings.EqualFold(subject.Code, code) {
			return subject, nil
		}
	}
	return models.Subject{}, gorm.ErrRecordNotFound
}

func (m *memorySubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	subject.ID = m.nextID
	m.subjects[m.nextID] = *subject
	m.nextID++
	return nil
}

func (m *memorySubjectRepo) Update(ctx context.Context, subject *models.Subject) error {
	if _, ok := m.subjects[subject.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.subjects[subject.ID] = *subject
	return nil
}

func (m *memorySubjectRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.subjects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.subjects, id)
	return nil
}
