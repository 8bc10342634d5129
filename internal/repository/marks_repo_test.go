package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.Subject{},
		&models.SchoolClass{},
		&models.Marks{},
		&models.RecheckRequest{},
		&models.User{},
	))
	return db
}

func seedStudentAndSubject(t *testing.T, db *gorm.DB) (models.Student, models.Subject) {
	t.Helper()
	student := models.Student{Name: "Priya Sharma", Email: "priya@example.com", ClassName: "Class 10A", RollNo: "10A-01", DOB: "2011-04-09", IsActive: true}
	require.NoError(t, db.Create(&student).Error)
	subject := models.Subject{Name: "Mathematics", Code: "MTH", IsActive: true}
	require.NoError(t, db.Create(&subject).Error)
	return student, subject
}

func TestMarksRepositoryCreateUniqueRejectsDuplicateTuple(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMarksRepository(db)
	student, subject := seedStudentAndSubject(t, db)

	first := models.Marks{StudentID: student.ID, SubjectID: subject.ID, MarksObtained: 85, MaxMarks: 100, Term: "Term 1", Year: 2024}
	require.NoError(t, repo.CreateUnique(context.Background(), &first))

	duplicate := models.Marks{StudentID: student.ID, SubjectID: subject.ID, MarksObtained: 60, MaxMarks: 100, Term: "Term 1", Year: 2024}
	err := repo.CreateUnique(context.Background(), &duplicate)
	require.ErrorIs(t, err, ErrDuplicateMarks)

	otherTerm := models.Marks{StudentID: student.ID, SubjectID: subject.ID, MarksObtained: 60, MaxMarks: 100, Term: "Term 2", Year: 2024}
	require.NoError(t, repo.CreateUnique(context.Background(), &otherTerm))

	otherYear := models.Marks{StudentID: student.ID, SubjectID: subject.ID, MarksObtained: 60, MaxMarks: 100, Term: "Term 1", Year: 2025}
	require.NoError(t, repo.CreateUnique(context.Background(), &otherYear))
}

func TestMarksRepositoryDeleteWithRechecksCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMarksRepository(db)
	student, subject := seedStudentAndSubject(t, db)

	mark := models.Marks{StudentID: student.ID, SubjectID: subject.ID, MarksObtained: 55, MaxMarks: 100, Term: "Term 1", Year: 2024}
	require.NoError(t, repo.CreateUnique(context.Background(), &mark))

	for i := 0; i < 2; i++ {
		recheck := models.RecheckRequest{
			StudentID: student.ID,
			MarksID:   mark.ID,
			Subject:   subject.Name,
			Reason:    "Totals were not carried over",
			Status:    models.RecheckStatusPending,
		}
		require.NoError(t, db.Create(&recheck).Error)
	}

	deleted, err := repo.DeleteWithRechecks(context.Background(), mark.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)

	var marksCount, recheckCount int64
	require.NoError(t, db.Model(&models.Marks{}).Count(&marksCount).Error)
	require.NoError(t, db.Model(&models.RecheckRequest{}).Count(&recheckCount).Error)
	require.Zero(t, marksCount)
	require.Zero(t, recheckCount)

	_, err = repo.DeleteWithRechecks(context.Background(), mark.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarksRepositoryListByStudentPreloadsRelations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMarksRepository(db)
	student, subject := seedStudentAndSubject(t, db)

	mark := models.Marks{StudentID: student.ID, SubjectID: subject.ID, MarksObtained: 85, MaxMarks: 100, Term: "Term 1", Year: 2024}
	require.NoError(t, repo.CreateUnique(context.Background(), &mark))

	marks, err := repo.ListByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, marks, 1)
	require.Equal(t, "Priya Sharma", marks[0].Student.Name)
	require.Equal(t, "Mathematics", marks[0].Subject.Name)
}
