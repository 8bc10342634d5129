package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/models"
)

func TestStudentRepositoryExistsByEmailExcludesSelf(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	student := models.Student{Name: "Priya Sharma", Email: "priya@example.com", ClassName: "Class 10A", RollNo: "10A-01", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), &student))

	taken, err := repo.ExistsByEmail(context.Background(), "priya@example.com", 0)
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = repo.ExistsByEmail(context.Background(), "priya@example.com", student.ID)
	require.NoError(t, err)
	require.False(t, taken)

	taken, err = repo.ExistsByRollNo(context.Background(), "10A-01", 0)
	require.NoError(t, err)
	require.True(t, taken)
}

func TestStudentRepositorySearchMatchesNameAndEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	require.NoError(t, repo.Create(context.Background(), &models.Student{Name: "Priya Sharma", Email: "priya@example.com", ClassName: "Class 10A", RollNo: "10A-01", IsActive: true}))
	require.NoError(t, repo.Create(context.Background(), &models.Student{Name: "Rahul Verma", Email: "rahul@example.com", ClassName: "Class 10A", RollNo: "10A-02", IsActive: true}))

	byName, err := repo.Search(context.Background(), "priya")
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byEmail, err := repo.Search(context.Background(), "rahul@")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	require.Equal(t, "Rahul Verma", byEmail[0].Name)
}

func TestStudentRepositoryDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	err := repo.Delete(context.Background(), 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentRepositoryListByClassFiltersInactive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	require.NoError(t, repo.Create(context.Background(), &models.Student{Name: "Priya Sharma", Email: "priya@example.com", ClassName: "Class 10A", RollNo: "10A-01", IsActive: true}))

	dropped := models.Student{Name: "Rahul Verma", Email: "rahul@example.com", ClassName: "Class 10A", RollNo: "10A-02", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), &dropped))
	dropped.IsActive = false
	require.NoError(t, repo.Update(context.Background(), &dropped))

	students, err := repo.ListByClass(context.Background(), "Class 10A")
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "Priya Sharma", students[0].Name)
}
