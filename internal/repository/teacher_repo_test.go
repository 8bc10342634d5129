package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studentresult/srms-api/internal/models"
)

func TestTeacherRepositoryGetByEmailCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTeacherRepository(db)
	ctx := context.Background()

	teacher := models.Teacher{
		Name:     "Rita Sharma",
		Email:    "Rita.Sharma@school.test",
		Password: "RIT3210",
		Phone:    "9876543210",
		Subjects: "Physics, Mathematics",
		IsActive: true,
	}
	require.NoError(t, repo.Create(ctx, &teacher))

	found, err := repo.GetByEmail(ctx, "  RITA.sharma@SCHOOL.test ")
	require.NoError(t, err)
	require.Equal(t, teacher.ID, found.ID)

	exists, err := repo.ExistsByEmail(ctx, "rita.sharma@school.test", 0)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "rita.sharma@school.test", teacher.ID)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestTeacherRepositoryListBySubjectMatchesActiveOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTeacherRepository(db)
	ctx := context.Background()

	active := models.Teacher{Name: "Rita Sharma", Email: "rita@school.test", Subjects: "Physics, Mathematics", IsActive: true}
	inactive := models.Teacher{Name: "Vik Patel", Email: "vik@school.test", Subjects: "Physics", IsActive: true}
	other := models.Teacher{Name: "Mona Das", Email: "mona@school.test", Subjects: "History", IsActive: true}
	require.NoError(t, repo.Create(ctx, &active))
	require.NoError(t, repo.Create(ctx, &inactive))
	require.NoError(t, repo.Create(ctx, &other))

	inactive.IsActive = false
	require.NoError(t, repo.Update(ctx, &inactive))

	teachers, err := repo.ListBySubject(ctx, "physics")
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	require.Equal(t, "Rita Sharma", teachers[0].Name)
}
