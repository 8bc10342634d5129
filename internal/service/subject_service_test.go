package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/studentresult/srms-api/internal/dto"
	"github.com/studentresult/srms-api/internal/models"
)

func TestSubjectServiceListByClass(t *testing.T) {
	subjects := newMemorySubjectRepo()
	subjects.subjects[1] = models.Subject{ID: 1, Name: "Mathematics", Code: "MTH", IsActive: true}
	subjects.subjects[2] = models.Subject{ID: 2, Name: "Physics", Code: "PHY", IsActive: true}
	subjects.subjects[3] = models.Subject{ID: 3, Name: "History", Code: "HIS", IsActive: true}
	subjects.subjects[4] = models.Subject{ID: 4, Name: "Chemistry", Code: "CHM", IsActive: false}
	subjects.nextID = 5

	classes := newMemoryClassRepo()
	classes.classes[1] = models.SchoolClass{
		ID: 1, ClassName: "Class 10A", ClassNumber: 10, MaxCapacity: 40,
		SubjectList: "mathematics, Physics , Chemistry", IsActive: true,
	}
	classes.nextID = 2

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewSubjectService(subjects, classes, validate, testLogger())

	results, err := svc.ListByClass(context.Background(), "Class 10A")
	require.NoError(t, err)

	names := make([]string, 0, len(results))
	for _, subject := range results {
		names = append(names, subject.Name)
	}
	// History is not listed for the class; Chemistry is listed but inactive.
	require.ElementsMatch(t, []string{"Mathematics", "Physics"}, names)

	_, err = svc.ListByClass(context.Background(), "Class 12Z")
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestSubjectServiceCreateAndDeactivate(t *testing.T) {
	subjects := newMemorySubjectRepo()
	classes := newMemoryClassRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewSubjectService(subjects, classes, validate, testLogger())

	created, err := svc.Create(context.Background(), dto.SubjectCreateRequest{
		Name: "Mathematics",
		Code: "MTH",
	})
	require.NoError(t, err)
	require.True(t, created.IsActive)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Empty(t, active)

	_, err = svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrSubjectNotFound)
}
