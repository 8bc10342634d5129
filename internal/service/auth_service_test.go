package service

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/dto"
	"github.com/studentresult/srms-api/internal/models"
)

type memoryUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (m *memoryUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (m *memoryUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = m.nextID
	m.users[m.nextID] = *user
	m.nextID++
	return nil
}

func authServiceFixture(t *testing.T) (AuthService, *memoryStudentRepo, *memoryTeacherRepo, *memoryUserRepo) {
	t.Helper()

	students := newMemoryStudentRepo()
	students.students[1] = models.Student{
		ID: 1, Name: "Priya Sharma", Email: "priya@example.com",
		ClassName: "Class 10A", RollNo: "10A-01", DOB: "2011-04-09", IsActive: true,
	}
	students.nextID = 2

	teachers := newMemoryTeacherRepo()
	teachers.teachers[1] = models.Teacher{
		ID: 1, Name: "Sharma", Email: "sharma@example.com",
		Password: "SHA3210", Phone: "9876543210", IsActive: true,
	}
	teachers.nextID = 2

	users := newMemoryUserRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuthService(users, students, teachers, validate, AuthConfig{
		JWTSecret:     "test-secret",
		AdminEmail:    "admin@gmail.com",
		AdminPassword: "123456",
	}, testLogger())

	return svc, students, teachers, users
}

func TestAuthServiceAdminLogin(t *testing.T) {
	svc, _, _, _ := authServiceFixture(t)

	result, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@gmail.com",
		Password: "123456",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, result.Role)
	require.Equal(t, "/admin/dashboard", result.RedirectURL)
	require.NotEmpty(t, result.Token)

	token, err := jwt.Parse(result.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, models.RoleAdmin, claims["role"])
}

func TestAuthServiceLoginFallsThroughToTeacher(t *testing.T) {
	svc, _, _, _ := authServiceFixture(t)

	result, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "sharma@example.com",
		Password: "SHA3210",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, result.Role)
	require.Equal(t, "Sharma", result.Name)
	require.Equal(t, "/teacher/dashboard", result.RedirectURL)
}

func TestAuthServiceTeacherLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := authServiceFixture(t)

	_, err := svc.TeacherLogin(context.Background(), dto.LoginRequest{
		Email:    "sharma@example.com",
		Password: "WRONG",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.TeacherLogin(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "SHA3210",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceTeacherLoginDisabledAccount(t *testing.T) {
	svc, _, teachers, _ := authServiceFixture(t)

	teacher := teachers.teachers[1]
	teacher.IsActive = false
	teachers.teachers[1] = teacher

	_, err := svc.TeacherLogin(context.Background(), dto.LoginRequest{
		Email:    "sharma@example.com",
		Password: "SHA3210",
	})
	require.ErrorIs(t, err, ErrAccountDisabled)

	// The disabled state wins over a wrong password, as with students.
	_, err = svc.TeacherLogin(context.Background(), dto.LoginRequest{
		Email:    "sharma@example.com",
		Password: "wrong",
	})
	require.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthServiceStudentLoginWithDOBPassword(t *testing.T) {
	svc, _, _, _ := authServiceFixture(t)

	// Stored DOB 2011-04-09 yields the password 20110409.
	result, err := svc.StudentLogin(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "20110409",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, result.Role)
	require.Equal(t, "Priya Sharma", result.Name)
	require.Equal(t, "/student/dashboard", result.RedirectURL)
	require.NotEmpty(t, result.Token)
}

func TestAuthServiceStudentLoginRejectsWrongPassword(t *testing.T) {
	svc, _, _, _ := authServiceFixture(t)

	_, err := svc.StudentLogin(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "20110410",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceStudentLoginDisabledAccount(t *testing.T) {
	svc, students, _, _ := authServiceFixture(t)

	student := students.students[1]
	student.IsActive = false
	students.students[1] = student

	_, err := svc.StudentLogin(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "20110409",
	})
	require.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthServiceStudentLoginMissingDOB(t *testing.T) {
	svc, students, _, _ := authServiceFixture(t)

	student := students.students[1]
	student.DOB = ""
	students.students[1] = student

	_, err := svc.StudentLogin(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "20110409",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordFromDOB(t *testing.T) {
	cases := []struct {
		dob  string
		want string
	}{
		{"2011-04-09", "20110409"},
		{"2011-04-09T00:00:00", "20110409"},
		{"09/04/2011", "09042011"},
		{"", ""},
		{"2011", "2011"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, PasswordFromDOB(tc.dob), "dob %q", tc.dob)
	}
}

func TestAuthServiceRegisterHashesPassword(t *testing.T) {
	svc, _, _, users := authServiceFixture(t)

	result, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "rahul",
		Email:    "rahul@example.com",
		Password: "secret123",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)
	require.NotZero(t, result.ID)

	stored := users.users[result.ID]
	require.NotEqual(t, "secret123", stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestAuthServiceRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _, _ := authServiceFixture(t)

	payload := dto.RegisterRequest{
		Username: "rahul",
		Email:    "rahul@example.com",
		Password: "secret123",
		Role:     models.RoleStudent,
	}
	_, err := svc.Register(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), payload)
	require.ErrorIs(t, err, ErrDuplicateEmail)

	payload.Email = "other@example.com"
	_, err = svc.Register(context.Background(), payload)
	require.ErrorIs(t, err, ErrDuplicateUsername)

	taken, err := svc.EmailTaken(context.Background(), "rahul@example.com")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = svc.UsernameTaken(context.Background(), "rahul")
	require.NoError(t, err)
	require.True(t, taken)
}
