package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/studentresult/srms-api/internal/dto"
	"github.com/studentresult/srms-api/internal/models"
	"github.com/studentresult/srms-api/internal/repository"
)

// Sentinel errors raised by the auth service.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrDuplicateUsername  = errors.New("username already in use")
)

const tokenLifetime = 24 * time.Hour

// AuthConfig carries the secrets and built-in admin credentials the auth
// service needs.
type AuthConfig struct {
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
}

// AuthService exposes the authentication use cases: the combined admin/teacher
// login, the dedicated student and teacher logins, and generic registration.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	StudentLogin(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	TeacherLogin(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.RegisterResponse, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

type authService struct {
	users     repository.UserRepository
	students  repository.StudentRepository
	teachers  repository.TeacherRepository
	validator *validator.Validate
	cfg       AuthConfig
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds a new auth service.
func NewAuthService(users repository.UserRepository, students repository.StudentRepository, teachers repository.TeacherRepository, validate *validator.Validate, cfg AuthConfig, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		students:  students,
		teachers:  teachers,
		validator: validate,
		cfg:       cfg,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

// Login accepts the built-in admin credentials first and otherwise
// authenticates against the teacher table.
func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	email := strings.TrimSpace(payload.Email)
	password := strings.TrimSpace(payload.Password)

	if email == s.cfg.AdminEmail && password == s.cfg.AdminPassword {
		token, err := s.mintToken(1, models.RoleAdmin)
		if err != nil {
			return dto.LoginResponse{}, err
		}

		s.logger.Info().Str("role", models.RoleAdmin).Msg("admin login successful")

		return dto.LoginResponse{
			UserID:      1,
			Role:        models.RoleAdmin,
			Name:        "Admin",
			RedirectURL: "/admin/dashboard",
			Token:       token,
		}, nil
	}

	return s.teacherLogin(ctx, email, password)
}

// StudentLogin authenticates a student against the password derived from the
// stored date of birth: the first eight digits after stripping separators.
// Stored DOBs are normalized to YYYY-MM-DD, so the derived password reads
// YYYYMMDD.
func (s *authService) StudentLogin(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	email := strings.TrimSpace(payload.Email)
	password := strings.TrimSpace(payload.Password)

	student, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if !student.IsActive {
		s.logger.Warn().Uint("student_id", student.ID).Msg("login attempt on disabled student account")
		return dto.LoginResponse{}, ErrAccountDisabled
	}

	expected := PasswordFromDOB(student.DOB)
	if expected == "" || password != expected {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.mintToken(student.ID, models.RoleStudent)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student login successful")

	return dto.LoginResponse{
		UserID:      student.ID,
		Role:        models.RoleStudent,
		Name:        student.Name,
		RedirectURL: "/student/dashboard",
		Token:       token,
	}, nil
}

// TeacherLogin authenticates a teacher with the stored generated password.
func (s *authService) TeacherLogin(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	return s.teacherLogin(ctx, strings.TrimSpace(payload.Email), strings.TrimSpace(payload.Password))
}

func (s *authService) teacherLogin(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	teacher, err := s.teachers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if !teacher.IsActive {
		s.logger.Warn().Uint("teacher_id", teacher.ID).Msg("login attempt on disabled teacher account")
		return dto.LoginResponse{}, ErrAccountDisabled
	}

	if teacher.Password == "" || password != teacher.Password {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.mintToken(teacher.ID, models.RoleTeacher)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher login successful")

	return dto.LoginResponse{
		UserID:      teacher.ID,
		Role:        models.RoleTeacher,
		Name:        teacher.Name,
		RedirectURL: "/teacher/dashboard",
		Token:       token,
	}, nil
}

// Register creates a generic user account with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.RegisterResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RegisterResponse{}, err
	}

	email := strings.TrimSpace(payload.Email)
	username := strings.TrimSpace(payload.Username)

	if taken, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return dto.RegisterResponse{}, err
	} else if taken {
		return dto.RegisterResponse{}, ErrDuplicateEmail
	}

	if taken, err := s.users.ExistsByUsername(ctx, username); err != nil {
		return dto.RegisterResponse{}, err
	} else if taken {
		return dto.RegisterResponse{}, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.RegisterResponse{}, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     payload.Role,
		IsActive: true,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.RegisterResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("user registered")

	return dto.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

func (s *authService) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.users.ExistsByEmail(ctx, email)
}

func (s *authService) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.users.ExistsByUsername(ctx, username)
}

func (s *authService) mintToken(subject uint, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

var digitPattern = regexp.MustCompile(`\d`)

// PasswordFromDOB derives the student login password from a date-of-birth
// string: all non-digit characters are stripped and the first eight digits
// form the password. Fewer than eight digits yield whatever is available,
// which simply never matches a submitted 8-digit password.
func PasswordFromDOB(dob string) string {
	digits := strings.Join(digitPattern.FindAllString(dob, -1), "")
	if len(digits) > 8 {
		digits = digits[:8]
	}
	return digits
}
