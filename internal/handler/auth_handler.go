package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studentresult/srms-api/internal/dto"
	"github.com/studentresult/srms-api/internal/service"
	"github.com/studentresult/srms-api/internal/utils"
)

// AuthHandler manages authentication routes.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/student-login", h.studentLogin)
	router.Post("/teachers-login", h.teacherLogin)
	router.Post("/register", h.register)
	router.Get("/check-email/:email", h.checkEmail)
	router.Get("/check-username/:username", h.checkUsername)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Login(c.Context(), payload)
	return h.respondLogin(c, result, err)
}

func (h *AuthHandler) studentLogin(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.StudentLogin(c.Context(), payload)
	return h.respondLogin(c, result, err)
}

func (h *AuthHandler) teacherLogin(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.TeacherLogin(c.Context(), payload)
	return h.respondLogin(c, result, err)
}

func (h *AuthHandler) respondLogin(c *fiber.Ctx, result dto.LoginResponse, err error) error {
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, service.ErrAccountDisabled):
			return utils.SendError(c, fiber.StatusForbidden, "account is disabled")
		}
		h.logger.Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}

	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Register(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateEmail),
			errors.Is(err, service.ErrDuplicateUsername):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to register user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to register user")
	}

	return utils.SendCreated(c, "user registered", result)
}

func (h *AuthHandler) checkEmail(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "email is required")
	}

	taken, err := h.service.EmailTaken(c.Context(), email)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to check email")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to check email")
	}

	return utils.SendSuccess(c, "email checked", fiber.Map{"exists": taken})
}

func (h *AuthHandler) checkUsername(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Params("username"))
	if username == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "username is required")
	}

	taken, err := h.service.UsernameTaken(c.Context(), username)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to check username")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to check username")
	}

	return utils.SendSuccess(c, "username checked", fiber.Map{"exists": taken})
}
