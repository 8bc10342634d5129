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

// TeacherHandler manages teacher CRUD routes.
type TeacherHandler struct {
	service service.TeacherService
	logger  zerolog.Logger
}

// NewTeacherHandler constructs the handler.
func NewTeacherHandler(service service.TeacherService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		service: service,
		logger:  logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register attaches routes.
func (h *TeacherHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/search", h.search)
	router.Get("/email/:email", h.getByEmail)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Patch("/:id/deactivate", h.deactivate)
	router.Delete("/:id", h.delete)
}

func (h *TeacherHandler) list(c *fiber.Ctx) error {
	var (
		teachers []dto.TeacherResponse
		err      error
	)

	switch {
	case strings.TrimSpace(c.Query("subject")) != "":
		teachers, err = h.service.ListBySubject(c.Context(), strings.TrimSpace(c.Query("subject")))
	case c.QueryBool("active"):
		teachers, err = h.service.ListActive(c.Context())
	default:
		teachers, err = h.service.List(c.Context())
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list teachers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list teachers")
	}

	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) search(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "search term is required")
	}

	teachers, err := h.service.Search(c.Context(), term)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to search teachers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to search teachers")
	}

	return utils.SendSuccess(c, "teachers retrieved", teachers)
}

func (h *TeacherHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid teacher id")
	}

	teacher, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		}
		h.logger.Error().Err(err).Uint("teacher_id", id).Msg("failed to get teacher")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get teacher")
	}

	return utils.SendSuccess(c, "teacher retrieved", teacher)
}

func (h *TeacherHandler) getByEmail(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "email is required")
	}

	teacher, err := h.service.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		}
		h.logger.Error().Err(err).Str("email", email).Msg("failed to get teacher")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get teacher")
	}

	return utils.SendSuccess(c, "teacher retrieved", teacher)
}

func (h *TeacherHandler) create(c *fiber.Ctx) error {
	var payload dto.TeacherCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	teacher, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateEmail):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create teacher")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create teacher")
	}

	return utils.SendCreated(c, "teacher created", teacher)
}

func (h *TeacherHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid teacher id")
	}

	var payload dto.TeacherUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	teacher, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTeacherNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		case errors.Is(err, service.ErrDuplicateEmail):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error().Err(err).Uint("teacher_id", id).Msg("failed to update teacher")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update teacher")
	}

	return utils.SendSuccess(c, "teacher updated", teacher)
}

func (h *TeacherHandler) deactivate(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid teacher id")
	}

	if err := h.service.Deactivate(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		}
		h.logger.Error().Err(err).Uint("teacher_id", id).Msg("failed to deactivate teacher")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to deactivate teacher")
	}

	return utils.SendSuccess(c, "teacher deactivated", nil)
}

func (h *TeacherHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid teacher id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		}
		h.logger.Error().Err(err).Uint("teacher_id", id).Msg("failed to delete teacher")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete teacher")
	}

	return utils.SendSuccess(c, "teacher deleted", nil)
}
