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

// ClassHandler manages school class CRUD routes.
type ClassHandler struct {
	service service.ClassService
	logger  zerolog.Logger
}

// NewClassHandler constructs the handler.
func NewClassHandler(service service.ClassService, logger zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		logger:  logger.With().Str("component", "class_handler").Logger(),
	}
}

// Register attaches routes.
func (h *ClassHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/name/:name", h.getByName)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Patch("/:id/deactivate", h.deactivate)
	router.Delete("/:id", h.delete)
}

func (h *ClassHandler) list(c *fiber.Ctx) error {
	var (
		classes []dto.ClassResponse
		err     error
	)

	number, parseErr := parseQueryInt(c, "number")
	if parseErr != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class number")
	}

	switch {
	case number > 0:
		classes, err = h.service.ListByNumber(c.Context(), number)
	case c.QueryBool("active"):
		classes, err = h.service.ListActive(c.Context())
	default:
		classes, err = h.service.List(c.Context())
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list classes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list classes")
	}

	return utils.SendSuccess(c, "classes retrieved", classes)
}

func (h *ClassHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}

	class, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		h.logger.Error().Err(err).Uint("class_id", id).Msg("failed to get class")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get class")
	}

	return utils.SendSuccess(c, "class retrieved", class)
}

func (h *ClassHandler) getByName(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "class name is required")
	}

	class, err := h.service.GetByName(c.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		h.logger.Error().Err(err).Str("class_name", name).Msg("failed to get class")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get class")
	}

	return utils.SendSuccess(c, "class retrieved", class)
}

func (h *ClassHandler) create(c *fiber.Ctx) error {
	var payload dto.ClassCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	class, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateClassName):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create class")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create class")
	}

	return utils.SendCreated(c, "class created", class)
}

func (h *ClassHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}

	var payload dto.ClassUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	class, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClassNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		case errors.Is(err, service.ErrDuplicateClassName):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error().Err(err).Uint("class_id", id).Msg("failed to update class")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update class")
	}

	return utils.SendSuccess(c, "class updated", class)
}

func (h *ClassHandler) deactivate(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}

	if err := h.service.Deactivate(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		h.logger.Error().Err(err).Uint("class_id", id).Msg("failed to deactivate class")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to deactivate class")
	}

	return utils.SendSuccess(c, "class deactivated", nil)
}

func (h *ClassHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		h.logger.Error().Err(err).Uint("class_id", id).Msg("failed to delete class")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete class")
	}

	return utils.SendSuccess(c, "class deleted", nil)
}
