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

// SubjectHandler manages subject CRUD routes.
type SubjectHandler struct {
	service service.SubjectService
	logger  zerolog.Logger
}

// NewSubjectHandler constructs the handler.
func NewSubjectHandler(service service.SubjectService, logger zerolog.Logger) *SubjectHandler {
	return &SubjectHandler{
		service: service,
		logger:  logger.With().Str("component", "subject_handler").Logger(),
	}
}

// Register attaches routes.
func (h *SubjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/search", h.search)
	router.Get("/name/:name", h.getByName)
	router.Get("/code/:code", h.getByCode)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Patch("/:id/deactivate", h.deactivate)
	router.Delete("/:id", h.delete)
}

func (h *SubjectHandler) list(c *fiber.Ctx) error {
	var (
		subjects []dto.SubjectResponse
		err      error
	)

	switch {
	case strings.TrimSpace(c.Query("class")) != "":
		subjects, err = h.service.ListByClass(c.Context(), strings.TrimSpace(c.Query("class")))
	case c.QueryBool("active"):
		subjects, err = h.service.ListActive(c.Context())
	default:
		subjects, err = h.service.List(c.Context())
	}
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		h.logger.Error().Err(err).Msg("failed to list subjects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list subjects")
	}

	return utils.SendSuccess(c, "subjects retrieved", subjects)
}

func (h *SubjectHandler) search(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "search term is required")
	}

	subjects, err := h.service.Search(c.Context(), term)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to search subjects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to search subjects")
	}

	return utils.SendSuccess(c, "subjects retrieved", subjects)
}

func (h *SubjectHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	subject, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		}
		h.logger.Error().Err(err).Uint("subject_id", id).Msg("failed to get subject")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get subject")
	}

	return utils.SendSuccess(c, "subject retrieved", subject)
}

func (h *SubjectHandler) getByName(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "subject name is required")
	}

	subject, err := h.service.GetByName(c.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		}
		h.logger.Error().Err(err).Str("name", name).Msg("failed to get subject")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get subject")
	}

	return utils.SendSuccess(c, "subject retrieved", subject)
}

func (h *SubjectHandler) getByCode(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	if code == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "subject code is required")
	}

	subject, err := h.service.GetByCode(c.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		}
		h.logger.Error().Err(err).Str("code", code).Msg("failed to get subject")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get subject")
	}

	return utils.SendSuccess(c, "subject retrieved", subject)
}

func (h *SubjectHandler) create(c *fiber.Ctx) error {
	var payload dto.SubjectCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	subject, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create subject")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create subject")
	}

	return utils.SendCreated(c, "subject created", subject)
}

func (h *SubjectHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	var payload dto.SubjectUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	subject, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSubjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		}
		h.logger.Error().Err(err).Uint("subject_id", id).Msg("failed to update subject")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update subject")
	}

	return utils.SendSuccess(c, "subject updated", subject)
}

func (h *SubjectHandler) deactivate(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	if err := h.service.Deactivate(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		}
		h.logger.Error().Err(err).Uint("subject_id", id).Msg("failed to deactivate subject")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to deactivate subject")
	}

	return utils.SendSuccess(c, "subject deactivated", nil)
}

func (h *SubjectHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		}
		h.logger.Error().Err(err).Uint("subject_id", id).Msg("failed to delete subject")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete subject")
	}

	return utils.SendSuccess(c, "subject deleted", nil)
}
