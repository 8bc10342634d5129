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

// MarksHandler manages marks and result statistics routes.
type MarksHandler struct {
	service service.MarksService
	logger  zerolog.Logger
}

// NewMarksHandler constructs the handler.
func NewMarksHandler(service service.MarksService, logger zerolog.Logger) *MarksHandler {
	return &MarksHandler{
		service: service,
		logger:  logger.With().Str("component", "marks_handler").Logger(),
	}
}

// Register attaches routes.
func (h *MarksHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/student/:studentId", h.listByStudent)
	router.Get("/student/:studentId/statistics", h.statistics)
	router.Get("/class/:className", h.listByClass)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Patch("/:id/recheck", h.setRecheckRequested)
	router.Delete("/:id", h.delete)
}

func (h *MarksHandler) list(c *fiber.Ctx) error {
	marks, err := h.service.List(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list marks")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list marks")
	}

	return utils.SendSuccess(c, "marks retrieved", marks)
}

func (h *MarksHandler) listByStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	term := strings.TrimSpace(c.Query("term"))
	year, err := parseQueryInt(c, "year")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid year")
	}

	var marks []dto.MarksResponse
	if term != "" || year > 0 {
		marks, err = h.service.ListByStudentTermYear(c.Context(), studentID, term, year)
	} else {
		marks, err = h.service.ListByStudent(c.Context(), studentID)
	}
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to list marks")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list marks")
	}

	return utils.SendSuccess(c, "marks retrieved", marks)
}

func (h *MarksHandler) listByClass(c *fiber.Ctx) error {
	className := strings.TrimSpace(c.Params("className"))
	if className == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "class name is required")
	}

	marks, err := h.service.ListByClass(c.Context(), className)
	if err != nil {
		h.logger.Error().Err(err).Str("class_name", className).Msg("failed to list marks")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list marks")
	}

	return utils.SendSuccess(c, "marks retrieved", marks)
}

func (h *MarksHandler) statistics(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	stats, err := h.service.Statistics(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to compute statistics")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute statistics")
	}

	return utils.SendSuccess(c, "statistics computed", stats)
}

func (h *MarksHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid marks id")
	}

	marks, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMarksNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "marks not found")
		}
		h.logger.Error().Err(err).Uint("marks_id", id).Msg("failed to get marks")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get marks")
	}

	return utils.SendSuccess(c, "marks retrieved", marks)
}

func (h *MarksHandler) create(c *fiber.Ctx) error {
	var payload dto.MarksCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	marks, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrSubjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		case errors.Is(err, service.ErrDuplicateMarks):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrMarksExceedMax):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to record marks")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to record marks")
	}

	return utils.SendCreated(c, "marks recorded", marks)
}

func (h *MarksHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid marks id")
	}

	var payload dto.MarksUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	marks, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMarksNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "marks not found")
		case errors.Is(err, service.ErrMarksExceedMax):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("marks_id", id).Msg("failed to update marks")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update marks")
	}

	return utils.SendSuccess(c, "marks updated", marks)
}

func (h *MarksHandler) setRecheckRequested(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid marks id")
	}

	var payload struct {
		Requested bool `json:"requested"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	marks, err := h.service.SetRecheckRequested(c.Context(), id, payload.Requested)
	if err != nil {
		if errors.Is(err, service.ErrMarksNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "marks not found")
		}
		h.logger.Error().Err(err).Uint("marks_id", id).Msg("failed to update recheck flag")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update recheck flag")
	}

	return utils.SendSuccess(c, "recheck flag updated", marks)
}

func (h *MarksHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid marks id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrMarksNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "marks not found")
		}
		h.logger.Error().Err(err).Uint("marks_id", id).Msg("failed to delete marks")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete marks")
	}

	return utils.SendSuccess(c, "marks deleted", nil)
}
