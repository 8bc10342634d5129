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

// RecheckHandler manages recheck request routes.
type RecheckHandler struct {
	service service.RecheckService
	logger  zerolog.Logger
}

// NewRecheckHandler constructs the handler.
func NewRecheckHandler(service service.RecheckService, logger zerolog.Logger) *RecheckHandler {
	return &RecheckHandler{
		service: service,
		logger:  logger.With().Str("component", "recheck_handler").Logger(),
	}
}

// Register attaches routes.
func (h *RecheckHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/student/:studentId", h.listByStudent)
	router.Get("/:id", h.get)
	router.Patch("/:id/status", h.updateStatus)
	router.Patch("/:id/notes", h.updateNotes)
	router.Delete("/:id", h.delete)
}

func (h *RecheckHandler) list(c *fiber.Ctx) error {
	var (
		rechecks []dto.RecheckResponse
		err      error
	)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		rechecks, err = h.service.ListByStatus(c.Context(), status)
	} else {
		rechecks, err = h.service.List(c.Context())
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatusValue) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to list recheck requests")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list recheck requests")
	}

	return utils.SendSuccess(c, "recheck requests retrieved", rechecks)
}

func (h *RecheckHandler) listByStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	rechecks, err := h.service.ListByStudent(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to list recheck requests")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list recheck requests")
	}

	return utils.SendSuccess(c, "recheck requests retrieved", rechecks)
}

func (h *RecheckHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid recheck request id")
	}

	recheck, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecheckNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "recheck request not found")
		}
		h.logger.Error().Err(err).Uint("recheck_id", id).Msg("failed to get recheck request")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get recheck request")
	}

	return utils.SendSuccess(c, "recheck request retrieved", recheck)
}

func (h *RecheckHandler) create(c *fiber.Ctx) error {
	var payload dto.RecheckCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	recheck, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err),
			errors.Is(err, service.ErrSubjectRequired),
			errors.Is(err, service.ErrReasonTooShort):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrMarksNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "marks not found")
		}
		h.logger.Error().Err(err).Msg("failed to create recheck request")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create recheck request")
	}

	return utils.SendCreated(c, "recheck request created", recheck)
}

func (h *RecheckHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid recheck request id")
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	recheck, err := h.service.UpdateStatus(c.Context(), id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecheckNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "recheck request not found")
		case errors.Is(err, service.ErrInvalidStatusValue):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error().Err(err).Uint("recheck_id", id).Msg("failed to update recheck status")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update recheck status")
	}

	return utils.SendSuccess(c, "recheck status updated", recheck)
}

func (h *RecheckHandler) updateNotes(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid recheck request id")
	}

	var payload dto.RecheckNotesRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	recheck, err := h.service.UpdateNotes(c.Context(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrRecheckNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "recheck request not found")
		}
		h.logger.Error().Err(err).Uint("recheck_id", id).Msg("failed to update recheck notes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update recheck notes")
	}

	return utils.SendSuccess(c, "recheck notes updated", recheck)
}

func (h *RecheckHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid recheck request id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrRecheckNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "recheck request not found")
		}
		h.logger.Error().Err(err).Uint("recheck_id", id).Msg("failed to delete recheck request")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete recheck request")
	}

	return utils.SendSuccess(c, "recheck request deleted", nil)
}
