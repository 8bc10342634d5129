package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/studentresult/srms-api/internal/dto"
	"github.com/studentresult/srms-api/internal/handler"
	"github.com/studentresult/srms-api/internal/service"
)

type mockRecheckService struct {
	rechecks   []dto.RecheckResponse
	lastStatus string
	err        error
}

func (m *mockRecheckService) List(_ context.Context) ([]dto.RecheckResponse, error) {
	return m.rechecks, m.err
}

func (m *mockRecheckService) ListByStudent(_ context.Context, _ uint) ([]dto.RecheckResponse, error) {
	return m.rechecks, m.err
}

func (m *mockRecheckService) ListByStatus(_ context.Context, status string) ([]dto.RecheckResponse, error) {
	m.lastStatus = status
	return m.rechecks, m.err
}

func (m *mockRecheckService) Get(_ context.Context, _ uint) (dto.RecheckResponse, error) {
	if m.err != nil {
		return dto.RecheckResponse{}, m.err
	}
	return m.rechecks[0], nil
}

func (m *mockRecheckService) Create(_ context.Context, _ dto.RecheckCreateRequest) (dto.RecheckResponse, error) {
	if m.err != nil {
		return dto.RecheckResponse{}, m.err
	}
	return m.rechecks[0], nil
}

func (m *mockRecheckService) UpdateStatus(_ context.Context, _ uint, status string) (dto.RecheckResponse, error) {
	m.lastStatus = status
	if m.err != nil {
		return dto.RecheckResponse{}, m.err
	}
	return m.rechecks[0], nil
}

func (m *mockRecheckService) UpdateNotes(_ context.Context, _ uint, _ dto.RecheckNotesRequest) (dto.RecheckResponse, error) {
	if m.err != nil {
		return dto.RecheckResponse{}, m.err
	}
	return m.rechecks[0], nil
}

func (m *mockRecheckService) Delete(_ context.Context, _ uint) error {
	return m.err
}

func newRecheckApp(svc service.RecheckService) *fiber.App {
	app := fiber.New()
	handler.NewRecheckHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/rechecks"))
	return app
}

func TestRecheckHandler_ListByStatusQuery(t *testing.T) {
	svc := &mockRecheckService{rechecks: []dto.RecheckResponse{
		{ID: 1, StudentID: 1, MarksID: 2, Subject: "Physics", Status: "PENDING"},
	}}
	app := newRecheckApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/rechecks?status=pending", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "pending", svc.lastStatus)
}

func TestRecheckHandler_ListInvalidStatus(t *testing.T) {
	svc := &mockRecheckService{err: service.ErrInvalidStatusValue}
	app := newRecheckApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/rechecks?status=bogus", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecheckHandler_CreateReasonTooShort(t *testing.T) {
	svc := &mockRecheckService{err: service.ErrReasonTooShort}
	app := newRecheckApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/v1/rechecks", dto.RecheckCreateRequest{
		StudentID: 1,
		MarksID:   2,
		Subject:   "Physics",
		Reason:    "too short",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecheckHandler_UpdateStatusSuccess(t *testing.T) {
	svc := &mockRecheckService{rechecks: []dto.RecheckResponse{
		{ID: 1, StudentID: 1, MarksID: 2, Subject: "Physics", Status: "APPROVED"},
	}}
	app := newRecheckApp(svc)

	req := jsonRequest(t, http.MethodPatch, "/api/v1/rechecks/1/status", map[string]string{"status": "approved"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "approved", svc.lastStatus)

	var body struct {
		Success bool                `json:"success"`
		Data    dto.RecheckResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, "APPROVED", body.Data.Status)
}

func TestRecheckHandler_UpdateStatusResolvedConflict(t *testing.T) {
	svc := &mockRecheckService{err: service.ErrInvalidTransition}
	app := newRecheckApp(svc)

	req := jsonRequest(t, http.MethodPatch, "/api/v1/rechecks/1/status", map[string]string{"status": "rejected"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRecheckHandler_GetNotFound(t *testing.T) {
	svc := &mockRecheckService{err: service.ErrRecheckNotFound}
	app := newRecheckApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/rechecks/99", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
