package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"careconnect-server/internal/model"
	"careconnect-server/internal/repository"
	"careconnect-server/internal/service"
)

type SessionHandler struct {
	sessionService service.SessionService
	validate       *validator.Validate
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		validate:       validator.New(),
	}
}

type CreateSessionRequest struct {
	RequestID  uuid.UUID  `json:"request_id" validate:"required"`
	FamilyID   uuid.UUID  `json:"family_id" validate:"required"`
	NannyID    uuid.UUID  `json:"nanny_id" validate:"required"`
	StartTime  time.Time  `json:"start_time" validate:"required"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	HourlyRate float64    `json:"hourly_rate" validate:"required,gt=0"`
	Notes      *string    `json:"notes,omitempty"`
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var request CreateSessionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	created, err := h.sessionService.CreateSession(c.Context(), service.CreateSessionInput{
		RequestID:  request.RequestID,
		FamilyID:   request.FamilyID,
		NannyID:    request.NannyID,
		StartTime:  request.StartTime,
		EndTime:    request.EndTime,
		HourlyRate: request.HourlyRate,
		Notes:      request.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSameParticipant):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRequestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRequestNotOpen):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrForeignKey), errors.Is(err, repository.ErrCheckViolation):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			slog.ErrorContext(c.UserContext(), "Error creating session", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create session"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	details, err := h.sessionService.GetSession(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch session"})
	}

	return c.Status(fiber.StatusOK).JSON(details)
}

func (h *SessionHandler) ListMySessions(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	role := c.Query("role")
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	sessions, err := h.sessionService.ListUserSessions(c.Context(), userID, role, skip, limit)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing sessions", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list sessions"})
	}

	return c.Status(fiber.StatusOK).JSON(sessions)
}

// UpdateSessionRequest uses double pointers for nullable columns so a
// client can clear end_time or notes explicitly.
type UpdateSessionRequest struct {
	EndTime **time.Time `json:"end_time"`
	Status  *string     `json:"status"`
	Notes   **string    `json:"notes"`
}

func (h *SessionHandler) UpdateSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	var request UpdateSessionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var upd model.SessionUpdate
	if request.EndTime != nil {
		upd.EndTime = model.Some(*request.EndTime)
	}
	if request.Status != nil {
		upd.Status = model.Some(*request.Status)
	}
	if request.Notes != nil {
		upd.Notes = model.Some(*request.Notes)
	}

	details, err := h.sessionService.UpdateSession(c.Context(), sessionID, upd)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		slog.ErrorContext(c.UserContext(), "Error updating session", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update session"})
	}

	return c.Status(fiber.StatusOK).JSON(details)
}
