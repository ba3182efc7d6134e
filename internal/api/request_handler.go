package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"careconnect-server/internal/model"
	"careconnect-server/internal/service"
)

type RequestHandler struct {
	requestService service.RequestService
	validate       *validator.Validate
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		validate:       validator.New(),
	}
}

type CreateRequestRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Tags        string  `json:"tags"`
	Location    string  `json:"location" validate:"required"`
	HourlyRate  float64 `json:"hourly_rate" validate:"required,gt=0"`
}

func (h *RequestHandler) CreateRequest(c *fiber.Ctx) error {
	posterID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request CreateRequestRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	created, err := h.requestService.CreateRequest(c.Context(), posterID, service.CreateRequestInput{
		Title:       request.Title,
		Description: request.Description,
		Tags:        request.Tags,
		Location:    request.Location,
		HourlyRate:  request.HourlyRate,
	})
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error creating request", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create request"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *RequestHandler) GetRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID format"})
	}

	details, err := h.requestService.GetRequest(c.Context(), requestID)
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch request"})
	}

	return c.Status(fiber.StatusOK).JSON(details)
}

func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	status := c.Query("status")

	requests, err := h.requestService.ListRequests(c.Context(), skip, limit, status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		slog.ErrorContext(c.UserContext(), "Error listing requests", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list requests"})
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

type UpdateRequestRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Tags        *string  `json:"tags"`
	Location    *string  `json:"location"`
	HourlyRate  *float64 `json:"hourly_rate" validate:"omitempty,gt=0"`
	Status      *string  `json:"status"`
}

func (h *RequestHandler) UpdateRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID format"})
	}

	var request UpdateRequestRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	var upd model.RequestUpdate
	if request.Title != nil {
		upd.Title = model.Some(*request.Title)
	}
	if request.Description != nil {
		upd.Description = model.Some(*request.Description)
	}
	if request.Tags != nil {
		upd.Tags = model.Some(*request.Tags)
	}
	if request.Location != nil {
		upd.Location = model.Some(*request.Location)
	}
	if request.HourlyRate != nil {
		upd.HourlyRate = model.Some(*request.HourlyRate)
	}
	if request.Status != nil {
		upd.Status = model.Some(model.RequestStatus(*request.Status))
	}

	details, err := h.requestService.UpdateRequest(c.Context(), requestID, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRequestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			slog.ErrorContext(c.UserContext(), "Error updating request", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update request"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(details)
}

func (h *RequestHandler) DeleteRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID format"})
	}

	if err := h.requestService.DeleteRequest(c.Context(), requestID); err != nil {
		slog.ErrorContext(c.UserContext(), "Error deleting request", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete request"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
