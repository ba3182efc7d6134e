package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"careconnect-server/internal/repository"
	"careconnect-server/internal/service"
)

type RatingHandler struct {
	ratingService service.RatingService
	validate      *validator.Validate
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validate:      validator.New(),
	}
}

type CreateRatingRequest struct {
	RatedID   uuid.UUID  `json:"rated_id" validate:"required"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
	Rating    int        `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string    `json:"comment,omitempty"`
}

func (h *RatingHandler) CreateRating(c *fiber.Ctx) error {
	raterID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request CreateRatingRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	created, err := h.ratingService.CreateRating(c.Context(), raterID, service.CreateRatingInput{
		RatedID:   request.RatedID,
		SessionID: request.SessionID,
		Rating:    request.Rating,
		Comment:   request.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRatingOutOfRange), errors.Is(err, service.ErrSelfRating):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrForeignKey):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Rated user or session does not exist"})
		default:
			slog.ErrorContext(c.UserContext(), "Error creating rating", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create rating"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *RatingHandler) ListUserRatings(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	ratings, err := h.ratingService.ListUserRatings(c.Context(), userID)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing ratings", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list ratings"})
	}

	return c.Status(fiber.StatusOK).JSON(ratings)
}

func (h *RatingHandler) GetUserRatingStats(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	stats, err := h.ratingService.GetUserRatingStats(c.Context(), userID)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error computing rating stats", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute rating stats"})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
