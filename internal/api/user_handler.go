package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"careconnect-server/internal/model"
	"careconnect-server/internal/repository"
	"careconnect-server/internal/service"
)

type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	user, err := h.userService.GetUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	user, err := h.userService.GetUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch user"})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) GetUserByUsername(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := h.userService.GetUserByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch user"})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	users, err := h.userService.ListUsers(c.Context(), skip, limit)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing users", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list users"})
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

// UpdateUserRequest distinguishes absent fields (outer nil) from fields
// explicitly set to null (inner nil on the double pointers).
type UpdateUserRequest struct {
	Email    *string  `json:"email" validate:"omitempty,email"`
	Username *string  `json:"username" validate:"omitempty,min=3,max=50"`
	FullName *string  `json:"full_name" validate:"omitempty,min=2"`
	Bio      **string `json:"bio"`
	Location **string `json:"location"`
	Phone    **string `json:"phone"`
	IsActive *bool    `json:"is_active"`
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request UpdateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	var upd model.UserUpdate
	if request.Email != nil {
		upd.Email = model.Some(*request.Email)
	}
	if request.Username != nil {
		upd.Username = model.Some(*request.Username)
	}
	if request.FullName != nil {
		upd.FullName = model.Some(*request.FullName)
	}
	if request.Bio != nil {
		upd.Bio = model.Some(*request.Bio)
	}
	if request.Location != nil {
		upd.Location = model.Some(*request.Location)
	}
	if request.Phone != nil {
		upd.Phone = model.Some(*request.Phone)
	}
	if request.IsActive != nil {
		upd.IsActive = model.Some(*request.IsActive)
	}

	user, err := h.userService.UpdateUser(c.Context(), userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email or username already exists"})
		default:
			slog.ErrorContext(c.UserContext(), "Error updating user", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update user"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
