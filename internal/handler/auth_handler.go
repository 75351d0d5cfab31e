package handler

import (
	"go-inventory-client/internal/model"
	"go-inventory-client/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if req.Email == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserInactive) {
			return fail(c, fiber.StatusUnauthorized, err.Error())
		}
		return fail(c, fiber.StatusInternalServerError, "Login failed")
	}

	return ok(c, fiber.StatusOK, "Login successful", response)
}

// Register creates an account; the caller logs in separately.
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if err := h.authService.Register(&req); err != nil {
		var validation *service.ValidationError
		switch {
		case errors.Is(err, service.ErrEmailExists):
			return fail(c, fiber.StatusBadRequest, err.Error())
		case errors.As(err, &validation):
			return fail(c, fiber.StatusBadRequest, validation.Message)
		default:
			return fail(c, fiber.StatusInternalServerError, "Registration failed")
		}
	}

	return ok(c, fiber.StatusCreated, "User registered successfully", nil)
}
