package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ServiCampo-api/internal/application/auth"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
)

// AuthHandler expone registro y login.
type AuthHandler struct {
	authUC *auth.UseCase
}

// NewAuthHandler construye el handler de autenticación.
func NewAuthHandler(authUC *auth.UseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Register maneja POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	user, err := h.authUC.Register(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login maneja POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body JSON inválido"})
	}
	resp, err := h.authUC.Login(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}
