package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jakobos/10x-cards/dto"
	"github.com/jakobos/10x-cards/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
	}
}

// @Summary Register
// @Description Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body dto.RegisterRequest true "Registration request"
// @Success 201 {object} shared.Response{data=dto.RegisterResponse}
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseRaw(c, fiber.StatusBadRequest, dto.CreateValidationErrorResponse(err))
	}

	user, err := h.authSvc.Register(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", user)
}

// @Summary Login
// @Description Authenticate and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login request"
// @Success 200 {object} shared.Response{data=dto.LoginResponse}
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseRaw(c, fiber.StatusBadRequest, dto.CreateValidationErrorResponse(err))
	}

	login, err := h.authSvc.Login(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", login)
}
