package handler

import (
	"github.com/gofiber/fiber/v2"

	"talentboard/internal/domain"
	"talentboard/internal/middleware"
	"talentboard/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, token, err := h.authService.Register(c.Context(), input)
	if err != nil {
		if err == auth.ErrEmailExists {
			return middleware.Conflict("Email already registered")
		}
		return err
	}

	body := fiber.Map{"user": user}
	if token != nil {
		body["access_token"] = token.AccessToken
		body["expires_in"] = token.ExpiresIn
	} else {
		body["message"] = "Employer account created. You can sign in once an admin approves it."
	}

	return c.Status(fiber.StatusCreated).JSON(body)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, token, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			return middleware.Unauthorized("Invalid email or password")
		}
		if err == auth.ErrAccountInactive {
			return middleware.Forbidden("Account is not active yet")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":         user,
		"access_token": token.AccessToken,
		"expires_in":   token.ExpiresIn,
	})
}
