package middleware

import (
	"github.com/gofiber/fiber/v2"

	"talentboard/internal/domain"
)

func RequireRole(role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasRole(role) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func RequireAnyRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		for _, role := range roles {
			if user.HasRole(role) {
				return c.Next()
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}
