package middleware

import (
	"log"
	"strings"

	"conduit/internal/services"
	"conduit/pkg/translator"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that rejects requests without a valid
// bearer token and stores the token's subject in the request context.
func AuthRequired(authService *services.AuthService, tr *translator.Translator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": tr.T("auth.errors.missing_token"),
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": tr.T("auth.errors.malformed_token"),
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": tr.T("auth.errors.invalid_token"),
			})
		}

		c.Locals("user_id", claims["sub"])
		c.Locals("username", claims["username"])

		return c.Next()
	}
}

// OptionalAuth resolves the viewer from a bearer token when one is present
// and valid, and lets the request through anonymously otherwise. Listing and
// detail endpoints use it to render viewer-relative fields like "favorited".
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts := strings.SplitN(c.Get("Authorization"), " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := authService.ValidateToken(parts[1]); err == nil {
				c.Locals("user_id", claims["sub"])
				c.Locals("username", claims["username"])
			}
		}
		return c.Next()
	}
}
