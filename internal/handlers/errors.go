package handlers

import (
	"errors"

	"conduit/pkg/translator"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated viewer's id, or "" for anonymous
// requests.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// messageResponse writes a status with a single localized message.
func messageResponse(c *fiber.Ctx, tr *translator.Translator, status int, key string, params ...string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": tr.T(key, params...),
	})
}

// validationErrorResponse renders field-level validator errors through the
// shared locale.
func validationErrorResponse(c *fiber.Ctx, tr *translator.Translator, err error) error {
	fieldErrors := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			fieldErrors[e.Field()] = e.Translate(tr.Locale())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": tr.T("common.validation_failed"),
		"errors":  fieldErrors,
	})
}
