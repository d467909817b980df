package handlers

import (
	"fmt"

	"pasar/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps an application error to its HTTP status, keeping the
// stable machine code in the body. Anything unexpected becomes a generic
// 500 so internal detail never leaks.
func respondError(c *fiber.Ctx, err error) error {
	appErr, ok := apperrors.From(err)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case apperrors.CodeValidation:
		status = fiber.StatusBadRequest
	case apperrors.CodeNotFound:
		status = fiber.StatusNotFound
	case apperrors.CodeForbidden:
		status = fiber.StatusForbidden
	case apperrors.CodeConflict:
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// respondValidationErrors renders go-playground/validator failures as a
// field-to-reason map.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
