package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mile-mijatovic/address-book/internal/apperror"
	"go.uber.org/zap"
)

// ErrorHandler is the single translation point from the error taxonomy to
// HTTP responses. Every error response carries {success: false, message},
// where message is an array for multi-field validation failures.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return c.Status(appErr.Status).JSON(fiber.Map{
				"success": false,
				"message": appErr.Message,
			})
		}

		var validationErrs *apperror.ValidationErrors
		if errors.As(err, &validationErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": validationErrs.Messages,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		logger.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
}
