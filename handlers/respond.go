package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"go.uber.org/zap"
)

// errorHandler renders every handler error as the JSON failure shape the
// frontend expects. Rich errors carry their own status; anything else is
// an internal error.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			status := richErr.Code
			if status == 0 {
				status = statusFromCategory(richErr.Category)
			}

			body := fiber.Map{"error": richErr.Message}
			if richErr.TextCode != "" {
				body["code"] = richErr.TextCode
			}
			if richErr.Category == errors.CategoryValidation {
				if fields := richErr.ValidationMap(); len(fields) > 0 {
					body["validation"] = fields
				}
			}

			if status >= http.StatusInternalServerError {
				logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}

			return c.Status(status).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		logger.Error("unhandled server error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func statusFromCategory(category errors.Category) int {
	switch category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth, errors.CategoryAuthz:
		return http.StatusUnauthorized
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(message string) *errors.Error {
	return errors.New(message, errors.CategoryBadInput).
		WithCode(errors.CodeBadRequest)
}
