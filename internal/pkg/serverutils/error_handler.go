package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"turbolearn-ai-be/pkg/ingest"
)

// ErrorHandlerMiddleware maps errors returned by handlers onto the wire
// contract: 400 → {error}, everything else → {success:false, error, details}.
// Coercion fallbacks are converted to a 200 payload before they reach here.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.Code == fiber.StatusBadRequest {
				return ctx.Status(appErr.Code).JSON(fiber.Map{
					"error": appErr.Message,
				})
			}
			return ctx.Status(appErr.Code).JSON(BaseResponse[any]{
				Error:   appErr.Message,
				Details: appErr.Details,
			})
		}

		if errors.Is(err, ingest.ErrEmptyInput) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(BaseResponse[any]{
			Error:   "Internal server error",
			Details: err.Error(),
		})
	}
}
