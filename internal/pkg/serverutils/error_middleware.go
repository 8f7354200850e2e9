// FILE: internal/pkg/serverutils/error_middleware.go
package serverutils

import (
	"errors"

	"clinical-curation-be/internal/service"
	"clinical-curation-be/pkg/warehouse"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors onto HTTP statuses so
// controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := statusFor(err)
		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}

func statusFor(err error) int {
	var validationErr *ValidationError
	var execErr *warehouse.ExecutionError
	var fiberErr *fiber.Error

	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrDuplicateFeature),
		errors.Is(err, service.ErrDuplicateVersion),
		errors.Is(err, service.ErrNameCollision),
		errors.Is(err, service.ErrVersionBound):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrNoOpUpdate):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidQuery):
		return fiber.StatusBadRequest
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &execErr):
		return fiber.StatusBadGateway
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}
