package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy-be/internal/apperror"
)

// ErrorHandlerMiddleware maps application error kinds onto HTTP
// statuses. Controllers return errors; this is the single place that
// decides the wire representation.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		status := statusForKind(apperror.KindOf(err))
		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindOwnership:
		return fiber.StatusForbidden
	case apperror.KindProviderUnavailable:
		return fiber.StatusServiceUnavailable
	case apperror.KindPartialIndex:
		return fiber.StatusAccepted
	default:
		return fiber.StatusInternalServerError
	}
}
