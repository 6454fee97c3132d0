package serverutils

import (
	"errors"
	"net/http/httptest"
	"testing"

	"studybuddy-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerMiddlewareStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperror.Validation("bad input"), fiber.StatusBadRequest},
		{"not found", apperror.NotFound("missing"), fiber.StatusNotFound},
		{"ownership", apperror.Ownership("not yours"), fiber.StatusForbidden},
		{"provider unavailable", apperror.ProviderUnavailable("down", errors.New("timeout")), fiber.StatusServiceUnavailable},
		{"partial index", apperror.PartialIndex("incomplete", nil), fiber.StatusAccepted},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
		{"fiber error passthrough", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/boom", func(c *fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestErrorHandlerMiddlewarePassesSuccess(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("Success", "data"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
