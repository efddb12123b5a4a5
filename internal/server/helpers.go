package server

import (
	"errors"
	"log/slog"

	"pulse/internal/middleware"
	"pulse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param, label string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// identity returns the resolved identity stored by the auth middleware.
func (s *Server) identity(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals("userID").(uint)
	email, _ := c.Locals("userEmail").(string)
	return userID, email
}

// respondServiceError maps a service-layer error to its HTTP status. Errors
// outside the application taxonomy are logged and surfaced as a generic 500
// so storage detail never leaks to clients.
func (s *Server) respondServiceError(c *fiber.Ctx, err error) error {
	status := models.StatusForError(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unexpected service error",
			slog.String("error", err.Error()),
		)
		err = models.NewInternalError(err)
	}
	return models.RespondWithError(c, status, err)
}
