package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"platformapi/internal/http/middleware"
	"platformapi/internal/logging"
	"platformapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates a service error into the response envelope.
// resource names the thing that was looked up, for the not-found message.
// Unclassified errors are logged and answered with a generic 500.
func writeServiceError(c *fiber.Ctx, err error, resource string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", detail(err, service.ErrValidation))
	case errors.Is(err, service.ErrTypeMismatch):
		return writeError(c, fiber.StatusBadRequest, "TYPE_MISMATCH", err.Error())
	case errors.Is(err, service.ErrObjectTooLarge):
		return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", detail(err, service.ErrObjectTooLarge))
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", resource+" not found")
	case errors.Is(err, service.ErrPrecondition):
		return writeError(c, fiber.StatusPreconditionFailed, "PRECONDITION_FAILED", detail(err, service.ErrPrecondition))
	default:
		logging.FromContext(c.UserContext()).Error("request failed",
			"method", c.Method(), "path", c.Path(), "error", err)
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// detail strips the sentinel prefix added by fmt.Errorf("%w: ...").
func detail(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return msg
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "BODY_TOO_LARGE", "request body too large")
		default:
			logging.FromContext(c.UserContext()).Error("unhandled error", "error", err)
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

// principal returns the authenticated caller. Routes behind middleware.Auth always have one.
func principal(c *fiber.Ctx) middleware.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}
