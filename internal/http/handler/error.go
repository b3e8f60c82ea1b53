package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bookledger/internal/http/middleware"
	"bookledger/internal/model"
	"bookledger/internal/service"
)

// errorPayload defines the standardized JSON error body of the operational endpoints.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorView struct {
	Page      string
	Status    int
	Code      string
	Message   string
	RequestID string
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// formError is how a failed form submission is shown inline.
type formError struct {
	Status  int
	Class   string
	Message string
}

// formErrorFor maps service and validation errors to inline form messages.
func formErrorFor(err error) formError {
	var fe *model.FieldError
	switch {
	case errors.As(err, &fe):
		msg := "Please fill all fields."
		if fe.Field == "title" {
			msg = "Please enter a book title."
		}
		return formError{fiber.StatusUnprocessableEntity, "error", msg}
	case errors.Is(err, service.ErrDuplicateBook):
		return formError{fiber.StatusConflict, "warning", "Book already exists."}
	case errors.Is(err, service.ErrDuplicateLenderID):
		return formError{fiber.StatusConflict, "warning", "Lender with this ID already exists."}
	case errors.Is(err, service.ErrBookNotFound):
		return formError{fiber.StatusUnprocessableEntity, "error", "The selected book is not in the catalog."}
	case errors.Is(err, service.ErrLenderNotFound):
		return formError{fiber.StatusUnprocessableEntity, "error", "The selected lender is not registered."}
	case errors.Is(err, service.ErrStoreUnavailable):
		return formError{fiber.StatusServiceUnavailable, "error", "The ledger store is unavailable. Please try again."}
	default:
		return formError{fiber.StatusInternalServerError, "error", "Something went wrong. Please try again."}
	}
}

// ErrorHandler returns a Fiber global error handler that renders an error page.
// It falls back to the JSON envelope if the page cannot be rendered.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := ""
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
			message = e.Message
		}

		var code string
		switch status {
		case fiber.StatusBadRequest:
			code, message = "BAD_REQUEST", "bad request"
		case fiber.StatusNotFound:
			code, message = "NOT_FOUND", "resource not found"
		case fiber.StatusMethodNotAllowed:
			code, message = "METHOD_NOT_ALLOWED", "method not allowed"
		case fiber.StatusServiceUnavailable:
			code = "SERVICE_UNAVAILABLE"
			if message == "" {
				message = "dependency unavailable"
			}
		default:
			code, message = "INTERNAL_ERROR", "internal server error"
		}

		view := errorView{Status: status, Code: code, Message: message, RequestID: requestIDFromCtx(c)}
		if renderErr := c.Status(status).Render("templates/error", view, layout); renderErr != nil {
			return writeError(c, status, code, message)
		}
		return nil
	}
}
