package client

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// connectivityMessage is reported when the server gave no usable message.
const connectivityMessage = "Unable to reach the inventory server"

// Kinds of failure, matched with errors.Is against an *Error.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrServer           = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrConnectivity     = errors.New("connectivity failure")
)

// Error is the normalized failure of an API call. Message is the backend's
// message when it sent one, suitable for showing to the user as is.
type Error struct {
	StatusCode int
	Message    string
	kind       error
	cause      error
}

func (e *Error) Error() string { return e.Message }

// Is matches the error kind.
func (e *Error) Is(target error) bool { return target == e.kind }

func (e *Error) Unwrap() error { return e.cause }

func connectivity(cause error) *Error {
	return &Error{Message: connectivityMessage, kind: ErrConnectivity, cause: cause}
}

func invalid(message string) *Error {
	return &Error{Message: message, kind: ErrValidation}
}

// statusError builds the error for a non-2xx response from its body.
func statusError(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	message := ""
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		message = payload.Message
		if message == "" {
			message = payload.Error
		}
	}
	if message == "" {
		message = connectivityMessage
	}
	return &Error{StatusCode: status, Message: message, kind: kindOf(status)}
}

func kindOf(status int) error {
	switch {
	case status == fiber.StatusUnauthorized:
		return ErrUnauthorized
	case status == fiber.StatusForbidden:
		return ErrForbidden
	case status == fiber.StatusNotFound:
		return ErrNotFound
	case status == fiber.StatusBadRequest, status == fiber.StatusConflict, status == fiber.StatusUnprocessableEntity:
		return ErrValidation
	case status >= fiber.StatusInternalServerError:
		return ErrServer
	default:
		return ErrUnexpectedStatus
	}
}
