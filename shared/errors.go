package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type services return when a failure maps to a
// specific HTTP response. The http service unwraps it in its error handler.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

func NewAppError(statusCode int, message string, data interface{}) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data}
}

func NewBadRequestError(message string, data interface{}) *AppError {
	return NewAppError(http.StatusBadRequest, message, data)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, nil)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, nil)
}

func NewTooManyRequestsError(message string, data interface{}) *AppError {
	return NewAppError(http.StatusTooManyRequests, message, data)
}

func NewInternalError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, nil)
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Failure taxonomy for the structured-generation client. Each kind is a
// distinct type so callers can pick retry policy and user-facing messaging
// with errors.As.

// AuthenticationError means the model provider rejected our credentials (401).
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// RateLimitError means the provider throttled us (429). Distinct from this
// service's own rate limiter, which never produces taxonomy errors.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string { return e.Message }

// BadRequestError means the provider rejected the request payload (400),
// e.g. an unknown model or a malformed schema.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

// ServerError covers provider 5xx responses and any unrecognized status.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// NetworkError covers transport-level failures before a response arrived.
type NetworkError struct {
	Message string
}

func (e *NetworkError) Error() string { return e.Message }

// ParsingError means the provider answered 200 but the message content was
// missing or not valid JSON for the requested schema.
type ParsingError struct {
	Message string
}

func (e *ParsingError) Error() string { return e.Message }
