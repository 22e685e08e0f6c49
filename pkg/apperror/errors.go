package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Query API (QRY) ----

func ErrInvalidID(name string) *AppError {
	return New("QRY_001", fmt.Sprintf("Invalid %s", name), http.StatusBadRequest)
}

func Validation(message string) *AppError {
	return New("QRY_002", message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("QRY_003", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvalidKind(value string) *AppError {
	return New("QRY_004", fmt.Sprintf("Unknown history type %q", value), http.StatusBadRequest)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrRateLimitExceeded() *AppError {
	return New("SYS_002", "Rate limit exceeded", http.StatusTooManyRequests)
}
