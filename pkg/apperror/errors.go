package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindState           Kind = "state"
	KindConfiguration   Kind = "configuration"
	KindSinkUnavailable Kind = "sink_unavailable"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindBadRequest      Kind = "bad_request"
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindInternal        Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError by kind and message so sentinel values work
// with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Kind: KindForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid credentials or not a staff account"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid token"}
)

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError is a validation error for a single field.
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewStateError reports an operation the order's current status forbids.
func NewStateError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindState,
		Message: message,
	}
}

// NewConfigurationError reports invalid or incomplete configuration.
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindConfiguration,
		Message: message,
	}
}

// NewSinkUnavailableError wraps a failure to reach the receipt printer.
func NewSinkUnavailableError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindSinkUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
		Err:     err,
	}
}
