package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates an ownership or scope violation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is no longer eligible for the requested transition.
var ErrConflict = errors.New("conflict")

// ErrExpired indicates a time window has lapsed.
var ErrExpired = errors.New("expired")

// ErrConfiguration indicates a required server-side secret or setting is missing.
var ErrConfiguration = errors.New("server misconfigured")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// Specialised errors. Each wraps one of the sentinels above so errors.Is keeps working.
var (
	ErrBusinessMismatch = &AppError{Code: CodeBusinessMismatch, Message: "resource belongs to a different business", Err: ErrForbidden}
	ErrInvalidStatus    = &AppError{Code: CodeInvalidStatus, Message: "resource is not in a state that allows this action", Err: ErrConflict}
	ErrAlreadyProcessed = &AppError{Code: CodeAlreadyProcessed, Message: "request was already processed", Err: ErrConflict}
)

// Stable machine-readable error codes returned to API clients.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeForbidden        = "FORBIDDEN"
	CodeBusinessMismatch = "BUSINESS_MISMATCH"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeAlreadyProcessed = "ALREADY_PROCESSED"
	CodeConflict         = "CONFLICT"
	CodeExpired          = "EXPIRED"
	CodeConfiguration    = "CONFIGURATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError carries a stable code and a client-safe message on top of a wrapped cause.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err under the taxonomy picked by HTTP status.
func NewAppError(status int, message string, err error) *AppError {
	code, sentinel := CodeInternal, ErrInternal
	switch status {
	case http.StatusBadRequest:
		code, sentinel = CodeValidation, ErrValidation
	case http.StatusNotFound:
		code, sentinel = CodeNotFound, ErrNotFound
	case http.StatusForbidden:
		code, sentinel = CodeForbidden, ErrForbidden
	case http.StatusConflict:
		code, sentinel = CodeConflict, ErrConflict
	case http.StatusGone:
		code, sentinel = CodeExpired, ErrExpired
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", sentinel, err)
	} else {
		err = sentinel
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError is a shorthand for a 404 on the named resource.
func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: resource + " not found", Err: ErrNotFound}
}

// NewValidationError is a shorthand for a 400 with a client-facing message.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Err: ErrValidation}
}

// NewForbiddenError is a shorthand for a 403 with a client-facing message.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message, Err: ErrForbidden}
}

// HTTPStatus maps any error onto the status code of its taxonomy kind.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the stable code for err. The most specific AppError in the chain wins.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return CodeConflict
	case errors.Is(err, ErrExpired):
		return CodeExpired
	case errors.Is(err, ErrConfiguration):
		return CodeConfiguration
	default:
		return CodeInternal
	}
}

// PublicMessage returns the message that is safe to show a client.
// Internal and configuration failures never expose their cause.
func PublicMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusInternalServerError:
		if errors.Is(err, ErrConfiguration) {
			return "server is not configured for this operation"
		}
		return "internal server error"
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	switch HTTPStatus(err) {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusForbidden:
		return "you do not have access to this resource"
	case http.StatusConflict:
		return "resource is in a conflicting state"
	case http.StatusGone:
		return "resource has expired"
	}
	return "internal server error"
}
