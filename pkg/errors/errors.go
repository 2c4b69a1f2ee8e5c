package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")

	ErrReferentialIntegrity = New("REFERENTIAL_INTEGRITY", http.StatusConflict, "resource is still referenced")
	ErrInvalidCategory      = New("INVALID_CATEGORY", http.StatusBadRequest, "unknown issue category code")
	ErrInvalidState         = New("INVALID_STATE", http.StatusBadRequest, "unknown case status")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var refErr *ReferentialIntegrityError
	if errors.As(err, &refErr) {
		return &Error{
			Code:    ErrReferentialIntegrity.Code,
			Status:  ErrReferentialIntegrity.Status,
			Message: refErr.Error(),
			Details: refErr,
			Err:     err,
		}
	}
	var catErr *InvalidCategoryError
	if errors.As(err, &catErr) {
		return &Error{
			Code:    ErrInvalidCategory.Code,
			Status:  ErrInvalidCategory.Status,
			Message: catErr.Error(),
			Details: catErr.InvalidValueError,
			Err:     err,
		}
	}
	var stateErr *InvalidStateError
	if errors.As(err, &stateErr) {
		return &Error{
			Code:    ErrInvalidState.Code,
			Status:  ErrInvalidState.Status,
			Message: stateErr.Error(),
			Details: stateErr.InvalidValueError,
			Err:     err,
		}
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
