package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// AppError is the application error carried between layers. The HTTP code
// travels with the error so the endpoint never has to guess the mapping.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying cause to a new AppError.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithError returns a copy carrying the underlying cause. The predefined
// errors below are shared values and must never be mutated in place.
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors. The webhook contract responds with a status code only,
// so HTTPCode is the load-bearing field; code and message feed the logs.
var (
	// Signature verification
	ErrMissingSignature = New(CodeMissingSignature, "Signature header is missing", http.StatusBadRequest)
	ErrInvalidSignature = New(CodeInvalidSignature, "Webhook signature verification failed", http.StatusBadRequest)

	// Event payload
	ErrInvalidPayload   = New(CodeInvalidPayload, "Webhook payload is malformed", http.StatusBadRequest)
	ErrMissingMetadata  = New(CodeMissingMetadata, "Event metadata is missing app or userId", http.StatusBadRequest)
	ErrUnknownApp       = New(CodeUnknownApp, "Unknown application identifier", http.StatusBadRequest)

	// Accounts
	ErrAccountNotFound = New(CodeAccountNotFound, "User account not found", http.StatusNotFound)

	// Persistence
	ErrWriteConflict = New(CodeWriteConflict, "Concurrent update conflict on account", http.StatusInternalServerError)
	ErrPersistence   = New(CodePersistence, "Failed to persist account update", http.StatusInternalServerError)

	// Routing
	ErrRouteNotFound = New(CodeRouteNotFound, "Route not found", http.StatusNotFound)
)

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}
