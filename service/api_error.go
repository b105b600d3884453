package service

import (
	"errors"
	"fmt"
)

const (
	// ErrSessionExpired means the backend answered 401; the session has already been torn down.
	ErrSessionExpired = "session_expired"
	// ErrValidationFailed means the backend rejected the request with a list of field errors.
	ErrValidationFailed = "validation_failed"
	// ErrRequestFailed means the backend answered with any other non-2xx status.
	ErrRequestFailed = "request_failed"
	// ErrBadResponse means the backend body could not be decoded as JSON.
	ErrBadResponse = "bad_response"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrNotLoggedIn means an operation needs a session and there is none.
	ErrNotLoggedIn = "not_logged_in"
	// ErrNotFound means the console has no such route.
	ErrNotFound = "not_found"
	// ErrMethodNotAllowed means the console route exists but not for this method.
	ErrMethodNotAllowed = "method_not_allowed"
	// ErrInternalServerError means that an internal error has occurred.
	ErrInternalServerError = "internal_server_error"
)

// InternalServerErrorMessage is what console clients see for errors that are not an APIError.
const InternalServerErrorMessage = "an internal server error has occurred"

// APIError represents a failed backend call, or a local failure reported the same way.
type APIError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message, ready to show in a toast.
	Message string `json:"message"`
	// Status is the HTTP status of the backend response, 0 when there was none.
	Status int `json:"status,omitempty"`
	// Inner is a wrapped error that is never shown to users.
	Inner error `json:"-"`
}

// NewAPIError creates a new APIError.
func NewAPIError(code string, message string, status int, inner error) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Status:  status,
		Inner:   inner,
	}
}

func NewBadParameterError(message string, inner error) *APIError {
	apiInner := ToAPIError(inner)
	if apiInner != nil {
		return apiInner
	}

	return NewAPIError(ErrBadParameter, message, 0, inner)
}

func NewInternalServerError(message string, inner error) *APIError {
	apiInner := ToAPIError(inner)
	if apiInner != nil {
		return apiInner
	}

	return NewAPIError(ErrInternalServerError, message, 0, inner)
}

func NewNotLoggedInError() *APIError {
	return NewAPIError(ErrNotLoggedIn, "not logged in", 0, nil)
}

func (e APIError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e APIError) Unwrap() error {
	return e.Inner
}

// ToAPIError returns a pointer to an API error, or nil if it is not an API error.
func ToAPIError(err error) *APIError {
	var e *APIError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToAPIErrorCode returns the code of the error, if available.
func ToAPIErrorCode(err error) string {
	apiErr := ToAPIError(err)
	if apiErr != nil {
		return apiErr.Code
	}
	return ""
}

// Message returns the user-facing text of err: the APIError message when there is one, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	apiErr := ToAPIError(err)
	if apiErr != nil {
		return apiErr.Message
	}
	return err.Error()
}

func IsAPIError(err error, code string) bool {
	apiErr := ToAPIError(err)
	if apiErr != nil {
		return apiErr.Code == code
	}
	return false
}

func IsSessionExpired(err error) bool {
	return IsAPIError(err, ErrSessionExpired)
}

func IsValidationFailed(err error) bool {
	return IsAPIError(err, ErrValidationFailed)
}

func IsRequestFailed(err error) bool {
	return IsAPIError(err, ErrRequestFailed)
}

func IsBadResponse(err error) bool {
	return IsAPIError(err, ErrBadResponse)
}

func IsBadParameterError(err error) bool {
	return IsAPIError(err, ErrBadParameter)
}

func IsNotLoggedIn(err error) bool {
	return IsAPIError(err, ErrNotLoggedIn)
}
