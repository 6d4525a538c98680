package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code and a
// stable machine-readable code the client can branch on.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given status, code and message.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Error taxonomy. Every error a handler surfaces is one of these codes.
const (
	CodeValidation   = "ValidationError"
	CodeNotFound     = "NotFound"
	CodeSlotConflict = "SlotConflict"
	CodeInvalidState = "InvalidStateTransition"
	CodeDependency   = "DependencyFailure"
	CodeUnauthorized = "Unauthorized"
)

func Validation(msg string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, CodeValidation, msg)
}

func NotFound(msg string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, CodeNotFound, msg)
}

func SlotConflict(msg string) *HTTPError {
	return NewHTTPError(http.StatusConflict, CodeSlotConflict, msg)
}

func InvalidState(msg string) *HTTPError {
	return NewHTTPError(http.StatusConflict, CodeInvalidState, msg)
}

func Dependency(msg string) *HTTPError {
	return NewHTTPError(http.StatusBadGateway, CodeDependency, msg)
}

func Unauthorized(msg string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, msg)
}

// FromError returns the *HTTPError inside err, or a generic dependency
// failure so database errors never leak their text to the client.
func FromError(err error) *HTTPError {
	var he *HTTPError
	if stderrors.As(err, &he) {
		return he
	}
	return Dependency("internal error")
}
