package errs

import (
	"net/http"
)

func newError(status int, message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
// A nil code defaults to "BAD_REQUEST".
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	err := newError(http.StatusBadRequest, message, override, code)
	err.Errors = errors
	return err
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newError(http.StatusNotFound, message, override, code)
}

// NewConflictError creates a 409 Conflict HTTPError. It is used when the
// request is well formed but the current state of the resource refuses it.
func NewConflictError(message string, override bool, code *string) *HTTPError {
	return newError(http.StatusConflict, message, override, code)
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
// The message is always the generic status text.
func NewInternalServerError() *HTTPError {
	return newError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false, nil)
}

// ValidationError converts a validation failure into a 400 Bad Request.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil)
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return newError(http.StatusTooManyRequests, "Too many requests, slow down", true, nil)
}
