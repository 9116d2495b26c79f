// Package errs defines the error shape returned by every endpoint.
//
// Handlers and services return *HTTPError; the global error handler writes it
// to the client as JSON. The response always carries "success": false so that
// clients can read failures the same way as the {success, message} body of a
// successful registration.
package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "correo", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the API error type.
//
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message, shown as-is to the client.
//   - Status: HTTP status code.
//   - Override: whether the client should display Message verbatim.
//   - Errors: per-field validation errors.
type HTTPError struct {
	Success  bool         `json:"success"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`

	// cause is the underlying failure. It is logged, never serialized.
	cause error
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying failure to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is matches any *HTTPError target.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error carrying a different message.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		cause:    e.cause,
	}
}

// WithCause returns a copy of the error wrapping cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	cp := *e
	cp.cause = cause
	return &cp
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
