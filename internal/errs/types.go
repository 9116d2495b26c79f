package errs

import (
	"net/http"
)

func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: false,
	}
}

func NewServiceUnavailableError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusServiceUnavailable)),
		Message:  message,
		Status:   http.StatusServiceUnavailable,
		Override: false,
	}
}

// NewInternalServerError is the generic 500 used when nothing more specific
// is known about a failure.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewStoreError is a 500 with a client facing message for a failed write or
// read. cause is kept for logging only.
func NewStoreError(message string, cause error) *HTTPError {
	return &HTTPError{
		Code:     "STORE_ERROR",
		Message:  message,
		Status:   http.StatusInternalServerError,
		Override: true,
		cause:    cause,
	}
}

// NewDispatchError is a 500 raised when an outbound notification could not
// be delivered.
func NewDispatchError(message string, cause error) *HTTPError {
	return &HTTPError{
		Code:     "DISPATCH_ERROR",
		Message:  message,
		Status:   http.StatusInternalServerError,
		Override: true,
		cause:    cause,
	}
}

// NewConflictError reports a record that already exists. The API answers
// these with 400.
func NewConflictError(message string) *HTTPError {
	code := "ALREADY_EXISTS"
	return NewBadRequestError(message, true, &code, nil)
}
