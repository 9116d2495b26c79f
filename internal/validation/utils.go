package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/deppfellow/petcare-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by every request payload.
type Validatable interface {
	Validate() error
}

// Messenger lets a payload choose the message returned to the client when it
// fails binding or validation.
type Messenger interface {
	ValidationMessage() string
}

const defaultMessage = "Validation failed"

type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return defaultMessage
}

// BindAndValidate decodes the request body into payload and validates it.
// Both failures produce a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	message := defaultMessage
	if m, ok := payload.(Messenger); ok {
		message = m.ValidationMessage()
	}

	if err := c.Bind(payload); err != nil {
		reason := err.Error()
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			reason = fmt.Sprint(echoErr.Message)
		}
		return errs.NewBadRequestError(message, true, nil, []errs.FieldError{
			{Field: "body", Error: reason},
		}).WithCause(err)
	}

	if err := payload.Validate(); err != nil {
		return errs.NewBadRequestError(message, true, nil, extractValidationError(err)).WithCause(err)
	}

	return nil
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	for _, fe := range validationErrors {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			if isString(fe) {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}
		case "max":
			if isString(fe) {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())
		case "email":
			msg = "must be a valid email address"
		case "numeric":
			msg = "must contain only digits"
		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s: %s", fe.Tag(), fe.Param())
			} else {
				msg = fe.Tag()
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: msg,
		})
	}

	return fieldErrors
}

// isString guards against fields whose custom type func returned nil; those
// carry no reflect.Type.
func isString(fe validator.FieldError) bool {
	return fe.Kind() == reflect.String
}
