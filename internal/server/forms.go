package server

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type registerForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type postForm struct {
	Title string `validate:"required"`
	Body  string
}

// validateForm returns the message for the first failing field, or ""
// when the form is valid. Only the first failure is reported.
func validateForm(form any) string {
	err := validate.Struct(form)
	if err == nil {
		return ""
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fieldError(ve[0])
	}
	return err.Error()
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required."
	default:
		return fe.Field() + " is invalid."
	}
}
