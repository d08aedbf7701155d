package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/schedulebob/auth/internal/constants"
)

// RegisterCustomValidators adds the project's tags to v.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation(constants.TagNotBlank, notBlank)
}

// notBlank fails on empty or whitespace-only strings.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// FirstMessage returns the message of the first failing field in err, in
// struct declaration order. ok is false when err is not a validation error.
func FirstMessage(err error) (msg string, ok bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "", false
	}
	first := validationErrors[0]
	return Message(first.Field(), first.Tag()), true
}
