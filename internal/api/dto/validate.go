package dto

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/algo-tracker/pkg/util"
)

var validate = newValidator()

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate runs declarative schema validation on a request payload and maps
// failures into the validation error shape the boundary layer understands.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]any, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		return apperrors.NewValidationError("request validation failed", details)
	}
	return apperrors.NewValidationError("request validation failed", nil)
}
