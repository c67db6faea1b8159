package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/go-playground/validator/v10"
)

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_.@+-]{1,150}$`)

// CustomValidator plugs go-playground/validator into echo's Validator hook
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that also understands the "handle" tag
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate checks i against its validate tags and reports the first
// offending field as a validation error
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return models.NewValidationError(err.Error())
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}
	return models.NewValidationError(strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "handle":
		return fmt.Sprintf("%s may contain only letters, digits and @/./+/-/_ (at most 150 characters)", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
