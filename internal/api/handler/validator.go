package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator adapts go-playground/validator to the echo.Validator
// interface so handlers can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate collapses all field violations into a single human-readable error.
// Tag translations cover only the tags the request structs actually use.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	msgs := make([]string, len(ve))
	for i, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs[i] = field + " is required"
		case "email":
			msgs[i] = field + " must be a valid email address"
		case "min":
			msgs[i] = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case "oneof":
			msgs[i] = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
		default:
			msgs[i] = fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
