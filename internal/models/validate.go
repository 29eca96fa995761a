package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrValidation marks values rejected before they reach storage.
var ErrValidation = errors.New("validation failed")

type choice interface {
	Valid() bool
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
		c, ok := fl.Field().Interface().(choice)
		return ok && c.Valid()
	})
	return v
}

// Validate checks the struct tags of an entity. Failures wrap both
// ErrValidation and the underlying validator.ValidationErrors.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
