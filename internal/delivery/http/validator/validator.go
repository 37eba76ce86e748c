// Package validator adapts go-playground/validator to Echo's Validator
// interface.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// EchoValidator wraps a validator instance for Echo.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *EchoValidator {
	return &EchoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *EchoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
