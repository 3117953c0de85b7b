// Package validator plugs go-playground/validator into echo so handlers can
// run c.Validate over the validate tags on bound request DTOs.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator on top of a shared
// validator.Validate instance
type CustomValidator struct {
	v *validator.Validate
}

// New builds the validator registered on the echo instance at startup
func New() *CustomValidator {
	v := validator.New()
	return &CustomValidator{v: v}
}

// Validate checks i against its struct-level validation tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
