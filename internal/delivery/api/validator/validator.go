// Package validator adapts go-playground/validator to Echo's Validator
// interface for the invoice service.
package validator

import (
	domainerrors "trading/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New builds the request validator installed on the Echo server.
func New() *echoValidator {
	return &echoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks the bound request struct against its validation tags.
// Invalid invoice payloads map to the invoice validation error so the
// response carries a 400 with the offending fields.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrInvoiceInvalid.WithDetails(err.Error())
	}

	return nil
}
