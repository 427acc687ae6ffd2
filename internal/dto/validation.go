package dto

import (
	"fmt"
	"strings"

	"github.com/SscSPs/permissioned_ledger/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the ledger specific binding tags to v.
// It is called once at startup with gin's validator engine.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("account_type", func(fl validator.FieldLevel) bool {
		return domain.AccountType(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("failed to register 'account_type': %w", err)
	}

	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		return fmt.Errorf("failed to register 'notblank': %w", err)
	}

	return nil
}
