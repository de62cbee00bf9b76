package commands

import (
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/pkg/errs"
)

func validateOptionalID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}

func validateQuantitySpec(q services.QuantitySpec) error {
	if q.IsFull() {
		return nil
	}
	if q.Amount() <= 0 {
		return errs.NewValidationError("orders_package", "quantity", "must be greater than 0")
	}
	return nil
}
