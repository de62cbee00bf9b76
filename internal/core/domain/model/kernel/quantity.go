package kernel

import (
	"fmt"

	"donations/internal/pkg/errs"
)

// ValidateQuantity checks that q is a usable unit count for the named parameter.
// Zero is allowed; it is how a released ledger entry is represented.
func ValidateQuantity(paramName string, q int) error {
	if q < 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%d is negative", q))
	}
	return nil
}

// ValidatePositiveQuantity is ValidateQuantity for amounts that must move at least one unit.
func ValidatePositiveQuantity(paramName string, q int) error {
	if q <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%d is not greater than 0", q))
	}
	return nil
}
