package services

import (
	"fmt"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/pkg/errs"
)

// AllocationGuard checks that the active ledger entries of a package never hold more units
// than the package can supply. It must be evaluated inside the transaction that holds the
// package row lock, after all planned mutations were applied in memory.
type AllocationGuard struct{}

func NewAllocationGuard() AllocationGuard {
	return AllocationGuard{}
}

// Allocated sums the quantities of the active entries of pkg.
func (AllocationGuard) Allocated(pkg *donation.Package, entries []*orderspackage.OrdersPackage) int {
	total := 0
	for _, e := range entries {
		if e == nil || !e.PackageID().IsEqual(pkg.ID()) || !e.IsActive() {
			continue
		}
		total += e.Quantity()
	}
	return total
}

// Available returns how many more units of pkg may be designated.
func (g AllocationGuard) Available(pkg *donation.Package, entries []*orderspackage.OrdersPackage) int {
	return pkg.ReceivableQuantity() - g.Allocated(pkg, entries)
}

// Check returns a *errs.ValidationError when the active entries exceed the receivable quantity.
func (g AllocationGuard) Check(pkg *donation.Package, entries []*orderspackage.OrdersPackage) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	allocated := g.Allocated(pkg, entries)
	if allocated > pkg.ReceivableQuantity() {
		return errs.NewValidationError(
			"orders_package",
			"quantity",
			fmt.Sprintf("%d units allocated but only %d can be received for package %s",
				allocated, pkg.ReceivableQuantity(), pkg.InventoryNumber()),
		)
	}
	return nil
}
