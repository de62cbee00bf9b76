package commands

import (
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/orderspackage"
)

// DesignationResult describes the ledger entry a designation command left behind.
type DesignationResult struct {
	OrdersPackageID kernel.UUID
	OrderID         kernel.UUID
	PackageID       kernel.UUID
	Quantity        int
	State           orderspackage.State
	Outcome         kernel.Outcome
	// ReleasedFromOrderID is set when the units were taken away from another order.
	ReleasedFromOrderID *kernel.UUID
	// Pruned counts redundant entries deleted along the way.
	Pruned int64
}

func newDesignationResult(entry *orderspackage.OrdersPackage, outcome kernel.Outcome) DesignationResult {
	return DesignationResult{
		OrdersPackageID: entry.ID(),
		OrderID:         entry.OrderID(),
		PackageID:       entry.PackageID(),
		Quantity:        entry.Quantity(),
		State:           entry.State(),
		Outcome:         outcome,
	}
}

const (
	// outcomeRejected labels operations refused by validation.
	outcomeRejected = "rejected"
	// outcomeStale labels mirror pushes superseded by a later commit.
	outcomeStale = "stale"
)
