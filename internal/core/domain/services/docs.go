// Package services provides domain services that work across the aggregates of the
// donations domain.
//
// The package includes:
//   - AllocationGuard: enforces the package-level quantity ceiling over all ledger entries
//   - Designator: plans designations, redesignations and releases of package units
//   - SummarizeDesignations: folds an order's ledger entries into an order.DesignationSummary
//   - SortByUrgency: the dashboard ordering for active orders
//
// Services are pure: they mutate the aggregates they are given and never touch persistence.
package services
