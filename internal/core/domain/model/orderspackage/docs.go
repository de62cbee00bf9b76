// Package orderspackage implements the quantity ledger: each OrdersPackage states that
// N units of a package are linked to an order in a given state.
//
// The package includes:
//   - OrdersPackage: the ledger entry entity and its quantity arithmetic
//   - State and Event: the entry state machine, driven by an explicit transition table
//
// Key business rules:
//   - quantity is never negative
//   - sentOn is set exactly when the entry is dispatched
//   - every mutation records the acting user
//   - illegal transitions leave the entry untouched and report kernel.Unchanged
//
// The cross-entry rule (active quantities of a package never exceed its receivable
// quantity) is enforced by services.AllocationGuard, which sees all entries of a package.
package orderspackage
