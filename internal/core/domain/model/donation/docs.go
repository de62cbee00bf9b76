// Package donation models the physical donated item ("package") that ledger entries
// allocate to orders.
//
// The package includes:
//   - Package: the aggregate root holding on-hand and receivable quantities
//   - PackagesLocation: an entry in the package's location history
//   - Location: the building/area value object, including the Dispatched marker
//
// Key business rules:
//   - Quantities are never negative
//   - The receivable (received) quantity bounds the sum of all active ledger entries
//   - Dispatch is recorded as a location history entry at the Dispatched location
package donation
