// Package order provides the Order aggregate of the donations system: a request for goods
// that ledger entries are designated against and that is eventually dispatched.
//
// The package includes:
//   - Order: the aggregate root with its lifecycle and dashboard attributes
//   - State and Event: the order state machine, driven by an explicit transition table
//     with guards evaluated against the order's DesignationSummary
//   - Detail and BookingType: opaque data supplied by the order-detail provider
//
// Key business rules:
//   - Orders start as drafts and only drafts may be destroyed
//   - Firing an event that is not currently available changes nothing and is not an error
//   - An order finishes processing only when all of its active entries are designated,
//     and closes only when all of them are dispatched
//   - A cancellation reason is recorded only together with an applied event
package order
