// Package kernel holds the primitives shared by every aggregate of the donations domain:
//   - UUID: identifier value object (entities, actors)
//   - Quantity: a non-negative count of physical units
//   - Outcome: the Changed/Unchanged result of a guarded state change
//
// Values are immutable and safe for concurrent use.
package kernel
