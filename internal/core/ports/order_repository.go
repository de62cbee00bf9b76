// Package ports defines the contracts between the donations core and its adapters:
// repositories, the unit of work, the external inventory mirror and event publishing.
package ports

import (
	"context"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. The order must be valid and not exist yet.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists every attribute of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier, returning errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order. Callers are responsible for checking that it may be destroyed.
	Delete(ctx context.Context, id kernel.UUID) error
}
