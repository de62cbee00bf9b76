package ports

import (
	"context"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/orderspackage"
)

// OrdersPackageRepository defines the persistence contract for ledger entries.
// (order_id, package_id) is unique.
type OrdersPackageRepository interface {
	Add(ctx context.Context, entry *orderspackage.OrdersPackage) error
	Update(ctx context.Context, entry *orderspackage.OrdersPackage) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*orderspackage.OrdersPackage, error)

	// ListByPackage returns every entry of the package, whatever its state.
	ListByPackage(ctx context.Context, packageID kernel.UUID) ([]*orderspackage.OrdersPackage, error)

	// ListByOrder returns every entry of the order, whatever its state.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*orderspackage.OrdersPackage, error)

	// DeleteRedundant removes cancelled zero-quantity entries of the order, restricted to
	// one package when packageID is given. It returns the number of removed entries.
	DeleteRedundant(ctx context.Context, orderID kernel.UUID, packageID *kernel.UUID) (int64, error)

	// ListOrderIDsWithRedundant returns up to limit orders that hold redundant entries.
	ListOrderIDsWithRedundant(ctx context.Context, limit int) ([]kernel.UUID, error)
}
