// Package commands contains the operations that change the donation ledger and orders.
// Every handler validates its command, opens a unit of work, serializes ledger writes on
// the package row lock and commits. Calls to the external inventory mirror and the event
// publisher happen only after the commit.
package commands

import (
	"context"

	"donations/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	OrdersPackageRepoFactory interface {
		OrdersPackageRepository() ports.OrdersPackageRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans orders, packages and the ledger entries between them.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   pkg, err := uow.PackageRepository().GetForUpdate(ctx, packageID)
	//   entries, err := uow.OrdersPackageRepository().ListByPackage(ctx, packageID)
	//   // ... plan and persist
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		PackageRepoFactory
		OrdersPackageRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
