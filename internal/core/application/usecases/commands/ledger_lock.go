package commands

import (
	"context"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/pkg/errs"
)

// lockedEntry is a ledger entry read under its package's row lock, together with every
// other entry of that package.
type lockedEntry struct {
	pkg     *donation.Package
	entry   *orderspackage.OrdersPackage
	entries []*orderspackage.OrdersPackage
}

// lockEntry resolves the package of an entry, takes the package lock and re-reads the
// entry so that it cannot have changed since the lock was granted.
func lockEntry(ctx context.Context, uow UoW, ordersPackageID kernel.UUID) (lockedEntry, error) {
	entryRepo := uow.OrdersPackageRepository()

	unlocked, err := entryRepo.Get(ctx, ordersPackageID)
	if err != nil {
		return lockedEntry{}, err
	}

	pkg, err := uow.PackageRepository().GetForUpdate(ctx, unlocked.PackageID())
	if err != nil {
		return lockedEntry{}, err
	}

	entries, err := entryRepo.ListByPackage(ctx, pkg.ID())
	if err != nil {
		return lockedEntry{}, err
	}
	for _, e := range entries {
		if e.ID().IsEqual(ordersPackageID) {
			return lockedEntry{pkg: pkg, entry: e, entries: entries}, nil
		}
	}
	return lockedEntry{}, errs.NewObjectNotFoundError("orders package", ordersPackageID.String())
}
