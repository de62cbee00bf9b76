package commands

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/pkg/guard"
)

var ErrDestroyOrderCommandIsNotConstructed = errors.New(
	"DestroyOrderCommand must be created via NewDestroyOrderCommand constructor",
)

type DestroyOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	at      time.Time

	guard guard.ConstructorGuard
}

func NewDestroyOrderCommand(orderID, actorID kernel.UUID, at time.Time) (DestroyOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return DestroyOrderCommand{}, err
	}
	return DestroyOrderCommand{orderID: orderID, actorID: actorID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c DestroyOrderCommand) Validate() error {
	return c.guard.Validate(ErrDestroyOrderCommandIsNotConstructed)
}

func (c DestroyOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c DestroyOrderCommand) ActorID() kernel.UUID { return c.actorID }
func (c DestroyOrderCommand) At() time.Time        { return c.at }

// DestroyOrderCommandHandler deletes draft orders together with their ledger entries.
// Orders past draft are left alone and reported as kernel.Unchanged.
//
// Every package the order has entries for is locked before the entries go. Packages whose
// designation to the order is visible in the inventory mirror get a new mirror version and
// are undesignated there after the commit. Mirror failures are flagged like any other drift.
type DestroyOrderCommandHandler struct {
	uowFactory UoWFactory
	sync       MirrorSync
}

func NewDestroyOrderCommandHandler(uowFactory UoWFactory, sync MirrorSync) DestroyOrderCommandHandler {
	return DestroyOrderCommandHandler{uowFactory: uowFactory, sync: sync}
}

func (h *DestroyOrderCommandHandler) Handle(ctx context.Context, cmd DestroyOrderCommand) (kernel.Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.Unchanged, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.Unchanged, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return kernel.Unchanged, err
	}
	if !o.CanDestroy() {
		return kernel.Unchanged, nil
	}

	locked, entries, err := lockOrderPackages(ctx, uow, o.ID())
	if err != nil {
		return kernel.Unchanged, err
	}

	var mirrored []*donation.Package
	entryRepo := uow.OrdersPackageRepository()
	for _, e := range entries {
		if e.HoldsDesignation() {
			pkg := locked[e.PackageID()]
			if !slices.Contains(mirrored, pkg) {
				pkg.BumpMirrorVersion()
				if err = uow.PackageRepository().Update(ctx, pkg); err != nil {
					return kernel.Unchanged, err
				}
				mirrored = append(mirrored, pkg)
			}
		}
		if err = entryRepo.Delete(ctx, e.ID()); err != nil {
			return kernel.Unchanged, err
		}
	}

	if err = uow.OrderRepository().Delete(ctx, o.ID()); err != nil {
		return kernel.Unchanged, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.Unchanged, err
	}

	orderID := o.ID()
	var syncErrs []error
	for _, pkg := range mirrored {
		syncErrs = append(syncErrs, h.sync.Undesignate(ctx, pkg, &orderID, cmd.At()))
	}
	return kernel.Changed, errors.Join(syncErrs...)
}

// lockOrderPackages takes the row lock of every package the order has entries for, in id
// order, and returns the order's entries as read under those locks. Entries added for a new
// package while locking trigger another round.
func lockOrderPackages(
	ctx context.Context,
	uow UoW,
	orderID kernel.UUID,
) (map[kernel.UUID]*donation.Package, []*orderspackage.OrdersPackage, error) {
	locked := map[kernel.UUID]*donation.Package{}
	for {
		entries, err := uow.OrdersPackageRepository().ListByOrder(ctx, orderID)
		if err != nil {
			return nil, nil, err
		}

		var pending []kernel.UUID
		for _, e := range entries {
			if _, ok := locked[e.PackageID()]; !ok && !slices.Contains(pending, e.PackageID()) {
				pending = append(pending, e.PackageID())
			}
		}
		if len(pending) == 0 {
			return locked, entries, nil
		}

		slices.SortFunc(pending, func(a, b kernel.UUID) int { return strings.Compare(a.String(), b.String()) })
		for _, id := range pending {
			pkg, err := uow.PackageRepository().GetForUpdate(ctx, id)
			if err != nil {
				return nil, nil, err
			}
			locked[id] = pkg
		}
	}
}
