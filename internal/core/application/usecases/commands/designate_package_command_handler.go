package commands

import (
	"context"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"
	"donations/internal/pkg/metrics"
)

// DesignatePackageCommandHandler designates or redesignates a package to an order.
//
// The whole plan runs under the package row lock: the entries read are exactly the entries
// written. The commit bumps the package mirror version, and the push to the inventory mirror
// after the commit carries it. If that push fails the result is still returned together
// with an *errs.ExternalSyncError.
type DesignatePackageCommandHandler struct {
	uowFactory UoWFactory
	designator services.Designator
	sync       MirrorSync
	metrics    *metrics.DesignationMetrics
}

func NewDesignatePackageCommandHandler(
	uowFactory UoWFactory,
	sync MirrorSync,
	m *metrics.DesignationMetrics,
) DesignatePackageCommandHandler {
	return DesignatePackageCommandHandler{
		uowFactory: uowFactory,
		designator: services.NewDesignator(),
		sync:       sync,
		metrics:    m,
	}
}

func (h *DesignatePackageCommandHandler) Handle(ctx context.Context, cmd DesignatePackageCommand) (DesignationResult, error) {
	if err := cmd.Validate(); err != nil {
		return DesignationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DesignationResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pkg, err := uow.PackageRepository().GetForUpdate(ctx, cmd.PackageID())
	if err != nil {
		return DesignationResult{}, err
	}
	targetOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return DesignationResult{}, err
	}

	entryRepo := uow.OrdersPackageRepository()
	entries, err := entryRepo.ListByPackage(ctx, pkg.ID())
	if err != nil {
		return DesignationResult{}, err
	}

	plan, err := h.designator.PlanDesignation(pkg, entries, services.DesignationRequest{
		OrderID:         cmd.OrderID(),
		Quantity:        cmd.Quantity(),
		OrdersPackageID: cmd.OrdersPackageID(),
		Actor:           cmd.ActorID(),
	})
	if err != nil {
		h.metrics.IncOutcome("designate", outcomeRejected)
		return DesignationResult{}, err
	}

	var (
		releasedFrom = plan.Released
		pruned       int64
	)
	if releasedFrom != nil {
		if err = entryRepo.Update(ctx, releasedFrom); err != nil {
			return DesignationResult{}, err
		}
		if len(plan.Pruned) > 0 {
			packageID := pkg.ID()
			if pruned, err = entryRepo.DeleteRedundant(ctx, releasedFrom.OrderID(), &packageID); err != nil {
				return DesignationResult{}, err
			}
		}
	}

	if plan.IsNewEntry {
		err = entryRepo.Add(ctx, plan.Entry)
	} else {
		err = entryRepo.Update(ctx, plan.Entry)
	}
	if err != nil {
		return DesignationResult{}, err
	}

	pkg.BumpMirrorVersion()
	if err = uow.PackageRepository().Update(ctx, pkg); err != nil {
		return DesignationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DesignationResult{}, err
	}
	h.metrics.IncOutcome("designate", kernel.Changed.String())

	result := newDesignationResult(plan.Entry, kernel.Changed)
	result.Pruned = pruned
	if releasedFrom != nil {
		orderID := releasedFrom.OrderID()
		result.ReleasedFromOrderID = &orderID
	}

	ref := ports.StockitOrderRef{OrderID: targetOrder.ID(), Code: targetOrder.Code()}
	if err = h.sync.Designate(ctx, pkg, ref, cmd.At()); err != nil {
		return result, err
	}
	return result, nil
}
