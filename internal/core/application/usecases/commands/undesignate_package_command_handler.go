package commands

import (
	"context"

	"donations/internal/core/domain/services"
	"donations/internal/pkg/metrics"
)

// UndesignatePackageCommandHandler releases units from a ledger entry and then clears the
// designation in the inventory mirror.
type UndesignatePackageCommandHandler struct {
	uowFactory UoWFactory
	designator services.Designator
	sync       MirrorSync
	metrics    *metrics.DesignationMetrics
}

func NewUndesignatePackageCommandHandler(
	uowFactory UoWFactory,
	sync MirrorSync,
	m *metrics.DesignationMetrics,
) UndesignatePackageCommandHandler {
	return UndesignatePackageCommandHandler{
		uowFactory: uowFactory,
		designator: services.NewDesignator(),
		sync:       sync,
		metrics:    m,
	}
}

func (h *UndesignatePackageCommandHandler) Handle(
	ctx context.Context,
	cmd UndesignatePackageCommand,
) (DesignationResult, error) {
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

	entryRepo := uow.OrdersPackageRepository()
	entries, err := entryRepo.ListByPackage(ctx, pkg.ID())
	if err != nil {
		return DesignationResult{}, err
	}

	entry, outcome, err := h.designator.PlanRelease(pkg, entries, services.ReleaseRequest{
		OrdersPackageID:   cmd.OrdersPackageID(),
		Quantity:          cmd.Quantity(),
		ReturnToRequested: cmd.ReturnToRequested(),
		Actor:             cmd.ActorID(),
	})
	if err != nil {
		h.metrics.IncOutcome("undesignate", outcomeRejected)
		return DesignationResult{}, err
	}

	result := newDesignationResult(entry, outcome)
	if !outcome.IsChanged() {
		h.metrics.IncOutcome("undesignate", outcome.String())
		return result, nil
	}

	if err = entryRepo.Update(ctx, entry); err != nil {
		return DesignationResult{}, err
	}
	pkg.BumpMirrorVersion()
	if err = uow.PackageRepository().Update(ctx, pkg); err != nil {
		return DesignationResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return DesignationResult{}, err
	}
	h.metrics.IncOutcome("undesignate", outcome.String())

	orderID := entry.OrderID()
	if err = h.sync.Undesignate(ctx, pkg, &orderID, cmd.At()); err != nil {
		return result, err
	}
	return result, nil
}
