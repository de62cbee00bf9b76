package commands

import (
	"context"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/pkg/metrics"
)

type AddPartiallyDesignatedItemCommandHandler struct {
	uowFactory UoWFactory
	designator services.Designator
	metrics    *metrics.DesignationMetrics
}

func NewAddPartiallyDesignatedItemCommandHandler(
	uowFactory UoWFactory,
	m *metrics.DesignationMetrics,
) AddPartiallyDesignatedItemCommandHandler {
	return AddPartiallyDesignatedItemCommandHandler{
		uowFactory: uowFactory,
		designator: services.NewDesignator(),
		metrics:    m,
	}
}

// Handle grows the order's entry for the package, or creates it. Nothing is written when
// the package would be over-allocated.
func (h *AddPartiallyDesignatedItemCommandHandler) Handle(
	ctx context.Context,
	cmd AddPartiallyDesignatedItemCommand,
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
	if _, err = uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		return DesignationResult{}, err
	}

	entryRepo := uow.OrdersPackageRepository()
	entries, err := entryRepo.ListByPackage(ctx, pkg.ID())
	if err != nil {
		return DesignationResult{}, err
	}

	plan, err := h.designator.PlanPartialDesignation(pkg, entries, cmd.OrderID(), cmd.Quantity(), cmd.ActorID())
	if err != nil {
		h.metrics.IncOutcome("partial_designate", outcomeRejected)
		return DesignationResult{}, err
	}

	if plan.IsNewEntry {
		err = entryRepo.Add(ctx, plan.Entry)
	} else {
		err = entryRepo.Update(ctx, plan.Entry)
	}
	if err != nil {
		return DesignationResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return DesignationResult{}, err
	}

	h.metrics.IncOutcome("partial_designate", kernel.Changed.String())
	return newDesignationResult(plan.Entry, kernel.Changed), nil
}
