package commands

import (
	"context"

	"donations/internal/pkg/metrics"
)

// DispatchOrdersPackageCommandHandler moves a designated entry to dispatched and records
// the dispatched units in the package's location history, in one transaction.
type DispatchOrdersPackageCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.DesignationMetrics
}

func NewDispatchOrdersPackageCommandHandler(uowFactory UoWFactory, m *metrics.DesignationMetrics) DispatchOrdersPackageCommandHandler {
	return DispatchOrdersPackageCommandHandler{uowFactory: uowFactory, metrics: m}
}

func (h *DispatchOrdersPackageCommandHandler) Handle(ctx context.Context, cmd DispatchOrdersPackageCommand) (DesignationResult, error) {
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

	locked, err := lockEntry(ctx, uow, cmd.OrdersPackageID())
	if err != nil {
		return DesignationResult{}, err
	}

	outcome, err := locked.entry.Dispatch(cmd.At(), cmd.ActorID())
	if err != nil {
		return DesignationResult{}, err
	}
	if outcome.IsChanged() {
		if _, err = locked.pkg.AddDispatchedLocation(locked.entry.Quantity(), cmd.At()); err != nil {
			return DesignationResult{}, err
		}
		if err = uow.PackageRepository().Update(ctx, locked.pkg); err != nil {
			return DesignationResult{}, err
		}
		if err = uow.OrdersPackageRepository().Update(ctx, locked.entry); err != nil {
			return DesignationResult{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return DesignationResult{}, err
		}
	}

	h.metrics.IncOutcome("dispatch", outcome.String())
	return newDesignationResult(locked.entry, outcome), nil
}

// UndispatchOrdersPackageCommandHandler returns a dispatched entry to designated. The
// location history is append-only and keeps the dispatch record.
type UndispatchOrdersPackageCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.DesignationMetrics
}

func NewUndispatchOrdersPackageCommandHandler(uowFactory UoWFactory, m *metrics.DesignationMetrics) UndispatchOrdersPackageCommandHandler {
	return UndispatchOrdersPackageCommandHandler{uowFactory: uowFactory, metrics: m}
}

func (h *UndispatchOrdersPackageCommandHandler) Handle(
	ctx context.Context,
	cmd UndispatchOrdersPackageCommand,
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

	locked, err := lockEntry(ctx, uow, cmd.OrdersPackageID())
	if err != nil {
		return DesignationResult{}, err
	}

	outcome, err := locked.entry.Undispatch(cmd.ActorID())
	if err != nil {
		return DesignationResult{}, err
	}
	if outcome.IsChanged() {
		if err = uow.OrdersPackageRepository().Update(ctx, locked.entry); err != nil {
			return DesignationResult{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return DesignationResult{}, err
		}
	}

	h.metrics.IncOutcome("undispatch", outcome.String())
	return newDesignationResult(locked.entry, outcome), nil
}
