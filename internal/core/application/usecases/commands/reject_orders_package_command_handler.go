package commands

import (
	"context"

	"donations/internal/pkg/metrics"
)

// RejectOrdersPackageCommandHandler cancels a requested entry. Entries in any other state
// are reported as kernel.Unchanged and nothing is written.
type RejectOrdersPackageCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.DesignationMetrics
}

func NewRejectOrdersPackageCommandHandler(uowFactory UoWFactory, m *metrics.DesignationMetrics) RejectOrdersPackageCommandHandler {
	return RejectOrdersPackageCommandHandler{uowFactory: uowFactory, metrics: m}
}

func (h *RejectOrdersPackageCommandHandler) Handle(ctx context.Context, cmd RejectOrdersPackageCommand) (DesignationResult, error) {
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

	outcome, err := locked.entry.Reject(cmd.ActorID())
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

	h.metrics.IncOutcome("reject", outcome.String())
	return newDesignationResult(locked.entry, outcome), nil
}
