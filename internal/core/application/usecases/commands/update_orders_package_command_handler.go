package commands

import (
	"context"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/pkg/errs"
)

type UpdateOrdersPackageQuantityCommandHandler struct {
	uowFactory UoWFactory
	guard      services.AllocationGuard
}

func NewUpdateOrdersPackageQuantityCommandHandler(uowFactory UoWFactory) UpdateOrdersPackageQuantityCommandHandler {
	return UpdateOrdersPackageQuantityCommandHandler{uowFactory: uowFactory, guard: services.NewAllocationGuard()}
}

// Handle rejects the update when the package's allocation would exceed what it received.
func (h *UpdateOrdersPackageQuantityCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrdersPackageQuantityCommand,
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

	if err = locked.entry.UpdateQuantity(locked.pkg, cmd.ActorID()); err != nil {
		return DesignationResult{}, err
	}
	if err = h.guard.Check(locked.pkg, locked.entries); err != nil {
		return DesignationResult{}, err
	}

	if err = uow.OrdersPackageRepository().Update(ctx, locked.entry); err != nil {
		return DesignationResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return DesignationResult{}, err
	}
	return newDesignationResult(locked.entry, kernel.Changed), nil
}

type UpdateDesignationCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateDesignationCommandHandler(uowFactory UoWFactory) UpdateDesignationCommandHandler {
	return UpdateDesignationCommandHandler{uowFactory: uowFactory}
}

// Handle moves the entry to the target order. The target must exist and must not already
// hold an entry for the same package.
func (h *UpdateDesignationCommandHandler) Handle(ctx context.Context, cmd UpdateDesignationCommand) (DesignationResult, error) {
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
	if _, err = uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		return DesignationResult{}, err
	}

	if locked.entry.BelongsTo(cmd.OrderID()) {
		return newDesignationResult(locked.entry, kernel.Unchanged), nil
	}
	for _, e := range locked.entries {
		if e.BelongsTo(cmd.OrderID()) {
			return DesignationResult{}, errs.NewValidationError("orders_package", "package_id", services.MsgAlreadyDesignated)
		}
	}

	if err = locked.entry.UpdateDesignation(cmd.OrderID(), cmd.ActorID()); err != nil {
		return DesignationResult{}, err
	}
	if err = uow.OrdersPackageRepository().Update(ctx, locked.entry); err != nil {
		return DesignationResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return DesignationResult{}, err
	}
	return newDesignationResult(locked.entry, kernel.Changed), nil
}
