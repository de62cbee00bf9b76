package commands

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrPruneCancelledOrdersPackagesCommandIsNotConstructed = errors.New(
	"PruneCancelledOrdersPackagesCommand must be created via NewPruneCancelledOrdersPackagesCommand constructor",
)

// PruneCancelledOrdersPackagesCommand deletes an order's cancelled entries that hold no
// units, optionally limited to one package.
type PruneCancelledOrdersPackagesCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	packageID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewPruneCancelledOrdersPackagesCommand(orderID kernel.UUID, packageID *kernel.UUID) (PruneCancelledOrdersPackagesCommand, error) {
	if err := errors.Join(orderID.Validate(), validateOptionalID(packageID)); err != nil {
		return PruneCancelledOrdersPackagesCommand{}, err
	}
	return PruneCancelledOrdersPackagesCommand{
		orderID:   orderID,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PruneCancelledOrdersPackagesCommand) Validate() error {
	return c.guard.Validate(ErrPruneCancelledOrdersPackagesCommandIsNotConstructed)
}

func (c PruneCancelledOrdersPackagesCommand) OrderID() kernel.UUID    { return c.orderID }
func (c PruneCancelledOrdersPackagesCommand) PackageID() *kernel.UUID { return c.packageID }

type PruneCancelledOrdersPackagesCommandHandler struct {
	uowFactory UoWFactory
}

func NewPruneCancelledOrdersPackagesCommandHandler(uowFactory UoWFactory) PruneCancelledOrdersPackagesCommandHandler {
	return PruneCancelledOrdersPackagesCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of deleted entries.
func (h *PruneCancelledOrdersPackagesCommandHandler) Handle(
	ctx context.Context,
	cmd PruneCancelledOrdersPackagesCommand,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.OrdersPackageRepository().DeleteRedundant(ctx, cmd.OrderID(), cmd.PackageID())
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}
