package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var (
	ErrUpdateOrdersPackageQuantityCommandIsNotConstructed = errors.New(
		"UpdateOrdersPackageQuantityCommand must be created via NewUpdateOrdersPackageQuantityCommand constructor",
	)
	ErrUpdateDesignationCommandIsNotConstructed = errors.New(
		"UpdateDesignationCommand must be created via NewUpdateDesignationCommand constructor",
	)
)

// UpdateOrdersPackageQuantityCommand copies the package's current on-hand quantity into
// the entry.
type UpdateOrdersPackageQuantityCommand struct { //nolint:recvcheck //using for validation
	ordersPackageID kernel.UUID
	actorID         kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdateOrdersPackageQuantityCommand(ordersPackageID, actorID kernel.UUID) (UpdateOrdersPackageQuantityCommand, error) {
	if err := errors.Join(ordersPackageID.Validate(), actorID.Validate()); err != nil {
		return UpdateOrdersPackageQuantityCommand{}, err
	}
	return UpdateOrdersPackageQuantityCommand{
		ordersPackageID: ordersPackageID,
		actorID:         actorID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrdersPackageQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrdersPackageQuantityCommandIsNotConstructed)
}

func (c UpdateOrdersPackageQuantityCommand) OrdersPackageID() kernel.UUID { return c.ordersPackageID }
func (c UpdateOrdersPackageQuantityCommand) ActorID() kernel.UUID         { return c.actorID }

// UpdateDesignationCommand re-points an entry to another order, keeping quantity and state.
type UpdateDesignationCommand struct { //nolint:recvcheck //using for validation
	ordersPackageID kernel.UUID
	orderID         kernel.UUID
	actorID         kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdateDesignationCommand(ordersPackageID, orderID, actorID kernel.UUID) (UpdateDesignationCommand, error) {
	if err := errors.Join(ordersPackageID.Validate(), orderID.Validate(), actorID.Validate()); err != nil {
		return UpdateDesignationCommand{}, err
	}
	return UpdateDesignationCommand{
		ordersPackageID: ordersPackageID,
		orderID:         orderID,
		actorID:         actorID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDesignationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDesignationCommandIsNotConstructed)
}

func (c UpdateDesignationCommand) OrdersPackageID() kernel.UUID { return c.ordersPackageID }
func (c UpdateDesignationCommand) OrderID() kernel.UUID         { return c.orderID }
func (c UpdateDesignationCommand) ActorID() kernel.UUID         { return c.actorID }
