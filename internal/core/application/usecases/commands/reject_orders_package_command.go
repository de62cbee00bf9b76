package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrRejectOrdersPackageCommandIsNotConstructed = errors.New(
	"RejectOrdersPackageCommand must be created via NewRejectOrdersPackageCommand constructor",
)

// RejectOrdersPackageCommand turns down a requested item.
type RejectOrdersPackageCommand struct { //nolint:recvcheck //using for validation
	ordersPackageID kernel.UUID
	actorID         kernel.UUID

	guard guard.ConstructorGuard
}

func NewRejectOrdersPackageCommand(ordersPackageID, actorID kernel.UUID) (RejectOrdersPackageCommand, error) {
	if err := errors.Join(ordersPackageID.Validate(), actorID.Validate()); err != nil {
		return RejectOrdersPackageCommand{}, err
	}
	return RejectOrdersPackageCommand{
		ordersPackageID: ordersPackageID,
		actorID:         actorID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c RejectOrdersPackageCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrdersPackageCommandIsNotConstructed)
}

func (c RejectOrdersPackageCommand) OrdersPackageID() kernel.UUID { return c.ordersPackageID }
func (c RejectOrdersPackageCommand) ActorID() kernel.UUID         { return c.actorID }
