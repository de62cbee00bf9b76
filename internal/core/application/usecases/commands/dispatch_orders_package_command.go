package commands

import (
	"errors"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	ErrDispatchOrdersPackageCommandIsNotConstructed = errors.New(
		"DispatchOrdersPackageCommand must be created via NewDispatchOrdersPackageCommand constructor",
	)
	ErrUndispatchOrdersPackageCommandIsNotConstructed = errors.New(
		"UndispatchOrdersPackageCommand must be created via NewUndispatchOrdersPackageCommand constructor",
	)
)

// DispatchOrdersPackageCommand marks a designated item as sent.
type DispatchOrdersPackageCommand struct { //nolint:recvcheck //using for validation
	ordersPackageID kernel.UUID
	actorID         kernel.UUID
	at              time.Time

	guard guard.ConstructorGuard
}

func NewDispatchOrdersPackageCommand(ordersPackageID, actorID kernel.UUID, at time.Time) (DispatchOrdersPackageCommand, error) {
	if err := errors.Join(ordersPackageID.Validate(), actorID.Validate()); err != nil {
		return DispatchOrdersPackageCommand{}, err
	}
	if at.IsZero() {
		return DispatchOrdersPackageCommand{}, errs.NewValueIsRequiredError("dispatched at")
	}
	return DispatchOrdersPackageCommand{
		ordersPackageID: ordersPackageID,
		actorID:         actorID,
		at:              at,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchOrdersPackageCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrdersPackageCommandIsNotConstructed)
}

func (c DispatchOrdersPackageCommand) OrdersPackageID() kernel.UUID { return c.ordersPackageID }
func (c DispatchOrdersPackageCommand) ActorID() kernel.UUID         { return c.actorID }
func (c DispatchOrdersPackageCommand) At() time.Time                { return c.at }

// UndispatchOrdersPackageCommand reverses a dispatch.
type UndispatchOrdersPackageCommand struct { //nolint:recvcheck //using for validation
	ordersPackageID kernel.UUID
	actorID         kernel.UUID

	guard guard.ConstructorGuard
}

func NewUndispatchOrdersPackageCommand(ordersPackageID, actorID kernel.UUID) (UndispatchOrdersPackageCommand, error) {
	if err := errors.Join(ordersPackageID.Validate(), actorID.Validate()); err != nil {
		return UndispatchOrdersPackageCommand{}, err
	}
	return UndispatchOrdersPackageCommand{
		ordersPackageID: ordersPackageID,
		actorID:         actorID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UndispatchOrdersPackageCommand) Validate() error {
	return c.guard.Validate(ErrUndispatchOrdersPackageCommandIsNotConstructed)
}

func (c UndispatchOrdersPackageCommand) OrdersPackageID() kernel.UUID { return c.ordersPackageID }
func (c UndispatchOrdersPackageCommand) ActorID() kernel.UUID         { return c.actorID }
